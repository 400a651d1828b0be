package remote

import (
	"encoding/json"
	"sync"

	"miniroom/common/logs"
	"miniroom/framework/stream"
)

// Session 一条远端消息对应的会话 handler通过它读写connector上的会话数据
type Session struct {
	sync.RWMutex
	client   Client
	msg      *stream.Msg
	data     *stream.SessionData
	serverId string
}

func NewSession(client Client, msg *stream.Msg) *Session {
	return &Session{
		client: client,
		msg:    msg,
		data: &stream.SessionData{
			AllData:    make(map[string]any),
			SingleData: make(map[string]any),
		},
	}
}

func (s *Session) GetUid() string {
	return s.msg.Uid
}

// GetConnectorId 消息来源的connector 推送时使用
func (s *Session) GetConnectorId() string {
	if s.msg.ConnectorId != "" {
		return s.msg.ConnectorId
	}
	return s.msg.Src
}

// Put 修改会话数据并同步给connector
func (s *Session) Put(key string, value any, t stream.DataType) {
	s.Lock()
	if t == stream.Single {
		s.data.SingleData[key] = value
	}
	if t == stream.All {
		s.data.AllData[key] = value
	}
	msg := stream.Msg{
		Dst:         s.msg.Src,
		Src:         s.msg.Dst,
		Cid:         s.msg.Cid,
		Uid:         s.msg.Uid,
		SessionData: s.data,
		SessionType: stream.Session,
	}
	res, _ := json.Marshal(msg)
	s.Unlock()
	if err := s.client.SendMsg(msg.Dst, res); err != nil {
		logs.Error("push session data err:%v", err)
	}
}

func (s *Session) SetData(data *stream.SessionData) {
	s.Lock()
	defer s.Unlock()
	if data != nil {
		for k, v := range data.SingleData {
			s.data.SingleData[k] = v
		}
		for k, v := range data.AllData {
			s.data.AllData[k] = v
		}
	}
}

func (s *Session) Get(key string) (any, bool) {
	s.RLock()
	defer s.RUnlock()
	v, ok := s.data.SingleData[key]
	if !ok {
		v, ok = s.data.AllData[key]
	}
	return v, ok
}

func (s *Session) SetServerId(serverId string) {
	s.serverId = serverId
}

func (s *Session) GetServerId() string {
	return s.serverId
}

func (s *Session) GetMsg() *stream.Msg {
	return s.msg
}
