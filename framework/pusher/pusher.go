package pusher

import (
	"encoding/json"

	"miniroom/common/logs"
	"miniroom/framework/remote"
	"miniroom/framework/stream"
)

const defaultRouter = "MiniRoomPush"

var _pusher *Pusher

// Pusher 把推送按connector分组后通过nats发出
type Pusher struct {
	client   remote.Client
	serverId string
	pushChan chan *stream.PushMessage
	done     chan struct{}
}

func GetPusher() *Pusher {
	return _pusher
}

// Push 推送给单个玩家 data中带pushRouter时使用它作为客户端路由
func (p *Pusher) Push(uid string, connectorId string, data any) {
	p.PushUsers([]stream.PushUser{{Uid: uid, ConnectorId: connectorId}}, data, routerOf(data))
}

func (p *Pusher) PushUsers(users []stream.PushUser, data any, router string) {
	msgData, err := json.Marshal(data)
	if err != nil {
		logs.Error("push marshal err:%v", err)
		return
	}
	upm := &stream.PushMessage{
		Users: users,
		PushData: stream.PushData{
			Data:   msgData,
			Router: router,
		},
	}
	select {
	case p.pushChan <- upm:
	case <-p.done:
	}
}

func routerOf(data any) string {
	if m, ok := data.(map[string]any); ok {
		if r, ok := m["pushRouter"].(string); ok {
			return r
		}
	}
	return defaultRouter
}

func (p *Pusher) pushChanRead() {
	for {
		select {
		case <-p.done:
			return
		case data := <-p.pushChan:
			pushMessage := stream.Message{
				Type:  stream.Push,
				Route: data.PushData.Router,
				Data:  data.PushData.Data,
			}
			userMap := make(map[string][]string)
			for _, v := range data.Users {
				//将同一个目的地的到一起
				userMap[v.ConnectorId] = append(userMap[v.ConnectorId], v.Uid)
			}
			for dst, uids := range userMap {
				msgData := stream.Msg{
					Dst:         dst,
					Src:         p.serverId,
					Body:        &pushMessage,
					PushUser:    uids,
					SessionType: stream.Normal,
				}
				result, _ := json.Marshal(msgData)
				logs.Debug("push dst:%v uids:%v", dst, uids)
				if err := p.client.SendMsg(msgData.Dst, result); err != nil {
					logs.Error("push stream err:%v, dst=%s", err, dst)
				}
			}
		}
	}
}

func (p *Pusher) Close() {
	close(p.done)
}

func NewPusher(client remote.Client, serverId string) *Pusher {
	_pusher = &Pusher{
		client:   client,
		serverId: serverId,
		pushChan: make(chan *stream.PushMessage, 1024),
		done:     make(chan struct{}),
	}
	go _pusher.pushChanRead()
	return _pusher
}
