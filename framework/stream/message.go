package stream

type MessageType byte

const (
	Request  MessageType = 0x00
	Notify   MessageType = 0x01
	Response MessageType = 0x02
	Push     MessageType = 0x03
)

// Message connector转发过来的客户端消息体
type Message struct {
	Type  MessageType `json:"type"`
	ID    uint        `json:"id"`
	Route string      `json:"route"`
	Data  []byte      `json:"data"`
	Error bool        `json:"error"`
}

type Msg struct {
	Cid         string
	Body        *Message
	Src         string
	Dst         string
	Router      string
	Uid         string
	ConnectorId string
	SessionData *SessionData
	SessionType SessionType // 0 normal 1 session
	PushUser    []string
}
type DataType int

const (
	Single DataType = iota
	All
)

type SessionData struct {
	SingleData map[string]any //只保存当前cid
	AllData    map[string]any //所有cid 都需要保存
}
type SessionType int

const (
	Normal SessionType = iota
	Session
)

// PushUser 推送目标 connectorId决定消息发往哪个connector
type PushUser struct {
	Uid         string `json:"uid"`
	ConnectorId string `json:"connectorId"`
}

// PushData 已编码的推送内容 router为客户端监听的推送路由
type PushData struct {
	Data   []byte `json:"data"`
	Router string `json:"router"`
}

type PushMessage struct {
	PushData PushData   `json:"pushData"`
	Users    []PushUser `json:"users"`
}
