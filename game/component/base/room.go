package base

import (
	"time"

	"miniroom/common/config"
	"miniroom/framework/msError"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

// RoomFrame 房间提供给各玩法的能力
type RoomFrame interface {
	GetSerial() int64
	GetKind() proto.MiniRoomType
	GetUser(slot int) Character
	GetMaxUsers() int
	CurUsers() int
	IsTournament() bool
	IsOpen() bool
	SendTo(slot int, data any)
	Broadcast(data any)
	BroadcastExcept(slot int, data any)
	// RequestLeave 只登记离开原因 本次消息处理完后统一执行
	RequestLeave(slot int, reason proto.LeaveReason)
	DoCloseRequest(initiator int, othersReason proto.LeaveReason, initiatorReason proto.LeaveReason)
	HasReservation(uid string) bool
	SetOpen(open bool)
	SetManaged(managed bool)
	UpdateBalloon()
	Now() time.Time
	Conf() config.RoomConf
	Store() CharacterStore
	Records() RecordStore
}

// Frame 各玩法必须实现的部分
type Frame interface {
	PacketHandler
	MaxUsers() int
	// EnterData 进入时发给slot的完整房间数据
	EnterData(slot int) any
	// OnEnter 入座并推送完房间数据之后调用
	OnEnter(slot int, c Character)
	// OnLeave 成员离开前回调 返回true表示房间随之关闭 othersReason是其他人的离开原因
	OnLeave(slot int, c Character, reason proto.LeaveReason) (closeRoom bool, othersReason proto.LeaveReason)
	// OnClose 房间销毁 归还暂存的物品
	OnClose()
}

type PacketHandler interface {
	OnPacket(op proto.MiniRoomProtocol, c Character, slot int, data *request.MiniRoomData) *msError.Error
}

// Admittable 进入房间前的玩法检查
type Admittable interface {
	IsAdmitted(c Character, data *request.MiniRoomData) *msError.Error
}

type Tickable interface {
	OnTick(now time.Time)
}

// HuskKeeper 房主下线后房间继续营业
type HuskKeeper interface {
	KeepHusk(slot int) bool
	Reattach(c Character)
}

// BalloonDecorator 玩法补充气球上的状态
type BalloonDecorator interface {
	Decorate(b *proto.Balloon)
}
