package base

import (
	"time"

	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/proto"
)

// Character 房间看到的角色 背包 金币 推送都通过它完成
type Character interface {
	GetUid() string
	GetName() string
	GetFieldId() int
	GetPosition() (x int, y int)
	IsGM() bool
	IsAlive() bool
	IsOnline() bool
	IsMuted(now time.Time) bool
	// CanAttachAdditionalProcess 没有其他房间/对话等占用时才可以加入房间
	CanAttachAdditionalProcess() bool
	// ClaimMiniRoom 原子地占住角色 入座(SetMiniRoom)或ReleaseMiniRoom后解除
	ClaimMiniRoom() bool
	ReleaseMiniRoom()
	GetMiniRoomSerial() int64
	GetMiniRoomSlot() int
	SetMiniRoom(serial int64, slot int)
	SendPacket(data any)

	GetItem(inv entity.InventoryType, pos int) *entity.Item
	TakeItemAmountFromSlot(inv entity.InventoryType, pos int, count int) (*entity.Item, *msError.Error)
	CountItem(itemId int32) int
	HasItem(itemId int32) bool
	CanAddItems(items []*entity.Item) bool
	AddNewItem(item *entity.Item) bool
	RemoveItemById(itemId int32, count int) bool
	GetMoney() int64
	CanAddMoney(delta int64) bool
	IncMoney(delta int64) bool

	GetMiniGameRecord(kind proto.MiniRoomType) *entity.MiniGameRecord
	GetEntity() *entity.Character
}

// World 按uid找在线角色
type World interface {
	FindCharacter(uid string) Character
}

// Field 地图相关的建房规则和气球
type Field interface {
	CheckEstablish(c Character, kind proto.MiniRoomType) *msError.Error
	SetBalloon(b *proto.Balloon)
	RemoveBalloon(serial int64)
	// OnLeaveMiniRoom 离开房间后需要强制回城的地图在这里处理
	OnLeaveMiniRoom(c Character, kind proto.MiniRoomType)
}

// CharacterStore 交易/出售完成后持久化角色
type CharacterStore interface {
	SaveCharacter(c *entity.Character) error
}

type RecordStore interface {
	SaveShopSellRecord(r *entity.ShopSellRecord)
	SaveGameRecord(r *entity.GameRecord)
}

// Directory 房间目录 其他节点通过它查询房间在哪
type Directory interface {
	Publish(serial int64, balloon any)
	Remove(serial int64)
}
