package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// InventoryType 背包类型 与物品id的万位前缀一致
type InventoryType int

const (
	Equip   InventoryType = 1
	Consume InventoryType = 2
	Install InventoryType = 3
	Etc     InventoryType = 4
	Cash    InventoryType = 5
)

const (
	InventoryCount = 5
	DefaultSlotMax = 24
	MaxMoney       = int64(2147483647)
	DefaultScore   = 2000
)

type Character struct {
	Id           primitive.ObjectID      `bson:"_id,omitempty" json:"id,omitempty"`
	Uid          string                  `bson:"uid" json:"uid"`
	Name         string                  `bson:"name" json:"name"`
	FieldId      int                     `bson:"fieldId" json:"fieldId"`
	X            int                     `bson:"x" json:"x"`
	Y            int                     `bson:"y" json:"y"`
	Gm           bool                    `bson:"gm" json:"gm"`
	Hp           int                     `bson:"hp" json:"hp"`
	Money        int64                   `bson:"money" json:"money"`
	MuteUntil    int64                   `bson:"muteUntil" json:"muteUntil"` // 禁言截止时间 毫秒
	Inventories  [InventoryCount][]*Item `bson:"inventories" json:"inventories"`
	OmokRecord   MiniGameRecord          `bson:"omokRecord" json:"omokRecord"`
	MemoryRecord MiniGameRecord          `bson:"memoryRecord" json:"memoryRecord"`
	CreateTime   int64                   `bson:"createTime" json:"createTime"`
	UpdateTime   int64                   `bson:"updateTime" json:"updateTime"`
}

// MiniGameRecord 小游戏战绩
type MiniGameRecord struct {
	Wins   int `bson:"wins" json:"wins"`
	Ties   int `bson:"ties" json:"ties"`
	Losses int `bson:"losses" json:"losses"`
	Score  int `bson:"score" json:"score"`
}

func (r *MiniGameRecord) Games() int {
	return r.Wins + r.Ties + r.Losses
}

// NewCharacter 新建角色 每个背包DefaultSlotMax格
func NewCharacter(uid string, name string) *Character {
	c := &Character{
		Uid:          uid,
		Name:         name,
		Hp:           50,
		OmokRecord:   MiniGameRecord{Score: DefaultScore},
		MemoryRecord: MiniGameRecord{Score: DefaultScore},
	}
	for i := range c.Inventories {
		c.Inventories[i] = make([]*Item, DefaultSlotMax)
	}
	return c
}
