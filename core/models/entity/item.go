package entity

const (
	bundleMax = 200
)

type Item struct {
	ItemId     int32 `bson:"itemId" json:"itemId"`
	Quantity   int   `bson:"quantity" json:"quantity"`
	Untradable bool  `bson:"untradable" json:"untradable"`
	Expire     int64 `bson:"expire" json:"expire"`
}

// GetInventoryType 物品所在背包 由物品id决定
func GetInventoryType(itemId int32) InventoryType {
	t := InventoryType(itemId / 1000000)
	if t < Equip || t > Cash {
		return 0
	}
	return t
}

// MaxStack 单格最大堆叠数量
func MaxStack(itemId int32) int {
	switch GetInventoryType(itemId) {
	case Equip, Cash:
		return 1
	}
	return bundleMax
}

func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// Split 拆出count个 返回拆出的部分 原物品数量减少
func (i *Item) Split(count int) *Item {
	part := i.Clone()
	part.Quantity = count
	i.Quantity -= count
	return part
}
