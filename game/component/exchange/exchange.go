package exchange

import (
	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
)

type removal struct {
	itemId int32
	count  int
}

// Exchange 针对一个角色的两阶段变更: Check只检查 Perform才真正修改
type Exchange struct {
	c        base.Character
	gives    []*entity.Item
	removes  []removal
	money    int64
	err      *msError.Error
	given    []*entity.Item
	removed  []removal
	paid     bool
	finished bool
}

func New(c base.Character) *Exchange {
	return &Exchange{c: c}
}

// GiveItem 给角色一个物品
func (e *Exchange) GiveItem(item *entity.Item) {
	if item == nil || item.Quantity <= 0 {
		return
	}
	e.gives = append(e.gives, item)
}

// GiveItemById count为负表示从角色身上扣除
func (e *Exchange) GiveItemById(itemId int32, count int) {
	if count > 0 {
		e.GiveItem(&entity.Item{ItemId: itemId, Quantity: count})
		return
	}
	if count < 0 {
		e.removes = append(e.removes, removal{itemId: itemId, count: -count})
	}
}

// GiveMoney 负数为扣钱
func (e *Exchange) GiveMoney(amount int64) {
	e.money += amount
}

func (e *Exchange) Err() *msError.Error {
	return e.err
}

// Check 不修改任何状态
func (e *Exchange) Check() bool {
	e.err = nil
	if !e.c.CanAddMoney(e.money) {
		if e.money < 0 {
			e.err = biz.NotEnoughMoney
		} else {
			e.err = biz.MoneyLimit
		}
		return false
	}
	need := make(map[int32]int)
	for _, r := range e.removes {
		need[r.itemId] += r.count
	}
	for id, n := range need {
		if e.c.CountItem(id) < n {
			e.err = biz.ItemNotFound
			return false
		}
	}
	if len(e.gives) > 0 && !e.c.CanAddItems(e.gives) {
		e.err = biz.InventoryFull
		return false
	}
	return true
}

// Perform 提交 任何一步失败都会回滚已经做过的部分
func (e *Exchange) Perform() bool {
	if e.finished {
		return false
	}
	if !e.Check() {
		return false
	}
	for _, r := range e.removes {
		if !e.c.RemoveItemById(r.itemId, r.count) {
			e.err = biz.ItemNotFound
			e.Rollback()
			return false
		}
		e.removed = append(e.removed, r)
	}
	if e.money != 0 {
		if !e.c.IncMoney(e.money) {
			e.err = biz.MoneyLimit
			e.Rollback()
			return false
		}
		e.paid = true
	}
	for _, item := range e.gives {
		if !e.c.AddNewItem(item.Clone()) {
			e.err = biz.InventoryFull
			e.Rollback()
			return false
		}
		e.given = append(e.given, item)
	}
	e.finished = true
	return true
}

// Rollback 撤销Perform已经生效的部分
func (e *Exchange) Rollback() {
	for _, item := range e.given {
		if !e.c.RemoveItemById(item.ItemId, item.Quantity) {
			logs.Error("[Exchange] rollback item uid=%s itemId=%d qty=%d failed", e.c.GetUid(), item.ItemId, item.Quantity)
		}
	}
	if e.paid && !e.c.IncMoney(-e.money) {
		logs.Error("[Exchange] rollback money uid=%s money=%d failed", e.c.GetUid(), e.money)
	}
	for _, r := range e.removed {
		e.c.AddNewItem(&entity.Item{ItemId: r.itemId, Quantity: r.count})
	}
	e.given = nil
	e.removed = nil
	e.paid = false
	e.finished = false
}

// Both 两个交换都检查通过才一起提交 第二个失败时回滚第一个
func Both(a, b *Exchange) *msError.Error {
	if !a.Check() {
		return a.Err()
	}
	if !b.Check() {
		return b.Err()
	}
	if !a.Perform() {
		return a.Err()
	}
	if !b.Perform() {
		a.Rollback()
		return b.Err()
	}
	return nil
}
