package character

import (
	"miniroom/common/biz"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
)

func (p *Player) slots(inv entity.InventoryType) []*entity.Item {
	if inv < entity.Equip || inv > entity.Cash {
		return nil
	}
	return p.entity.Inventories[inv-1]
}

// GetItem pos从1开始
func (p *Player) GetItem(inv entity.InventoryType, pos int) *entity.Item {
	p.RLock()
	defer p.RUnlock()
	slots := p.slots(inv)
	if pos < 1 || pos > len(slots) {
		return nil
	}
	return slots[pos-1]
}

// TakeItemAmountFromSlot 从格子里拿出count个 全部拿走时格子清空
func (p *Player) TakeItemAmountFromSlot(inv entity.InventoryType, pos int, count int) (*entity.Item, *msError.Error) {
	p.Lock()
	defer p.Unlock()
	slots := p.slots(inv)
	if pos < 1 || pos > len(slots) || count <= 0 {
		return nil, biz.RequestDataError
	}
	item := slots[pos-1]
	if item == nil || item.Quantity < count {
		return nil, biz.ItemNotFound
	}
	if item.Quantity == count {
		slots[pos-1] = nil
		return item, nil
	}
	return item.Split(count), nil
}

func (p *Player) CountItem(itemId int32) int {
	p.RLock()
	defer p.RUnlock()
	n := 0
	for _, item := range p.slots(entity.GetInventoryType(itemId)) {
		if item != nil && item.ItemId == itemId {
			n += item.Quantity
		}
	}
	return n
}

func (p *Player) HasItem(itemId int32) bool {
	return p.CountItem(itemId) > 0
}

// CanAddItems 模拟放入 不改背包
func (p *Player) CanAddItems(items []*entity.Item) bool {
	p.RLock()
	defer p.RUnlock()
	var sim [entity.InventoryCount][]*entity.Item
	for i := range p.entity.Inventories {
		sim[i] = make([]*entity.Item, len(p.entity.Inventories[i]))
		for j, item := range p.entity.Inventories[i] {
			if item != nil {
				sim[i][j] = item.Clone()
			}
		}
	}
	for _, item := range items {
		inv := entity.GetInventoryType(item.ItemId)
		if inv == 0 {
			return false
		}
		if !addTo(sim[inv-1], item.Clone()) {
			return false
		}
	}
	return true
}

// AddNewItem 先叠加到同id的格子 剩下的放空格 放不下返回false且背包不变
func (p *Player) AddNewItem(item *entity.Item) bool {
	if !p.CanAddItems([]*entity.Item{item}) {
		return false
	}
	p.Lock()
	defer p.Unlock()
	return addTo(p.slots(entity.GetInventoryType(item.ItemId)), item)
}

func addTo(slots []*entity.Item, item *entity.Item) bool {
	stack := entity.MaxStack(item.ItemId)
	left := item.Quantity
	if stack > 1 {
		for _, s := range slots {
			if left == 0 {
				break
			}
			if s == nil || s.ItemId != item.ItemId || s.Untradable != item.Untradable || s.Quantity >= stack {
				continue
			}
			n := min(stack-s.Quantity, left)
			s.Quantity += n
			left -= n
		}
	}
	for i := range slots {
		if left == 0 {
			break
		}
		if slots[i] != nil {
			continue
		}
		n := min(stack, left)
		part := item.Clone()
		part.Quantity = n
		slots[i] = part
		left -= n
	}
	return left == 0
}

func (p *Player) RemoveItemById(itemId int32, count int) bool {
	if p.CountItem(itemId) < count {
		return false
	}
	p.Lock()
	defer p.Unlock()
	slots := p.slots(entity.GetInventoryType(itemId))
	for i := len(slots) - 1; i >= 0 && count > 0; i-- {
		s := slots[i]
		if s == nil || s.ItemId != itemId {
			continue
		}
		n := min(s.Quantity, count)
		s.Quantity -= n
		count -= n
		if s.Quantity == 0 {
			slots[i] = nil
		}
	}
	return true
}
