package trade

import (
	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/exchange"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

// slotCount 每人10格 0号格不使用
const slotCount = 10

type TradingRoom struct {
	room   base.RoomFrame
	items  [2][slotCount]*entity.Item
	money  [2]int64
	locked [2]bool
	owners [2]base.Character
	done   bool
}

func NewTradingRoom(r base.RoomFrame, owner base.Character, data *request.MiniRoomData) (base.Frame, *msError.Error) {
	return &TradingRoom{room: r}, nil
}

func (t *TradingRoom) MaxUsers() int {
	return 2
}

// IsAdmitted 交易只能通过邀请进入
func (t *TradingRoom) IsAdmitted(c base.Character, data *request.MiniRoomData) *msError.Error {
	if !t.room.HasReservation(c.GetUid()) {
		return biz.CantTradeNow
	}
	return nil
}

func (t *TradingRoom) OnEnter(slot int, c base.Character) {
	t.owners[slot] = c
}

func (t *TradingRoom) EnterData(slot int) any {
	return map[string]any{
		"items": t.items,
		"money": t.money,
	}
}

func (t *TradingRoom) OnPacket(op proto.MiniRoomProtocol, c base.Character, slot int, data *request.MiniRoomData) *msError.Error {
	switch op {
	case proto.TRP_PutItem:
		return t.PutItem(slot, c, entity.InventoryType(data.InvType), data.Pos, data.Count, data.TradeSlot)
	case proto.TRP_PutMoney:
		return t.PutMoney(slot, c, data.Money)
	case proto.TRP_Trade:
		return t.Lock(slot)
	}
	return biz.RequestDataError
}

func (t *TradingRoom) checkStaging(slot int) *msError.Error {
	if t.room.CurUsers() != 2 {
		return biz.CantTradeNow
	}
	if t.locked[slot] {
		return biz.AlreadyLocked
	}
	return nil
}

// PutItem 物品立即从背包移到交易栏
func (t *TradingRoom) PutItem(slot int, c base.Character, inv entity.InventoryType, pos int, count int, tradeSlot int) *msError.Error {
	if err := t.checkStaging(slot); err != nil {
		return err
	}
	if tradeSlot < 1 || tradeSlot >= slotCount || t.items[slot][tradeSlot] != nil {
		return biz.RequestDataError
	}
	item := c.GetItem(inv, pos)
	if item == nil {
		return biz.ItemNotFound
	}
	if item.Untradable {
		return biz.ItemUntradable
	}
	if count <= 0 || count > item.Quantity {
		return biz.RequestDataError
	}
	taken, err := c.TakeItemAmountFromSlot(inv, pos, count)
	if err != nil {
		return err
	}
	t.items[slot][tradeSlot] = taken
	t.room.Broadcast(proto.TradePutItemPushData(slot, tradeSlot, taken))
	return nil
}

func (t *TradingRoom) PutMoney(slot int, c base.Character, money int64) *msError.Error {
	if err := t.checkStaging(slot); err != nil {
		return err
	}
	if money <= 0 {
		return biz.RequestDataError
	}
	if t.money[slot]+money > entity.MaxMoney {
		return biz.MoneyLimit
	}
	if !c.IncMoney(-money) {
		return biz.NotEnoughMoney
	}
	t.money[slot] += money
	t.room.Broadcast(proto.TradePutMoneyPushData(slot, t.money[slot]))
	return nil
}

// Lock 双方都锁定后才交换
func (t *TradingRoom) Lock(slot int) *msError.Error {
	if t.room.CurUsers() != 2 {
		return biz.CantTradeNow
	}
	if t.locked[slot] {
		return biz.AlreadyLocked
	}
	t.locked[slot] = true
	t.room.Broadcast(proto.TradeLockPushData(slot))
	if t.locked[0] && t.locked[1] {
		return t.commit()
	}
	return nil
}

// commit 两边的交换都检查通过才提交
func (t *TradingRoom) commit() *msError.Error {
	a, b := t.room.GetUser(0), t.room.GetUser(1)
	exA := exchange.New(a)
	exB := exchange.New(b)
	t.stage(exA, 1)
	t.stage(exB, 0)
	if err := exchange.Both(exA, exB); err != nil {
		logs.Error("[Trade] serial=%d exchange failed:%v, staged items returned", t.room.GetSerial(), err)
		t.room.DoCloseRequest(-1, proto.LeaveTradeFail, proto.LeaveTradeFail)
		return biz.TransferFailed
	}
	t.done = true
	t.items = [2][slotCount]*entity.Item{}
	t.money = [2]int64{}
	if s := t.room.Store(); s != nil {
		for _, c := range []base.Character{a, b} {
			if err := s.SaveCharacter(c.GetEntity()); err != nil {
				logs.Error("[Trade] save uid=%s err:%v", c.GetUid(), err)
			}
		}
	}
	t.room.DoCloseRequest(-1, proto.LeaveTradeDone, proto.LeaveTradeDone)
	return nil
}

// stage 把from一侧的暂存放进交换
func (t *TradingRoom) stage(ex *exchange.Exchange, from int) {
	for _, item := range t.items[from] {
		if item != nil {
			ex.GiveItem(item)
		}
	}
	if t.money[from] > 0 {
		ex.GiveMoney(t.money[from])
	}
}

// OnLeave 任何一方离开 交易都失败
func (t *TradingRoom) OnLeave(slot int, c base.Character, reason proto.LeaveReason) (bool, proto.LeaveReason) {
	if t.done {
		return true, proto.LeaveTradeDone
	}
	return true, proto.LeaveTradeFail
}

// OnClose 没有完成的交易把暂存退回原主
func (t *TradingRoom) OnClose() {
	if t.done {
		return
	}
	for i, owner := range t.owners {
		if owner == nil {
			continue
		}
		for j, item := range t.items[i] {
			if item == nil {
				continue
			}
			if !owner.AddNewItem(item) {
				logs.Error("[Trade] serial=%d return item uid=%s itemId=%d failed", t.room.GetSerial(), owner.GetUid(), item.ItemId)
			}
			t.items[i][j] = nil
		}
		if t.money[i] > 0 && !owner.IncMoney(t.money[i]) {
			logs.Error("[Trade] serial=%d return money uid=%s money=%d failed", t.room.GetSerial(), owner.GetUid(), t.money[i])
		}
		t.money[i] = 0
	}
}
