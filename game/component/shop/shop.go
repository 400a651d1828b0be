package shop

import (
	"time"

	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/exchange"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

const maxUsers = 4

// permits 开店许可道具决定可以上架的格数
var permits = map[int32]int{
	5140000: 16,
	5140001: 24,
}

// Listing 上架的一组物品 Count为剩余组数 Price为每组价格
type Listing struct {
	InvType entity.InventoryType `json:"invType"`
	Pos     int                  `json:"pos"`
	Count   int                  `json:"count"`
	SetSize int                  `json:"setSize"`
	Price   int64                `json:"price"`
	Item    *entity.Item         `json:"item"`
}

type SoldItem struct {
	Index    int    `json:"index"`
	Quantity int    `json:"quantity"`
	Buyer    string `json:"buyer"`
	Money    int64  `json:"money"`
}

type PersonalShop struct {
	room     base.RoomFrame
	owner    base.Character
	listings []*Listing
	sold     []SoldItem
	pending  []SoldItem
	capacity int
	maxOpen  time.Duration
	openedAt time.Time
	opened   bool
	husk     bool
	banned   map[string]bool
}

func NewPersonalShop(r base.RoomFrame, owner base.Character, data *request.MiniRoomData) (base.Frame, *msError.Error) {
	capacity, ok := permits[data.ItemId]
	if !ok || !owner.HasItem(data.ItemId) {
		return nil, biz.NoShopPermit
	}
	return &PersonalShop{
		room:     r,
		owner:    owner,
		capacity: capacity,
		maxOpen:  r.Conf().ShopMaxOpen,
		openedAt: r.Now(),
		banned:   make(map[string]bool),
	}, nil
}

func (s *PersonalShop) MaxUsers() int {
	return maxUsers
}

func (s *PersonalShop) IsAdmitted(c base.Character, data *request.MiniRoomData) *msError.Error {
	if s.banned[c.GetUid()] {
		return biz.Banned
	}
	if !s.opened {
		return biz.OtherRequests
	}
	return nil
}

func (s *PersonalShop) OnEnter(slot int, c base.Character) {
	if slot == 0 {
		s.owner = c
	}
}

func (s *PersonalShop) EnterData(slot int) any {
	data := map[string]any{
		"listings": s.listings,
		"opened":   s.opened,
		"capacity": s.capacity,
	}
	if slot == 0 {
		data["sold"] = s.sold
	}
	return data
}

func (s *PersonalShop) Decorate(b *proto.Balloon) {
	b.Open = s.opened
	b.GameOn = b.CurUsers >= b.MaxUsers
}

func (s *PersonalShop) OnPacket(op proto.MiniRoomProtocol, c base.Character, slot int, data *request.MiniRoomData) *msError.Error {
	switch op {
	case proto.PSP_PutItem:
		return s.PutItem(slot, c, entity.InventoryType(data.InvType), data.Pos, data.Count, data.SetSize, data.Price)
	case proto.PSP_MoveItemToInventory:
		return s.MoveItemToInventory(slot, data.Index)
	case proto.PSP_BuyItem:
		return s.BuyItem(slot, c, data.Index, data.Count)
	case proto.PSP_SetOpened:
		return s.SetOpened(slot, data.Open)
	case proto.PSP_Ban:
		return s.Ban(slot, data.Slot)
	case proto.PSP_Logout:
		return s.Logout(slot)
	}
	return biz.RequestDataError
}

func (s *PersonalShop) refresh() {
	s.room.Broadcast(proto.ShopRefreshPushData(s.listings))
}

func (s *PersonalShop) checkManage(slot int) *msError.Error {
	if slot != 0 {
		return biz.NotOwner
	}
	if s.opened {
		return biz.ShopOpened
	}
	return nil
}

// PutItem 房主在开店前上架 物品立即从背包移出
func (s *PersonalShop) PutItem(slot int, c base.Character, inv entity.InventoryType, pos int, count int, setSize int, price int64) *msError.Error {
	if err := s.checkManage(slot); err != nil {
		return err
	}
	if len(s.listings) >= s.capacity {
		return biz.ShopFull
	}
	if count <= 0 || setSize <= 0 || price <= 0 || price > entity.MaxMoney {
		return biz.RequestDataError
	}
	item := c.GetItem(inv, pos)
	if item == nil {
		return biz.ItemNotFound
	}
	if item.Untradable {
		return biz.ItemUntradable
	}
	//用除法比较 避免count*setSize溢出
	if count > item.Quantity/setSize || (setSize > 1 && entity.MaxStack(item.ItemId) == 1) {
		return biz.RequestDataError
	}
	taken, err := c.TakeItemAmountFromSlot(inv, pos, count*setSize)
	if err != nil {
		return err
	}
	s.listings = append(s.listings, &Listing{
		InvType: inv,
		Pos:     pos,
		Count:   count,
		SetSize: setSize,
		Price:   price,
		Item:    taken,
	})
	s.refresh()
	return nil
}

// MoveItemToInventory 下架 剩余的物品回到房主背包
func (s *PersonalShop) MoveItemToInventory(slot int, index int) *msError.Error {
	if err := s.checkManage(slot); err != nil {
		return err
	}
	if index < 0 || index >= len(s.listings) {
		return biz.RequestDataError
	}
	l := s.listings[index]
	if l.Count > 0 {
		if !s.owner.AddNewItem(l.Item) {
			return biz.InventoryFull
		}
	}
	s.listings = append(s.listings[:index], s.listings[index+1:]...)
	s.refresh()
	return nil
}

// BuyItem 买家购买count组 超过剩余数量直接拒绝
func (s *PersonalShop) BuyItem(slot int, c base.Character, index int, count int) *msError.Error {
	if slot == 0 {
		return biz.RequestDataError
	}
	if !s.opened {
		c.SendPacket(proto.ShopBuyResultPushData(proto.ShopClosed))
		return biz.ShopNotOpened
	}
	if index < 0 || index >= len(s.listings) || count <= 0 {
		c.SendPacket(proto.ShopBuyResultPushData(proto.ShopInvalidRequest))
		return biz.RequestDataError
	}
	l := s.listings[index]
	if count > l.Count {
		c.SendPacket(proto.ShopBuyResultPushData(proto.ShopNoMoreItem))
		return biz.NoMoreItem
	}
	price := l.Price * int64(count)
	if price/int64(count) != l.Price || price > entity.MaxMoney {
		c.SendPacket(proto.ShopBuyResultPushData(proto.ShopOverMoneyLimit))
		return biz.MoneyLimit
	}
	bought := l.Item.Clone()
	bought.Quantity = count * l.SetSize
	buyer := exchange.New(c)
	buyer.GiveMoney(-price)
	buyer.GiveItem(bought)
	seller := exchange.New(s.owner)
	seller.GiveMoney(price)
	if err := exchange.Both(buyer, seller); err != nil {
		logs.Debug("[Shop] serial=%d buyer=%s buy failed:%v", s.room.GetSerial(), c.GetUid(), err)
		c.SendPacket(proto.ShopBuyResultPushData(shopResult(err)))
		return err
	}
	l.Count -= count
	l.Item.Quantity -= bought.Quantity
	sold := SoldItem{Index: index, Quantity: count, Buyer: c.GetName(), Money: price}
	s.sold = append(s.sold, sold)
	if s.husk || !s.owner.IsOnline() {
		s.pending = append(s.pending, sold)
	} else {
		s.owner.SendPacket(proto.ShopAddSoldItemPushData(sold.Index, sold.Quantity, sold.Buyer, sold.Money))
	}
	s.persist(c, bought, price)
	c.SendPacket(proto.ShopBuyResultPushData(proto.ShopSuccess))
	s.refresh()
	if s.soldOut() {
		s.room.DoCloseRequest(-1, proto.LeaveNoMoreItem, proto.LeaveNoMoreItem)
	}
	return nil
}

func (s *PersonalShop) persist(buyer base.Character, bought *entity.Item, price int64) {
	if store := s.room.Store(); store != nil {
		for _, c := range []base.Character{buyer, s.owner} {
			if err := store.SaveCharacter(c.GetEntity()); err != nil {
				logs.Error("[Shop] save uid=%s err:%v", c.GetUid(), err)
			}
		}
	}
	if records := s.room.Records(); records != nil {
		records.SaveShopSellRecord(&entity.ShopSellRecord{
			Serial:    s.room.GetSerial(),
			SellerUid: s.owner.GetUid(),
			BuyerUid:  buyer.GetUid(),
			BuyerName: buyer.GetName(),
			ItemId:    bought.ItemId,
			Quantity:  bought.Quantity,
			Money:     price,
		})
	}
}

func shopResult(err *msError.Error) proto.ShopResult {
	switch err {
	case biz.NotEnoughMoney:
		return proto.ShopNoMoney
	case biz.InventoryFull:
		return proto.ShopInventoryFull
	case biz.MoneyLimit:
		return proto.ShopOverMoneyLimit
	}
	return proto.ShopInvalidRequest
}

func (s *PersonalShop) soldOut() bool {
	for _, l := range s.listings {
		if l.Count > 0 {
			return false
		}
	}
	return true
}

// SetOpened 开店对外营业 关店进入整理模式并请出所有客人
func (s *PersonalShop) SetOpened(slot int, open bool) *msError.Error {
	if slot != 0 {
		return biz.NotOwner
	}
	if open {
		if len(s.listings) == 0 || s.soldOut() {
			return biz.NoListing
		}
		s.opened = true
		s.room.SetManaged(false)
	} else {
		s.opened = false
		for i := 1; i < maxUsers; i++ {
			s.room.RequestLeave(i, proto.LeaveStartManage)
		}
		s.room.SetManaged(true)
	}
	s.room.SetOpen(s.opened)
	s.room.Broadcast(proto.ShopSetOpenedPushData(s.opened))
	s.room.UpdateBalloon()
	return nil
}

// Ban 踢出客人并禁止再次进入
func (s *PersonalShop) Ban(slot int, target int) *msError.Error {
	if slot != 0 {
		return biz.NotOwner
	}
	c := s.room.GetUser(target)
	if target == 0 || c == nil {
		return biz.RequestDataError
	}
	s.banned[c.GetUid()] = true
	s.room.RequestLeave(target, proto.LeaveKicked)
	return nil
}

// Logout 房主离线 商店托管继续营业
func (s *PersonalShop) Logout(slot int) *msError.Error {
	if slot != 0 {
		return biz.NotOwner
	}
	if !s.opened {
		return biz.ShopNotOpened
	}
	s.husk = true
	return nil
}

func (s *PersonalShop) KeepHusk(slot int) bool {
	if slot != 0 || !s.opened {
		return false
	}
	s.husk = true
	return true
}

// Reattach 房主重新上线 补发托管期间的出售记录
func (s *PersonalShop) Reattach(c base.Character) {
	s.owner = c
	s.husk = false
	for _, sold := range s.pending {
		c.SendPacket(proto.ShopAddSoldItemPushData(sold.Index, sold.Quantity, sold.Buyer, sold.Money))
	}
	s.pending = nil
	c.SendPacket(proto.ShopSetOpenedPushData(s.opened))
}

// OnTick 超过最长营业时间 房主离开 房间随之关闭
func (s *PersonalShop) OnTick(now time.Time) {
	if now.Sub(s.openedAt) >= s.maxOpen {
		s.room.RequestLeave(0, proto.LeaveOpenTimeOver)
	}
}

func (s *PersonalShop) OnLeave(slot int, c base.Character, reason proto.LeaveReason) (bool, proto.LeaveReason) {
	if slot == 0 {
		return true, proto.LeaveClosed
	}
	return false, proto.LeaveNone
}

// OnClose 剩余的物品退回房主
func (s *PersonalShop) OnClose() {
	returned := false
	for _, l := range s.listings {
		if l.Count <= 0 {
			continue
		}
		if !s.owner.AddNewItem(l.Item) {
			logs.Error("[Shop] serial=%d return itemId=%d qty=%d to uid=%s failed", s.room.GetSerial(), l.Item.ItemId, l.Item.Quantity, s.owner.GetUid())
			continue
		}
		returned = true
	}
	s.listings = nil
	if returned {
		if store := s.room.Store(); store != nil {
			if err := store.SaveCharacter(s.owner.GetEntity()); err != nil {
				logs.Error("[Shop] save uid=%s err:%v", s.owner.GetUid(), err)
			}
		}
	}
}

func (s *PersonalShop) Listings() []*Listing {
	return s.listings
}

func (s *PersonalShop) Sold() []SoldItem {
	return s.sold
}
