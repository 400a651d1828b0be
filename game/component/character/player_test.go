package character

import (
	"testing"

	"miniroom/common/biz"
	"miniroom/core/models/entity"
	"miniroom/game/component/proto"
)

func newTestPlayer(uid string) (*Player, *MemorySender) {
	sender := NewMemorySender()
	return NewPlayer(entity.NewCharacter(uid, "name"+uid), "connector-1", sender), sender
}

func TestTakeItemAmountFromSlot(t *testing.T) {
	p, _ := newTestPlayer("1")
	p.GetEntity().Inventories[entity.Etc-1][0] = &entity.Item{ItemId: 4000000, Quantity: 10}
	part, err := p.TakeItemAmountFromSlot(entity.Etc, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if part.Quantity != 4 || p.GetItem(entity.Etc, 1).Quantity != 6 {
		t.Fatalf("part=%d left=%d", part.Quantity, p.GetItem(entity.Etc, 1).Quantity)
	}
	if _, err := p.TakeItemAmountFromSlot(entity.Etc, 1, 7); err != biz.ItemNotFound {
		t.Fatalf("err = %v", err)
	}
	all, err := p.TakeItemAmountFromSlot(entity.Etc, 1, 6)
	if err != nil || all.Quantity != 6 || p.GetItem(entity.Etc, 1) != nil {
		t.Fatalf("take all failed: %v", err)
	}
	if _, err := p.TakeItemAmountFromSlot(entity.Etc, 0, 1); err != biz.RequestDataError {
		t.Fatalf("err = %v", err)
	}
}

func TestAddNewItemStacks(t *testing.T) {
	p, _ := newTestPlayer("1")
	p.GetEntity().Inventories[entity.Etc-1][0] = &entity.Item{ItemId: 4000000, Quantity: 150}
	if !p.AddNewItem(&entity.Item{ItemId: 4000000, Quantity: 100}) {
		t.Fatal("add failed")
	}
	if p.GetItem(entity.Etc, 1).Quantity != 200 || p.GetItem(entity.Etc, 2).Quantity != 50 {
		t.Fatalf("stacking wrong: %d %d", p.GetItem(entity.Etc, 1).Quantity, p.GetItem(entity.Etc, 2).Quantity)
	}
	if p.CountItem(4000000) != 250 {
		t.Fatalf("count = %d", p.CountItem(4000000))
	}
}

func TestCanAddItemsFull(t *testing.T) {
	p, _ := newTestPlayer("1")
	for i := range p.GetEntity().Inventories[entity.Equip-1] {
		p.GetEntity().Inventories[entity.Equip-1][i] = &entity.Item{ItemId: 1302000, Quantity: 1}
	}
	sword := &entity.Item{ItemId: 1302001, Quantity: 1}
	if p.CanAddItems([]*entity.Item{sword}) {
		t.Fatal("equip inventory is full")
	}
	if p.AddNewItem(sword) {
		t.Fatal("add should fail")
	}
	if !p.CanAddItems([]*entity.Item{{ItemId: 2000000, Quantity: 5}}) {
		t.Fatal("consume inventory is empty")
	}
}

func TestRemoveItemById(t *testing.T) {
	p, _ := newTestPlayer("1")
	p.AddNewItem(&entity.Item{ItemId: 2000000, Quantity: 30})
	if p.RemoveItemById(2000000, 31) {
		t.Fatal("not enough items")
	}
	if !p.RemoveItemById(2000000, 30) || p.HasItem(2000000) {
		t.Fatal("remove all failed")
	}
}

func TestMoneyLimits(t *testing.T) {
	p, _ := newTestPlayer("1")
	if !p.IncMoney(100) || p.GetMoney() != 100 {
		t.Fatal("inc failed")
	}
	if p.IncMoney(-101) || p.GetMoney() != 100 {
		t.Fatal("money must not go negative")
	}
	if p.CanAddMoney(entity.MaxMoney) {
		t.Fatal("over max money")
	}
}

func TestSendPacketOffline(t *testing.T) {
	p, sender := newTestPlayer("1")
	p.SendPacket("a")
	p.SetOnline(false)
	p.SendPacket("b")
	if got := sender.Pushes("1"); len(got) != 1 || got[0] != "a" {
		t.Fatalf("pushes = %v", got)
	}
}

func TestMiniRoomBinding(t *testing.T) {
	p, _ := newTestPlayer("1")
	if !p.CanAttachAdditionalProcess() {
		t.Fatal("idle player")
	}
	p.SetMiniRoom(7, 1)
	if p.CanAttachAdditionalProcess() || p.GetMiniRoomSlot() != 1 {
		t.Fatal("player is in a room")
	}
	p.SetMiniRoom(0, 3)
	if p.GetMiniRoomSlot() != proto.NoSlot || !p.CanAttachAdditionalProcess() {
		t.Fatal("leave did not reset slot")
	}
}

func TestMiniRoomClaim(t *testing.T) {
	p, _ := newTestPlayer("1")
	if !p.ClaimMiniRoom() {
		t.Fatal("idle player can be claimed")
	}
	if p.ClaimMiniRoom() || p.CanAttachAdditionalProcess() {
		t.Fatal("claimed player is taken")
	}
	p.ReleaseMiniRoom()
	if !p.CanAttachAdditionalProcess() || !p.ClaimMiniRoom() {
		t.Fatal("released player is free")
	}
	p.SetMiniRoom(7, 0)
	if p.ClaimMiniRoom() {
		t.Fatal("seated player can't be claimed")
	}
	p.SetMiniRoom(0, 0)
	if !p.ClaimMiniRoom() {
		t.Fatal("seating clears the claim")
	}
	p.ReleaseMiniRoom()
	p.SetBusy(true)
	if p.ClaimMiniRoom() {
		t.Fatal("busy player can't be claimed")
	}
}
