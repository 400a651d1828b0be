package room_test

import (
	"testing"
	"time"

	"miniroom/common/biz"
	"miniroom/core/models/entity"
	"miniroom/game/component/character"
	"miniroom/game/component/proto"
	"miniroom/game/component/room"
	"miniroom/game/component/room/roomtest"
	"miniroom/game/models/request"
)

const (
	boardItem = 4080000
	permit    = 5140000
)

func omokRoom(t *testing.T, f *roomtest.Fixture, password string) (*room.Room, *character.Player) {
	t.Helper()
	owner := f.Player("1", 0)
	owner.AddNewItem(&entity.Item{ItemId: boardItem, Quantity: 1})
	r, err := f.Create(owner, &request.MiniRoomData{Kind: proto.Omok, Title: "omok", Password: password, ItemId: boardItem})
	if err != nil {
		t.Fatal(err)
	}
	return r, owner
}

// openedShop 四个座位的商店 用来测试预留座位
func openedShop(t *testing.T, f *roomtest.Fixture) (*room.Room, *character.Player) {
	t.Helper()
	owner := f.Player("s", 0)
	owner.AddNewItem(&entity.Item{ItemId: permit, Quantity: 1})
	owner.AddNewItem(&entity.Item{ItemId: 4000000, Quantity: 10})
	r, err := f.Create(owner, &request.MiniRoomData{Kind: proto.PersonalShop, ItemId: permit})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.OnPacketBase(proto.PSP_PutItem, owner, &request.MiniRoomData{InvType: int(entity.Etc), Pos: 1, Count: 10, SetSize: 1, Price: 5}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnPacketBase(proto.PSP_SetOpened, owner, &request.MiniRoomData{Open: true}); err != nil {
		t.Fatal(err)
	}
	return r, owner
}

func TestUnknownKind(t *testing.T) {
	f := roomtest.New()
	if _, err := f.Create(f.Player("1", 0), &request.MiniRoomData{Kind: proto.MiniRoomNone}); err != biz.RequestDataError {
		t.Fatalf("err = %v", err)
	}
}

func TestOwnerSitsAtSlotZero(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "")
	guest := f.Player("2", 0)
	if err := r.Enter(guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if owner.GetMiniRoomSlot() != 0 || r.GetUser(0) != owner {
		t.Fatal("owner must sit at slot 0")
	}
	if guest.GetMiniRoomSlot() != 1 || guest.GetMiniRoomSerial() != r.GetSerial() {
		t.Fatalf("guest slot = %d", guest.GetMiniRoomSlot())
	}
	if f.LastOf("1", proto.MRP_Avatar) == nil {
		t.Fatal("owner should see the new avatar")
	}
	if err := r.Enter(f.Player("3", 0), &request.MiniRoomData{}); err != biz.FullCapacity {
		t.Fatalf("err = %v", err)
	}
}

func TestEnterChecks(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "pw")
	if err := r.Enter(owner, &request.MiniRoomData{Password: "pw"}); err != biz.AlreadyMember {
		t.Fatalf("owner enter again: %v", err)
	}
	far := f.Player("far", 0)
	far.GetEntity().FieldId = 1
	if err := r.Enter(far, &request.MiniRoomData{Password: "pw"}); err != biz.NotInSameField {
		t.Fatalf("other field: %v", err)
	}
	busy := f.Player("busy", 0)
	busy.SetBusy(true)
	if err := r.Enter(busy, &request.MiniRoomData{Password: "pw"}); err != biz.OtherRequests {
		t.Fatalf("busy: %v", err)
	}
	dead := f.Player("dead", 0)
	dead.GetEntity().Hp = 0
	if err := r.Enter(dead, &request.MiniRoomData{Password: "pw"}); err != biz.CantWhileDead {
		t.Fatalf("dead: %v", err)
	}
	guest := f.Player("2", 0)
	if err := r.Enter(guest, &request.MiniRoomData{Password: "nope"}); err != biz.IncorrectPassword {
		t.Fatalf("wrong password: %v", err)
	}
	if err := r.Enter(guest, &request.MiniRoomData{Tournament: true}); err != biz.CantInMiddleOfEvent {
		t.Fatalf("tournament: %v", err)
	}
	if err := r.Enter(guest, &request.MiniRoomData{Password: "pw"}); err != nil {
		t.Fatal(err)
	}
}

func TestInvitedSkipsPassword(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "pw")
	guest := f.Player("2", 0)
	if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: "2"}); err != nil {
		t.Fatal(err)
	}
	invite := f.LastOf("2", proto.MRP_Invite)
	if invite == nil || invite["serial"] != r.GetSerial() {
		t.Fatalf("invite push = %v", invite)
	}
	if err := r.Enter(guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
}

func TestInviteErrors(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "")
	if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: "ghost"}); err != biz.InviteNoCharacter {
		t.Fatalf("unknown: %v", err)
	}
	if res := f.LastOf("1", proto.MRP_InviteResult); res == nil || res["result"] != proto.InviteNoCharacter {
		t.Fatalf("invite result = %v", res)
	}
	if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: "1"}); err != biz.InviteSelf {
		t.Fatalf("self: %v", err)
	}
	gm := f.Player("gm", 0)
	gm.GetEntity().Gm = true
	if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: "gm"}); err != biz.ThisCharacterNotAllowed {
		t.Fatalf("gm: %v", err)
	}
	busy := f.Player("busy", 0)
	busy.SetBusy(true)
	if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: "busy"}); err != biz.InviteBusy {
		t.Fatalf("busy: %v", err)
	}
}

func TestInviteDecline(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "")
	guest := f.Player("2", 0)
	if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: "2"}); err != nil {
		t.Fatal(err)
	}
	if !r.HasReservation("2") {
		t.Fatal("invite reserves a slot")
	}
	r.InviteResult(guest, proto.InviteRejected)
	if r.HasReservation("2") {
		t.Fatal("decline releases the slot")
	}
	res := f.LastOf("1", proto.MRP_InviteResult)
	if res == nil || res["result"] != proto.InviteRejected || res["target"] != "name2" {
		t.Fatalf("owner notice = %v", res)
	}
	if err := r.Enter(f.Player("3", 0), &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
}

func TestReservedSlots(t *testing.T) {
	f := roomtest.New()
	r, owner := openedShop(t, f)
	for _, uid := range []string{"b", "c"} {
		f.Player(uid, 0)
		if err := r.OnPacketBase(proto.MRP_Invite, owner, &request.MiniRoomData{TargetUid: uid}); err != nil {
			t.Fatal(err)
		}
	}
	d := f.Player("d", 0)
	if err := r.Enter(d, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if d.GetMiniRoomSlot() != 3 {
		t.Fatalf("stranger took slot %d", d.GetMiniRoomSlot())
	}
	e := f.Player("e", 0)
	if err := r.Enter(e, &request.MiniRoomData{}); err != biz.FullCapacity {
		t.Fatalf("reserved slots are not free: %v", err)
	}
	c := f.World.FindCharacter("c")
	if err := r.Enter(c, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if c.GetMiniRoomSlot() != 2 {
		t.Fatalf("invited player takes the reserved slot, got %d", c.GetMiniRoomSlot())
	}
	f.Advance(31 * time.Second)
	if r.HasReservation("b") {
		t.Fatal("reservation expired")
	}
	if err := r.Enter(e, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if e.GetMiniRoomSlot() != 1 {
		t.Fatalf("expired slot reused, got %d", e.GetMiniRoomSlot())
	}
}

func TestChat(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "")
	guest := f.Player("2", 0)
	if err := r.Enter(guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnPacketBase(proto.MRP_Chat, owner, &request.MiniRoomData{Text: "hi"}); err != nil {
		t.Fatal(err)
	}
	chat := f.LastOf("2", proto.MRP_Chat)
	if chat == nil || chat["text"] != "name1 : hi" || chat["slot"] != 0 {
		t.Fatalf("chat = %v", chat)
	}
	if err := r.OnPacketBase(proto.MRP_Chat, owner, &request.MiniRoomData{}); err != biz.RequestDataError {
		t.Fatalf("empty chat: %v", err)
	}
	guest.GetEntity().MuteUntil = f.Now.Add(time.Hour).UnixMilli()
	if err := r.OnPacketBase(proto.MRP_Chat, guest, &request.MiniRoomData{Text: "spam"}); err != biz.ChatMuted {
		t.Fatalf("muted: %v", err)
	}
	if log := r.Info().ChatLog; len(log) != 1 || log[0] != "name1 : hi" {
		t.Fatalf("chat log = %v", log)
	}
	if err := r.OnPacketBase(proto.MRP_Chat, f.Player("3", 0), &request.MiniRoomData{Text: "x"}); err != biz.NotInRoom {
		t.Fatalf("outsider: %v", err)
	}
}

func TestBalloon(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "pw")
	b := f.Field.Balloons[r.GetSerial()]
	if b == nil || b.CurUsers != 1 || b.MaxUsers != 2 || !b.Private || b.OwnerUid != "1" {
		t.Fatalf("balloon = %+v", b)
	}
	if err := r.Enter(f.Player("2", 0), &request.MiniRoomData{Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	if b := f.Field.Balloons[r.GetSerial()]; b.CurUsers != 2 {
		t.Fatalf("balloon users = %d", b.CurUsers)
	}
	if err := r.OnPacketBase(proto.MRP_Balloon, owner, &request.MiniRoomData{Open: false}); err != nil {
		t.Fatal(err)
	}
	if b := f.Field.Balloons[r.GetSerial()]; b.Open {
		t.Fatal("balloon should be closed")
	}

	trader := f.Player("t", 0)
	tr, err := f.Create(trader, &request.MiniRoomData{Kind: proto.TradingRoom})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Field.Balloons[tr.GetSerial()]; ok {
		t.Fatal("trading rooms have no balloon")
	}
}

func TestLeave(t *testing.T) {
	f := roomtest.New()
	r, owner := omokRoom(t, f, "")
	guest := f.Player("2", 0)
	if err := r.Enter(guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnPacketBase(proto.MRP_Leave, guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if guest.GetMiniRoomSerial() != 0 || r.IsClosed() {
		t.Fatal("guest leaves, room stays")
	}
	if leave := f.LastOf("1", proto.MRP_Leave); leave == nil || leave["slot"] != 1 {
		t.Fatalf("owner notice = %v", leave)
	}
	if err := r.OnPacketBase(proto.MRP_Leave, owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if !r.IsClosed() || !f.IsRemoved(r.GetSerial()) {
		t.Fatal("empty room closes")
	}
	if _, ok := f.Field.Balloons[r.GetSerial()]; ok {
		t.Fatal("balloon must be removed")
	}
	if err := r.Enter(guest, &request.MiniRoomData{}); err != biz.RoomAlreadyClosed {
		t.Fatalf("err = %v", err)
	}
}

func TestDestroy(t *testing.T) {
	f := roomtest.New()
	r, _ := omokRoom(t, f, "")
	if err := r.Enter(f.Player("2", 0), &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	r.Destroy(proto.LeaveDestroyByAdmin)
	for _, uid := range []string{"1", "2"} {
		leave := f.LastOf(uid, proto.MRP_Leave)
		if leave == nil || leave["reason"] != proto.LeaveDestroyByAdmin {
			t.Fatalf("uid %s leave = %v", uid, leave)
		}
	}
	if !r.IsClosed() || !f.IsRemoved(r.GetSerial()) {
		t.Fatal("destroyed room must be removed")
	}
	if len(f.Field.Left) != 2 {
		t.Fatalf("field notified %v", f.Field.Left)
	}
}
