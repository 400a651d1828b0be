package handler

import (
	"context"
	"testing"

	"miniroom/common"
	"miniroom/common/biz"
	"miniroom/common/config"
	"miniroom/common/utils"
	"miniroom/core/models/entity"
	"miniroom/framework/game"
	"miniroom/framework/msError"
	"miniroom/framework/remote"
	"miniroom/framework/remote/remotetest"
	"miniroom/framework/stream"
	"miniroom/game/component/character"
	"miniroom/game/component/proto"
	"miniroom/game/logic"
)

type loader struct{}

func (loader) FindOrCreate(ctx context.Context, uid string, name string) (*entity.Character, *msError.Error) {
	return entity.NewCharacter(uid, name), nil
}

func newHandler(limiter *utils.RateLimiter) (*MiniRoomHandler, *character.MemorySender) {
	sender := character.NewMemorySender()
	chars := logic.NewCharacterManager(loader{}, sender)
	field := logic.NewFieldBoard(game.NewConfig(nil), chars)
	rooms := logic.NewRoomManager(config.DefaultRoomConf(), logic.Collaborators{Field: field, World: chars})
	return NewMiniRoomHandler(rooms, chars, field, limiter), sender
}

func session(uid string) *remote.Session {
	return remote.NewSession(remotetest.New(), &stream.Msg{Uid: uid, Src: "connector-1", Dst: "game-1"})
}

func code(t *testing.T, res any) int {
	t.Helper()
	r, ok := res.(common.Result)
	if !ok {
		t.Fatalf("unexpected result %v", res)
	}
	return r.Code
}

func TestCreateTradingRoom(t *testing.T) {
	h, _ := newHandler(utils.NewRateLimiter(100, 100))
	s := session("1")
	if c := code(t, h.UserOnline(s, []byte(`{"name":"one","fieldId":1,"x":10,"y":10}`))); c != biz.OK {
		t.Fatalf("online code = %d", c)
	}
	res := h.MiniRoomNotify(s, []byte(`{"type":0,"data":{"kind":3}}`))
	if c := code(t, res); c != biz.OK {
		t.Fatalf("create code = %d", c)
	}
	serial, ok := s.Get(miniRoomKey)
	if !ok || serial != h.chars.Get("1").GetMiniRoomSerial() {
		t.Fatalf("session serial = %v", serial)
	}
	off := h.UserOffline(s, nil)
	if c := code(t, off); c != biz.OK {
		t.Fatalf("offline code = %d", c)
	}
	if h.chars.Get("1") != nil || h.rooms.Count() != 0 {
		t.Fatal("offline player leaves the room and is dropped")
	}
}

func TestInvalidRequests(t *testing.T) {
	h, sender := newHandler(utils.NewRateLimiter(100, 100))
	if c := code(t, h.MiniRoomNotify(session(""), nil)); c != biz.InvalidUsers.Code {
		t.Fatalf("no uid: %d", c)
	}
	if c := code(t, h.MiniRoomNotify(session("ghost"), []byte(`{}`))); c != biz.InvalidUsers.Code {
		t.Fatalf("not online: %d", c)
	}
	s := session("1")
	h.UserOnline(s, []byte(`{"name":"one"}`))
	if c := code(t, h.MiniRoomNotify(s, []byte(`{bad`))); c != biz.RequestDataError.Code {
		t.Fatalf("bad json: %d", c)
	}
	if c := code(t, h.MiniRoomNotify(s, []byte(`{"type":0,"data":{"kind":1,"itemId":4080000}}`))); c != biz.NoGameSetItem.Code {
		t.Fatalf("create omok: %d", c)
	}
	last := sender.Last("1")
	if proto.Type(last) != proto.MRP_EnterResult || proto.Data(last)["code"] != biz.NoGameSetItem.Code {
		t.Fatalf("enter fail push = %v", last)
	}
	if c := code(t, h.MiniRoomNotify(s, []byte(`{"type":6,"data":{"text":"hi"}}`))); c != biz.NotInRoom.Code {
		t.Fatalf("chat outside a room: %d", c)
	}
}

func TestRateLimit(t *testing.T) {
	h, _ := newHandler(utils.NewRateLimiter(1, 1))
	s := session("1")
	h.UserOnline(s, []byte(`{"name":"one"}`))
	h.MiniRoomNotify(s, []byte(`{"type":6,"data":{"text":"hi"}}`))
	if c := code(t, h.MiniRoomNotify(s, []byte(`{"type":6,"data":{"text":"hi"}}`))); c != biz.RequestDataError.Code {
		t.Fatalf("second request in the same instant: %d", c)
	}
}

func TestUserMoveSendsBalloons(t *testing.T) {
	h, sender := newHandler(utils.NewRateLimiter(100, 100))
	owner := session("1")
	h.UserOnline(owner, []byte(`{"name":"one","fieldId":7}`))
	h.chars.Get("1").AddNewItem(&entity.Item{ItemId: 4080000, Quantity: 1})
	if c := code(t, h.MiniRoomNotify(owner, []byte(`{"type":0,"data":{"kind":1,"itemId":4080000}}`))); c != biz.OK {
		t.Fatalf("create omok: %d", c)
	}
	s := session("2")
	h.UserOnline(s, []byte(`{"name":"two","fieldId":8}`))
	sender.Reset()
	h.UserMove(s, []byte(`{"fieldId":7,"x":1,"y":1}`))
	if proto.Type(sender.Last("2")) != proto.MRP_Balloon {
		t.Fatalf("balloon push = %v", sender.Last("2"))
	}
}
