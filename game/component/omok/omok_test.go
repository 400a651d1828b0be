package omok_test

import (
	"math"
	"testing"
	"time"

	"miniroom/common/biz"
	"miniroom/core/models/entity"
	"miniroom/game/component/character"
	"miniroom/game/component/minigame"
	"miniroom/game/component/omok"
	"miniroom/game/component/proto"
	"miniroom/game/component/room"
	"miniroom/game/component/room/roomtest"
	"miniroom/game/models/request"
)

const boardItem = 4080000

type table struct {
	f     *roomtest.Fixture
	r     *room.Room
	game  *omok.Omok
	owner *character.Player
	guest *character.Player
}

func startGame(t *testing.T) *table {
	t.Helper()
	f := roomtest.New()
	owner := f.Player("1", 0)
	guest := f.Player("2", 0)
	owner.AddNewItem(&entity.Item{ItemId: boardItem, Quantity: 1})
	r, err := f.Create(owner, &request.MiniRoomData{Kind: proto.Omok, Title: "omok", ItemId: boardItem})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Enter(guest, &request.MiniRoomData{Serial: r.GetSerial()}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnPacketBase(proto.MGRP_Ready, guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := r.OnPacketBase(proto.MGRP_Start, owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	return &table{f: f, r: r, game: r.Frame().(*omok.Omok), owner: owner, guest: guest}
}

func (tb *table) put(t *testing.T, c *character.Player, x, y, color int) {
	t.Helper()
	if err := tb.r.OnPacketBase(proto.ORP_PutStoneChecker, c, &request.MiniRoomData{X: x, Y: y, Color: color}); err != nil {
		t.Fatalf("put (%d,%d): %v", x, y, err)
	}
}

func TestCreateNeedsGameSet(t *testing.T) {
	f := roomtest.New()
	owner := f.Player("1", 0)
	if _, err := f.Create(owner, &request.MiniRoomData{Kind: proto.Omok, ItemId: boardItem}); err != biz.NoGameSetItem {
		t.Fatalf("err = %v", err)
	}
}

func TestFiveInARowEndsGame(t *testing.T) {
	tb := startGame(t)
	for i := 0; i < 4; i++ {
		tb.put(t, tb.owner, i, 0, 1)
		tb.put(t, tb.guest, i, 5, 2)
	}
	tb.put(t, tb.owner, 4, 0, 1)
	if tb.game.InProgress {
		t.Fatal("game should be over")
	}
	res := tb.f.LastOf("2", proto.MGRP_GameResult)
	if res == nil || res["winner"] != 0 {
		t.Fatalf("game result = %v", res)
	}
	if tb.owner.GetEntity().OmokRecord.Wins != 1 || tb.guest.GetEntity().OmokRecord.Losses != 1 {
		t.Fatal("records not updated")
	}
	if tb.owner.GetEntity().OmokRecord.Score <= entity.DefaultScore || tb.guest.GetEntity().OmokRecord.Score >= entity.DefaultScore {
		t.Fatal("winner should gain and loser should lose")
	}
	if len(tb.f.Records.Games) != 1 {
		t.Fatalf("game records = %d", len(tb.f.Records.Games))
	}
}

func TestDoubleThreeRejectedBoardUnchanged(t *testing.T) {
	tb := startGame(t)
	tb.put(t, tb.owner, 1, 0, 1)
	tb.put(t, tb.guest, 0, 10, 2)
	tb.put(t, tb.owner, 2, 0, 1)
	tb.put(t, tb.guest, 3, 10, 2)
	tb.put(t, tb.owner, 4, 1, 1)
	tb.put(t, tb.guest, 6, 10, 2)
	tb.put(t, tb.owner, 4, 2, 1)
	tb.put(t, tb.guest, 9, 10, 2)
	before := tb.game.Board()
	err := tb.r.OnPacketBase(proto.ORP_PutStoneChecker, tb.owner, &request.MiniRoomData{X: 4, Y: 0, Color: 1})
	if err != biz.DoubleThree {
		t.Fatalf("err = %v", err)
	}
	if tb.game.Board() != before {
		t.Fatal("rejected placement changed the board")
	}
	if tb.game.Turn != 0 {
		t.Fatal("turn must not change on rejection")
	}
	invalid := tb.f.LastOf("1", proto.ORP_InvalidStonePosition)
	if invalid == nil || invalid["reason"] != proto.InvalidStoneByDoubleThree {
		t.Fatalf("invalid push = %v", invalid)
	}
}

func TestPutStoneRejections(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.ORP_PutStoneChecker, tb.guest, &request.MiniRoomData{X: 1, Y: 1, Color: 2}); err != biz.NotYourTurn {
		t.Fatalf("err = %v", err)
	}
	if err := tb.r.OnPacketBase(proto.ORP_PutStoneChecker, tb.owner, &request.MiniRoomData{X: 15, Y: 1, Color: 1}); err != biz.InvalidPosition {
		t.Fatalf("err = %v", err)
	}
	if err := tb.r.OnPacketBase(proto.ORP_PutStoneChecker, tb.owner, &request.MiniRoomData{X: 1, Y: 1, Color: 2}); err != biz.RequestDataError {
		t.Fatalf("tampered color err = %v", err)
	}
	tb.put(t, tb.owner, 1, 1, 1)
	if err := tb.r.OnPacketBase(proto.ORP_PutStoneChecker, tb.guest, &request.MiniRoomData{X: 1, Y: 1, Color: 2}); err != biz.InvalidPosition {
		t.Fatalf("occupied err = %v", err)
	}
}

func TestRetreat(t *testing.T) {
	tb := startGame(t)
	tb.put(t, tb.owner, 7, 7, 1)
	tb.put(t, tb.guest, 8, 8, 2)
	if err := tb.r.OnPacketBase(proto.MGRP_RetreatRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_RetreatResult, tb.owner, &request.MiniRoomData{Accept: true}); err != nil {
		t.Fatal(err)
	}
	if tb.game.Board() != (omok.Board{}) {
		t.Fatal("two placements should be undone")
	}
	if tb.game.Turn != 0 || !tb.game.RetreatUsed[1] {
		t.Fatalf("turn=%d used=%v", tb.game.Turn, tb.game.RetreatUsed)
	}
	tb.f.Sender.Reset()
	if err := tb.r.OnPacketBase(proto.MGRP_RetreatRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if tb.f.LastOf("1", proto.MGRP_RetreatRequest) != nil {
		t.Fatal("second retreat request must be ignored")
	}
}

func TestTimeOver(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MGRP_TimeOver, tb.owner, &request.MiniRoomData{}); err != biz.TimeNotOver {
		t.Fatalf("err = %v", err)
	}
	tb.f.Advance(30 * time.Second)
	if err := tb.r.OnPacketBase(proto.MGRP_TimeOver, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if tb.game.Turn != 1 {
		t.Fatal("time over should pass the turn")
	}
	tb.put(t, tb.guest, 3, 3, 2)
	// 对方不在回合时请求悔棋 撤回两步: 落子和超时的空步
	if err := tb.r.OnPacketBase(proto.MGRP_RetreatRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_RetreatResult, tb.owner, &request.MiniRoomData{Accept: true}); err != nil {
		t.Fatal(err)
	}
	res := tb.f.LastOf("1", proto.MGRP_RetreatResult)
	if res == nil || res["count"] != 2 {
		t.Fatalf("retreat result = %v", res)
	}
}

func TestGiveUpAndOwnerLeave(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MGRP_GiveUpRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	res := tb.f.LastOf("1", proto.MGRP_GameResult)
	if res == nil || res["result"] != proto.GameGiveUp || res["winner"] != 0 {
		t.Fatalf("result = %v", res)
	}
	// 认输且落子少于6颗 分数变化减半
	if got := tb.owner.GetEntity().OmokRecord.Score - entity.DefaultScore; got != 13 {
		t.Fatalf("score delta = %d", got)
	}
	if err := tb.r.OnPacketBase(proto.MRP_Leave, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if !tb.r.IsClosed() || !tb.f.IsRemoved(tb.r.GetSerial()) {
		t.Fatal("owner leaving closes the room")
	}
	leave := tb.f.LastOf("2", proto.MRP_Leave)
	if leave == nil || leave["reason"] != proto.LeaveHostOut {
		t.Fatalf("guest leave push = %v", leave)
	}
}

func TestLeaveMidGameIsGiveUp(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MRP_Leave, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if tb.guest.GetEntity().OmokRecord.Losses != 1 || tb.owner.GetEntity().OmokRecord.Wins != 1 {
		t.Fatal("leaving mid-game counts as a loss")
	}
	if tb.r.IsClosed() {
		t.Fatal("guest leaving keeps the room")
	}
}

func TestTieDeclinedThenAccepted(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MGRP_TieResult, tb.guest, &request.MiniRoomData{Accept: true}); err != biz.NoPendingRequest {
		t.Fatalf("accept without request err = %v", err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_TieRequest, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if tb.f.LastOf("2", proto.MGRP_TieRequest) == nil {
		t.Fatal("tie request is forwarded to the opponent")
	}
	if err := tb.r.OnPacketBase(proto.MGRP_TieResult, tb.guest, &request.MiniRoomData{Accept: false}); err != nil {
		t.Fatal(err)
	}
	res := tb.f.LastOf("1", proto.MGRP_TieResult)
	if res == nil || res["accepted"] != false || !tb.game.InProgress {
		t.Fatalf("declined tie = %v inProgress=%v", res, tb.game.InProgress)
	}
	// 请求方不能替对方同意
	if err := tb.r.OnPacketBase(proto.MGRP_TieRequest, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_TieResult, tb.owner, &request.MiniRoomData{Accept: true}); err != biz.NoPendingRequest {
		t.Fatalf("self accept err = %v", err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_TieResult, tb.guest, &request.MiniRoomData{Accept: true}); err != nil {
		t.Fatal(err)
	}
	result := tb.f.LastOf("2", proto.MGRP_GameResult)
	if result == nil || result["result"] != proto.GameTie || result["winner"] != -1 {
		t.Fatalf("tie result = %v", result)
	}
	owner, guest := tb.owner.GetEntity().OmokRecord, tb.guest.GetEntity().OmokRecord
	if owner.Ties != 1 || guest.Ties != 1 || owner.Score != entity.DefaultScore || guest.Score != entity.DefaultScore {
		t.Fatalf("owner=%+v guest=%+v", owner, guest)
	}
	if tb.game.InProgress || tb.game.Ready {
		t.Fatal("tie ends the game and clears ready")
	}
}

func TestLeaveEngageDepartsAtGameSet(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MGRP_LeaveEngage, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	engage := tb.f.LastOf("1", proto.MGRP_LeaveEngage)
	if engage == nil || engage["slot"] != 1 || !tb.game.LeaveBooked[1] {
		t.Fatalf("leave engage = %v", engage)
	}
	if tb.guest.GetMiniRoomSerial() != tb.r.GetSerial() {
		t.Fatal("booked player stays until the game ends")
	}
	if err := tb.r.OnPacketBase(proto.MGRP_GiveUpRequest, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	leave := tb.f.LastOf("2", proto.MRP_Leave)
	if leave == nil || leave["reason"] != proto.LeaveBooked {
		t.Fatalf("guest leave = %v", leave)
	}
	if tb.guest.GetMiniRoomSerial() != 0 || tb.r.IsClosed() || tb.r.CurUsers() != 1 {
		t.Fatal("only the booked guest leaves")
	}
	if tb.game.LeaveBooked != [2]bool{} {
		t.Fatalf("booked = %v", tb.game.LeaveBooked)
	}
}

func TestLeaveEngageCancelled(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MGRP_LeaveEngage, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_LeaveEngageCancel, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if tb.f.LastOf("1", proto.MGRP_LeaveEngageCancel) == nil {
		t.Fatal("cancel is broadcast")
	}
	if err := tb.r.OnPacketBase(proto.MGRP_GiveUpRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if tb.guest.GetMiniRoomSerial() != tb.r.GetSerial() {
		t.Fatal("cancelled booking keeps the guest")
	}
	if err := tb.r.OnPacketBase(proto.MGRP_LeaveEngage, tb.guest, &request.MiniRoomData{}); err != biz.GameNotStarted {
		t.Fatalf("engage outside a game err = %v", err)
	}
}

func TestTournamentAutoReady(t *testing.T) {
	f := roomtest.New()
	owner := f.Player("1", 0)
	guest := f.Player("2", 0)
	owner.AddNewItem(&entity.Item{ItemId: boardItem, Quantity: 1})
	r, err := f.Create(owner, &request.MiniRoomData{Kind: proto.Omok, ItemId: boardItem, Tournament: true, Round: 1})
	if err != nil {
		t.Fatal(err)
	}
	game := r.Frame().(*omok.Omok)
	if game.Ready {
		t.Fatal("not ready while alone")
	}
	if err := r.Enter(guest, &request.MiniRoomData{Tournament: true, Round: 1}); err != nil {
		t.Fatal(err)
	}
	if !game.Ready || f.LastOf("1", proto.MGRP_Ready) == nil {
		t.Fatal("full tournament room is ready")
	}
	if err := r.OnPacketBase(proto.MGRP_Start, owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if !game.InProgress {
		t.Fatal("game should start without an explicit ready")
	}
}

func TestBanGuest(t *testing.T) {
	tb := startGame(t)
	if err := tb.r.OnPacketBase(proto.MGRP_Ban, tb.owner, &request.MiniRoomData{}); err != biz.GameInProgress {
		t.Fatalf("ban mid-game err = %v", err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_GiveUpRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_Ban, tb.guest, &request.MiniRoomData{}); err != biz.NotOwner {
		t.Fatalf("guest ban err = %v", err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_Ban, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	leave := tb.f.LastOf("2", proto.MRP_Leave)
	if leave == nil || leave["reason"] != proto.LeaveKicked {
		t.Fatalf("guest leave = %v", leave)
	}
	if tb.guest.GetMiniRoomSerial() != 0 || tb.r.IsClosed() || tb.r.CurUsers() != 1 {
		t.Fatal("banned guest leaves, room stays")
	}
	if err := tb.r.OnPacketBase(proto.MGRP_Ban, tb.owner, &request.MiniRoomData{}); err != biz.RequestDataError {
		t.Fatalf("ban empty seat err = %v", err)
	}
}

func TestWinProbabilityUsesLastLoser(t *testing.T) {
	tb := startGame(t)
	if tb.game.WinProbability != [2]float64{0.5, 0.5} {
		t.Fatalf("first game probability = %v", tb.game.WinProbability)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_GiveUpRequest, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	own, guest := tb.owner.GetEntity().OmokRecord.Score, tb.guest.GetEntity().OmokRecord.Score
	if own != entity.DefaultScore+13 || guest != entity.DefaultScore-13 {
		t.Fatalf("scores = %d %d", own, guest)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_Ready, tb.guest, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	if err := tb.r.OnPacketBase(proto.MGRP_Start, tb.owner, &request.MiniRoomData{}); err != nil {
		t.Fatal(err)
	}
	term := float64(guest) * 0.05
	want := [2]float64{
		minigame.WinProbability(own, guest, term, 0.0025),
		minigame.WinProbability(guest, own, -term, 0.0025),
	}
	if math.Abs(tb.game.WinProbability[0]-want[0]) > 1e-9 || math.Abs(tb.game.WinProbability[1]-want[1]) > 1e-9 {
		t.Fatalf("probability = %v want %v", tb.game.WinProbability, want)
	}
	if tb.game.Turn != 1 {
		t.Fatalf("loser opens, turn = %d", tb.game.Turn)
	}
}
