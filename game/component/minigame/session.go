package minigame

import (
	"time"

	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

// Rules 各小游戏自己的部分
type Rules interface {
	// ResetMiniGameData 开局前重置棋盘/牌组 first是先手座位
	ResetMiniGameData(first int)
	GameData() any
	Scale() float64
	// ScoreFactor 分数变化的额外系数 认输且进度太少时减半
	ScoreFactor(giveUp bool) float64
	TimeLimit() time.Duration
	// OnTimeOver 超时换手前的处理
	OnTimeOver(slot int)
}

// Retreater 支持悔棋的游戏 返回撤回的步数
type Retreater interface {
	Retreat(requester int) int
}

// GameSession 两人小游戏的准备/开始/结算流程 由具体游戏组合使用
type GameSession struct {
	room             base.RoomFrame
	rules            Rules
	Result           proto.GameResult
	Ready            bool
	InProgress       bool
	Turn             int
	LeaveBooked      [2]bool
	RetreatUsed      [2]bool
	WinProbability   [2]float64
	LastActionAt     time.Time
	lastWinner       int
	lastOpener       int
	tieRequester     int
	retreatRequester int
}

func NewGameSession(room base.RoomFrame, rules Rules) *GameSession {
	return &GameSession{
		room:             room,
		rules:            rules,
		lastWinner:       -1,
		lastOpener:       -1,
		tieRequester:     -1,
		retreatRequester: -1,
	}
}

func other(slot int) int {
	return 1 - slot
}

// CheckGameSet 建房需要对应的棋盘道具
func CheckGameSet(owner base.Character, kind proto.MiniRoomType, itemId int32) *msError.Error {
	lo, hi := int32(4080000), int32(4080099)
	if kind == proto.MemoryGame {
		lo, hi = 4080100, 4080199
	}
	if itemId < lo || itemId > hi || !owner.HasItem(itemId) {
		return biz.NoGameSetItem
	}
	return nil
}

func (g *GameSession) MaxUsers() int {
	return 2
}

// OnEnter 比赛模式人满自动准备
func (g *GameSession) OnEnter(slot int, c base.Character) {
	if g.room.IsTournament() && g.room.CurUsers() == 2 {
		g.Ready = true
		g.room.Broadcast(proto.ReadyPushData(true))
	}
}

// OnLeave 对局中离开算认输 房主离开房间关闭
func (g *GameSession) OnLeave(slot int, c base.Character, reason proto.LeaveReason) (bool, proto.LeaveReason) {
	if g.InProgress && g.room.GetUser(other(slot)) != nil {
		g.Result = proto.GameGiveUp
		g.OnGameSet(other(slot))
	}
	g.Ready = false
	g.LeaveBooked[slot] = false
	if slot == 0 {
		return true, proto.LeaveHostOut
	}
	return false, proto.LeaveNone
}

func (g *GameSession) Decorate(b *proto.Balloon) {
	b.GameOn = g.InProgress
}

// OnPacket 处理公共的小游戏操作码 handled为false时交给具体游戏
func (g *GameSession) OnPacket(op proto.MiniRoomProtocol, c base.Character, slot int, data *request.MiniRoomData) (bool, *msError.Error) {
	switch op {
	case proto.MGRP_Ready:
		return true, g.ready(slot, true)
	case proto.MGRP_CancelReady:
		return true, g.ready(slot, false)
	case proto.MGRP_Start:
		return true, g.Start(slot)
	case proto.MGRP_TieRequest:
		return true, g.tieRequest(slot)
	case proto.MGRP_TieResult:
		return true, g.tieResult(slot, data.Accept)
	case proto.MGRP_GiveUpRequest:
		return true, g.GiveUp(slot)
	case proto.MGRP_RetreatRequest:
		return true, g.retreatRequest(slot)
	case proto.MGRP_RetreatResult:
		return true, g.retreatResult(slot, data.Accept)
	case proto.MGRP_LeaveEngage:
		return true, g.leaveEngage(slot, true)
	case proto.MGRP_LeaveEngageCancel:
		return true, g.leaveEngage(slot, false)
	case proto.MGRP_Ban:
		return true, g.ban(slot)
	case proto.MGRP_TimeOver:
		return true, g.TimeOver(slot)
	}
	return false, nil
}

func (g *GameSession) ready(slot int, ready bool) *msError.Error {
	if slot != 1 {
		return biz.RequestDataError
	}
	if g.InProgress {
		return biz.GameInProgress
	}
	if g.room.CurUsers() != 2 {
		return biz.NeedTwoPlayers
	}
	g.Ready = ready
	g.room.Broadcast(proto.ReadyPushData(ready))
	return nil
}

// Start 房主开始 入场费要么全收要么都不收
func (g *GameSession) Start(slot int) *msError.Error {
	if slot != 0 {
		return biz.NotOwner
	}
	if g.InProgress {
		return biz.GameInProgress
	}
	if g.room.CurUsers() != 2 {
		return biz.NeedTwoPlayers
	}
	if !g.Ready {
		return biz.NotReady
	}
	if fee := g.room.Conf().EntryFee; fee > 0 {
		for i := 0; i < 2; i++ {
			if g.room.GetUser(i).GetMoney() < fee {
				return biz.NotEnoughEntryFee
			}
		}
		for i := 0; i < 2; i++ {
			g.room.GetUser(i).IncMoney(-fee)
		}
	}
	first := g.firstTurn()
	g.lastOpener = first
	g.Turn = first
	g.rules.ResetMiniGameData(first)
	g.computeWinProbability()
	g.Result = proto.GameOnGoing
	g.InProgress = true
	g.LeaveBooked = [2]bool{}
	g.RetreatUsed = [2]bool{}
	g.tieRequester = -1
	g.retreatRequester = -1
	g.LastActionAt = g.room.Now()
	g.room.Broadcast(proto.StartPushData(g.Turn, g.rules.GameData()))
	g.room.UpdateBalloon()
	return nil
}

// firstTurn 第一局房主先手 之后输家先手 平局换人先手
func (g *GameSession) firstTurn() int {
	if g.lastOpener < 0 {
		return 0
	}
	if g.lastWinner < 0 {
		return other(g.lastOpener)
	}
	return other(g.lastWinner)
}

func (g *GameSession) computeWinProbability() {
	var scores [2]int
	for i := 0; i < 2; i++ {
		scores[i] = g.room.GetUser(i).GetMiniGameRecord(g.room.GetKind()).Score
	}
	var bonus [2]float64
	// 第一局和平局之后没有输家 不加修正
	if g.lastWinner >= 0 {
		loser := other(g.lastWinner)
		term := float64(scores[loser]) * loserWeight
		bonus[g.lastWinner] = term
		bonus[loser] = -term
	}
	for i := 0; i < 2; i++ {
		g.WinProbability[i] = WinProbability(scores[i], scores[other(i)], bonus[i], g.rules.Scale())
	}
}

// NextTurn 落子/翻牌后换手
func (g *GameSession) NextTurn() {
	g.Turn = other(g.Turn)
	g.LastActionAt = g.room.Now()
}

// Touch 同一方继续行动
func (g *GameSession) Touch() {
	g.LastActionAt = g.room.Now()
}

// OnGameSet winner为-1表示平局
func (g *GameSession) OnGameSet(winner int) {
	if !g.InProgress {
		return
	}
	if winner < 0 {
		g.Result = proto.GameTie
	}
	giveUp := g.Result == proto.GameGiveUp
	factor := g.rules.ScoreFactor(giveUp)
	kind := g.room.GetKind()
	records := make([]proto.MiniGameRecord, 0, 2)
	uids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		u := g.room.GetUser(i)
		if u == nil {
			logs.Warn("[MiniGame] serial=%d slot=%d missing at game set", g.room.GetSerial(), i)
			continue
		}
		rec := u.GetMiniGameRecord(kind)
		outcome := 0.5
		switch {
		case winner < 0:
			rec.Ties++
		case winner == i:
			outcome = 1
			rec.Wins++
		default:
			outcome = 0
			rec.Losses++
		}
		rec.Score += ScoreDelta(rec, g.WinProbability[i], outcome, factor)
		records = append(records, proto.MiniGameRecord{Slot: i, Wins: rec.Wins, Ties: rec.Ties, Losses: rec.Losses, Score: rec.Score})
		uids = append(uids, u.GetUid())
		g.save(u.GetEntity())
	}
	g.InProgress = false
	g.Ready = false
	g.lastWinner = winner
	g.room.Broadcast(proto.GameResultPushData(g.Result, winner, records))
	if rs := g.room.Records(); rs != nil {
		rs.SaveGameRecord(&entity.GameRecord{
			Serial: g.room.GetSerial(),
			Kind:   int(kind),
			Uids:   uids,
			Winner: winner,
			Result: int(g.Result),
		})
	}
	booked := false
	for i := 0; i < 2; i++ {
		if g.LeaveBooked[i] {
			booked = true
			g.room.RequestLeave(i, proto.LeaveBooked)
		}
	}
	g.LeaveBooked = [2]bool{}
	if !booked {
		g.room.UpdateBalloon()
	}
}

func (g *GameSession) save(e *entity.Character) {
	if s := g.room.Store(); s != nil {
		if err := s.SaveCharacter(e); err != nil {
			logs.Error("[MiniGame] save record uid=%s err:%v", e.Uid, err)
		}
	}
}

func (g *GameSession) tieRequest(slot int) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	g.tieRequester = slot
	g.room.SendTo(other(slot), proto.TieRequestPushData())
	return nil
}

func (g *GameSession) tieResult(slot int, accept bool) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	if g.tieRequester != other(slot) {
		return biz.NoPendingRequest
	}
	g.tieRequester = -1
	if !accept {
		g.room.SendTo(other(slot), proto.TieResultPushData(false))
		return nil
	}
	g.OnGameSet(-1)
	return nil
}

// GiveUp 认输立即结算 对方获胜
func (g *GameSession) GiveUp(slot int) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	g.Result = proto.GameGiveUp
	g.OnGameSet(other(slot))
	return nil
}

func (g *GameSession) retreatRequest(slot int) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	if _, ok := g.rules.(Retreater); !ok {
		return biz.RequestDataError
	}
	//每局只能悔棋一次 重复请求直接忽略
	if g.RetreatUsed[slot] {
		return nil
	}
	g.retreatRequester = slot
	g.room.SendTo(other(slot), proto.RetreatRequestPushData())
	return nil
}

func (g *GameSession) retreatResult(slot int, accept bool) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	requester := other(slot)
	if g.retreatRequester != requester {
		return biz.NoPendingRequest
	}
	g.retreatRequester = -1
	if !accept {
		g.room.SendTo(requester, proto.RetreatResultPushData(false, 0, g.Turn))
		return nil
	}
	count := g.rules.(Retreater).Retreat(requester)
	g.RetreatUsed[requester] = true
	g.Turn = other(requester)
	g.LastActionAt = g.room.Now()
	g.room.Broadcast(proto.RetreatResultPushData(true, count, g.Turn))
	return nil
}

func (g *GameSession) leaveEngage(slot int, booked bool) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	g.LeaveBooked[slot] = booked
	g.room.Broadcast(proto.LeaveEngagePushData(slot, booked))
	return nil
}

// ban 房主在对局外踢出客人
func (g *GameSession) ban(slot int) *msError.Error {
	if slot != 0 {
		return biz.NotOwner
	}
	if g.InProgress {
		return biz.GameInProgress
	}
	if g.room.GetUser(1) == nil {
		return biz.RequestDataError
	}
	g.Ready = false
	g.room.RequestLeave(1, proto.LeaveKicked)
	return nil
}

// TimeOver 轮到的一方超时 必须真的超过时限才换手
func (g *GameSession) TimeOver(slot int) *msError.Error {
	if !g.InProgress {
		return biz.GameNotStarted
	}
	if slot != g.Turn {
		return biz.NotYourTurn
	}
	if g.room.Now().Sub(g.LastActionAt) < g.rules.TimeLimit() {
		return biz.TimeNotOver
	}
	g.rules.OnTimeOver(slot)
	g.NextTurn()
	g.room.Broadcast(proto.TimeOverPushData(g.Turn))
	return nil
}
