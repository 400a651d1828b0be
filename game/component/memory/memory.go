package memory

import (
	"time"

	"miniroom/common/biz"
	"miniroom/common/utils"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/minigame"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

const scale = 0.00125

// 按牌组大小(pieceType)区分的牌数和分数系数
var (
	cardCounts = [3]int{12, 20, 30}
	alphas     = [3]float64{0.5, 1.0, 1.2}
)

// removed 已经配对拿走的牌
const removed = 0

type MemoryGame struct {
	*minigame.GameSession
	room      base.RoomFrame
	pieceType int
	cards     []int
	firstPick int
	score     [2]int
}

func NewGameFrame(r base.RoomFrame, owner base.Character, data *request.MiniRoomData) (base.Frame, *msError.Error) {
	if data.PieceType < 0 || data.PieceType >= len(cardCounts) {
		return nil, biz.RequestDataError
	}
	if err := minigame.CheckGameSet(owner, proto.MemoryGame, data.ItemId); err != nil {
		return nil, err
	}
	m := &MemoryGame{
		room:      r,
		pieceType: data.PieceType,
		firstPick: proto.NoSlot,
	}
	m.GameSession = minigame.NewGameSession(r, m)
	return m, nil
}

func (m *MemoryGame) CardCount() int {
	return cardCounts[m.pieceType]
}

// ResetMiniGameData 生成成对的牌并洗牌
func (m *MemoryGame) ResetMiniGameData(first int) {
	n := m.CardCount()
	m.cards = make([]int, 0, n)
	for v := 1; v <= n/2; v++ {
		m.cards = append(m.cards, v, v)
	}
	utils.Shuffle(m.cards)
	m.firstPick = proto.NoSlot
	m.score = [2]int{}
}

func (m *MemoryGame) GameData() any {
	return map[string]any{
		"cardCount": len(m.cards),
	}
}

func (m *MemoryGame) Scale() float64 {
	return scale
}

func (m *MemoryGame) ScoreFactor(giveUp bool) float64 {
	f := alphas[m.pieceType]
	if giveUp && m.score[0]+m.score[1] < m.CardCount()/10 {
		f /= 2
	}
	return f
}

func (m *MemoryGame) TimeLimit() time.Duration {
	return m.room.Conf().MemoryTimeLimit
}

func (m *MemoryGame) OnTimeOver(slot int) {
	m.firstPick = proto.NoSlot
}

func (m *MemoryGame) EnterData(slot int) any {
	return map[string]any{
		"pieceType":  m.pieceType,
		"inProgress": m.InProgress,
		"score":      m.score,
	}
}

func (m *MemoryGame) OnClose() {}

func (m *MemoryGame) OnPacket(op proto.MiniRoomProtocol, c base.Character, slot int, data *request.MiniRoomData) *msError.Error {
	if handled, err := m.GameSession.OnPacket(op, c, slot, data); handled {
		return err
	}
	if op == proto.MGP_TurnUpCard {
		return m.TurnUpCard(slot, data.First, data.Index)
	}
	return biz.RequestDataError
}

// TurnUpCard 翻牌 配对成功继续行动 失败换手
func (m *MemoryGame) TurnUpCard(slot int, first bool, index int) *msError.Error {
	if !m.InProgress {
		return biz.GameNotStarted
	}
	if slot != m.Turn {
		return biz.NotYourTurn
	}
	if index < 0 || index >= len(m.cards) || m.cards[index] == removed {
		return biz.InvalidPosition
	}
	if first {
		if m.firstPick != proto.NoSlot {
			return biz.RequestDataError
		}
		m.firstPick = index
		m.Touch()
		m.room.Broadcast(proto.TurnUpCardPushData(true, index, m.cards[index]))
		return nil
	}
	if m.firstPick == proto.NoSlot || m.firstPick == index {
		return biz.RequestDataError
	}
	prev := m.firstPick
	m.firstPick = proto.NoSlot
	m.room.Broadcast(proto.TurnUpCardPushData(false, index, m.cards[index]))
	if m.cards[prev] != m.cards[index] {
		m.room.Broadcast(proto.MatchCardPushData(slot, prev, index, false))
		m.NextTurn()
		return nil
	}
	m.cards[prev] = removed
	m.cards[index] = removed
	m.score[slot]++
	m.Touch()
	m.room.Broadcast(proto.MatchCardPushData(slot, prev, index, true))
	if m.score[0]+m.score[1] == len(m.cards)/2 {
		winner := -1
		if m.score[0] > m.score[1] {
			winner = 0
		} else if m.score[1] > m.score[0] {
			winner = 1
		}
		m.OnGameSet(winner)
	}
	return nil
}

func (m *MemoryGame) Cards() []int {
	return append([]int(nil), m.cards...)
}

func (m *MemoryGame) Score() [2]int {
	return m.score
}
