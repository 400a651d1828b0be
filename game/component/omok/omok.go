package omok

import (
	"time"

	"miniroom/common/biz"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/minigame"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

const (
	scale            = 0.0025
	giveUpStoneLimit = 6
)

// move 悔棋栈的一步 null表示超时没有落子
type move struct {
	x, y int
	null bool
}

type Omok struct {
	*minigame.GameSession
	room      base.RoomFrame
	board     Board
	history   []move
	colors    [2]int
	stones    int
	pieceType int
}

func NewGameFrame(r base.RoomFrame, owner base.Character, data *request.MiniRoomData) (base.Frame, *msError.Error) {
	if err := minigame.CheckGameSet(owner, proto.Omok, data.ItemId); err != nil {
		return nil, err
	}
	o := &Omok{
		room:      r,
		pieceType: data.PieceType,
	}
	o.GameSession = minigame.NewGameSession(r, o)
	return o, nil
}

// ResetMiniGameData 先手执1号色
func (o *Omok) ResetMiniGameData(first int) {
	o.board = Board{}
	o.history = o.history[:0]
	o.stones = 0
	o.colors[first] = 1
	o.colors[1-first] = 2
}

func (o *Omok) GameData() any {
	return map[string]any{
		"colors": o.colors,
	}
}

func (o *Omok) Scale() float64 {
	return scale
}

func (o *Omok) ScoreFactor(giveUp bool) float64 {
	if giveUp && o.stones < giveUpStoneLimit {
		return 0.5
	}
	return 1
}

func (o *Omok) TimeLimit() time.Duration {
	return o.room.Conf().OmokTimeLimit
}

func (o *Omok) OnTimeOver(slot int) {
	o.history = append(o.history, move{null: true})
}

func (o *Omok) EnterData(slot int) any {
	data := map[string]any{
		"pieceType":  o.pieceType,
		"inProgress": o.InProgress,
	}
	if o.InProgress {
		data["board"] = o.board
		data["turn"] = o.Turn
		data["colors"] = o.colors
	}
	return data
}

func (o *Omok) OnClose() {}

func (o *Omok) OnPacket(op proto.MiniRoomProtocol, c base.Character, slot int, data *request.MiniRoomData) *msError.Error {
	if handled, err := o.GameSession.OnPacket(op, c, slot, data); handled {
		return err
	}
	if op == proto.ORP_PutStoneChecker {
		return o.PutStone(slot, data.X, data.Y, data.Color)
	}
	return biz.RequestDataError
}

// PutStone 落子 双三被拒绝时棋盘不变
func (o *Omok) PutStone(slot int, x, y int, color int) *msError.Error {
	if !o.InProgress {
		return biz.GameNotStarted
	}
	if slot != o.Turn {
		return biz.NotYourTurn
	}
	if !inBoard(x, y) || o.board[y][x] != 0 {
		o.room.SendTo(slot, proto.InvalidStonePushData(proto.InvalidStoneNormal))
		return biz.InvalidPosition
	}
	if color != o.colors[slot] {
		return biz.RequestDataError
	}
	doubleThree, gameOver := CheckStone(&o.board, x, y, color)
	if doubleThree {
		o.room.SendTo(slot, proto.InvalidStonePushData(proto.InvalidStoneByDoubleThree))
		return biz.DoubleThree
	}
	o.board[y][x] = color
	o.history = append(o.history, move{x: x, y: y})
	o.stones++
	o.room.Broadcast(proto.PutStonePushData(x, y, color))
	if gameOver {
		o.OnGameSet(slot)
		return nil
	}
	o.NextTurn()
	return nil
}

// Retreat 撤回最近一步 请求方不在回合中时多撤一步
func (o *Omok) Retreat(requester int) int {
	n := 1
	if requester != o.Turn {
		n = 2
	}
	count := 0
	for ; count < n && len(o.history) > 0; count++ {
		m := o.history[len(o.history)-1]
		o.history = o.history[:len(o.history)-1]
		if !m.null {
			o.board[m.y][m.x] = 0
			o.stones--
		}
	}
	return count
}

// Board 当前棋盘的拷贝
func (o *Omok) Board() Board {
	return o.board
}
