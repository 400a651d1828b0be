package logic

import (
	"sync"

	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/framework/game"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/proto"
)

const (
	portalDistance  = 100
	balloonDistance = 130
)

type FieldSource interface {
	GetField(id int) *game.FieldConf
}

type positioner interface {
	SetPosition(fieldId, x, y int)
}

// FieldBoard 地图上的开房限制和气球
type FieldBoard struct {
	sync.RWMutex
	conf     FieldSource
	chars    *CharacterManager
	balloons map[int64]*proto.Balloon
}

func NewFieldBoard(conf FieldSource, chars *CharacterManager) *FieldBoard {
	return &FieldBoard{
		conf:     conf,
		chars:    chars,
		balloons: make(map[int64]*proto.Balloon),
	}
}

func near(x1, y1, x2, y2, d int) bool {
	dx, dy := x1-x2, y1-y2
	return dx*dx+dy*dy < d*d
}

func (b *FieldBoard) CheckEstablish(c base.Character, kind proto.MiniRoomType) *msError.Error {
	f := b.conf.GetField(c.GetFieldId())
	if f != nil {
		if kind.IsMiniGame() && (f.NoMiniGame || f.NoEstablish) {
			return biz.CantStartGameHere
		}
		if f.NoEstablish {
			return biz.CantEstablishHere
		}
	}
	if kind == proto.TradingRoom {
		return nil
	}
	x, y := c.GetPosition()
	if kind == proto.PersonalShop && f != nil {
		for _, p := range f.Portals {
			if near(x, y, p.X, p.Y, portalDistance) {
				return biz.CantOpenStoreNearPortal
			}
		}
	}
	b.RLock()
	defer b.RUnlock()
	for _, bl := range b.balloons {
		if bl.FieldId == c.GetFieldId() && near(x, y, bl.X, bl.Y, balloonDistance) {
			return biz.CantEstablishHere
		}
	}
	return nil
}

func (b *FieldBoard) SetBalloon(bl *proto.Balloon) {
	b.Lock()
	b.balloons[bl.Serial] = bl
	b.Unlock()
	b.broadcast(bl.FieldId, proto.BalloonPushData(bl))
}

// RemoveBalloon kind为none的气球通知客户端移除
func (b *FieldBoard) RemoveBalloon(serial int64) {
	b.Lock()
	bl, ok := b.balloons[serial]
	delete(b.balloons, serial)
	b.Unlock()
	if ok {
		b.broadcast(bl.FieldId, proto.BalloonPushData(&proto.Balloon{Serial: serial, FieldId: bl.FieldId}))
	}
}

// Balloons 进入地图时下发
func (b *FieldBoard) Balloons(fieldId int) []*proto.Balloon {
	b.RLock()
	defer b.RUnlock()
	list := make([]*proto.Balloon, 0)
	for _, bl := range b.balloons {
		if bl.FieldId == fieldId {
			list = append(list, bl)
		}
	}
	return list
}

// OnLeaveMiniRoom 配置了返回地图的地图 离开房间后传送回去
func (b *FieldBoard) OnLeaveMiniRoom(c base.Character, kind proto.MiniRoomType) {
	f := b.conf.GetField(c.GetFieldId())
	if f == nil || f.ReturnFieldId == 0 {
		return
	}
	p, ok := c.(positioner)
	if !ok {
		return
	}
	p.SetPosition(f.ReturnFieldId, 0, 0)
	logs.Info("[FieldBoard] uid=%s left %v, return to field %d", c.GetUid(), kind, f.ReturnFieldId)
}

func (b *FieldBoard) broadcast(fieldId int, data any) {
	if b.chars == nil {
		return
	}
	for _, p := range b.chars.InField(fieldId) {
		p.SendPacket(data)
	}
}
