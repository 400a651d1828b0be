package handler

import (
	"context"
	"encoding/json"

	"miniroom/common"
	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/common/utils"
	"miniroom/framework/remote"
	"miniroom/framework/stream"
	"miniroom/game/component/character"
	"miniroom/game/component/proto"
	"miniroom/game/logic"
	"miniroom/game/models/request"
)

const miniRoomKey = "miniRoom"

type MiniRoomHandler struct {
	rooms   *logic.RoomManager
	chars   *logic.CharacterManager
	field   *logic.FieldBoard
	limiter *utils.RateLimiter
}

func (h *MiniRoomHandler) player(session *remote.Session) (*character.Player, any) {
	uid := session.GetUid()
	if len(uid) <= 0 {
		return nil, common.F(biz.InvalidUsers)
	}
	p := h.chars.Get(uid)
	if p == nil || !p.IsOnline() {
		return nil, common.F(biz.InvalidUsers)
	}
	return p, nil
}

// MiniRoomNotify 所有小房间操作码的入口
func (h *MiniRoomHandler) MiniRoomNotify(session *remote.Session, msg []byte) any {
	p, fail := h.player(session)
	if p == nil {
		return fail
	}
	if !h.limiter.Allow(p.GetUid()) {
		logs.Warn("[MiniRoomHandler] uid=%s too many requests", p.GetUid())
		return common.F(biz.RequestDataError)
	}
	var req request.MiniRoomReq
	if err := json.Unmarshal(msg, &req); err != nil {
		logs.Warn("[MiniRoomHandler] uid=%s invalid request:%v", p.GetUid(), err)
		return common.F(biz.RequestDataError)
	}
	switch req.Type {
	case proto.MRP_Create:
		r, err := h.rooms.Create(p, &req.Data)
		if err != nil {
			p.SendPacket(proto.EnterFailPushData(err, biz.IsSilent(err)))
			return common.F(err)
		}
		session.Put(miniRoomKey, r.GetSerial(), stream.Single)
		return common.S(map[string]any{"serial": r.GetSerial()})
	case proto.MRP_Enter:
		if err := h.rooms.Enter(p, req.Data.Serial, &req.Data); err != nil {
			p.SendPacket(proto.EnterFailPushData(err, biz.IsSilent(err)))
			return common.F(err)
		}
		session.Put(miniRoomKey, req.Data.Serial, stream.Single)
		return common.S(map[string]any{"serial": req.Data.Serial})
	case proto.MRP_InviteResult:
		h.rooms.InviteResult(p, req.Data.Serial, req.Data.InviteResult)
		return common.S(nil)
	}
	if err := h.rooms.OnPacket(p, req.Type, &req.Data); err != nil {
		return common.F(err)
	}
	return common.S(nil)
}

// UserOnline 角色上线 托管中的商店重新交给房主
func (h *MiniRoomHandler) UserOnline(session *remote.Session, msg []byte) any {
	uid := session.GetUid()
	if len(uid) <= 0 {
		return common.F(biz.InvalidUsers)
	}
	var req request.UserOnlineReq
	if err := json.Unmarshal(msg, &req); err != nil {
		return common.F(biz.RequestDataError)
	}
	p, err := h.chars.Online(context.TODO(), uid, req.Name, session.GetConnectorId())
	if err != nil {
		return common.F(err)
	}
	p.SetPosition(req.FieldId, req.X, req.Y)
	reattached := h.rooms.Reconnect(p)
	if reattached {
		session.Put(miniRoomKey, p.GetMiniRoomSerial(), stream.Single)
	}
	h.sendBalloons(p)
	return common.S(map[string]any{"reattached": reattached})
}

// UserMove 换地图或移动后更新位置
func (h *MiniRoomHandler) UserMove(session *remote.Session, msg []byte) any {
	p, fail := h.player(session)
	if p == nil {
		return fail
	}
	var req request.UserMoveReq
	if err := json.Unmarshal(msg, &req); err != nil {
		return common.F(biz.RequestDataError)
	}
	changed := p.GetFieldId() != req.FieldId
	p.SetPosition(req.FieldId, req.X, req.Y)
	if changed {
		h.sendBalloons(p)
	}
	return common.S(nil)
}

// UserOffline 角色下线 离开房间 开着的商店转为托管
func (h *MiniRoomHandler) UserOffline(session *remote.Session, msg []byte) any {
	uid := session.GetUid()
	if len(uid) <= 0 {
		return common.F(biz.InvalidUsers)
	}
	p := h.chars.Get(uid)
	if p == nil {
		return common.S(nil)
	}
	husk := h.rooms.Disconnect(p)
	h.chars.Offline(uid, husk)
	h.limiter.Forget(uid)
	return common.S(map[string]any{"husk": husk})
}

func (h *MiniRoomHandler) sendBalloons(p *character.Player) {
	for _, b := range h.field.Balloons(p.GetFieldId()) {
		p.SendPacket(proto.BalloonPushData(b))
	}
}

func NewMiniRoomHandler(rooms *logic.RoomManager, chars *logic.CharacterManager, field *logic.FieldBoard, limiter *utils.RateLimiter) *MiniRoomHandler {
	return &MiniRoomHandler{
		rooms:   rooms,
		chars:   chars,
		field:   field,
		limiter: limiter,
	}
}
