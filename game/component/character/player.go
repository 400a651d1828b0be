package character

import (
	"sync"
	"time"

	"miniroom/core/models/entity"
	"miniroom/game/component/proto"
)

// Sender 把推送投递到角色所在的connector
type Sender interface {
	Push(uid string, connectorId string, data any)
}

// Player base.Character的实现 背包和金币直接改entity 由调用方决定何时保存
type Player struct {
	sync.RWMutex
	entity      *entity.Character
	connectorId string
	sender      Sender
	online      bool
	busy        bool
	claimed     bool
	serial      int64
	slot        int
}

func NewPlayer(e *entity.Character, connectorId string, sender Sender) *Player {
	return &Player{
		entity:      e,
		connectorId: connectorId,
		sender:      sender,
		online:      true,
		slot:        proto.NoSlot,
	}
}

func (p *Player) GetUid() string {
	return p.entity.Uid
}

func (p *Player) GetName() string {
	return p.entity.Name
}

func (p *Player) GetFieldId() int {
	return p.entity.FieldId
}

func (p *Player) GetPosition() (int, int) {
	return p.entity.X, p.entity.Y
}

func (p *Player) SetPosition(fieldId, x, y int) {
	p.Lock()
	defer p.Unlock()
	p.entity.FieldId = fieldId
	p.entity.X = x
	p.entity.Y = y
}

func (p *Player) IsGM() bool {
	return p.entity.Gm
}

func (p *Player) IsAlive() bool {
	return p.entity.Hp > 0
}

func (p *Player) IsOnline() bool {
	p.RLock()
	defer p.RUnlock()
	return p.online
}

func (p *Player) SetOnline(online bool) {
	p.Lock()
	defer p.Unlock()
	p.online = online
}

func (p *Player) GetConnectorId() string {
	return p.connectorId
}

func (p *Player) IsMuted(now time.Time) bool {
	return p.entity.MuteUntil > now.UnixMilli()
}

// SetBusy npc对话等其他流程占用角色
func (p *Player) SetBusy(busy bool) {
	p.Lock()
	defer p.Unlock()
	p.busy = busy
}

func (p *Player) CanAttachAdditionalProcess() bool {
	p.RLock()
	defer p.RUnlock()
	return !p.busy && p.serial == 0 && !p.claimed
}

// ClaimMiniRoom 检查通过后占住角色直到入座 同一角色并发建房/进房只有一个成功
func (p *Player) ClaimMiniRoom() bool {
	p.Lock()
	defer p.Unlock()
	if p.busy || p.serial != 0 || p.claimed {
		return false
	}
	p.claimed = true
	return true
}

// ReleaseMiniRoom 占住之后没能入座
func (p *Player) ReleaseMiniRoom() {
	p.Lock()
	defer p.Unlock()
	p.claimed = false
}

func (p *Player) GetMiniRoomSerial() int64 {
	p.RLock()
	defer p.RUnlock()
	return p.serial
}

func (p *Player) GetMiniRoomSlot() int {
	p.RLock()
	defer p.RUnlock()
	return p.slot
}

// SetMiniRoom serial为0表示离开房间
func (p *Player) SetMiniRoom(serial int64, slot int) {
	p.Lock()
	defer p.Unlock()
	p.serial = serial
	p.slot = slot
	p.claimed = false
	if serial == 0 {
		p.slot = proto.NoSlot
	}
}

// SendPacket 离线(商店托管)时不推送
func (p *Player) SendPacket(data any) {
	if !p.IsOnline() || p.sender == nil {
		return
	}
	p.sender.Push(p.entity.Uid, p.connectorId, data)
}

func (p *Player) GetMiniGameRecord(kind proto.MiniRoomType) *entity.MiniGameRecord {
	switch kind {
	case proto.Omok:
		return &p.entity.OmokRecord
	case proto.MemoryGame:
		return &p.entity.MemoryRecord
	}
	return nil
}

func (p *Player) GetEntity() *entity.Character {
	return p.entity
}

func (p *Player) GetMoney() int64 {
	p.RLock()
	defer p.RUnlock()
	return p.entity.Money
}

func (p *Player) CanAddMoney(delta int64) bool {
	p.RLock()
	defer p.RUnlock()
	m := p.entity.Money + delta
	return m >= 0 && m <= entity.MaxMoney
}

func (p *Player) IncMoney(delta int64) bool {
	p.Lock()
	defer p.Unlock()
	m := p.entity.Money + delta
	if m < 0 || m > entity.MaxMoney {
		return false
	}
	p.entity.Money = m
	return true
}
