package logic

import (
	"context"
	"sync"

	"miniroom/common/logs"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/character"
)

type CharacterLoader interface {
	FindOrCreate(ctx context.Context, uid string, name string) (*entity.Character, *msError.Error)
}

// CharacterManager 本节点上的角色 商店托管的房主下线后仍保留
type CharacterManager struct {
	sync.RWMutex
	characters map[string]*character.Player
	loader     CharacterLoader
	sender     character.Sender
}

func NewCharacterManager(loader CharacterLoader, sender character.Sender) *CharacterManager {
	return &CharacterManager{
		characters: make(map[string]*character.Player),
		loader:     loader,
		sender:     sender,
	}
}

// FindCharacter 只返回在线的角色
func (m *CharacterManager) FindCharacter(uid string) base.Character {
	p := m.Get(uid)
	if p == nil || !p.IsOnline() {
		return nil
	}
	return p
}

func (m *CharacterManager) Get(uid string) *character.Player {
	m.RLock()
	defer m.RUnlock()
	return m.characters[uid]
}

// Online 上线 已有托管角色时沿用同一份entity
func (m *CharacterManager) Online(ctx context.Context, uid string, name string, connectorId string) (*character.Player, *msError.Error) {
	var e *entity.Character
	if old := m.Get(uid); old != nil {
		if old.IsOnline() && old.GetConnectorId() == connectorId {
			return old, nil
		}
		e = old.GetEntity()
	} else {
		var err *msError.Error
		e, err = m.loader.FindOrCreate(ctx, uid, name)
		if err != nil {
			return nil, err
		}
	}
	p := character.NewPlayer(e, connectorId, m.sender)
	m.Lock()
	m.characters[uid] = p
	m.Unlock()
	logs.Info("[CharacterManager] uid=%s online connector=%s", uid, connectorId)
	return p, nil
}

// Offline 标记下线 keep为true时保留角色(商店托管)
func (m *CharacterManager) Offline(uid string, keep bool) {
	m.Lock()
	defer m.Unlock()
	p, ok := m.characters[uid]
	if !ok {
		return
	}
	p.SetOnline(false)
	if !keep {
		delete(m.characters, uid)
	}
	logs.Info("[CharacterManager] uid=%s offline keep=%v", uid, keep)
}

// Forget 托管结束 已下线的角色从内存中移除
func (m *CharacterManager) Forget(uid string) {
	m.Lock()
	defer m.Unlock()
	if p, ok := m.characters[uid]; ok && !p.IsOnline() {
		delete(m.characters, uid)
	}
}

// InField 同一张地图上的在线角色
func (m *CharacterManager) InField(fieldId int) []*character.Player {
	m.RLock()
	defer m.RUnlock()
	list := make([]*character.Player, 0)
	for _, p := range m.characters {
		if p.IsOnline() && p.GetFieldId() == fieldId {
			list = append(list, p)
		}
	}
	return list
}

func (m *CharacterManager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.characters)
}
