// Package roomtest 房间相关测试共用的内存实现
package roomtest

import (
	"sync"
	"time"

	"miniroom/common/config"
	"miniroom/core/models/entity"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/character"
	"miniroom/game/component/proto"
	"miniroom/game/component/room"
	"miniroom/game/models/request"
)

const FieldId = 100000000

type Field struct {
	mu       sync.Mutex
	Balloons map[int64]*proto.Balloon
	Reject   *msError.Error
	Left     []string
}

func (f *Field) CheckEstablish(c base.Character, kind proto.MiniRoomType) *msError.Error {
	return f.Reject
}

func (f *Field) SetBalloon(b *proto.Balloon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Balloons[b.Serial] = b
}

func (f *Field) RemoveBalloon(serial int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Balloons, serial)
}

func (f *Field) OnLeaveMiniRoom(c base.Character, kind proto.MiniRoomType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Left = append(f.Left, c.GetUid())
}

type World map[string]base.Character

func (w World) FindCharacter(uid string) base.Character {
	c, ok := w[uid]
	if !ok {
		return nil
	}
	return c
}

type Store struct {
	mu    sync.Mutex
	Saved map[string]int
}

func (s *Store) SaveCharacter(c *entity.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saved[c.Uid]++
	return nil
}

type Records struct {
	mu    sync.Mutex
	Sells []*entity.ShopSellRecord
	Games []*entity.GameRecord
}

func (r *Records) SaveShopSellRecord(rec *entity.ShopSellRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sells = append(r.Sells, rec)
}

func (r *Records) SaveGameRecord(rec *entity.GameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Games = append(r.Games, rec)
}

// Fixture 一组可控时钟和记录推送的协作者
type Fixture struct {
	Sender  *character.MemorySender
	Field   *Field
	World   World
	Store   *Store
	Records *Records
	Now     time.Time
	Removed []int64
	Env     *room.Env
	serial  int64
}

func New() *Fixture {
	f := &Fixture{
		Sender:  character.NewMemorySender(),
		Field:   &Field{Balloons: make(map[int64]*proto.Balloon)},
		World:   make(World),
		Store:   &Store{Saved: make(map[string]int)},
		Records: &Records{},
		Now:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.Env = &room.Env{
		Conf:    config.DefaultRoomConf(),
		Field:   f.Field,
		World:   f.World,
		Store:   f.Store,
		Records: f.Records,
		Remove: func(serial int64) {
			f.Removed = append(f.Removed, serial)
		},
		Clock: func() time.Time {
			return f.Now
		},
	}
	return f
}

func (f *Fixture) Advance(d time.Duration) {
	f.Now = f.Now.Add(d)
}

// Player 新角色 放在同一张地图
func (f *Fixture) Player(uid string, money int64) *character.Player {
	e := entity.NewCharacter(uid, "name"+uid)
	e.FieldId = FieldId
	e.Money = money
	p := character.NewPlayer(e, "connector-1", f.Sender)
	f.World[uid] = p
	return p
}

func (f *Fixture) Create(owner base.Character, data *request.MiniRoomData) (*room.Room, *msError.Error) {
	f.serial++
	return room.New(f.serial, owner, data, f.Env)
}

func (f *Fixture) IsRemoved(serial int64) bool {
	for _, s := range f.Removed {
		if s == serial {
			return true
		}
	}
	return false
}

// LastOf 最近一条指定操作码的推送
func (f *Fixture) LastOf(uid string, op proto.MiniRoomProtocol) map[string]any {
	pushes := f.Sender.Pushes(uid)
	for i := len(pushes) - 1; i >= 0; i-- {
		if proto.Type(pushes[i]) == op {
			return proto.Data(pushes[i])
		}
	}
	return nil
}
