package logic

import (
	"sync"
	"time"

	"miniroom/common/biz"
	"miniroom/common/config"
	"miniroom/common/logs"
	"miniroom/common/tasks"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/proto"
	"miniroom/game/component/room"
	"miniroom/game/models/request"
)

// RoomManager 本节点所有的小房间
// 持有m的锁时不能调用房间的方法 房间关闭时会回调Remove
type RoomManager struct {
	sync.RWMutex
	rooms    map[int64]*room.Room
	husks    map[string]int64
	serial   int64
	env      *room.Env
	task     *tasks.Task
	released func(uid string)
}

type Collaborators struct {
	Field     base.Field
	World     base.World
	Store     base.CharacterStore
	Records   base.RecordStore
	Directory base.Directory
}

func NewRoomManager(conf config.RoomConf, co Collaborators) *RoomManager {
	m := &RoomManager{
		rooms: make(map[int64]*room.Room),
		husks: make(map[string]int64),
	}
	m.env = &room.Env{
		Conf:      conf,
		Field:     co.Field,
		World:     co.World,
		Store:     co.Store,
		Records:   co.Records,
		Directory: co.Directory,
		Remove:    m.Remove,
		Clock:     time.Now,
	}
	return m
}

// OnHuskReleased 托管的商店关闭后回调 用于清理下线角色
func (m *RoomManager) OnHuskReleased(fn func(uid string)) {
	m.released = fn
}

// nextSerial 到达上限后从1开始 跳过仍在使用的序号 全部占用时返回0
func (m *RoomManager) nextSerial() int64 {
	m.Lock()
	defer m.Unlock()
	maxSerial := m.env.Conf.MaxSerial
	if maxSerial <= 0 {
		maxSerial = config.DefaultRoomConf().MaxSerial
	}
	for i := int64(0); i < maxSerial; i++ {
		m.serial++
		if m.serial > maxSerial {
			logs.Warn("[RoomManager] serial wrapped at %d", maxSerial)
			m.serial = 1
		}
		if _, ok := m.rooms[m.serial]; !ok {
			return m.serial
		}
		logs.Warn("[RoomManager] serial %d still in use, skipped", m.serial)
	}
	return 0
}

func (m *RoomManager) Create(c base.Character, data *request.MiniRoomData) (*room.Room, *msError.Error) {
	if !c.CanAttachAdditionalProcess() {
		return nil, biz.OtherRequests
	}
	if !c.IsAlive() {
		return nil, biz.CantWhileDead
	}
	if m.env.Field != nil {
		if err := m.env.Field.CheckEstablish(c, data.Kind); err != nil {
			return nil, err
		}
	}
	if !c.ClaimMiniRoom() {
		return nil, biz.OtherRequests
	}
	serial := m.nextSerial()
	if serial == 0 {
		c.ReleaseMiniRoom()
		logs.Error("[RoomManager] no free serial, rooms=%d", m.Count())
		return nil, biz.FullCapacity
	}
	r, err := room.New(serial, c, data, m.env)
	if err != nil {
		c.ReleaseMiniRoom()
		logs.Debug("[RoomManager] uid=%s create %v rejected:%v", c.GetUid(), data.Kind, err)
		return nil, err
	}
	m.Lock()
	m.rooms[serial] = r
	m.Unlock()
	logs.Info("[RoomManager] uid=%s created %v serial=%d", c.GetUid(), data.Kind, serial)
	return r, nil
}

func (m *RoomManager) Get(serial int64) *room.Room {
	m.RLock()
	defer m.RUnlock()
	return m.rooms[serial]
}

func (m *RoomManager) Remove(serial int64) {
	m.Lock()
	delete(m.rooms, serial)
	var uids []string
	for uid, s := range m.husks {
		if s == serial {
			uids = append(uids, uid)
			delete(m.husks, uid)
		}
	}
	released := m.released
	m.Unlock()
	if released != nil {
		for _, uid := range uids {
			released(uid)
		}
	}
}

func (m *RoomManager) Enter(c base.Character, serial int64, data *request.MiniRoomData) *msError.Error {
	r := m.Get(serial)
	if r == nil {
		return biz.RoomAlreadyClosed
	}
	return r.Enter(c, data)
}

// OnPacket 转发给角色当前所在的房间
func (m *RoomManager) OnPacket(c base.Character, op proto.MiniRoomProtocol, data *request.MiniRoomData) *msError.Error {
	r := m.Get(c.GetMiniRoomSerial())
	if r == nil {
		return biz.NotInRoom
	}
	return r.OnPacketBase(op, c, data)
}

// InviteResult 被邀请人还不在房间里 按邀请中的serial查找
func (m *RoomManager) InviteResult(c base.Character, serial int64, result proto.InviteResult) {
	if r := m.Get(serial); r != nil {
		r.InviteResult(c, result)
	}
}

// Disconnect 返回true表示角色作为商店托管留在房间
func (m *RoomManager) Disconnect(c base.Character) bool {
	r := m.Get(c.GetMiniRoomSerial())
	if r == nil {
		return false
	}
	if !r.Disconnect(c) {
		return false
	}
	m.Lock()
	m.husks[c.GetUid()] = r.GetSerial()
	m.Unlock()
	return true
}

// Reconnect 托管的房主重新上线
func (m *RoomManager) Reconnect(c base.Character) bool {
	m.Lock()
	serial, ok := m.husks[c.GetUid()]
	delete(m.husks, c.GetUid())
	m.Unlock()
	if !ok {
		return false
	}
	r := m.Get(serial)
	return r != nil && r.Reattach(c)
}

func (m *RoomManager) snapshot() []*room.Room {
	m.RLock()
	defer m.RUnlock()
	list := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		list = append(list, r)
	}
	return list
}

func (m *RoomManager) Rooms() []*room.Room {
	return m.snapshot()
}

func (m *RoomManager) Tick(now time.Time) {
	for _, r := range m.snapshot() {
		r.Tick(now)
	}
}

func (m *RoomManager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.rooms)
}

// Destroy 管理后台强制关闭
func (m *RoomManager) Destroy(serial int64, reason proto.LeaveReason) *msError.Error {
	r := m.Get(serial)
	if r == nil {
		return biz.RoomNotExist
	}
	r.Destroy(reason)
	return nil
}

func (m *RoomManager) Run() {
	interval := m.env.Conf.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	m.task = tasks.NewTask("miniRoomTick", interval, func() {
		m.Tick(m.env.Clock())
	})
}

// Stop 关闭所有房间 暂存的物品和金币退回
func (m *RoomManager) Stop() {
	if m.task != nil {
		m.task.Stop()
	}
	for _, r := range m.snapshot() {
		r.Destroy(proto.LeaveClosed)
	}
}
