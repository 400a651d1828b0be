package room

import (
	"fmt"
	"sync"
	"time"

	"miniroom/common/biz"
	"miniroom/common/config"
	"miniroom/common/logs"
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/proto"
	"miniroom/game/models/request"
)

// Env 房间依赖的外部协作者 由RoomManager注入
type Env struct {
	Conf      config.RoomConf
	Field     base.Field
	World     base.World
	Store     base.CharacterStore
	Records   base.RecordStore
	Directory base.Directory
	Remove    func(serial int64)
	Clock     func() time.Time
}

type reservation struct {
	uid string
	at  time.Time
}

// Room 一个小房间 所有对外方法都持有锁直到离开请求处理完成
type Room struct {
	sync.Mutex
	serial         int64
	kind           proto.MiniRoomType
	users          []base.Character
	reservations   []reservation
	leaveRequests  []proto.LeaveReason
	title          string
	password       string
	private        bool
	open           bool
	managed        bool
	closed         bool
	closeRequested bool
	tournament     bool
	round          int
	pieceType      int
	openedAt       time.Time
	chatLog        []string
	frame          base.Frame
	env            *Env
}

// New 创建房间并让owner坐到0号位 失败时房间不会注册
func New(serial int64, owner base.Character, data *request.MiniRoomData, env *Env) (*Room, *msError.Error) {
	newFrame, ok := frames[data.Kind]
	if !ok {
		return nil, biz.RequestDataError
	}
	if env.Clock == nil {
		env.Clock = time.Now
	}
	r := &Room{
		serial:     serial,
		kind:       data.Kind,
		title:      data.Title,
		password:   data.Password,
		private:    data.Private,
		open:       true,
		tournament: data.Tournament,
		round:      data.Round,
		pieceType:  data.PieceType,
		env:        env,
	}
	r.openedAt = r.Now()
	frame, err := newFrame(r, owner, data)
	if err != nil {
		return nil, err
	}
	r.frame = frame
	n := frame.MaxUsers()
	r.users = make([]base.Character, n)
	r.reservations = make([]reservation, n)
	r.leaveRequests = make([]proto.LeaveReason, n)
	for i := range r.leaveRequests {
		r.leaveRequests[i] = proto.LeaveNone
	}
	r.Lock()
	defer r.Unlock()
	r.seat(0, owner)
	return r, nil
}

func (r *Room) GetSerial() int64 {
	return r.serial
}

func (r *Room) GetKind() proto.MiniRoomType {
	return r.kind
}

func (r *Room) GetUser(slot int) base.Character {
	if slot < 0 || slot >= len(r.users) {
		return nil
	}
	return r.users[slot]
}

func (r *Room) GetMaxUsers() int {
	return len(r.users)
}

func (r *Room) CurUsers() int {
	n := 0
	for _, u := range r.users {
		if u != nil {
			n++
		}
	}
	return n
}

func (r *Room) IsTournament() bool {
	return r.tournament
}

func (r *Room) IsOpen() bool {
	return r.open
}

// Frame 具体玩法 测试与管理后台使用
func (r *Room) Frame() base.Frame {
	return r.frame
}

func (r *Room) IsClosed() bool {
	return r.closed
}

func (r *Room) Now() time.Time {
	return r.env.Clock()
}

func (r *Room) Conf() config.RoomConf {
	return r.env.Conf
}

func (r *Room) Store() base.CharacterStore {
	return r.env.Store
}

func (r *Room) Records() base.RecordStore {
	return r.env.Records
}

func (r *Room) SetOpen(open bool) {
	r.open = open
}

func (r *Room) SetManaged(managed bool) {
	r.managed = managed
}

func (r *Room) SendTo(slot int, data any) {
	if u := r.GetUser(slot); u != nil {
		u.SendPacket(data)
	}
}

func (r *Room) Broadcast(data any) {
	r.BroadcastExcept(-1, data)
}

func (r *Room) BroadcastExcept(slot int, data any) {
	for i, u := range r.users {
		if u != nil && i != slot {
			u.SendPacket(data)
		}
	}
}

func (r *Room) slotOf(uid string) int {
	for i, u := range r.users {
		if u != nil && u.GetUid() == uid {
			return i
		}
	}
	return -1
}

func (r *Room) avatars() []proto.Avatar {
	list := make([]proto.Avatar, 0, len(r.users))
	for i, u := range r.users {
		if u != nil {
			list = append(list, proto.Avatar{Slot: i, Uid: u.GetUid(), Name: u.GetName()})
		}
	}
	return list
}

func (r *Room) seat(slot int, c base.Character) {
	r.users[slot] = c
	r.reservations[slot] = reservation{}
	r.leaveRequests[slot] = proto.LeaveNone
	c.SetMiniRoom(r.serial, slot)
	if slot != 0 {
		r.BroadcastExcept(slot, proto.AvatarPushData(proto.Avatar{Slot: slot, Uid: c.GetUid(), Name: c.GetName()}, nil))
	}
	c.SendPacket(proto.EnterResultPushData(r.kind, len(r.users), slot, r.avatars(), r.title, r.frame.EnterData(slot)))
	r.frame.OnEnter(slot, c)
	r.UpdateBalloon()
}

// Enter 进入房间 返回nil表示成功
func (r *Room) Enter(c base.Character, data *request.MiniRoomData) *msError.Error {
	r.Lock()
	defer r.Unlock()
	if err := r.checkEnter(c, data); err != nil {
		logs.Debug("[Room] serial=%d uid=%s enter rejected:%v", r.serial, c.GetUid(), err)
		return err
	}
	slot := r.findEmptySlot(c.GetUid())
	if slot < 0 {
		c.ReleaseMiniRoom()
		return biz.FullCapacity
	}
	r.seat(slot, c)
	r.processLeaveRequest()
	return nil
}

func (r *Room) checkEnter(c base.Character, data *request.MiniRoomData) *msError.Error {
	if r.closed || r.users[0] == nil {
		return biz.RoomAlreadyClosed
	}
	if r.tournament != data.Tournament || (r.tournament && r.round != data.Round) {
		return biz.CantInMiddleOfEvent
	}
	if r.slotOf(c.GetUid()) >= 0 {
		return biz.AlreadyMember
	}
	if !c.CanAttachAdditionalProcess() || r.managed {
		return biz.OtherRequests
	}
	if !c.IsAlive() {
		return biz.CantWhileDead
	}
	if c.GetFieldId() != r.users[0].GetFieldId() {
		return biz.NotInSameField
	}
	if r.password != "" && r.password != data.Password && !r.HasReservation(c.GetUid()) {
		return biz.IncorrectPassword
	}
	if a, ok := r.frame.(base.Admittable); ok {
		if err := a.IsAdmitted(c, data); err != nil {
			return err
		}
	}
	if !c.ClaimMiniRoom() {
		return biz.OtherRequests
	}
	return nil
}

// findEmptySlot 先清掉过期的邀请 优先返回给uid预留的座位 不会返回给别人预留的座位
func (r *Room) findEmptySlot(uid string) int {
	now := r.Now()
	for i := 1; i < len(r.reservations); i++ {
		res := r.reservations[i]
		if res.uid != "" && now.Sub(res.at) > r.env.Conf.InviteExpire {
			r.reservations[i] = reservation{}
		}
	}
	for i := 1; i < len(r.users); i++ {
		if r.users[i] == nil && r.reservations[i].uid == uid {
			return i
		}
	}
	for i := 1; i < len(r.users); i++ {
		if r.users[i] == nil && r.reservations[i].uid == "" {
			return i
		}
	}
	return -1
}

func (r *Room) HasReservation(uid string) bool {
	now := r.Now()
	for _, res := range r.reservations {
		if res.uid == uid && now.Sub(res.at) <= r.env.Conf.InviteExpire {
			return true
		}
	}
	return false
}

// OnPacketBase 房间消息的唯一入口
func (r *Room) OnPacketBase(op proto.MiniRoomProtocol, c base.Character, data *request.MiniRoomData) *msError.Error {
	r.Lock()
	defer r.Unlock()
	if r.closed {
		return biz.RoomAlreadyClosed
	}
	slot := r.slotOf(c.GetUid())
	if slot < 0 {
		logs.Warn("[Room] serial=%d uid=%s op=%d not a member", r.serial, c.GetUid(), op)
		return biz.NotInRoom
	}
	var err *msError.Error
	switch op {
	case proto.MRP_Invite:
		err = r.invite(c, data.TargetUid)
	case proto.MRP_Chat:
		err = r.chat(slot, c, data.Text)
	case proto.MRP_Leave:
		r.RequestLeave(slot, proto.LeaveUserRequest)
	case proto.MRP_Balloon:
		if slot != 0 {
			err = biz.NotOwner
			break
		}
		r.open = data.Open
		r.UpdateBalloon()
	default:
		err = r.frame.OnPacket(op, c, slot, data)
	}
	if err == biz.RequestDataError {
		logs.Warn("[Room] serial=%d uid=%s op=%d invalid request", r.serial, c.GetUid(), op)
	} else if err != nil {
		logs.Debug("[Room] serial=%d uid=%s op=%d rejected:%v", r.serial, c.GetUid(), op, err)
	}
	r.processLeaveRequest()
	return err
}

func (r *Room) invite(c base.Character, targetUid string) *msError.Error {
	target := r.env.World.FindCharacter(targetUid)
	if target == nil {
		c.SendPacket(proto.InviteResultPushData(proto.InviteNoCharacter, targetUid))
		return biz.InviteNoCharacter
	}
	if target.GetUid() == c.GetUid() {
		return biz.InviteSelf
	}
	if target.IsGM() && !c.IsGM() {
		c.SendPacket(proto.InviteResultPushData(proto.InviteBlocked, target.GetName()))
		return biz.ThisCharacterNotAllowed
	}
	if !target.CanAttachAdditionalProcess() {
		c.SendPacket(proto.InviteResultPushData(proto.InviteCannot, target.GetName()))
		return biz.InviteBusy
	}
	slot := r.findEmptySlot(target.GetUid())
	if slot < 0 {
		return biz.FullCapacity
	}
	r.reservations[slot] = reservation{uid: target.GetUid(), at: r.Now()}
	target.SendPacket(proto.InvitePushData(r.kind, c.GetName(), r.serial))
	c.SendPacket(proto.InviteResultPushData(proto.InviteSuccess, target.GetName()))
	return nil
}

// InviteResult 被邀请人拒绝时释放预留并通知房主
func (r *Room) InviteResult(c base.Character, result proto.InviteResult) {
	r.Lock()
	defer r.Unlock()
	if r.closed || result == proto.InviteSuccess {
		return
	}
	for i, res := range r.reservations {
		if res.uid == c.GetUid() {
			r.reservations[i] = reservation{}
			r.SendTo(0, proto.InviteResultPushData(result, c.GetName()))
			return
		}
	}
}

func (r *Room) chat(slot int, c base.Character, text string) *msError.Error {
	if text == "" {
		return biz.RequestDataError
	}
	if c.IsMuted(r.Now()) {
		return biz.ChatMuted
	}
	line := fmt.Sprintf("%s : %s", c.GetName(), text)
	r.chatLog = append(r.chatLog, line)
	r.Broadcast(proto.ChatPushData(slot, line))
	return nil
}

func (r *Room) RequestLeave(slot int, reason proto.LeaveReason) {
	if r.GetUser(slot) == nil {
		return
	}
	r.leaveRequests[slot] = reason
}

// DoCloseRequest initiator<0 时所有人都用othersReason
func (r *Room) DoCloseRequest(initiator int, othersReason proto.LeaveReason, initiatorReason proto.LeaveReason) {
	for i, u := range r.users {
		if u == nil {
			continue
		}
		if i == initiator {
			r.leaveRequests[i] = initiatorReason
		} else {
			r.leaveRequests[i] = othersReason
		}
	}
	r.closeRequested = true
}

// processLeaveRequest 按座位顺序执行登记的离开
func (r *Room) processLeaveRequest() {
	for i := range r.users {
		if r.closed {
			return
		}
		reason := r.leaveRequests[i]
		if reason == proto.LeaveNone || r.users[i] == nil {
			continue
		}
		r.leave(i, reason, true)
	}
	if r.closeRequested && !r.closed {
		r.close(proto.LeaveClosed)
	}
}

func (r *Room) leave(slot int, reason proto.LeaveReason, broadcast bool) {
	c := r.users[slot]
	if c == nil {
		return
	}
	closeRoom, othersReason := r.frame.OnLeave(slot, c, reason)
	r.users[slot] = nil
	r.leaveRequests[slot] = proto.LeaveNone
	c.SetMiniRoom(0, proto.NoSlot)
	if reason != proto.LeaveSilent {
		c.SendPacket(proto.LeavePushData(slot, reason))
	}
	if broadcast {
		r.Broadcast(proto.LeavePushData(slot, reason))
	}
	if r.env.Field != nil {
		r.env.Field.OnLeaveMiniRoom(c, r.kind)
	}
	if r.closed {
		return
	}
	if closeRoom || r.CurUsers() == 0 {
		r.close(othersReason)
		return
	}
	r.UpdateBalloon()
}

// close 剩下的人优先使用已登记的离开原因
func (r *Room) close(reason proto.LeaveReason) {
	if r.closed {
		return
	}
	r.closed = true
	for i := range r.users {
		if r.users[i] == nil {
			continue
		}
		rr := r.leaveRequests[i]
		if rr == proto.LeaveNone {
			rr = reason
		}
		r.leave(i, rr, false)
	}
	r.frame.OnClose()
	for i := range r.reservations {
		r.reservations[i] = reservation{}
	}
	if r.kind != proto.TradingRoom && r.env.Field != nil {
		r.env.Field.RemoveBalloon(r.serial)
	}
	if r.env.Directory != nil {
		r.env.Directory.Remove(r.serial)
	}
	if r.env.Remove != nil {
		r.env.Remove(r.serial)
	}
	logs.Info("[Room] serial=%d kind=%v closed", r.serial, r.kind)
}

func (r *Room) Balloon() *proto.Balloon {
	owner := r.users[0]
	b := &proto.Balloon{
		Serial:    r.serial,
		Kind:      r.kind,
		Title:     r.title,
		Private:   r.password != "" || r.private,
		PieceType: r.pieceType,
		CurUsers:  r.CurUsers(),
		MaxUsers:  len(r.users),
		Open:      r.open,
	}
	if owner != nil {
		b.OwnerUid = owner.GetUid()
		b.FieldId = owner.GetFieldId()
		b.X, b.Y = owner.GetPosition()
	}
	if d, ok := r.frame.(base.BalloonDecorator); ok {
		d.Decorate(b)
	}
	return b
}

// UpdateBalloon 交易房间没有气球
func (r *Room) UpdateBalloon() {
	if r.closed || r.kind == proto.TradingRoom {
		return
	}
	b := r.Balloon()
	if r.env.Field != nil {
		r.env.Field.SetBalloon(b)
	}
	if r.env.Directory != nil {
		r.env.Directory.Publish(r.serial, b)
	}
}

// Tick 周期性调用 商店到期等
func (r *Room) Tick(now time.Time) {
	r.Lock()
	defer r.Unlock()
	if r.closed {
		return
	}
	if t, ok := r.frame.(base.Tickable); ok {
		t.OnTick(now)
	}
	r.processLeaveRequest()
}

// Disconnect 角色下线 返回true表示作为托管继续留在房间
func (r *Room) Disconnect(c base.Character) bool {
	r.Lock()
	defer r.Unlock()
	if r.closed {
		return false
	}
	slot := r.slotOf(c.GetUid())
	if slot < 0 {
		return false
	}
	if h, ok := r.frame.(base.HuskKeeper); ok && h.KeepHusk(slot) {
		logs.Info("[Room] serial=%d uid=%s keeps running as husk", r.serial, c.GetUid())
		return true
	}
	r.leave(slot, proto.LeaveUserRequest, true)
	r.processLeaveRequest()
	return false
}

// Reattach 托管的房主重新上线
func (r *Room) Reattach(c base.Character) bool {
	r.Lock()
	defer r.Unlock()
	if r.closed || r.users[0] == nil || r.users[0].GetUid() != c.GetUid() {
		return false
	}
	h, ok := r.frame.(base.HuskKeeper)
	if !ok {
		return false
	}
	r.users[0] = c
	c.SetMiniRoom(r.serial, 0)
	c.SendPacket(proto.EnterResultPushData(r.kind, len(r.users), 0, r.avatars(), r.title, r.frame.EnterData(0)))
	h.Reattach(c)
	r.processLeaveRequest()
	return true
}

// Destroy 强制关闭 所有人使用同一个原因
func (r *Room) Destroy(reason proto.LeaveReason) {
	r.Lock()
	defer r.Unlock()
	if r.closed {
		return
	}
	r.DoCloseRequest(-1, reason, reason)
	r.processLeaveRequest()
}

// Info 房间快照 管理后台使用
type Info struct {
	Serial   int64              `json:"serial"`
	Kind     proto.MiniRoomType `json:"kind"`
	Title    string             `json:"title"`
	Private  bool               `json:"private"`
	Open     bool               `json:"open"`
	Managed  bool               `json:"managed"`
	OpenedAt time.Time          `json:"openedAt"`
	Users    []proto.Avatar     `json:"users"`
	ChatLog  []string           `json:"chatLog"`
}

func (r *Room) Info() Info {
	r.Lock()
	defer r.Unlock()
	return Info{
		Serial:   r.serial,
		Kind:     r.kind,
		Title:    r.title,
		Private:  r.private,
		Open:     r.open,
		Managed:  r.managed,
		OpenedAt: r.openedAt,
		Users:    r.avatars(),
		ChatLog:  r.chatLog,
	}
}
