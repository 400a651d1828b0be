package proto

// MiniRoomType 房间种类
type MiniRoomType int

const (
	MiniRoomNone MiniRoomType = 0
	Omok         MiniRoomType = 1
	MemoryGame   MiniRoomType = 2
	TradingRoom  MiniRoomType = 3
	PersonalShop MiniRoomType = 4
)

func (t MiniRoomType) String() string {
	switch t {
	case Omok:
		return "omok"
	case MemoryGame:
		return "memoryGame"
	case TradingRoom:
		return "tradingRoom"
	case PersonalShop:
		return "personalShop"
	}
	return "none"
}

// IsMiniGame 两人回合制小游戏
func (t MiniRoomType) IsMiniGame() bool {
	return t == Omok || t == MemoryGame
}

// MiniRoomProtocol 操作码 数值是与客户端约定的协议 不可修改
type MiniRoomProtocol int

const (
	MRP_Create       MiniRoomProtocol = 0x00
	MRP_CreateResult MiniRoomProtocol = 0x01
	MRP_Invite       MiniRoomProtocol = 0x02
	MRP_InviteResult MiniRoomProtocol = 0x03
	MRP_Enter        MiniRoomProtocol = 0x04
	MRP_EnterResult  MiniRoomProtocol = 0x05
	MRP_Chat         MiniRoomProtocol = 0x06
	MRP_GameMessage  MiniRoomProtocol = 0x07
	MRP_UserChat     MiniRoomProtocol = 0x08
	MRP_Avatar       MiniRoomProtocol = 0x09
	MRP_Leave        MiniRoomProtocol = 0x0A
	MRP_Balloon      MiniRoomProtocol = 0x0B

	TRP_PutItem  MiniRoomProtocol = 0x0F
	TRP_PutMoney MiniRoomProtocol = 0x10
	TRP_Trade    MiniRoomProtocol = 0x11

	PSP_PutItem             MiniRoomProtocol = 0x16
	PSP_BuyItem             MiniRoomProtocol = 0x17
	PSP_BuyResult           MiniRoomProtocol = 0x18
	PSP_Refresh             MiniRoomProtocol = 0x19
	PSP_AddSoldItem         MiniRoomProtocol = 0x1A
	PSP_MoveItemToInventory MiniRoomProtocol = 0x1B
	PSP_Ban                 MiniRoomProtocol = 0x1C
	PSP_SetOpened           MiniRoomProtocol = 0x1D
	PSP_Logout              MiniRoomProtocol = 0x1E

	MGRP_TieRequest        MiniRoomProtocol = 0x32
	MGRP_TieResult         MiniRoomProtocol = 0x33
	MGRP_GiveUpRequest     MiniRoomProtocol = 0x34
	MGRP_GiveUpResult      MiniRoomProtocol = 0x35
	MGRP_RetreatRequest    MiniRoomProtocol = 0x36
	MGRP_RetreatResult     MiniRoomProtocol = 0x37
	MGRP_LeaveEngage       MiniRoomProtocol = 0x38
	MGRP_LeaveEngageCancel MiniRoomProtocol = 0x39
	MGRP_Ready             MiniRoomProtocol = 0x3A
	MGRP_CancelReady       MiniRoomProtocol = 0x3B
	MGRP_Ban               MiniRoomProtocol = 0x3C
	MGRP_Start             MiniRoomProtocol = 0x3D
	MGRP_GameResult        MiniRoomProtocol = 0x3E
	MGRP_TimeOver          MiniRoomProtocol = 0x3F

	ORP_PutStoneChecker      MiniRoomProtocol = 0x40
	ORP_InvalidStonePosition MiniRoomProtocol = 0x41

	MGP_TurnUpCard MiniRoomProtocol = 0x44
	MGP_MatchCard  MiniRoomProtocol = 0x45
)

// InvalidStoneReason ORP_InvalidStonePosition 的子类型
type InvalidStoneReason int

const (
	InvalidStoneNormal        InvalidStoneReason = 0x42
	InvalidStoneByDoubleThree InvalidStoneReason = 0x43
)

// LeaveReason 离开房间的原因
type LeaveReason int

const (
	LeaveNone            LeaveReason = -1 // 没有待处理的离开请求
	LeaveUserRequest     LeaveReason = 0x00
	LeaveWrongPosition   LeaveReason = 0x01
	LeaveClosed          LeaveReason = 0x02
	LeaveHostOut         LeaveReason = 0x03
	LeaveBooked          LeaveReason = 0x04
	LeaveKicked          LeaveReason = 0x05
	LeaveOpenTimeOver    LeaveReason = 0x06
	LeaveTradeDone       LeaveReason = 0x07
	LeaveTradeFail       LeaveReason = 0x08
	LeaveNoMoreItem      LeaveReason = 0x0E
	LeaveKickedTimeOver  LeaveReason = 0x0F
	LeaveStartManage     LeaveReason = 0x11
	LeaveDestroyByAdmin  LeaveReason = 0x14
	LeaveMiniGameUserReq LeaveReason = 0x15
	LeaveSilent          LeaveReason = 0xFF // 不通知离开者本人
)

// InviteResult 邀请结果
type InviteResult int

const (
	InviteSuccess     InviteResult = 0
	InviteNoCharacter InviteResult = 1
	InviteCannot      InviteResult = 2
	InviteRejected    InviteResult = 3
	InviteBlocked     InviteResult = 4
)

// ShopResult PSP_BuyResult 的结果码
type ShopResult int

const (
	ShopSuccess        ShopResult = 0
	ShopNoMoreItem     ShopResult = 1
	ShopNoMoney        ShopResult = 2
	ShopInventoryFull  ShopResult = 3
	ShopOverMoneyLimit ShopResult = 4
	ShopClosed         ShopResult = 5
	ShopInvalidRequest ShopResult = 6
)

// GameResult 小游戏一局的结果
type GameResult int

const (
	GameOnGoing GameResult = 0
	GameTie     GameResult = 1
	GameGiveUp  GameResult = 2
)

// NoSlot 表示没有找到座位/没有首张翻牌
const NoSlot = 0xFF
