package biz

import (
	"errors"

	"miniroom/framework/msError"
)

const OK = 0

var (
	Fail             = msError.NewError(-1, errors.New("请求失败"))
	RequestDataError = msError.NewError(-2, errors.New("请求数据错误"))
	SqlError         = msError.NewError(-3, errors.New("数据库操作错误"))
	InvalidUsers     = msError.NewError(-4, errors.New("无效用户"))
	TokenInfoError   = msError.NewError(-5, errors.New("无效的token"))
)

// 进入/创建房间失败的原因 数值是客户端协议的一部分 不能修改
var (
	RoomAlreadyClosed       = msError.NewError(1, errors.New("the room is already closed"))
	FullCapacity            = msError.NewError(2, errors.New("you can't enter the room due to full capacity"))
	OtherRequests           = msError.NewError(3, errors.New("other requests are being fulfilled this minute"))
	CantWhileDead           = msError.NewError(4, errors.New("you can't do it while you're dead"))
	CantInMiddleOfEvent     = msError.NewError(5, errors.New("you can't do it in the middle of an event"))
	ThisCharacterNotAllowed = msError.NewError(6, errors.New("this character is not allowed to do it"))
	CantTradeNow            = msError.NewError(7, errors.New("at this time you can't trade"))
	NotInSameField          = msError.NewError(8, errors.New("you can only enter from the same map"))
	CantOpenStoreNearPortal = msError.NewError(9, errors.New("you can't open a store near a portal"))
	CantStartGameHere       = msError.NewError(10, errors.New("you may not open a mini game here"))
	CantEstablishHere       = msError.NewError(11, errors.New("you can't establish a room here"))
	Banned                  = msError.NewError(12, errors.New("you have been expelled from this room"))
	NotEnoughMoney          = msError.NewError(13, errors.New("you don't have enough mesos"))
	NoGameSetItem           = msError.NewError(14, errors.New("you need a game set to open this game"))
	NoShopPermit            = msError.NewError(15, errors.New("you need a store permit"))
	AlreadyMember           = msError.NewError(16, errors.New("you are already in this room"))
	IncorrectPassword       = msError.NewError(17, errors.New("the password is incorrect"))
)

// 房间内业务规则拒绝
var (
	NotInRoom          = msError.NewError(401, errors.New("not in this room"))
	RoomNotExist       = msError.NewError(402, errors.New("room does not exist"))
	NotOwner           = msError.NewError(403, errors.New("only the owner can do it"))
	NotYourTurn        = msError.NewError(404, errors.New("not your turn"))
	GameNotStarted     = msError.NewError(405, errors.New("game is not in progress"))
	GameInProgress     = msError.NewError(406, errors.New("game is in progress"))
	NotReady           = msError.NewError(407, errors.New("the guest is not ready"))
	NeedTwoPlayers     = msError.NewError(408, errors.New("two players are needed"))
	InvalidPosition    = msError.NewError(409, errors.New("invalid stone position"))
	DoubleThree        = msError.NewError(410, errors.New("double three is forbidden"))
	NoPendingRequest   = msError.NewError(412, errors.New("no pending request"))
	TimeNotOver        = msError.NewError(413, errors.New("time limit not reached"))
	InventoryFull      = msError.NewError(414, errors.New("inventory is full"))
	ItemNotFound       = msError.NewError(415, errors.New("item not found"))
	ItemUntradable     = msError.NewError(416, errors.New("the item can't be traded"))
	AlreadyLocked      = msError.NewError(417, errors.New("trade already locked"))
	MoneyLimit         = msError.NewError(418, errors.New("mesos limit exceeded"))
	ShopFull           = msError.NewError(419, errors.New("no more items can be listed"))
	ShopOpened         = msError.NewError(420, errors.New("can't do it while the shop is open"))
	ShopNotOpened      = msError.NewError(421, errors.New("the shop is not open"))
	NoMoreItem         = msError.NewError(422, errors.New("not enough items in stock"))
	NoListing          = msError.NewError(423, errors.New("nothing is listed"))
	ChatMuted          = msError.NewError(424, errors.New("chat is blocked"))
	InviteNoCharacter  = msError.NewError(425, errors.New("unable to find the character"))
	InviteBusy         = msError.NewError(426, errors.New("the character is busy"))
	InviteSelf         = msError.NewError(427, errors.New("you can't invite yourself"))
	NotEnoughEntryFee  = msError.NewError(428, errors.New("a player can't pay the entry fee"))
	TransferFailed     = msError.NewError(429, errors.New("the transfer could not be completed"))
)

var silent = map[int]struct{}{
	OtherRequests.Code: {},
	AlreadyMember.Code: {},
}

// IsSilent 返回该错误是否不需要弹窗提示客户端
func IsSilent(err *msError.Error) bool {
	if err == nil {
		return true
	}
	_, ok := silent[err.Code]
	return ok
}
