package request

import "miniroom/game/component/proto"

type MiniRoomReq struct {
	Type proto.MiniRoomProtocol `json:"type"`
	Data MiniRoomData           `json:"data"`
}

// MiniRoomData 各操作码共用的参数 只解析对应操作码需要的字段
type MiniRoomData struct {
	//创建/进入
	Kind       proto.MiniRoomType `json:"kind"`
	Serial     int64              `json:"serial"`
	Title      string             `json:"title"`
	Password   string             `json:"password"`
	Private    bool               `json:"private"`
	PieceType  int                `json:"pieceType"`
	ItemId     int32              `json:"itemId"`
	Tournament bool               `json:"tournament"`
	Round      int                `json:"round"`
	//邀请
	TargetUid    string             `json:"targetUid"`
	InviteResult proto.InviteResult `json:"inviteResult"`
	//聊天
	Text string `json:"text"`
	//气球/商店开关
	Open bool `json:"open"`
	//物品
	InvType   int   `json:"invType"`
	Pos       int   `json:"pos"`
	Count     int   `json:"count"`
	SetSize   int   `json:"setSize"`
	Price     int64 `json:"price"`
	Money     int64 `json:"money"`
	TradeSlot int   `json:"tradeSlot"`
	Index     int   `json:"index"`
	//小游戏
	Accept bool `json:"accept"`
	Slot   int  `json:"slot"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Color  int  `json:"color"`
	First  bool `json:"first"`
}
