package proto

// Avatar 房间内成员展示信息
type Avatar struct {
	Slot int    `json:"slot"`
	Uid  string `json:"uid"`
	Name string `json:"name"`
}

// Balloon 地图上房间的气球标识
type Balloon struct {
	Serial    int64        `json:"serial"`
	Kind      MiniRoomType `json:"kind"`
	FieldId   int          `json:"fieldId"`
	OwnerUid  string       `json:"ownerUid"`
	Title     string       `json:"title"`
	Private   bool         `json:"private"`
	PieceType int          `json:"pieceType"`
	CurUsers  int          `json:"curUsers"`
	MaxUsers  int          `json:"maxUsers"`
	GameOn    bool         `json:"gameOn"`
	Open      bool         `json:"open"`
	X         int          `json:"x"`
	Y         int          `json:"y"`
}

// MiniGameRecord 推送给客户端的战绩
type MiniGameRecord struct {
	Slot   int `json:"slot"`
	Wins   int `json:"wins"`
	Ties   int `json:"ties"`
	Losses int `json:"losses"`
	Score  int `json:"score"`
}
