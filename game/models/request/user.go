package request

// UserOnlineReq connector在角色进入游戏服后转发
type UserOnlineReq struct {
	Name    string `json:"name"`
	FieldId int    `json:"fieldId"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type UserMoveReq struct {
	FieldId int `json:"fieldId"`
	X       int `json:"x"`
	Y       int `json:"y"`
}
