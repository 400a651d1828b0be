package route

import (
	"miniroom/common/utils"
	"miniroom/framework/node"
	"miniroom/game/handler"
	"miniroom/game/logic"
)

const (
	requestRate  = 20
	requestBurst = 40
)

func Register(rooms *logic.RoomManager, chars *logic.CharacterManager, field *logic.FieldBoard) node.LogicHandler {
	handlers := make(node.LogicHandler)
	miniRoomHandler := handler.NewMiniRoomHandler(rooms, chars, field, utils.NewRateLimiter(requestRate, requestBurst))
	handlers["miniRoomHandler.miniRoomNotify"] = miniRoomHandler.MiniRoomNotify
	handlers["miniRoomHandler.userOnline"] = miniRoomHandler.UserOnline
	handlers["miniRoomHandler.userMove"] = miniRoomHandler.UserMove
	handlers["miniRoomHandler.userOffline"] = miniRoomHandler.UserOffline
	return handlers
}
