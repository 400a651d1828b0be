package room

import (
	"miniroom/framework/msError"
	"miniroom/game/component/base"
	"miniroom/game/component/memory"
	"miniroom/game/component/omok"
	"miniroom/game/component/proto"
	"miniroom/game/component/shop"
	"miniroom/game/component/trade"
	"miniroom/game/models/request"
)

type frameBuilder func(r base.RoomFrame, owner base.Character, data *request.MiniRoomData) (base.Frame, *msError.Error)

// frames 按房间种类创建玩法
var frames = map[proto.MiniRoomType]frameBuilder{
	proto.Omok:         omok.NewGameFrame,
	proto.MemoryGame:   memory.NewGameFrame,
	proto.TradingRoom:  trade.NewTradingRoom,
	proto.PersonalShop: shop.NewPersonalShop,
}
