package proto

import "miniroom/framework/msError"

const pushRouter = "MiniRoomPush"

func pushData(t MiniRoomProtocol, data map[string]any) map[string]any {
	return map[string]any{
		"type":       t,
		"data":       data,
		"pushRouter": pushRouter,
	}
}

// Type 取出推送消息的操作码 测试与日志使用
func Type(push any) MiniRoomProtocol {
	m, ok := push.(map[string]any)
	if !ok {
		return -1
	}
	t, ok := m["type"].(MiniRoomProtocol)
	if !ok {
		return -1
	}
	return t
}

// Data 取出推送消息的data
func Data(push any) map[string]any {
	m, ok := push.(map[string]any)
	if !ok {
		return nil
	}
	d, _ := m["data"].(map[string]any)
	return d
}

func EnterResultPushData(kind MiniRoomType, maxUsers int, mySlot int, avatars []Avatar, title string, roomData any) any {
	return pushData(MRP_EnterResult, map[string]any{
		"kind":     kind,
		"maxUsers": maxUsers,
		"mySlot":   mySlot,
		"avatars":  avatars,
		"title":    title,
		"roomData": roomData,
	})
}

// EnterFailPushData 进入/创建失败 silent的错误码客户端不弹窗
func EnterFailPushData(err *msError.Error, silent bool) any {
	data := map[string]any{
		"code": err.Code,
	}
	if !silent {
		data["msg"] = err.Error()
	}
	return pushData(MRP_EnterResult, data)
}

func AvatarPushData(avatar Avatar, roomData any) any {
	return pushData(MRP_Avatar, map[string]any{
		"avatar":   avatar,
		"roomData": roomData,
	})
}

func LeavePushData(slot int, reason LeaveReason) any {
	return pushData(MRP_Leave, map[string]any{
		"slot":   slot,
		"reason": reason,
	})
}

func ChatPushData(slot int, text string) any {
	return pushData(MRP_Chat, map[string]any{
		"slot": slot,
		"text": text,
	})
}

func GameMessagePushData(text string) any {
	return pushData(MRP_GameMessage, map[string]any{
		"text": text,
	})
}

func InvitePushData(kind MiniRoomType, inviter string, serial int64) any {
	return pushData(MRP_Invite, map[string]any{
		"kind":    kind,
		"inviter": inviter,
		"serial":  serial,
	})
}

func InviteResultPushData(result InviteResult, target string) any {
	return pushData(MRP_InviteResult, map[string]any{
		"result": result,
		"target": target,
	})
}

func BalloonPushData(b *Balloon) any {
	return pushData(MRP_Balloon, map[string]any{
		"balloon": b,
	})
}

func TradePutItemPushData(slot int, tradeSlot int, item any) any {
	return pushData(TRP_PutItem, map[string]any{
		"slot":      slot,
		"tradeSlot": tradeSlot,
		"item":      item,
	})
}

func TradePutMoneyPushData(slot int, money int64) any {
	return pushData(TRP_PutMoney, map[string]any{
		"slot":  slot,
		"money": money,
	})
}

func TradeLockPushData(slot int) any {
	return pushData(TRP_Trade, map[string]any{
		"slot": slot,
	})
}

func ShopRefreshPushData(listings any) any {
	return pushData(PSP_Refresh, map[string]any{
		"listings": listings,
	})
}

func ShopBuyResultPushData(result ShopResult) any {
	return pushData(PSP_BuyResult, map[string]any{
		"result": result,
	})
}

func ShopAddSoldItemPushData(index int, quantity int, buyer string, money int64) any {
	return pushData(PSP_AddSoldItem, map[string]any{
		"index":    index,
		"quantity": quantity,
		"buyer":    buyer,
		"money":    money,
	})
}

func ShopSetOpenedPushData(opened bool) any {
	return pushData(PSP_SetOpened, map[string]any{
		"opened": opened,
	})
}

func ReadyPushData(ready bool) any {
	t := MGRP_Ready
	if !ready {
		t = MGRP_CancelReady
	}
	return pushData(t, map[string]any{})
}

func StartPushData(turn int, gameData any) any {
	return pushData(MGRP_Start, map[string]any{
		"turn":     turn,
		"gameData": gameData,
	})
}

func TieRequestPushData() any {
	return pushData(MGRP_TieRequest, map[string]any{})
}

func TieResultPushData(accepted bool) any {
	return pushData(MGRP_TieResult, map[string]any{
		"accepted": accepted,
	})
}

func RetreatRequestPushData() any {
	return pushData(MGRP_RetreatRequest, map[string]any{})
}

func RetreatResultPushData(accepted bool, count int, turn int) any {
	return pushData(MGRP_RetreatResult, map[string]any{
		"accepted": accepted,
		"count":    count,
		"turn":     turn,
	})
}

func LeaveEngagePushData(slot int, booked bool) any {
	t := MGRP_LeaveEngage
	if !booked {
		t = MGRP_LeaveEngageCancel
	}
	return pushData(t, map[string]any{
		"slot": slot,
	})
}

func GameResultPushData(result GameResult, winner int, records []MiniGameRecord) any {
	return pushData(MGRP_GameResult, map[string]any{
		"result":  result,
		"winner":  winner,
		"records": records,
	})
}

func TimeOverPushData(turn int) any {
	return pushData(MGRP_TimeOver, map[string]any{
		"turn": turn,
	})
}

func PutStonePushData(x, y, color int) any {
	return pushData(ORP_PutStoneChecker, map[string]any{
		"x":     x,
		"y":     y,
		"color": color,
	})
}

func InvalidStonePushData(reason InvalidStoneReason) any {
	return pushData(ORP_InvalidStonePosition, map[string]any{
		"reason": reason,
	})
}

func TurnUpCardPushData(first bool, index int, value int) any {
	return pushData(MGP_TurnUpCard, map[string]any{
		"first": first,
		"index": index,
		"value": value,
	})
}

func MatchCardPushData(slot int, first, second int, matched bool) any {
	return pushData(MGP_MatchCard, map[string]any{
		"slot":    slot,
		"first":   first,
		"second":  second,
		"matched": matched,
	})
}
