package admin

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"miniroom/common"
	"miniroom/common/biz"
	"miniroom/common/logs"
	"miniroom/core/models/entity"
	"miniroom/game/component/proto"
	"miniroom/game/component/room"
	"miniroom/game/logic"
)

// RoomView 房间列表中的一项
type RoomView struct {
	Serial   int64              `json:"serial"`
	Kind     proto.MiniRoomType `json:"kind"`
	Title    string             `json:"title"`
	Private  bool               `json:"private"`
	Open     bool               `json:"open"`
	Managed  bool               `json:"managed"`
	OpenedAt time.Time          `json:"openedAt"`
	Users    []proto.Avatar     `json:"users"`
}

type SellRecordFinder interface {
	FindShopSellRecords(ctx context.Context, sellerUid string, limit int64) ([]*entity.ShopSellRecord, error)
}

// DirectoryReader 其他节点上的房间从redis查询
type DirectoryReader interface {
	Get(ctx context.Context, serial int64) (string, error)
}

const sellRecordLimit = 100

type RoomApi struct {
	rooms     *logic.RoomManager
	records   SellRecordFinder
	directory DirectoryReader
}

func NewRoomApi(rooms *logic.RoomManager, records SellRecordFinder, directory DirectoryReader) *RoomApi {
	return &RoomApi{
		rooms:     rooms,
		records:   records,
		directory: directory,
	}
}

func (a *RoomApi) List(ctx *gin.Context) {
	list := a.rooms.Rooms()
	views := make([]RoomView, 0, len(list))
	for _, r := range list {
		info := r.Info()
		var view RoomView
		if err := copier.Copy(&view, &info); err != nil {
			logs.Error("[Admin] copy room %d err:%v", info.Serial, err)
			continue
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Serial < views[j].Serial
	})
	common.Success(ctx, gin.H{"total": len(views), "rooms": views})
}

func parseSerial(ctx *gin.Context) (int64, bool) {
	serial, err := strconv.ParseInt(ctx.Param("serial"), 10, 64)
	if err != nil {
		common.Fail(ctx, biz.RequestDataError)
		return 0, false
	}
	return serial, true
}

func (a *RoomApi) room(ctx *gin.Context) *room.Room {
	serial, ok := parseSerial(ctx)
	if !ok {
		return nil
	}
	r := a.rooms.Get(serial)
	if r == nil {
		common.Fail(ctx, biz.RoomNotExist)
		return nil
	}
	return r
}

// Get 房间详情 包括聊天记录 不在本节点时返回目录中的气球
func (a *RoomApi) Get(ctx *gin.Context) {
	serial, ok := parseSerial(ctx)
	if !ok {
		return
	}
	r := a.rooms.Get(serial)
	if r == nil {
		a.remote(ctx, serial)
		return
	}
	info := r.Info()
	var detail room.Info
	if err := copier.CopyWithOption(&detail, &info, copier.Option{DeepCopy: true}); err != nil {
		logs.Error("[Admin] copy room %d err:%v", info.Serial, err)
		common.Fail(ctx, biz.Fail)
		return
	}
	common.Success(ctx, detail)
}

func (a *RoomApi) remote(ctx *gin.Context, serial int64) {
	if a.directory == nil {
		common.Fail(ctx, biz.RoomNotExist)
		return
	}
	data, err := a.directory.Get(ctx, serial)
	if err != nil {
		logs.Error("[Admin] directory get %d err:%v", serial, err)
		common.Fail(ctx, biz.Fail)
		return
	}
	if data == "" {
		common.Fail(ctx, biz.RoomNotExist)
		return
	}
	var balloon proto.Balloon
	if err := json.Unmarshal([]byte(data), &balloon); err != nil {
		common.Fail(ctx, biz.Fail)
		return
	}
	common.Success(ctx, gin.H{"remote": true, "balloon": balloon})
}

// SellRecords 商店出售记录 最新的在前
func (a *RoomApi) SellRecords(ctx *gin.Context) {
	if a.records == nil {
		common.Success(ctx, []*entity.ShopSellRecord{})
		return
	}
	list, err := a.records.FindShopSellRecords(ctx, ctx.Param("uid"), sellRecordLimit)
	if err != nil {
		logs.Error("[Admin] find sell records uid=%s err:%v", ctx.Param("uid"), err)
		common.Fail(ctx, biz.SqlError)
		return
	}
	common.Success(ctx, list)
}

func (a *RoomApi) Destroy(ctx *gin.Context) {
	r := a.room(ctx)
	if r == nil {
		return
	}
	if err := a.rooms.Destroy(r.GetSerial(), proto.LeaveDestroyByAdmin); err != nil {
		common.Fail(ctx, err)
		return
	}
	logs.Info("[Admin] room %d destroyed", r.GetSerial())
	common.Success(ctx, gin.H{"serial": r.GetSerial()})
}
