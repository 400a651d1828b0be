package admin

import (
	"github.com/gin-gonic/gin"
)

// RegisterRouter 管理后台路由
func RegisterRouter(api *RoomApi, secret string, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), Cors())
	g := r.Group("/miniRooms", Auth(secret))
	g.GET("", api.List)
	g.GET("/:serial", api.Get)
	g.DELETE("/:serial", RequireGm(), api.Destroy)
	r.GET("/shopRecords/:uid", Auth(secret), api.SellRecords)
	return r
}
