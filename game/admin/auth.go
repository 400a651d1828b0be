package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"miniroom/common"
	"miniroom/common/biz"
	"miniroom/common/jwts"
	"miniroom/common/logs"
)

const claimsKey = "claims"

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Token")
			c.Header("Access-Control-Max-Age", "172800")
		}
		if method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Auth 校验请求头中的Token
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Token")
		claims, err := jwts.ParseToken(token, secret)
		if err != nil {
			logs.Warn("[Admin] %s %s invalid token:%v", c.Request.Method, c.Request.URL.Path, err)
			common.Fail(c, biz.TokenInfoError)
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireGm 只有gm可以强制关闭房间
func RequireGm() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(claimsKey)
		claims, ok := v.(*jwts.CustomClaims)
		if !ok || !claims.Gm {
			common.Fail(c, biz.ThisCharacterNotAllowed)
			c.Abort()
			return
		}
		c.Next()
	}
}
