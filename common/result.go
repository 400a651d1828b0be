package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"miniroom/common/biz"
	"miniroom/framework/msError"
)

type Result struct {
	Code int `json:"code"`
	Msg  any `json:"msg"`
}

func F(err *msError.Error) Result {
	return Result{
		Code: err.Code,
		Msg:  err.Err.Error(),
	}
}

func S(data any) Result {
	return Result{
		Code: biz.OK,
		Msg:  data,
	}
}

func Fail(ctx *gin.Context, err *msError.Error) {
	ctx.JSON(http.StatusOK, F(err))
}

func Success(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, S(data))
}
