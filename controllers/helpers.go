package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openscribe/blogapi/utils"
)

// internalError logs the underlying store/runtime failure server-side and
// answers with a sanitized 500; raw errors never reach the client.
func internalError(ctx *gin.Context, op string, err error) {
	if utils.Sugar != nil {
		utils.Sugar.Errorw("internal error", "op", op, "error", err)
	}
	utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
}
