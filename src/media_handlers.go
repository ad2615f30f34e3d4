package main

import (
	"errors"
	"fmt"
	"net/http"
	"staybook/src/apperrors"
	"staybook/src/common"
	awslib "staybook/src/lib/aws"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) mediaHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/spot-media/upload-url", func(ctx *gin.Context) {
			var body types.UploadURLRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			owner, err := common.GetOwnerByUser(a.DB, ctx.GetUint("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			if a.Uploader == nil {
				respondError(ctx, apperrors.NewUnavailableError("image uploads are not available"))
				return
			}
			upload, err := a.Uploader.PresignUpload(ctx.Request.Context(), fmt.Sprintf("spots/%d", owner.ID), body.FileName, body.ContentType)
			if errors.Is(err, awslib.ErrStorageDisabled) {
				respondError(ctx, apperrors.NewUnavailableError("image uploads are not available"))
				return
			}
			if err != nil {
				respondError(ctx, apperrors.NewInternalError("presign upload", err))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Upload URL created", "upload": upload})
		})
	return g
}
