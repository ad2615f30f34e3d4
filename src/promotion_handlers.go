package main

import (
	"net/http"
	"staybook/src/common"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) publicPromotionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/promotions", func(ctx *gin.Context) {
			promotions, err := common.ListActivePromotions(a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Promotions retrieved", "promotions": promotions})
		})
	return g
}

func (a *App) promotionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/check-promo-or-giftcard", func(ctx *gin.Context) {
			var body types.CheckCodeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			result, err := common.CheckCode(a.DB, ctx.GetUint("id"), body.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Code is valid", "result": result})
		})
	return g
}
