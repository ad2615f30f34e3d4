package main

import (
	"net/http"
	"staybook/src/common"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/submit-review", func(ctx *gin.Context) {
			var body types.SubmitReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			review, err := common.SubmitReview(a.DB, ctx.GetUint("id"), &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
		})
	return g
}

func (a *App) favoriteHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/toggle-favorite", func(ctx *gin.Context) {
			var body types.ToggleFavoriteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			favorited, err := common.ToggleFavorite(a.DB, ctx.GetUint("id"), body.SpotID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			msg := "Removed from favorites"
			if favorited {
				msg = "Added to favorites"
			}
			ctx.JSON(http.StatusOK, gin.H{"message": msg, "favorited": favorited, "spotId": body.SpotID})
		}).
		GET("/favorites", func(ctx *gin.Context) {
			spots, err := common.ListFavoriteSpots(a.DB, ctx.GetUint("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Favorites retrieved", "spots": spots})
		})
	return g
}
