package main

import (
	"net/http"
	"staybook/src/common"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) publicSpotHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/all-spots", func(ctx *gin.Context) {
			spots, err := common.ListSpots(a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Spots retrieved", "spots": spots, "count": len(spots)})
		}).
		GET("/spot_details/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			spot, err := common.GetSpotDetails(a.DB, params.ID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Spot retrieved", "spot": spot})
		}).
		GET("/spot-availability/:spotId", func(ctx *gin.Context) {
			var params types.SpotURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			availability, err := common.GetSpotAvailability(a.DB, params.SpotID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Availability retrieved", "availability": availability})
		}).
		GET("/top-booked-spots", func(ctx *gin.Context) {
			var query types.TopSpotsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			spots, err := common.TopBookedSpots(a.DB, query.Limit)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Top booked spots retrieved", "spots": spots})
		}).
		GET("/search-spots", func(ctx *gin.Context) {
			var query types.SearchSpotsQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			spots, err := common.SearchSpots(a.DB, &query)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Search results", "spots": spots, "count": len(spots)})
		})
	return g
}

func (a *App) spotHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/add-spot", func(ctx *gin.Context) {
			var body types.SpotRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			spot, err := common.AddSpot(a.DB, ctx.GetUint("id"), &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Spot created", "spot": spot})
		}).
		PUT("/update-spot/:spotId", func(ctx *gin.Context) {
			var params types.SpotURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			var body types.SpotRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			if err := common.UpdateSpot(a.DB, ctx.GetUint("id"), params.SpotID, &body); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Spot updated", "spotId": params.SpotID})
		}).
		DELETE("/delete-spot", func(ctx *gin.Context) {
			var body types.DeleteSpotRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			if err := common.DeleteSpot(a.DB, ctx.GetUint("id"), body.SpotID); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Spot deleted", "spotId": body.SpotID})
		}).
		GET("/owner/spots", func(ctx *gin.Context) {
			spots, err := common.ListOwnerSpots(a.DB, ctx.GetUint("id"))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Spots retrieved", "spots": spots, "count": len(spots)})
		})
	return g
}
