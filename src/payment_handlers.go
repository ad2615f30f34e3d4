package main

import (
	"net/http"
	"staybook/src/common"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/create-payment", func(ctx *gin.Context) {
			var body types.CreatePaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			payment, err := common.CreatePayment(a.DB, ctx.GetUint("id"), &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Payment recorded", "payment": payment})
		})
	return g
}
