package main

import (
	"fmt"
	"net/http"
	"os"
	"staybook/src/apperrors"
	"staybook/src/common"
	"staybook/src/lib"
	"staybook/src/lib/mailer"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) publicGiftCardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/gift-cards", func(ctx *gin.Context) {
			cards, err := common.ListGiftCards(a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Gift cards retrieved", "giftCards": cards})
		})
	return g
}

func (a *App) giftCardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/create-gift-card-purchase", func(ctx *gin.Context) {
			var body types.GiftCardPurchaseRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			purchase, card, err := common.PurchaseGiftCard(a.DB, ctx.GetUint("id"), &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			recipient := purchase.RecipientEmail
			if recipient == "" {
				recipient = ctx.GetString("email")
			}
			mailer.Deliver(a.Mailer, &lib.SendMailInput{
				To:      []string{recipient},
				Subject: fmt.Sprintf("Your %s gift card", card.Name),
				Body:    fmt.Sprintf("You received a gift card worth %.2f.\n\nRedeem it with code: %s\n", card.Amount, purchase.Code),
			})
			ctx.JSON(http.StatusCreated, gin.H{"message": "Gift card purchased", "purchase": purchase})
		}).
		GET("/gift-card-purchases/:code/qr", func(ctx *gin.Context) {
			var params types.GiftCardCodeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				bindError(ctx, err)
				return
			}
			purchase, err := common.GetGiftCardPurchaseByCode(a.DB, ctx.GetUint("id"), params.Code)
			if err != nil {
				respondError(ctx, err)
				return
			}
			f, err := os.CreateTemp("", "giftcard-*.jpeg")
			if err != nil {
				respondError(ctx, apperrors.NewInternalError("create qr file", err))
				return
			}
			filePath := f.Name()
			f.Close()
			defer os.Remove(filePath)
			if err := lib.SaveQRCode(purchase.Code, filePath); err != nil {
				respondError(ctx, apperrors.NewInternalError("render qr code", err))
				return
			}
			ctx.File(filePath)
		})
	return g
}
