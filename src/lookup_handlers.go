package main

import (
	"fmt"
	"net/http"
	"staybook/src/common"
	"staybook/src/lib"
	"staybook/src/lib/mailer"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) lookupHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/categories", func(ctx *gin.Context) {
			categories, err := common.ListCategories(a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Categories retrieved", "categories": categories})
		}).
		GET("/amenities", func(ctx *gin.Context) {
			amenities, err := common.ListAmenities(a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Amenities retrieved", "amenities": amenities})
		}).
		GET("/countries", func(ctx *gin.Context) {
			countries, err := common.ListCountries(a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Countries retrieved", "countries": countries})
		}).
		GET("/cities", func(ctx *gin.Context) {
			var query types.CitiesQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				bindError(ctx, err)
				return
			}
			cities, err := common.ListCities(a.DB, query.CountryID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Cities retrieved", "cities": cities})
		})
	return g
}

func (a *App) contactHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/contact-message", func(ctx *gin.Context) {
			var body types.ContactMessageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			msg, err := common.CreateContactMessage(a.DB, &body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			if support := a.Config.SMTP.SupportEmail; support != "" {
				mailer.Deliver(a.Mailer, &lib.SendMailInput{
					To:      []string{support},
					ReplyTo: msg.Email,
					Subject: fmt.Sprintf("[contact] %s", msg.Subject),
					Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message),
				})
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": msg.ID})
		})
	return g
}
