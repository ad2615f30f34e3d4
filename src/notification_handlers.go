package main

import (
	"net/http"
	"staybook/src/common"
	"staybook/src/types"

	"github.com/gin-gonic/gin"
)

func (a *App) notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	list := func(ctx *gin.Context) {
		notifications, unread, err := common.ListNotifications(a.DB, ctx.GetUint("id"))
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"message":       "Notifications retrieved",
			"notifications": notifications,
			"unread":        unread,
		})
	}
	g.
		POST("/Notifications", list).
		GET("/notifications", list).
		POST("/mark-notification-read", func(ctx *gin.Context) {
			var body types.MarkNotificationReadRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				bindError(ctx, err)
				return
			}
			if err := common.MarkNotificationRead(a.DB, ctx.GetUint("id"), body.NotificationID); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
		})
	return g
}
