package main

import (
	"net/http"
	"staybook/src/controllers"
	"staybook/src/middlewares"

	"github.com/gin-gonic/gin"
)

func (a *App) guestAuthHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	limit := func(ctx *gin.Context) { ctx.Next() }
	if a.AuthLimiter != nil {
		limit = middlewares.RateLimit(a.AuthLimiter)
	}
	g.
		POST("/signup", limit, func(ctx *gin.Context) {
			user, status, err := controllers.AuthSignup(ctx, a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{"message": "User registered", "user": user})
		}).
		POST("/login", limit, func(ctx *gin.Context) {
			result, status, err := controllers.AuthLogin(ctx, a.DB, a.Config.JWT)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{
				"message":   "Login successful",
				"token":     result.Token,
				"expiresAt": result.ExpiresAt,
				"user":      result.User,
			})
		})
	return g
}

func (a *App) accountHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/logout", func(ctx *gin.Context) {
			status, err := controllers.AuthLogout(ctx, a.Denylist)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{"message": "Logged out"})
		}).
		GET("/profile", func(ctx *gin.Context) {
			user, status, err := controllers.AccountsGetProfile(ctx, a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{"message": "Profile retrieved", "user": user})
		}).
		PUT("/profile", func(ctx *gin.Context) {
			user, status, err := controllers.AccountsUpdateProfile(ctx, a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{"message": "Profile updated", "user": user})
		}).
		PUT("/profile/password", func(ctx *gin.Context) {
			status, err := controllers.AccountsChangePassword(ctx, a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(status, gin.H{"message": "Password changed"})
		}).
		POST("/become-owner", func(ctx *gin.Context) {
			owner, status, err := controllers.AccountsBecomeOwner(ctx, a.DB)
			if err != nil {
				respondError(ctx, err)
				return
			}
			msg := "You are now an owner"
			if status == http.StatusOK {
				msg = "Already an owner"
			}
			ctx.JSON(status, gin.H{"message": msg, "owner": owner})
		})
	return g
}
