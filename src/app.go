package main

import (
	"staybook/src/apperrors"
	"staybook/src/config"
	"staybook/src/lib"
	awslib "staybook/src/lib/aws"
	"staybook/src/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// App carries the dependencies every route group needs.
type App struct {
	DB          *gorm.DB
	Config      *config.Config
	Mailer      lib.Mailer
	Uploader    awslib.Uploader
	Denylist    lib.TokenDenylist
	AuthLimiter *middlewares.IPRateLimiter
}

func respondError(ctx *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Type == apperrors.ErrorTypeInternal {
		log.Error().Err(appErr).Str("method", ctx.Request.Method).Str("path", ctx.FullPath()).Msg("Request failed")
	}
	ctx.Error(err)
	ctx.AbortWithStatusJSON(appErr.Status(), gin.H{
		"message": appErr.PublicMessage(),
		"error":   appErr.Type,
	})
}

func bindError(ctx *gin.Context, err error) {
	respondError(ctx, apperrors.NewValidationError(err.Error()))
}
