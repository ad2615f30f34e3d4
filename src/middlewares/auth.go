package middlewares

import (
	"net/http"
	"staybook/src/apperrors"
	"staybook/src/lib"
	"staybook/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func abortUnauthorized(ctx *gin.Context, msg string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": msg,
		"error":   apperrors.ErrorTypeUnauthorized,
	})
}

// Auth verifies the bearer JWT and exposes its claims to handlers as "id",
// "email" and "claims". Tokens revoked through logout are rejected when a
// denylist is configured.
func Auth(secret string, denylist lib.TokenDenylist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw, err := bearerToken(ctx)
		if err != nil {
			abortUnauthorized(ctx, err.Error())
			return
		}
		claims, err := utils.ParseToken(secret, raw)
		if err != nil {
			log.Debug().Err(err).Str("ip", ctx.ClientIP()).Msg("Token rejected")
			abortUnauthorized(ctx, "invalid or expired token")
			return
		}
		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.IsRevoked(ctx.Request.Context(), claims.ID)
			if err != nil {
				// fail open
				log.Error().Err(err).Msg("Could not check token denylist")
			} else if revoked {
				abortUnauthorized(ctx, "token has been revoked")
				return
			}
		}
		ctx.Set("id", claims.UserID)
		ctx.Set("email", claims.Email)
		ctx.Set("claims", claims)
		ctx.Next()
	}
}
