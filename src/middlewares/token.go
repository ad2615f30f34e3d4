package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var errMissingToken = errors.New("missing authorization header")

// bearerToken pulls the raw JWT out of "Authorization: Bearer <token>".
func bearerToken(ctx *gin.Context) (string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("malformed authorization header")
	}
	return strings.TrimSpace(token), nil
}
