package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func RequestLogger(ctx *gin.Context) {
	start := time.Now()
	path := ctx.Request.URL.Path
	ctx.Next()

	status := ctx.Writer.Status()
	var event *zerolog.Event
	switch {
	case status >= 500:
		event = log.Error()
	case status >= 400:
		event = log.Warn()
	default:
		event = log.Info()
	}
	event = event.
		Str("method", ctx.Request.Method).
		Str("path", path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("ip", ctx.ClientIP())
	if id := ctx.GetUint("id"); id > 0 {
		event = event.Uint("user_id", id)
	}
	if len(ctx.Errors) > 0 {
		event = event.Str("errors", ctx.Errors.String())
	}
	event.Msg("Request")
}
