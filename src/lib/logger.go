package lib

import (
	"io"
	"os"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Local runs get a console
// writer; everything else logs JSON. A non-empty file adds a rotated sink.
func InitLogger(env, level, file string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if env == "local" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    500,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", "staybook").
		Logger()
}
