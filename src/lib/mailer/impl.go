package mailer

import (
	"context"
	"staybook/src/lib"
	"time"

	"github.com/rs/zerolog/log"
)

const sendTimeout = 30 * time.Second

// Deliver sends in the background. Mail is a courtesy; a failure is logged
// and never fails the request that triggered it.
func Deliver(m lib.Mailer, input *lib.SendMailInput) {
	if m == nil || len(input.To) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := m.Send(ctx, input); err != nil {
			log.Error().Err(err).Strs("to", input.To).Str("subject", input.Subject).Msg("Error sending mail")
		}
	}()
}
