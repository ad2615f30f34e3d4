package lib

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func NewScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("Error initializing Scheduler")
		return nil, err
	}
	return sched, nil
}

// AddIntervalJob runs task every interval; overlapping runs are skipped.
func AddIntervalJob(sched gocron.Scheduler, name string, interval time.Duration, task func()) (gocron.Job, error) {
	j, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Str("job", name).Msg("Error scheduling job")
		return nil, err
	}
	log.Info().Str("job", name).Str("id", j.ID().String()).Dur("interval", interval).Msg("Job scheduled")
	return j, nil
}
