package boot

import (
	"staybook/src/common"
	"staybook/src/config"
	"staybook/src/lib"
	"staybook/src/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Error().Err(err).Msg("Error running migrations")
		return err
	}
	log.Info().Int("tables", len(models.All())).Msg("Migrations applied")
	return nil
}

// InitScheduler starts the background jobs: the orphaned payment sweep.
func InitScheduler(db *gorm.DB, cfg config.SchedulerConfig) (gocron.Scheduler, error) {
	sched, err := lib.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = lib.AddIntervalJob(sched, "payment-orphan-sweep", cfg.SweepInterval, func() {
		if _, err := common.SweepOrphanedPayments(db, cfg.PaymentOrphanAfter); err != nil {
			log.Error().Err(err).Msg("Payment sweep failed")
		}
	})
	if err != nil {
		return nil, err
	}
	sched.Start()
	log.Info().Int("jobs", len(sched.Jobs())).Msg("Scheduler started")
	return sched, nil
}

func StopScheduler(sched gocron.Scheduler) {
	if sched == nil {
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error stopping scheduler")
		return
	}
	log.Info().Msg("Scheduler stopped")
}
