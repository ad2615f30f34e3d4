package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to postgres and configures the shared pool. The returned
// handle is passed to every handler; there is no package-level instance.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		log.Error().Err(err).Msg("Error connecting to database")
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Error().Err(err).Msg("Error establishing connection to database")
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

// Config is shared by Open and the sqlmock-backed test handle so both
// issue the same statements.
func Config() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

func Close(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database pool")
		return
	}
	log.Info().Msg("Database pool closed")
}
