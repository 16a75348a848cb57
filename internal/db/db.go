package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"interview-scheduler-backend/config"
	"interview-scheduler-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.Panelist{},
		&model.PanelistAvailability{},
		&model.InterviewTemplate{},
		&model.InterviewSchedule{},
		&model.CandidatePreference{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.EnableExclusionConstraint {
		log.Println("Applying Postgres exclusion constraint DDL...")
		if err := applyExclusionDDL(db); err != nil {
			return nil, err
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// applyExclusionDDL installs the range-exclusion constraint that makes
// check-and-insert atomic at the store: no two "scheduled" records for the
// same panelist may hold overlapping [start, end) intervals, even across
// concurrent transactions. The constraint name is matched by the store when
// translating the violation into ErrConflict.
func applyExclusionDDL(db *gorm.DB) error {
	ddls := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist;",

		"ALTER TABLE interview_schedules DROP CONSTRAINT IF EXISTS interview_schedules_no_overlap;",

		"ALTER TABLE interview_schedules ADD CONSTRAINT interview_schedules_no_overlap " +
			"EXCLUDE USING GIST (panelist_id WITH =, tstzrange(scheduled_start, scheduled_end, '[)') WITH &&) " +
			"WHERE (status = 'scheduled' AND panelist_id <> '');",

		"CREATE INDEX IF NOT EXISTS idx_interview_schedules_panelist_start " +
			"ON interview_schedules (panelist_id, scheduled_start);",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
