package infra

import (
	"fmt"

	"prodtrack/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, reconciles a
// known legacy schema shape, then runs AutoMigrate for all tables. The
// returned handle is injected into repositories — no package-level global.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique-index violations as gorm.ErrDuplicatedKey so the
		// service layer can map them to conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := dropLegacyTargetTables(db); err != nil {
		return nil, fmt.Errorf("legacy schema check: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Variant{},
		&model.ManagerVariantAccess{},
		&model.WeeklyTarget{},
		&model.DailyProduction{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// dropLegacyTargetTables detects the pre-variant deployment, whose
// weekly_targets table had no variant_id column, and recreates both
// dependent tables from scratch. Rows in that legacy shape cannot be
// attributed to a variant, so this path is destructive on purpose — it is
// logged loudly rather than performed silently.
func dropLegacyTargetTables(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable("weekly_targets") {
		return nil
	}
	if m.HasColumn(&model.WeeklyTarget{}, "variant_id") {
		return nil
	}

	log.Warn().
		Msg("legacy weekly_targets schema detected (no variant_id): dropping weekly_targets and daily_production — existing rows will be lost")

	if err := m.DropTable("weekly_targets"); err != nil {
		return err
	}
	if m.HasTable("daily_production") {
		if err := m.DropTable("daily_production"); err != nil {
			return err
		}
	}
	return nil
}
