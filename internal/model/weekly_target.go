package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyTarget is the planned output for one variant during one
// Monday-aligned week. WeekStartDate is always a canonical Monday; rows can
// only be created for the current or a future week.
type WeeklyTarget struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"not null;index:idx_weekly_targets_user_week;uniqueIndex:uni_targets_user_week_variant"`
	WeekStartDate time.Time       `gorm:"type:date;not null;index:idx_weekly_targets_user_week;uniqueIndex:uni_targets_user_week_variant"`
	VariantID     uint            `gorm:"not null;uniqueIndex:uni_targets_user_week_variant"`
	TargetUnits   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
}
