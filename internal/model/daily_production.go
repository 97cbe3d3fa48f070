package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyProduction is one recorded output event for one variant on one
// calendar date. There is deliberately no uniqueness constraint — multiple
// entries per (user, date, variant) accumulate during aggregation.
type DailyProduction struct {
	ID             uint             `gorm:"primaryKey"`
	UserID         uint             `gorm:"not null;index:idx_daily_production_user_date"`
	ProductionDate time.Time        `gorm:"type:date;not null;index:idx_daily_production_user_date"`
	VariantID      uint             `gorm:"not null"`
	Units          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Hours          *decimal.Decimal `gorm:"type:decimal(6,2)"`
	Note           *string          `gorm:"type:varchar(250)"`
	CreatedAt      time.Time
}

// TableName keeps the historical singular table name.
func (DailyProduction) TableName() string { return "daily_production" }
