package repository

import (
	"context"
	"time"

	"prodtrack/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TargetWithVariant is a weekly target joined with its variant name, as
// consumed by listings and the aggregation engine.
type TargetWithVariant struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	WeekStartDate time.Time       `json:"-"`
	VariantID     uint            `json:"variant_id"`
	VariantName   string          `json:"variant_name"`
	TargetUnits   decimal.Decimal `json:"target_units"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TargetExportRow is a weekly target joined with user and variant data for
// the CSV export.
type TargetExportRow struct {
	Username      string
	FirstName     string
	LastName      string
	WeekStartDate time.Time
	VariantName   string
	TargetUnits   decimal.Decimal
	CreatedAt     time.Time
}

type TargetRepository interface {
	Create(ctx context.Context, t *model.WeeklyTarget) error
	// Exists reports whether a target already exists for the
	// (user, week, variant) triple.
	Exists(ctx context.Context, userID uint, weekStart time.Time, variantID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]TargetWithVariant, error)
	// FindMostRecent returns the user's target with the highest created_at
	// (id desc as tie-break).
	FindMostRecent(ctx context.Context, userID uint) (*model.WeeklyTarget, error)
	Delete(ctx context.Context, id uint) error
	ListForExport(ctx context.Context) ([]TargetExportRow, error)
}

type targetRepo struct{ db *gorm.DB }

func NewTargetRepository(db *gorm.DB) TargetRepository { return &targetRepo{db: db} }

func (r *targetRepo) Create(ctx context.Context, t *model.WeeklyTarget) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *targetRepo) Exists(ctx context.Context, userID uint, weekStart time.Time, variantID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WeeklyTarget{}).
		Where("user_id = ? AND week_start_date = ? AND variant_id = ?", userID, weekStart, variantID).
		Count(&count).Error
	return count > 0, err
}

func (r *targetRepo) ListByUser(ctx context.Context, userID uint) ([]TargetWithVariant, error) {
	var rows []TargetWithVariant
	err := r.db.WithContext(ctx).
		Table("weekly_targets AS w").
		Select("w.id, w.user_id, w.week_start_date, w.variant_id, w.target_units, w.created_at, v.name AS variant_name").
		Joins("JOIN variants v ON v.id = w.variant_id").
		Where("w.user_id = ?", userID).
		Order("w.week_start_date DESC, v.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *targetRepo) FindMostRecent(ctx context.Context, userID uint) (*model.WeeklyTarget, error) {
	var t model.WeeklyTarget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *targetRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.WeeklyTarget{}, id).Error
}

func (r *targetRepo) ListForExport(ctx context.Context) ([]TargetExportRow, error) {
	var rows []TargetExportRow
	err := r.db.WithContext(ctx).
		Table("weekly_targets AS w").
		Select("u.username, u.first_name, u.last_name, w.week_start_date, v.name AS variant_name, w.target_units, w.created_at").
		Joins("JOIN users u ON u.id = w.user_id").
		Joins("JOIN variants v ON v.id = w.variant_id").
		Order("u.username ASC, w.week_start_date ASC, v.name ASC").
		Scan(&rows).Error
	return rows, err
}
