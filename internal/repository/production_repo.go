package repository

import (
	"context"
	"time"

	"prodtrack/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductionWithVariant is a daily production entry joined with its variant
// name for listings.
type ProductionWithVariant struct {
	ID             uint             `json:"id"`
	UserID         uint             `json:"user_id"`
	ProductionDate time.Time        `json:"-"`
	VariantID      uint             `json:"variant_id"`
	VariantName    string           `json:"variant_name"`
	Units          decimal.Decimal  `json:"units"`
	Hours          *decimal.Decimal `json:"hours"`
	Note           *string          `json:"note"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ProductionExportRow is a daily production entry joined with user and
// variant data for the CSV export.
type ProductionExportRow struct {
	Username       string
	FirstName      string
	LastName       string
	ProductionDate time.Time
	VariantName    string
	Units          decimal.Decimal
	Hours          *decimal.Decimal
	Note           *string
	CreatedAt      time.Time
}

type ProductionRepository interface {
	Create(ctx context.Context, p *model.DailyProduction) error
	// ListByUser returns entries joined with variant names, newest first.
	ListByUser(ctx context.Context, userID uint) ([]ProductionWithVariant, error)
	// ListRowsByUser returns bare rows for aggregation; no ordering is
	// guaranteed or needed there.
	ListRowsByUser(ctx context.Context, userID uint) ([]model.DailyProduction, error)
	FindMostRecent(ctx context.Context, userID uint) (*model.DailyProduction, error)
	Delete(ctx context.Context, id uint) error
	ListForExport(ctx context.Context) ([]ProductionExportRow, error)
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) Create(ctx context.Context, p *model.DailyProduction) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productionRepo) ListByUser(ctx context.Context, userID uint) ([]ProductionWithVariant, error) {
	var rows []ProductionWithVariant
	err := r.db.WithContext(ctx).
		Table("daily_production AS d").
		Select("d.id, d.user_id, d.production_date, d.variant_id, d.units, d.hours, d.note, d.created_at, v.name AS variant_name").
		Joins("JOIN variants v ON v.id = d.variant_id").
		Where("d.user_id = ?", userID).
		Order("d.production_date DESC, d.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *productionRepo) ListRowsByUser(ctx context.Context, userID uint) ([]model.DailyProduction, error) {
	var rows []model.DailyProduction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *productionRepo) FindMostRecent(ctx context.Context, userID uint) (*model.DailyProduction, error) {
	var p model.DailyProduction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.DailyProduction{}, id).Error
}

func (r *productionRepo) ListForExport(ctx context.Context) ([]ProductionExportRow, error) {
	var rows []ProductionExportRow
	err := r.db.WithContext(ctx).
		Table("daily_production AS d").
		Select("u.username, u.first_name, u.last_name, d.production_date, v.name AS variant_name, d.units, d.hours, d.note, d.created_at").
		Joins("JOIN users u ON u.id = d.user_id").
		Joins("JOIN variants v ON v.id = d.variant_id").
		Order("u.username ASC, d.production_date ASC, d.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
