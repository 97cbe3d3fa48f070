package repository

import (
	"context"

	"prodtrack/internal/model"

	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(ctx context.Context, v *model.Variant) error
	// List returns all variants in the global (display_order, name) order.
	List(ctx context.Context) ([]model.Variant, error)
	FindByID(ctx context.Context, id uint) (*model.Variant, error)
	FindByName(ctx context.Context, name string) (*model.Variant, error)
	Update(ctx context.Context, v *model.Variant) error
	Delete(ctx context.Context, id uint) error
	// NextDisplayOrder returns max(display_order)+1, or 0 for an empty table.
	NextDisplayOrder(ctx context.Context) (int, error)
}

type variantRepo struct{ db *gorm.DB }

func NewVariantRepository(db *gorm.DB) VariantRepository { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *model.Variant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variantRepo) List(ctx context.Context) ([]model.Variant, error) {
	var list []model.Variant
	err := r.db.WithContext(ctx).Order("display_order asc, name asc").Find(&list).Error
	return list, err
}

func (r *variantRepo) FindByID(ctx context.Context, id uint) (*model.Variant, error) {
	var v model.Variant
	err := r.db.WithContext(ctx).First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) FindByName(ctx context.Context, name string) (*model.Variant, error) {
	var v model.Variant
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) Update(ctx context.Context, v *model.Variant) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *variantRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Variant{}, id).Error
}

func (r *variantRepo) NextDisplayOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&model.Variant{}).
		Select("COALESCE(MAX(display_order), -1) + 1").
		Scan(&next).Error
	return next, err
}
