package repository

import (
	"context"

	"prodtrack/internal/model"

	"gorm.io/gorm"
)

// AccessRepository manages per-manager variant grants.
type AccessRepository interface {
	// ListVariantIDs returns the granted variant ids for a user. An empty
	// result is meaningful to callers: it signals "unrestricted".
	ListVariantIDs(ctx context.Context, userID uint) ([]uint, error)
	// Replace swaps the full grant set for a user in one transaction.
	Replace(ctx context.Context, userID uint, variantIDs []uint) error
	DeleteForUser(ctx context.Context, userID uint) error
	DeleteForVariant(ctx context.Context, variantID uint) error
}

type accessRepo struct{ db *gorm.DB }

func NewAccessRepository(db *gorm.DB) AccessRepository { return &accessRepo{db: db} }

func (r *accessRepo) ListVariantIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.ManagerVariantAccess{}).
		Where("user_id = ?", userID).
		Pluck("variant_id", &ids).Error
	return ids, err
}

func (r *accessRepo) Replace(ctx context.Context, userID uint, variantIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.ManagerVariantAccess{}).Error; err != nil {
			return err
		}
		if len(variantIDs) == 0 {
			return nil
		}
		rows := make([]model.ManagerVariantAccess, 0, len(variantIDs))
		for _, vid := range variantIDs {
			rows = append(rows, model.ManagerVariantAccess{UserID: userID, VariantID: vid})
		}
		return tx.Create(&rows).Error
	})
}

func (r *accessRepo) DeleteForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ManagerVariantAccess{}).Error
}

func (r *accessRepo) DeleteForVariant(ctx context.Context, variantID uint) error {
	return r.db.WithContext(ctx).Where("variant_id = ?", variantID).Delete(&model.ManagerVariantAccess{}).Error
}
