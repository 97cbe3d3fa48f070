package service

import (
	"context"
	"errors"

	"prodtrack/internal/apperr"
	"prodtrack/internal/dto"
	"prodtrack/internal/model"
	"prodtrack/internal/repository"

	"gorm.io/gorm"
)

// AccessService resolves which variants a user may report and target
// against, and lets admins manage the per-manager grant sets.
type AccessService interface {
	// ResolveVariants returns the caller's allowed variants in the global
	// (display_order, name) order. Admins see everything. A manager with
	// zero grant rows also sees everything — no grants means
	// "unrestricted", not "locked out".
	ResolveVariants(ctx context.Context, userID uint, role string) ([]dto.VariantRef, error)
	ListGrants(ctx context.Context, userID uint) ([]uint, error)
	ReplaceGrants(ctx context.Context, userID uint, variantIDs []uint) error
}

type accessService struct {
	access   repository.AccessRepository
	variants repository.VariantRepository
	users    repository.UserRepository
}

func NewAccessService(access repository.AccessRepository, variants repository.VariantRepository, users repository.UserRepository) AccessService {
	return &accessService{access: access, variants: variants, users: users}
}

func (s *accessService) ResolveVariants(ctx context.Context, userID uint, role string) ([]dto.VariantRef, error) {
	all, err := s.variants.List(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]dto.VariantRef, 0, len(all))

	if role == model.RoleAdmin {
		for _, v := range all {
			refs = append(refs, dto.VariantRef{ID: v.ID, Name: v.Name})
		}
		return refs, nil
	}

	granted, err := s.access.ListVariantIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(granted) == 0 {
		for _, v := range all {
			refs = append(refs, dto.VariantRef{ID: v.ID, Name: v.Name})
		}
		return refs, nil
	}

	allowed := make(map[uint]struct{}, len(granted))
	for _, id := range granted {
		allowed[id] = struct{}{}
	}
	// Intersect with the full catalog so the global ordering is preserved.
	for _, v := range all {
		if _, ok := allowed[v.ID]; ok {
			refs = append(refs, dto.VariantRef{ID: v.ID, Name: v.Name})
		}
	}
	return refs, nil
}

func (s *accessService) ListGrants(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	ids, err := s.access.ListVariantIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

func (s *accessService) ReplaceGrants(ctx context.Context, userID uint, variantIDs []uint) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	for _, vid := range variantIDs {
		if _, err := s.variants.FindByID(ctx, vid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation("unknown variant id")
			}
			return err
		}
	}
	return s.access.Replace(ctx, userID, variantIDs)
}
