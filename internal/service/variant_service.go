package service

import (
	"context"
	"errors"
	"strings"

	"prodtrack/internal/apperr"
	"prodtrack/internal/dto"
	"prodtrack/internal/model"
	"prodtrack/internal/repository"

	"gorm.io/gorm"
)

// VariantService covers the admin-side variant catalog.
type VariantService interface {
	Create(ctx context.Context, req dto.CreateVariantRequest) (dto.VariantResponse, error)
	List(ctx context.Context) ([]dto.VariantResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateVariantRequest) (dto.VariantResponse, error)
	// Delete removes the variant and its access grants. Historical target
	// and production rows keep the dangling variant id.
	Delete(ctx context.Context, id uint) error
}

type variantService struct {
	variants repository.VariantRepository
	access   repository.AccessRepository
}

func NewVariantService(variants repository.VariantRepository, access repository.AccessRepository) VariantService {
	return &variantService{variants: variants, access: access}
}

func mapVariant(v model.Variant) dto.VariantResponse {
	return dto.VariantResponse{ID: v.ID, Name: v.Name, DisplayOrder: v.DisplayOrder}
}

func (s *variantService) Create(ctx context.Context, req dto.CreateVariantRequest) (dto.VariantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.VariantResponse{}, apperr.Validation("name required")
	}

	if existing, err := s.variants.FindByName(ctx, name); err == nil && existing != nil {
		return dto.VariantResponse{}, apperr.Conflict("variant name already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.VariantResponse{}, err
	}

	// New variants sort last.
	order, err := s.variants.NextDisplayOrder(ctx)
	if err != nil {
		return dto.VariantResponse{}, err
	}
	v := &model.Variant{Name: name, DisplayOrder: order}
	if err := s.variants.Create(ctx, v); err != nil {
		return dto.VariantResponse{}, err
	}
	return mapVariant(*v), nil
}

func (s *variantService) List(ctx context.Context) ([]dto.VariantResponse, error) {
	list, err := s.variants.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		out = append(out, mapVariant(v))
	}
	return out, nil
}

func (s *variantService) Update(ctx context.Context, id uint, req dto.UpdateVariantRequest) (dto.VariantResponse, error) {
	v, err := s.variants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VariantResponse{}, apperr.NotFound("variant not found")
		}
		return dto.VariantResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return dto.VariantResponse{}, apperr.Validation("name required")
		}
		if name != v.Name {
			existing, err := s.variants.FindByName(ctx, name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.VariantResponse{}, err
			}
			if existing != nil && existing.ID != id {
				return dto.VariantResponse{}, apperr.Conflict("variant name already exists")
			}
		}
		v.Name = name
	}
	if req.DisplayOrder != nil {
		v.DisplayOrder = *req.DisplayOrder
	}

	if err := s.variants.Update(ctx, v); err != nil {
		return dto.VariantResponse{}, err
	}
	return mapVariant(*v), nil
}

func (s *variantService) Delete(ctx context.Context, id uint) error {
	if _, err := s.variants.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("variant not found")
		}
		return err
	}
	if err := s.variants.Delete(ctx, id); err != nil {
		return err
	}
	return s.access.DeleteForVariant(ctx, id)
}
