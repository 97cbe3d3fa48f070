package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"prodtrack/internal/apperr"
	"prodtrack/internal/dto"
	"prodtrack/internal/model"
	"prodtrack/internal/repository"
	"prodtrack/internal/week"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordKind selects which record type DeleteMostRecent operates on.
type RecordKind string

const (
	RecordKindTarget     RecordKind = "weekly_target"
	RecordKindProduction RecordKind = "daily_production"
)

const maxNoteLen = 250

// TrackingService is the record writer: it validates and persists weekly
// targets and daily production entries, and supports the best-effort
// "undo last entry" deletion.
type TrackingService interface {
	RecordWeeklyTarget(ctx context.Context, userID uint, req dto.RecordTargetRequest) (dto.TargetResponse, error)
	RecordDailyProduction(ctx context.Context, userID uint, req dto.RecordProductionRequest) (dto.ProductionResponse, error)
	ListTargets(ctx context.Context, userID uint) ([]dto.TargetResponse, error)
	ListProduction(ctx context.Context, userID uint) ([]dto.ProductionResponse, error)
	// DeleteMostRecent removes the user's record with the highest creation
	// timestamp. This is a best-effort undo keyed purely by creation order,
	// not a targeted delete-by-id.
	DeleteMostRecent(ctx context.Context, kind RecordKind, userID uint) error
}

type trackingService struct {
	targets    repository.TargetRepository
	production repository.ProductionRepository
	access     AccessService
	now        func() time.Time
}

func NewTrackingService(targets repository.TargetRepository, production repository.ProductionRepository, access AccessService) TrackingService {
	return &trackingService{
		targets:    targets,
		production: production,
		access:     access,
		now:        time.Now,
	}
}

func (s *trackingService) RecordWeeklyTarget(ctx context.Context, userID uint, req dto.RecordTargetRequest) (dto.TargetResponse, error) {
	day, err := s.normalizeTargetDate(req.WeekStartDate)
	if err != nil {
		return dto.TargetResponse{}, err
	}
	weekStart := week.Start(day)

	if weekStart.Before(week.Start(s.now())) {
		return dto.TargetResponse{}, apperr.Validation("targets can only be set for the current week or future weeks (from Monday)")
	}
	if req.VariantID == 0 || req.TargetUnits == nil {
		return dto.TargetResponse{}, apperr.Validation("variant and target units required")
	}
	targetUnits := *req.TargetUnits
	if targetUnits.IsNegative() {
		return dto.TargetResponse{}, apperr.Validation("target units must not be negative")
	}
	if err := s.authorizeVariant(ctx, userID, req.VariantID); err != nil {
		return dto.TargetResponse{}, err
	}

	exists, err := s.targets.Exists(ctx, userID, weekStart, req.VariantID)
	if err != nil {
		return dto.TargetResponse{}, err
	}
	if exists {
		return dto.TargetResponse{}, apperr.Conflict("target already set for this variant and week")
	}

	t := &model.WeeklyTarget{
		UserID:        userID,
		WeekStartDate: weekStart,
		VariantID:     req.VariantID,
		TargetUnits:   targetUnits,
	}
	if err := s.targets.Create(ctx, t); err != nil {
		// A concurrent insert can slip past the Exists check; the unique
		// index catches it and it is still a duplicate to the caller.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.TargetResponse{}, apperr.Conflict("target already set for this variant and week")
		}
		return dto.TargetResponse{}, err
	}
	return dto.TargetResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		WeekStartDate: week.FormatISO(t.WeekStartDate),
		VariantID:     t.VariantID,
		TargetUnits:   t.TargetUnits,
		CreatedAt:     t.CreatedAt.Format(time.DateTime),
	}, nil
}

func (s *trackingService) RecordDailyProduction(ctx context.Context, userID uint, req dto.RecordProductionRequest) (dto.ProductionResponse, error) {
	date := s.normalizeProductionDate(req.ProductionDate)

	if req.VariantID == 0 || req.Units == nil {
		return dto.ProductionResponse{}, apperr.Validation("variant and units required")
	}
	if err := s.authorizeVariant(ctx, userID, req.VariantID); err != nil {
		return dto.ProductionResponse{}, err
	}

	p := &model.DailyProduction{
		UserID:         userID,
		ProductionDate: date,
		VariantID:      req.VariantID,
		Units:          *req.Units,
		Hours:          coerceHours(req.Hours),
		Note:           shapeNote(req.Note),
	}
	if err := s.production.Create(ctx, p); err != nil {
		return dto.ProductionResponse{}, err
	}
	return dto.ProductionResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		ProductionDate: week.FormatISO(p.ProductionDate),
		VariantID:      p.VariantID,
		Units:          p.Units,
		Hours:          p.Hours,
		Note:           p.Note,
		CreatedAt:      p.CreatedAt.Format(time.DateTime),
	}, nil
}

func (s *trackingService) ListTargets(ctx context.Context, userID uint) ([]dto.TargetResponse, error) {
	rows, err := s.targets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TargetResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TargetResponse{
			ID:            r.ID,
			UserID:        r.UserID,
			WeekStartDate: week.FormatISO(r.WeekStartDate),
			VariantID:     r.VariantID,
			VariantName:   r.VariantName,
			TargetUnits:   r.TargetUnits,
			CreatedAt:     r.CreatedAt.Format(time.DateTime),
		})
	}
	return out, nil
}

func (s *trackingService) ListProduction(ctx context.Context, userID uint) ([]dto.ProductionResponse, error) {
	rows, err := s.production.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductionResponse{
			ID:             r.ID,
			UserID:         r.UserID,
			ProductionDate: week.FormatISO(r.ProductionDate),
			VariantID:      r.VariantID,
			VariantName:    r.VariantName,
			Units:          r.Units,
			Hours:          r.Hours,
			Note:           r.Note,
			CreatedAt:      r.CreatedAt.Format(time.DateTime),
		})
	}
	return out, nil
}

func (s *trackingService) DeleteMostRecent(ctx context.Context, kind RecordKind, userID uint) error {
	switch kind {
	case RecordKindTarget:
		t, err := s.targets.FindMostRecent(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no weekly target to delete")
			}
			return err
		}
		return s.targets.Delete(ctx, t.ID)
	case RecordKindProduction:
		p, err := s.production.FindMostRecent(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no daily production to delete")
			}
			return err
		}
		return s.production.Delete(ctx, p.ID)
	default:
		return apperr.Validation("unknown record kind")
	}
}

// authorizeVariant rejects writes naming a variant outside the caller's
// resolved set. The variant is never silently substituted.
func (s *trackingService) authorizeVariant(ctx context.Context, userID, variantID uint) error {
	refs, err := s.access.ResolveVariants(ctx, userID, model.RoleProductionManager)
	if err != nil {
		return err
	}
	for _, r := range refs {
		if r.ID == variantID {
			return nil
		}
	}
	return apperr.Authorization("variant not allowed")
}

// normalizeTargetDate accepts DD/MM/YYYY or YYYY-MM-DD, defaults to today
// when absent, and rejects anything else.
func (s *trackingService) normalizeTargetDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return week.Date(s.now()), nil
	}
	if t, ok := week.ParseDisplay(raw); ok {
		return t, nil
	}
	if t, ok := week.ParseISO(raw); ok {
		return t, nil
	}
	return time.Time{}, apperr.Validation("invalid date")
}

// normalizeProductionDate is like normalizeTargetDate but falls back to
// today instead of failing — production entries have no date restriction.
func (s *trackingService) normalizeProductionDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if t, ok := week.ParseDisplay(raw); ok {
		return t
	}
	if t, ok := week.ParseISO(raw); ok {
		return t
	}
	return week.Date(s.now())
}

// coerceHours converts the loosely-typed hours field into a decimal.
// Non-numeric values are stored as absent rather than rejected.
func coerceHours(v any) *decimal.Decimal {
	switch h := v.(type) {
	case float64:
		d := decimal.NewFromFloat(h)
		return &d
	case string:
		trimmed := strings.TrimSpace(h)
		if trimmed == "" {
			return nil
		}
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}

// shapeNote trims and truncates the note to 250 characters; empty input is
// stored as absent.
func shapeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	if runes := []rune(trimmed); len(runes) > maxNoteLen {
		trimmed = string(runes[:maxNoteLen])
	}
	return &trimmed
}
