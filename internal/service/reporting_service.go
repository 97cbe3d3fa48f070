package service

import (
	"context"
	"sort"

	"prodtrack/internal/dto"
	"prodtrack/internal/repository"
	"prodtrack/internal/week"

	"github.com/shopspring/decimal"
)

// SortOrder controls the week ordering of reconciliation output. The admin
// summary view reads oldest-first; the self-service view reads newest-first.
type SortOrder int

const (
	WeekAscending SortOrder = iota
	WeekDescending
)

var hundred = decimal.NewFromInt(100)

// ReportingService aggregates daily production entries into weekly target
// fulfillment. Pure read+compute: repeated calls over identical data yield
// identical results.
type ReportingService interface {
	Reconcile(ctx context.Context, userID uint, order SortOrder) ([]dto.ReconcileRow, error)
}

type reportingService struct {
	targets    repository.TargetRepository
	production repository.ProductionRepository
}

func NewReportingService(targets repository.TargetRepository, production repository.ProductionRepository) ReportingService {
	return &reportingService{targets: targets, production: production}
}

type bucketKey struct {
	week      string
	variantID uint
}

func (s *reportingService) Reconcile(ctx context.Context, userID uint, order SortOrder) ([]dto.ReconcileRow, error) {
	targets, err := s.targets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Seed one bucket per explicit target. Weeks/variants without a target
	// never appear in the output — there is nothing to compare against.
	buckets := make(map[bucketKey]*dto.ReconcileRow, len(targets))
	for _, t := range targets {
		key := bucketKey{week: week.FormatISO(t.WeekStartDate), variantID: t.VariantID}
		buckets[key] = &dto.ReconcileRow{
			WeekStartDate: key.week,
			VariantID:     t.VariantID,
			VariantName:   t.VariantName,
			Target:        t.TargetUnits,
			Produced:      decimal.Zero,
		}
	}

	entries, err := s.production.ListRowsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Production is bucketed into the Monday-start week derived from its
	// date, never a stored week field. Entries without a target bucket are
	// discarded.
	for _, p := range entries {
		key := bucketKey{week: week.FormatISO(week.Start(p.ProductionDate)), variantID: p.VariantID}
		if b, ok := buckets[key]; ok {
			b.Produced = b.Produced.Add(p.Units)
		}
	}

	rows := make([]dto.ReconcileRow, 0, len(buckets))
	for _, b := range buckets {
		b.Pct = pct(b.Target, b.Produced)
		rows = append(rows, *b)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WeekStartDate != rows[j].WeekStartDate {
			if order == WeekDescending {
				return rows[i].WeekStartDate > rows[j].WeekStartDate
			}
			return rows[i].WeekStartDate < rows[j].WeekStartDate
		}
		return rows[i].VariantName < rows[j].VariantName
	})
	return rows, nil
}

// pct computes the whole-number percent of target, rounded half-up. A zero
// target with any production is pinned at 100 — a policy choice, not a
// mathematical ratio.
func pct(target, produced decimal.Decimal) int64 {
	if target.IsPositive() {
		return produced.Div(target).Mul(hundred).Round(0).IntPart()
	}
	if produced.IsZero() {
		return 0
	}
	return 100
}
