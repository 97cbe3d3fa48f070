package service

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"prodtrack/internal/repository"
	"prodtrack/internal/week"
)

// ExportService streams admin CSV exports of the raw target and production
// tables, joined with user and variant names.
type ExportService interface {
	WriteTargetsCSV(ctx context.Context, w io.Writer) error
	WriteProductionCSV(ctx context.Context, w io.Writer) error
}

type exportService struct {
	targets    repository.TargetRepository
	production repository.ProductionRepository
}

func NewExportService(targets repository.TargetRepository, production repository.ProductionRepository) ExportService {
	return &exportService{targets: targets, production: production}
}

func (s *exportService) WriteTargetsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.targets.ListForExport(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"username", "first_name", "last_name", "week_start_date", "variant", "target_units", "created_at"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Username,
			r.FirstName,
			r.LastName,
			week.FormatISO(r.WeekStartDate),
			r.VariantName,
			r.TargetUnits.String(),
			r.CreatedAt.Format(time.DateTime),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *exportService) WriteProductionCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.production.ListForExport(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"username", "first_name", "last_name", "production_date", "variant", "units", "hours", "note", "created_at"}); err != nil {
		return err
	}
	for _, r := range rows {
		hours := ""
		if r.Hours != nil {
			hours = r.Hours.String()
		}
		note := ""
		if r.Note != nil {
			note = *r.Note
		}
		record := []string{
			r.Username,
			r.FirstName,
			r.LastName,
			week.FormatISO(r.ProductionDate),
			r.VariantName,
			r.Units.String(),
			hours,
			note,
			r.CreatedAt.Format(time.DateTime),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
