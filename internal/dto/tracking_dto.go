package dto

import "github.com/shopspring/decimal"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// RecordTargetRequest creates a weekly target. WeekStartDate accepts
// DD/MM/YYYY or YYYY-MM-DD; any supplied date is normalized to the Monday of
// its week. Empty means the current week. TargetUnits is a pointer so that an
// omitted field fails validation instead of binding to a silent zero; an
// explicit 0 is still a valid target.
type RecordTargetRequest struct {
	WeekStartDate string           `json:"week_start_date"`
	VariantID     uint             `json:"variant_id"   validate:"required,gt=0"`
	TargetUnits   *decimal.Decimal `json:"target_units" validate:"required,gte=0"`
}

// RecordProductionRequest creates a daily production entry. ProductionDate
// accepts DD/MM/YYYY or YYYY-MM-DD and defaults to today when absent or
// unparsable. Units must be present (explicit 0 allowed). Hours is accepted
// loosely (number, numeric string, or null); anything non-numeric is stored
// as absent rather than rejected.
type RecordProductionRequest struct {
	ProductionDate string           `json:"production_date"`
	VariantID      uint             `json:"variant_id" validate:"required,gt=0"`
	Units          *decimal.Decimal `json:"units"      validate:"required"`
	Hours          any              `json:"hours"`
	Note           *string          `json:"note"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type TargetResponse struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	WeekStartDate string          `json:"week_start_date"`
	VariantID     uint            `json:"variant_id"`
	VariantName   string          `json:"variant_name,omitempty"`
	TargetUnits   decimal.Decimal `json:"target_units"`
	CreatedAt     string          `json:"created_at"`
}

type ProductionResponse struct {
	ID             uint             `json:"id"`
	UserID         uint             `json:"user_id"`
	ProductionDate string           `json:"production_date"`
	VariantID      uint             `json:"variant_id"`
	VariantName    string           `json:"variant_name,omitempty"`
	Units          decimal.Decimal  `json:"units"`
	Hours          *decimal.Decimal `json:"hours"`
	Note           *string          `json:"note"`
	CreatedAt      string           `json:"created_at"`
}
