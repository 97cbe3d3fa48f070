package dto

import "github.com/shopspring/decimal"

// ReconcileRow is one (week, variant) bucket of the target-vs-production
// reconciliation. Pct is a whole percentage, rounded half-up.
type ReconcileRow struct {
	WeekStartDate string          `json:"week_start_date"`
	VariantID     uint            `json:"variant_id"`
	VariantName   string          `json:"variant_name"`
	Target        decimal.Decimal `json:"target"`
	Produced      decimal.Decimal `json:"produced"`
	Pct           int64           `json:"pct"`
}
