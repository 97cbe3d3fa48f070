package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateVariantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateVariantRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	DisplayOrder *int    `json:"display_order"`
}

// UpdateAccessRequest replaces the full grant set for one manager.
// An empty list restores the "all variants allowed" default.
type UpdateAccessRequest struct {
	VariantIDs []uint `json:"variant_ids"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type VariantResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// VariantRef is the minimal variant shape used for choice lists and write
// authorization.
type VariantRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AccessResponse struct {
	VariantIDs []uint `json:"variant_ids"`
}
