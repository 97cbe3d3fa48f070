package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username  string  `json:"username"   validate:"required,min=3,max=64"`
	Password  string  `json:"password"   validate:"required,min=3,max=72"`
	Role      string  `json:"role"       validate:"required,oneof=admin production_manager"`
	FirstName string  `json:"first_name" validate:"max=100"`
	LastName  string  `json:"last_name"  validate:"max=100"`
	Note      *string `json:"note"       validate:"omitempty,max=250"`
}

// UpdateUserRequest edits profile fields and optionally the password.
// Username and role are immutable after creation.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=100"`
	Note      *string `json:"note"       validate:"omitempty,max=250"`
	Password  *string `json:"password"   validate:"omitempty,min=3,max=72"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type UserResponse struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}
