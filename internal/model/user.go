package model

import "time"

// User roles. Role is fixed at creation time — there is no role-change
// operation anywhere in the API.
const (
	RoleAdmin             = "admin"
	RoleProductionManager = "production_manager"
)

// User stores system users with role-based access.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(32);not null"`
	FirstName    string
	LastName     string
	Note         *string
	CreatedAt    time.Time
}
