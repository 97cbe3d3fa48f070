package model

// Variant is a distinct product/packaging SKU being tracked.
// DisplayOrder is a sort key only — values are not guaranteed contiguous.
type Variant struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;not null"`
	DisplayOrder int    `gorm:"not null;default:0"`
}
