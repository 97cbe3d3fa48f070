package model

// ManagerVariantAccess grants a production manager permission to report and
// target against a variant. A user with zero rows may use ALL variants —
// absence of grants means "unrestricted", not "locked out".
type ManagerVariantAccess struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	VariantID uint `gorm:"primaryKey;autoIncrement:false"`
}

// TableName overrides GORM's pluralization ("manager_variant_accesses").
func (ManagerVariantAccess) TableName() string { return "manager_variant_access" }
