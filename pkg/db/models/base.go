package models

// Base carries the fields every tenant-scoped document shares. IDs are
// assigned by the record store on insert; the timestamps are RFC3339 strings
// stamped by the resource managers, never taken from the caller.
type Base struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	TenantID  string `gorm:"column:tenant_id;not null;index" json:"-"`
	CreatedAt string `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt string `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// Ref exposes the shared fields to the record store.
func (b *Base) Ref() *Base {
	return b
}
