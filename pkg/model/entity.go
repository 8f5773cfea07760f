package model

import "time"

// Entity is the minimal contract every persisted kind must implement.
// TableName should match the GORM table naming convention; GetID returns
// the surrogate integer identity (zero means "not yet persisted").
type Entity interface {
	TableName() string
	GetID() int
}

// SoftDeletable is implemented by kinds that participate in the
// soft-delete / restore / purge lifecycle. Embedding Audit provides it.
type SoftDeletable interface {
	MarkDeleted(by string, at time.Time)
	ClearDeleted()
	IsDeleted() bool
}

// Audit carries the creation, update and soft-delete metadata shared by all
// top-level kinds. Invariant: DeleteFlag is true iff DeletedAt is non-nil.
type Audit struct {
	CreatedBy string    `gorm:"column:created_by;size:100" json:"createdBy"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedBy string    `gorm:"column:updated_by;size:100" json:"updatedBy"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	DeleteFlag bool       `gorm:"column:delete_flag;index" json:"deleteFlag"`
	DeletedBy  *string    `gorm:"column:deleted_by;size:100" json:"deletedBy,omitempty"`
	DeletedAt  *time.Time `gorm:"column:deleted_at" json:"deletedAt,omitempty"`
}

// Touch records a mutating write.
func (a *Audit) Touch(by string, at time.Time) {
	a.UpdatedBy = by
	a.UpdatedAt = at
}

// MarkDeleted flags the row as soft-deleted. Calling it on an already
// soft-deleted row refreshes the actor and timestamp.
func (a *Audit) MarkDeleted(by string, at time.Time) {
	a.DeleteFlag = true
	a.DeletedBy = &by
	a.DeletedAt = &at
}

// ClearDeleted returns the row to the active state.
func (a *Audit) ClearDeleted() {
	a.DeleteFlag = false
	a.DeletedBy = nil
	a.DeletedAt = nil
}

func (a *Audit) IsDeleted() bool {
	return a.DeleteFlag
}
