package domain

import "time"

// Entity is implemented by every record that goes through the unit of work.
type Entity interface {
	EntityName() string
	EntityID() string
	StampCreated(at time.Time, by string)
	StampUpdated(at time.Time, by string)
	Deactivate()
}

// Audited carries the identity, lifecycle flag and audit stamps shared by all
// persisted records.
type Audited struct {
	ID        string    `json:"id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// EntityID returns the record identifier in string form.
func (a *Audited) EntityID() string {
	return a.ID
}

// StampCreated sets the creation metadata and marks the record active.
func (a *Audited) StampCreated(at time.Time, by string) {
	a.CreatedAt = at
	a.CreatedBy = by
	a.IsActive = true
}

// StampUpdated sets the modification metadata.
func (a *Audited) StampUpdated(at time.Time, by string) {
	a.UpdatedAt = at
	a.UpdatedBy = by
}

// Deactivate flips the active flag off. Records are never physically deleted.
func (a *Audited) Deactivate() {
	a.IsActive = false
}
