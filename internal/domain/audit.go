package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// AnonymousUser is stamped on audit records when no authenticated identity
// is present.
const AnonymousUser = "anonymous"

// AuditLog records one mutated entity in one committed unit of work, with a
// snapshot of its changed and original field values. Audit rows are never
// updated.
type AuditLog struct {
	ID             string
	EntityName     string
	EntityID       string
	Action         AuditAction
	UserName       string
	ChangedValues  JSON
	OriginalValues JSON
	CreatedAt      time.Time
}

// JSON is a serialized field-value snapshot.
type JSON map[string]any

// AuditAction is the kind of mutation an audit row records.
type AuditAction string

const (
	AuditActionAdded    AuditAction = "Added"
	AuditActionModified AuditAction = "Modified"
	AuditActionDeleted  AuditAction = "Deleted"
)

// Snapshot captures the current field values of an entity as a JSON document.
func Snapshot(v any) (JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot entity state: %w", err)
	}

	var snap JSON
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot entity state: %w", err)
	}

	return snap, nil
}

// DiffFields returns the fields of current whose values differ from original.
func DiffFields(original, current JSON) JSON {
	changed := JSON{}
	for key, value := range current {
		if !reflect.DeepEqual(original[key], value) {
			changed[key] = value
		}
	}

	return changed
}

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	EntityName string
	EntityID   string
	UserName   string
	Limit      int
	Offset     int
}
