package domain

// MutationKind tags a staged entity operation. Deletion is modeled as a
// variant of update that deactivates the record.
type MutationKind int

const (
	MutationInsert MutationKind = iota
	MutationUpdate
	MutationDeactivate
)

// AuditAction maps the mutation kind to the action recorded on its audit row.
func (k MutationKind) AuditAction() AuditAction {
	switch k {
	case MutationInsert:
		return AuditActionAdded
	case MutationDeactivate:
		return AuditActionDeleted
	default:
		return AuditActionModified
	}
}

// Mutation is one staged entity operation carrying its own before/after field
// snapshots, captured at stage time.
type Mutation struct {
	Kind     MutationKind
	Entity   Entity
	Original JSON
	Changed  JSON
}

// NewInsert stages an entity insertion. The snapshot covers every field since
// there is no prior state.
func NewInsert(e Entity) (*Mutation, error) {
	snap, err := Snapshot(e)
	if err != nil {
		return nil, err
	}

	return &Mutation{Kind: MutationInsert, Entity: e, Changed: snap}, nil
}

// NewUpdate stages an entity update against the snapshot taken when the
// entity was loaded. The changed set is the diff between the two.
func NewUpdate(e Entity, original JSON) (*Mutation, error) {
	current, err := Snapshot(e)
	if err != nil {
		return nil, err
	}

	return &Mutation{
		Kind:     MutationUpdate,
		Entity:   e,
		Original: original,
		Changed:  DiffFields(original, current),
	}, nil
}

// NewDeactivate stages a soft delete. The active flag is flipped at commit
// time; the audit row keeps the original state only.
func NewDeactivate(e Entity, original JSON) *Mutation {
	return &Mutation{Kind: MutationDeactivate, Entity: e, Original: original}
}
