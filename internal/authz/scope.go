package authz

// ScopeOwnership ties a record to the agency and user that own it. Every
// scoped entity embeds it so the visibility rules are checked at compile
// time rather than against loosely-typed fields.
type ScopeOwnership struct {
	BusinessID string `json:"businessId,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

// Ownership satisfies Owned for any embedding struct.
func (o ScopeOwnership) Ownership() ScopeOwnership { return o }

// Owned is implemented by every record subject to business-level filtering.
type Owned interface {
	Ownership() ScopeOwnership
}

// VisibleRecords returns the subset of records the actor may view. For
// SuperAdmin the input slice is returned unchanged; otherwise the filter is
// stable, preserving the original relative order.
func VisibleRecords[T Owned](records []T, actor *Actor) []T {
	if actor == nil {
		return nil
	}
	if actor.Role == RoleSuperAdmin {
		return records
	}
	if actor.BusinessID == "" {
		// A business-scoped actor without an agency sees nothing; matching
		// empty-against-empty would leak unscoped records.
		return nil
	}
	visible := make([]T, 0, len(records))
	for _, rec := range records {
		if ownedBy(rec.Ownership(), actor) {
			visible = append(visible, rec)
		}
	}
	return visible
}

// CanModify reports whether the actor may mutate the record. Passing the
// route-level gate does not imply mutation rights: every mutating handler
// invokes this separately. View-only actions are not gated.
func CanModify(record Owned, actor *Actor) bool {
	if actor == nil {
		return false
	}
	if actor.Role == RoleSuperAdmin {
		return true
	}
	if actor.BusinessID == "" {
		return false
	}
	return ownedBy(record.Ownership(), actor)
}

func ownedBy(o ScopeOwnership, actor *Actor) bool {
	if o.BusinessID != "" && o.BusinessID == actor.BusinessID {
		return true
	}
	return o.UserID != "" && o.UserID == actor.ID
}
