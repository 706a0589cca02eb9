package model

import (
	"time"

	"github.com/google/uuid"
)

// Tracked is embedded by every entity. The surrogate id stays internal; the
// uuid is the public identity, assigned at insert and never reused.
//
// A row is visible at query time `now` iff
//
//	created <= now AND (deleted IS NULL OR deleted > now)
//
// evaluated against the query timestamp, not "deleted is null" — which is
// what permits future-dated (scheduled) deletes and as-of audit reads.
type Tracked struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	UUID      uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Created   time.Time  `gorm:"not null" json:"created"`
	Deleted   *time.Time `json:"-"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy,omitempty"`
	DeletedBy *uuid.UUID `gorm:"type:uuid" json:"-"`
}

// VisibleAt reports whether the row is inside its visibility window at now.
func (t Tracked) VisibleAt(now time.Time) bool {
	if t.Created.After(now) {
		return false
	}
	return t.Deleted == nil || t.Deleted.After(now)
}
