package repository

import (
	"time"

	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/google/uuid"
)

// newTracked builds the Tracked base for an insert: fresh uuid, created at
// the request's now snapshot, optional acting-user stamp. UUIDs are assigned
// here, never by the database.
func newTracked(now time.Time, createdBy *uuid.UUID) model.Tracked {
	return model.Tracked{UUID: uuid.New(), Created: now, CreatedBy: createdBy}
}
