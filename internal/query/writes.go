package query

import (
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Writes re-assert `deleted IS NULL` so an update never resurrects a row and
// a delete never lands twice. Repositories must not bypass these helpers.

// GuardedUpdate sets only the provided fields on the visible row identified
// by id. Zero matched rows — absent or already soft-deleted — is NotFound.
// An empty field set degrades to a guarded existence check so the caller
// still gets the correct 404 semantics.
func GuardedUpdate(tx *gorm.DB, mdl any, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		var n int64
		if err := tx.Model(mdl).Where("uuid = ? AND deleted IS NULL", id).Count(&n).Error; err != nil {
			return apierror.FromDB(err)
		}
		if n == 0 {
			return apierror.E(apierror.NotFound, "", nil)
		}
		return nil
	}

	res := tx.Model(mdl).Where("uuid = ? AND deleted IS NULL", id).Updates(fields)
	if res.Error != nil {
		return apierror.FromDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.E(apierror.NotFound, "", nil)
	}
	return nil
}

// SoftDelete retires the visible row identified by id. deletedAt defaults to
// now; a future timestamp schedules the retirement. The row is never
// physically removed.
func SoftDelete(tx *gorm.DB, mdl any, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	at := now
	if deletedAt != nil {
		at = *deletedAt
	}
	res := tx.Model(mdl).
		Where("uuid = ? AND deleted IS NULL", id).
		Updates(map[string]any{"deleted": at, "deleted_by": deletedBy})
	if res.Error != nil {
		return apierror.FromDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.E(apierror.NotFound, "", nil)
	}
	return nil
}
