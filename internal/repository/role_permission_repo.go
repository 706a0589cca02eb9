package repository

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/query"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RolePermissionRepository manages role↔permission links and resolves a
// role's effective permission set — the query the authorization middleware
// runs on every protected request.
type RolePermissionRepository interface {
	List(ctx context.Context, f dto.RolePermissionFilter, now time.Time) ([]model.RolePermission, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.RolePermission, error)
	Create(ctx context.Context, rp *model.RolePermission, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.RolePermission, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
	EffectivePermissions(ctx context.Context, roleName string, now time.Time) ([]model.EffectivePermission, error)
}

type rolePermissionRepo struct{ db *gorm.DB }

func NewRolePermissionRepository(db *gorm.DB) RolePermissionRepository {
	return &rolePermissionRepo{db: db}
}

func (r *rolePermissionRepo) List(ctx context.Context, f dto.RolePermissionFilter, now time.Time) ([]model.RolePermission, int64, error) {
	qb := query.At(now, "roles_has_permissions").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.RoleName != "" {
		qb.FKByNaturalKey("fk_role", "roles", "name", f.RoleName)
	}
	if f.PermissionUUID != "" {
		qb.FKByNaturalKey("fk_permission", "permissions", "uuid", f.PermissionUUID)
	}
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.RolePermission{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var links []model.RolePermission
	err = r.db.WithContext(ctx).Model(&model.RolePermission{}).
		Scopes(qb.Scope(), pg.Scope()).
		Preload("Role").
		Preload("Permission").
		Preload("Permission.Endpoint").
		Find(&links).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return links, total, nil
}

func (r *rolePermissionRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.RolePermission, error) {
	qb := query.At(now, "roles_has_permissions").Visible().Eq("uuid", id)
	var rp model.RolePermission
	err := r.db.WithContext(ctx).Scopes(qb.Scope()).
		Preload("Role").
		Preload("Permission").
		Preload("Permission.Endpoint").
		First(&rp).Error
	if err != nil {
		return nil, apierror.FromDB(err)
	}
	return &rp, nil
}

func (r *rolePermissionRepo) Create(ctx context.Context, rp *model.RolePermission, now time.Time, createdBy *uuid.UUID) error {
	rp.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(rp).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *rolePermissionRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.RolePermission, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.RolePermission{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *rolePermissionRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.RolePermission{}, id, deletedBy, deletedAt, now)
}

// EffectivePermissions resolves every (action, endpoint) the role can reach
// through the link table. All four rows — link, role, permission, endpoint —
// must be inside their visibility window at now: a soft-deleted link,
// permission, or endpoint grants nothing.
func (r *rolePermissionRepo) EffectivePermissions(ctx context.Context, roleName string, now time.Time) ([]model.EffectivePermission, error) {
	var perms []model.EffectivePermission
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.action AS action, p.fk_endpoint AS endpoint_id, e.route AS route
		FROM roles_has_permissions AS rp
		JOIN roles AS r ON rp.fk_role = r.id
		JOIN permissions AS p ON rp.fk_permission = p.id
		JOIN endpoints AS e ON p.fk_endpoint = e.id
		WHERE r.name = ?
		  AND rp.created <= ? AND (rp.deleted > ? OR rp.deleted IS NULL)
		  AND r.created <= ? AND (r.deleted > ? OR r.deleted IS NULL)
		  AND p.created <= ? AND (p.deleted > ? OR p.deleted IS NULL)
		  AND e.created <= ? AND (e.deleted > ? OR e.deleted IS NULL)`,
		roleName, now, now, now, now, now, now, now, now,
	).Scan(&perms).Error
	if err != nil {
		return nil, apierror.FromDB(err)
	}
	return perms, nil
}
