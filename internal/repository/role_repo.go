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

type RoleRepository interface {
	List(ctx context.Context, f dto.RoleFilter, now time.Time) ([]model.Role, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Role, error)
	FindByName(ctx context.Context, name string, now time.Time) (*model.Role, error)
	Create(ctx context.Context, role *model.Role, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Role, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type roleRepo struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepo{db: db} }

func (r *roleRepo) List(ctx context.Context, f dto.RoleFilter, now time.Time) ([]model.Role, int64, error) {
	qb := query.At(now, "roles").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.Name != "" {
		qb.Eq("name", f.Name)
	}
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Role{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var roles []model.Role
	err = r.db.WithContext(ctx).Model(&model.Role{}).
		Scopes(qb.Scope(), pg.Scope()).
		Order("name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return roles, total, nil
}

func (r *roleRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Role, error) {
	qb := query.At(now, "roles").Visible().Eq("uuid", id)
	var role model.Role
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&role).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &role, nil
}

func (r *roleRepo) FindByName(ctx context.Context, name string, now time.Time) (*model.Role, error) {
	qb := query.At(now, "roles").Visible().Eq("name", name)
	var role model.Role
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&role).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &role, nil
}

func (r *roleRepo) Create(ctx context.Context, role *model.Role, now time.Time, createdBy *uuid.UUID) error {
	role.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *roleRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Role, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Role{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *roleRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Role{}, id, deletedBy, deletedAt, now)
}
