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

type PermissionRepository interface {
	List(ctx context.Context, f dto.PermissionFilter, now time.Time) ([]model.Permission, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Permission, error)
	Create(ctx context.Context, p *model.Permission, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Permission, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type permissionRepo struct{ db *gorm.DB }

func NewPermissionRepository(db *gorm.DB) PermissionRepository { return &permissionRepo{db: db} }

func (r *permissionRepo) List(ctx context.Context, f dto.PermissionFilter, now time.Time) ([]model.Permission, int64, error) {
	qb := query.At(now, "permissions").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.Action != "" {
		qb.Eq("action", f.Action)
	}
	if f.Route != "" {
		qb.FKByNaturalKey("fk_endpoint", "endpoints", "route", f.Route)
	}
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Permission{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var permissions []model.Permission
	err = r.db.WithContext(ctx).Model(&model.Permission{}).
		Scopes(qb.Scope(), pg.Scope()).
		Preload("Endpoint").
		Order("action ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return permissions, total, nil
}

func (r *permissionRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Permission, error) {
	qb := query.At(now, "permissions").Visible().Eq("uuid", id)
	var p model.Permission
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).Preload("Endpoint").First(&p).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &p, nil
}

func (r *permissionRepo) Create(ctx context.Context, p *model.Permission, now time.Time, createdBy *uuid.UUID) error {
	p.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *permissionRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Permission, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Permission{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *permissionRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Permission{}, id, deletedBy, deletedAt, now)
}
