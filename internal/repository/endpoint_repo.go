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

// EndpointRepository manages the route templates permission checks resolve
// against. FindByRoute compares stored strings exactly — templates like
// "/places/:uuid" are data, never matched against live URLs here.
type EndpointRepository interface {
	List(ctx context.Context, f dto.EndpointFilter, now time.Time) ([]model.Endpoint, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Endpoint, error)
	FindByRoute(ctx context.Context, route string, now time.Time) (*model.Endpoint, error)
	Create(ctx context.Context, e *model.Endpoint, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Endpoint, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type endpointRepo struct{ db *gorm.DB }

func NewEndpointRepository(db *gorm.DB) EndpointRepository { return &endpointRepo{db: db} }

func (r *endpointRepo) List(ctx context.Context, f dto.EndpointFilter, now time.Time) ([]model.Endpoint, int64, error) {
	qb := query.At(now, "endpoints").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.Route != "" {
		qb.Eq("route", f.Route)
	}
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Endpoint{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var endpoints []model.Endpoint
	err = r.db.WithContext(ctx).Model(&model.Endpoint{}).
		Scopes(qb.Scope(), pg.Scope()).
		Order("route ASC").
		Find(&endpoints).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return endpoints, total, nil
}

func (r *endpointRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Endpoint, error) {
	qb := query.At(now, "endpoints").Visible().Eq("uuid", id)
	var e model.Endpoint
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&e).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &e, nil
}

func (r *endpointRepo) FindByRoute(ctx context.Context, route string, now time.Time) (*model.Endpoint, error) {
	qb := query.At(now, "endpoints").Visible().Eq("route", route)
	var e model.Endpoint
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&e).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &e, nil
}

func (r *endpointRepo) Create(ctx context.Context, e *model.Endpoint, now time.Time, createdBy *uuid.UUID) error {
	e.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *endpointRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Endpoint, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Endpoint{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *endpointRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Endpoint{}, id, deletedBy, deletedAt, now)
}
