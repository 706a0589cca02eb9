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

type PlaceRepository interface {
	List(ctx context.Context, f dto.PlaceFilter, now time.Time) ([]model.Place, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Place, error)
	Create(ctx context.Context, p *model.Place, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Place, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type placeRepo struct{ db *gorm.DB }

func NewPlaceRepository(db *gorm.DB) PlaceRepository { return &placeRepo{db: db} }

func (r *placeRepo) filter(f dto.PlaceFilter, now time.Time) *query.Builder {
	qb := query.At(now, "places").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.Name != "" {
		qb.Contains("name", f.Name)
	}
	if f.Description != "" {
		qb.Contains("description", f.Description)
	}
	if f.Address != "" {
		qb.Contains("address", f.Address)
	}
	// The coordinate lookup only applies when both halves of the natural
	// key are present.
	if f.Latitude != "" && f.Longitude != "" {
		qb.FKByNaturalKey2("fk_coordinate", "coordinates", "latitude", f.Latitude, "longitude", f.Longitude)
	}
	return qb
}

func (r *placeRepo) List(ctx context.Context, f dto.PlaceFilter, now time.Time) ([]model.Place, int64, error) {
	qb := r.filter(f, now)
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Place{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var places []model.Place
	err = r.db.WithContext(ctx).Model(&model.Place{}).
		Scopes(qb.Scope(), pg.Scope()).
		Preload("Coordinate").
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return places, total, nil
}

func (r *placeRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Place, error) {
	qb := query.At(now, "places").Visible().Eq("uuid", id)
	var p model.Place
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).Preload("Coordinate").First(&p).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &p, nil
}

func (r *placeRepo) Create(ctx context.Context, p *model.Place, now time.Time, createdBy *uuid.UUID) error {
	p.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *placeRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Place, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Place{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *placeRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Place{}, id, deletedBy, deletedAt, now)
}
