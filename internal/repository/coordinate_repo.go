package repository

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CoordinateRepository interface {
	List(ctx context.Context, f dto.CoordinateFilter, now time.Time) ([]model.Coordinate, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Coordinate, error)
	FindByLatLng(ctx context.Context, lat, lng decimal.Decimal, now time.Time) (*model.Coordinate, error)
	Create(ctx context.Context, c *model.Coordinate, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Coordinate, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type coordinateRepo struct{ db *gorm.DB }

func NewCoordinateRepository(db *gorm.DB) CoordinateRepository { return &coordinateRepo{db: db} }

func (r *coordinateRepo) List(ctx context.Context, f dto.CoordinateFilter, now time.Time) ([]model.Coordinate, int64, error) {
	qb := query.At(now, "coordinates").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.Latitude != "" {
		qb.Eq("latitude", f.Latitude)
	}
	if f.Longitude != "" {
		qb.Eq("longitude", f.Longitude)
	}
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Coordinate{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var coords []model.Coordinate
	err = r.db.WithContext(ctx).Model(&model.Coordinate{}).
		Scopes(qb.Scope(), pg.Scope()).
		Find(&coords).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return coords, total, nil
}

func (r *coordinateRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Coordinate, error) {
	qb := query.At(now, "coordinates").Visible().Eq("uuid", id)
	var c model.Coordinate
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&c).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &c, nil
}

func (r *coordinateRepo) FindByLatLng(ctx context.Context, lat, lng decimal.Decimal, now time.Time) (*model.Coordinate, error) {
	qb := query.At(now, "coordinates").Visible().Eq("latitude", lat).Eq("longitude", lng)
	var c model.Coordinate
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&c).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &c, nil
}

func (r *coordinateRepo) Create(ctx context.Context, c *model.Coordinate, now time.Time, createdBy *uuid.UUID) error {
	c.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *coordinateRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Coordinate, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Coordinate{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *coordinateRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Coordinate{}, id, deletedBy, deletedAt, now)
}
