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

type FavoriteRepository interface {
	List(ctx context.Context, f dto.FavoriteFilter, now time.Time) ([]model.Favorite, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Favorite, error)
	Create(ctx context.Context, fav *model.Favorite, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Favorite, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type favoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository { return &favoriteRepo{db: db} }

func (r *favoriteRepo) filter(f dto.FavoriteFilter, now time.Time) *query.Builder {
	qb := query.At(now, "favorites").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.UserUUID != "" {
		qb.FKByNaturalKey("fk_user", "users", "uuid", f.UserUUID)
	}
	if f.PlaceUUID != "" {
		qb.FKByNaturalKey("fk_place", "places", "uuid", f.PlaceUUID)
	}
	return qb
}

func (r *favoriteRepo) List(ctx context.Context, f dto.FavoriteFilter, now time.Time) ([]model.Favorite, int64, error) {
	qb := r.filter(f, now)
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Favorite{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var favs []model.Favorite
	err = r.db.WithContext(ctx).Model(&model.Favorite{}).
		Scopes(qb.Scope(), pg.Scope()).
		Preload("User").
		Preload("Place").
		Order("created DESC").
		Find(&favs).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return favs, total, nil
}

func (r *favoriteRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Favorite, error) {
	qb := query.At(now, "favorites").Visible().Eq("uuid", id)
	var fav model.Favorite
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).Preload("User").Preload("Place").First(&fav).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &fav, nil
}

func (r *favoriteRepo) Create(ctx context.Context, fav *model.Favorite, now time.Time, createdBy *uuid.UUID) error {
	fav.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *favoriteRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Favorite, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Favorite{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *favoriteRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Favorite{}, id, deletedBy, deletedAt, now)
}
