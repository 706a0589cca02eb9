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

// UserRepository defines the data access contract for accounts. Services
// depend on this interface, not the concrete GORM implementation.
type UserRepository interface {
	List(ctx context.Context, f dto.UserFilter, now time.Time) ([]model.User, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.User, error)
	FindByUsername(ctx context.Context, username string, now time.Time) (*model.User, error)
	Create(ctx context.Context, u *model.User, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) filter(f dto.UserFilter, now time.Time) *query.Builder {
	qb := query.At(now, "users").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if len(f.UUIDList) > 0 {
		qb.In("uuid", f.UUIDList)
	}
	if f.Username != "" {
		qb.Contains("username", f.Username)
	}
	if f.Email != "" {
		qb.Eq("email", f.Email)
	}
	if f.RoleName != "" {
		qb.FKByNaturalKey("fk_role", "roles", "name", f.RoleName)
	}
	return qb
}

func (r *userRepo) List(ctx context.Context, f dto.UserFilter, now time.Time) ([]model.User, int64, error) {
	qb := r.filter(f, now)
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var users []model.User
	err = r.db.WithContext(ctx).Model(&model.User{}).
		Scopes(qb.Scope(), pg.Scope()).
		Preload("Role").
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return users, total, nil
}

func (r *userRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.User, error) {
	qb := query.At(now, "users").Visible().Eq("uuid", id)
	var u model.User
	err := r.db.WithContext(ctx).Scopes(qb.Scope()).Preload("Role").First(&u).Error
	if err != nil {
		return nil, apierror.FromDB(err)
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string, now time.Time) (*model.User, error) {
	qb := query.At(now, "users").Visible().Eq("username", username)
	var u model.User
	err := r.db.WithContext(ctx).Scopes(qb.Scope()).Preload("Role").First(&u).Error
	if err != nil {
		return nil, apierror.FromDB(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *model.User, now time.Time, createdBy *uuid.UUID) error {
	u.Tracked = newTracked(now, createdBy)

	// Username uniqueness holds among visible rows; the partial index
	// enforces it in postgres, this check gives the 409 a clean message.
	var n int64
	qb := query.At(now, "users").Visible().Eq("username", u.Username)
	if err := r.db.WithContext(ctx).Model(&model.User{}).Scopes(qb.Scope()).Count(&n).Error; err != nil {
		return apierror.FromDB(err)
	}
	if n > 0 {
		return apierror.E(apierror.Conflict, "username already taken", nil)
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.User, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.User{}, id, fields); err != nil {
		return nil, err
	}
	// Read-after-write: the row must still be visible at the request's now.
	return r.FindByUUID(ctx, id, now)
}

func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.User{}, id, deletedBy, deletedAt, now)
}
