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

type ReportRepository interface {
	List(ctx context.Context, f dto.ReportFilter, now time.Time) ([]model.Report, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Report, error)
	Create(ctx context.Context, rep *model.Report, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Report, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) filter(f dto.ReportFilter, now time.Time) *query.Builder {
	qb := query.At(now, "users_has_places").Visible()
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

func (r *reportRepo) List(ctx context.Context, f dto.ReportFilter, now time.Time) ([]model.Report, int64, error) {
	qb := r.filter(f, now)
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Report{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var reports []model.Report
	err = r.db.WithContext(ctx).Model(&model.Report{}).
		Scopes(qb.Scope(), pg.Scope()).
		Preload("User").
		Preload("Place").
		Order("created DESC").
		Find(&reports).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return reports, total, nil
}

func (r *reportRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.Report, error) {
	qb := query.At(now, "users_has_places").Visible().Eq("uuid", id)
	var rep model.Report
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).Preload("User").Preload("Place").First(&rep).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &rep, nil
}

func (r *reportRepo) Create(ctx context.Context, rep *model.Report, now time.Time, createdBy *uuid.UUID) error {
	rep.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *reportRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.Report, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.Report{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *reportRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.Report{}, id, deletedBy, deletedAt, now)
}
