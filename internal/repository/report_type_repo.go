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

type ReportTypeRepository interface {
	List(ctx context.Context, f dto.ReportTypeFilter, now time.Time) ([]model.ReportType, int64, error)
	FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.ReportType, error)
	Create(ctx context.Context, rt *model.ReportType, now time.Time, createdBy *uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.ReportType, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error
}

type reportTypeRepo struct{ db *gorm.DB }

func NewReportTypeRepository(db *gorm.DB) ReportTypeRepository { return &reportTypeRepo{db: db} }

func (r *reportTypeRepo) filter(f dto.ReportTypeFilter, now time.Time) *query.Builder {
	qb := query.At(now, "report_types").Visible()
	if f.UUID != "" {
		qb.Eq("uuid", f.UUID)
	}
	if f.Name != "" {
		qb.Contains("name", f.Name)
	}
	return qb
}

func (r *reportTypeRepo) List(ctx context.Context, f dto.ReportTypeFilter, now time.Time) ([]model.ReportType, int64, error) {
	qb := r.filter(f, now)
	pg, err := query.Paginate(f.Limit, f.Page)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ReportType{}).Scopes(qb.Scope()).Count(&total).Error; err != nil {
		return nil, 0, apierror.FromDB(err)
	}

	var types []model.ReportType
	err = r.db.WithContext(ctx).Model(&model.ReportType{}).
		Scopes(qb.Scope(), pg.Scope()).
		Order("name ASC").
		Find(&types).Error
	if err != nil {
		return nil, 0, apierror.FromDB(err)
	}
	return types, total, nil
}

func (r *reportTypeRepo) FindByUUID(ctx context.Context, id uuid.UUID, now time.Time) (*model.ReportType, error) {
	qb := query.At(now, "report_types").Visible().Eq("uuid", id)
	var rt model.ReportType
	if err := r.db.WithContext(ctx).Scopes(qb.Scope()).First(&rt).Error; err != nil {
		return nil, apierror.FromDB(err)
	}
	return &rt, nil
}

func (r *reportTypeRepo) Create(ctx context.Context, rt *model.ReportType, now time.Time, createdBy *uuid.UUID) error {
	rt.Tracked = newTracked(now, createdBy)
	if err := r.db.WithContext(ctx).Create(rt).Error; err != nil {
		return apierror.FromDB(err)
	}
	return nil
}

func (r *reportTypeRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any, now time.Time) (*model.ReportType, error) {
	if err := query.GuardedUpdate(r.db.WithContext(ctx), &model.ReportType{}, id, fields); err != nil {
		return nil, err
	}
	return r.FindByUUID(ctx, id, now)
}

func (r *reportTypeRepo) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy *uuid.UUID, deletedAt *time.Time, now time.Time) error {
	return query.SoftDelete(r.db.WithContext(ctx), &model.ReportType{}, id, deletedBy, deletedAt, now)
}
