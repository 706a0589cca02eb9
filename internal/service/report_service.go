package service

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/repository"

	"github.com/google/uuid"
)

// ReportService manages report types, user reports about places, and
// favorites. Reports and favorites share the same shape: a (user, place)
// link resolved from public uuids.
type ReportService interface {
	ListReportTypes(ctx context.Context, f dto.ReportTypeFilter, now time.Time) ([]dto.ReportTypeResponse, dto.Page, error)
	GetReportType(ctx context.Context, id uuid.UUID, now time.Time) (*dto.ReportTypeResponse, error)
	CreateReportType(ctx context.Context, req dto.CreateReportTypeRequest, now time.Time, actor *uuid.UUID) (*dto.ReportTypeResponse, error)
	UpdateReportType(ctx context.Context, id uuid.UUID, req dto.UpdateReportTypeRequest, now time.Time) (*dto.ReportTypeResponse, error)
	DeleteReportType(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error

	ListReports(ctx context.Context, f dto.ReportFilter, now time.Time) ([]dto.ReportResponse, dto.Page, error)
	GetReport(ctx context.Context, id uuid.UUID, now time.Time) (*dto.ReportResponse, error)
	CreateReport(ctx context.Context, req dto.CreateReportRequest, now time.Time, actor *uuid.UUID) (*dto.ReportResponse, error)
	UpdateReport(ctx context.Context, id uuid.UUID, req dto.UpdateReportRequest, now time.Time) (*dto.ReportResponse, error)
	DeleteReport(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error

	ListFavorites(ctx context.Context, f dto.FavoriteFilter, now time.Time) ([]dto.FavoriteResponse, dto.Page, error)
	GetFavorite(ctx context.Context, id uuid.UUID, now time.Time) (*dto.FavoriteResponse, error)
	CreateFavorite(ctx context.Context, req dto.CreateFavoriteRequest, now time.Time, actor *uuid.UUID) (*dto.FavoriteResponse, error)
	UpdateFavorite(ctx context.Context, id uuid.UUID, req dto.UpdateFavoriteRequest, now time.Time) (*dto.FavoriteResponse, error)
	DeleteFavorite(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error
}

type reportService struct {
	reportTypes repository.ReportTypeRepository
	reports     repository.ReportRepository
	favorites   repository.FavoriteRepository
	users       repository.UserRepository
	places      repository.PlaceRepository
}

func NewReportService(
	reportTypes repository.ReportTypeRepository,
	reports repository.ReportRepository,
	favorites repository.FavoriteRepository,
	users repository.UserRepository,
	places repository.PlaceRepository,
) ReportService {
	return &reportService{
		reportTypes: reportTypes,
		reports:     reports,
		favorites:   favorites,
		users:       users,
		places:      places,
	}
}

// resolveLink turns the public (user, place) uuids into internal FK ids. A
// missing or invisible referent rejects the request rather than inserting a
// dangling link.
func (s *reportService) resolveLink(ctx context.Context, userUUID, placeUUID uuid.UUID, now time.Time) (*model.User, *model.Place, error) {
	user, err := s.users.FindByUUID(ctx, userUUID, now)
	if err != nil {
		return nil, nil, apierror.E(apierror.UnprocessableEntity, "unknown user", err)
	}
	place, err := s.places.FindByUUID(ctx, placeUUID, now)
	if err != nil {
		return nil, nil, apierror.E(apierror.UnprocessableEntity, "unknown place", err)
	}
	return user, place, nil
}

// ── Report types ──────────────────────────────────────────────────────────────

func (s *reportService) ListReportTypes(ctx context.Context, f dto.ReportTypeFilter, now time.Time) ([]dto.ReportTypeResponse, dto.Page, error) {
	types, total, err := s.reportTypes.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.ReportTypeResponse, len(types))
	for i := range types {
		resp[i] = dto.NewReportTypeResponse(&types[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *reportService) GetReportType(ctx context.Context, id uuid.UUID, now time.Time) (*dto.ReportTypeResponse, error) {
	rt, err := s.reportTypes.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewReportTypeResponse(rt)
	return &resp, nil
}

func (s *reportService) CreateReportType(ctx context.Context, req dto.CreateReportTypeRequest, now time.Time, actor *uuid.UUID) (*dto.ReportTypeResponse, error) {
	rt := &model.ReportType{Name: req.Name, Description: req.Description}
	if err := s.reportTypes.Create(ctx, rt, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewReportTypeResponse(rt)
	return &resp, nil
}

func (s *reportService) UpdateReportType(ctx context.Context, id uuid.UUID, req dto.UpdateReportTypeRequest, now time.Time) (*dto.ReportTypeResponse, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	rt, err := s.reportTypes.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewReportTypeResponse(rt)
	return &resp, nil
}

func (s *reportService) DeleteReportType(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.reportTypes.SoftDelete(ctx, id, actor, nil, now)
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (s *reportService) ListReports(ctx context.Context, f dto.ReportFilter, now time.Time) ([]dto.ReportResponse, dto.Page, error) {
	reports, total, err := s.reports.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		resp[i] = dto.NewReportResponse(&reports[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *reportService) GetReport(ctx context.Context, id uuid.UUID, now time.Time) (*dto.ReportResponse, error) {
	rep, err := s.reports.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewReportResponse(rep)
	return &resp, nil
}

func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest, now time.Time, actor *uuid.UUID) (*dto.ReportResponse, error) {
	user, place, err := s.resolveLink(ctx, req.UserUUID, req.PlaceUUID, now)
	if err != nil {
		return nil, err
	}
	rep := &model.Report{UserID: user.ID, PlaceID: place.ID, User: *user, Place: *place}
	if err := s.reports.Create(ctx, rep, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewReportResponse(rep)
	return &resp, nil
}

func (s *reportService) UpdateReport(ctx context.Context, id uuid.UUID, req dto.UpdateReportRequest, now time.Time) (*dto.ReportResponse, error) {
	fields, err := s.linkFields(ctx, req.UserUUID, req.PlaceUUID, now)
	if err != nil {
		return nil, err
	}
	rep, err := s.reports.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewReportResponse(rep)
	return &resp, nil
}

func (s *reportService) DeleteReport(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.reports.SoftDelete(ctx, id, actor, nil, now)
}

// ── Favorites ─────────────────────────────────────────────────────────────────

func (s *reportService) ListFavorites(ctx context.Context, f dto.FavoriteFilter, now time.Time) ([]dto.FavoriteResponse, dto.Page, error) {
	favs, total, err := s.favorites.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.FavoriteResponse, len(favs))
	for i := range favs {
		resp[i] = dto.NewFavoriteResponse(&favs[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *reportService) GetFavorite(ctx context.Context, id uuid.UUID, now time.Time) (*dto.FavoriteResponse, error) {
	fav, err := s.favorites.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewFavoriteResponse(fav)
	return &resp, nil
}

func (s *reportService) CreateFavorite(ctx context.Context, req dto.CreateFavoriteRequest, now time.Time, actor *uuid.UUID) (*dto.FavoriteResponse, error) {
	// An omitted user means "favorite it for me".
	userUUID := req.UserUUID
	if userUUID == nil {
		if actor == nil {
			return nil, apierror.E(apierror.BadRequest, "user is required", nil)
		}
		userUUID = actor
	}

	user, place, err := s.resolveLink(ctx, *userUUID, req.PlaceUUID, now)
	if err != nil {
		return nil, err
	}
	fav := &model.Favorite{UserID: user.ID, PlaceID: place.ID, User: *user, Place: *place}
	if err := s.favorites.Create(ctx, fav, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewFavoriteResponse(fav)
	return &resp, nil
}

func (s *reportService) UpdateFavorite(ctx context.Context, id uuid.UUID, req dto.UpdateFavoriteRequest, now time.Time) (*dto.FavoriteResponse, error) {
	fields, err := s.linkFields(ctx, req.UserUUID, req.PlaceUUID, now)
	if err != nil {
		return nil, err
	}
	fav, err := s.favorites.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewFavoriteResponse(fav)
	return &resp, nil
}

func (s *reportService) DeleteFavorite(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.favorites.SoftDelete(ctx, id, actor, nil, now)
}

// linkFields resolves the optional uuids of a link update into FK columns.
func (s *reportService) linkFields(ctx context.Context, userUUID, placeUUID *uuid.UUID, now time.Time) (map[string]any, error) {
	fields := map[string]any{}
	if userUUID != nil {
		user, err := s.users.FindByUUID(ctx, *userUUID, now)
		if err != nil {
			return nil, apierror.E(apierror.UnprocessableEntity, "unknown user", err)
		}
		fields["fk_user"] = user.ID
	}
	if placeUUID != nil {
		place, err := s.places.FindByUUID(ctx, *placeUUID, now)
		if err != nil {
			return nil, apierror.E(apierror.UnprocessableEntity, "unknown place", err)
		}
		fields["fk_place"] = place.ID
	}
	return fields, nil
}
