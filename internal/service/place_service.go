package service

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceService manages places and their coordinates. Coordinates are
// deduplicated on (latitude, longitude): creating a place at a known pair
// reuses the row, an unknown pair inserts one.
type PlaceService interface {
	List(ctx context.Context, f dto.PlaceFilter, now time.Time) ([]dto.PlaceResponse, dto.Page, error)
	Get(ctx context.Context, id uuid.UUID, now time.Time) (*dto.PlaceResponse, error)
	Create(ctx context.Context, req dto.CreatePlaceRequest, now time.Time, actor *uuid.UUID) (*dto.PlaceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePlaceRequest, now time.Time, actor *uuid.UUID) (*dto.PlaceResponse, error)
	Delete(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error

	ListCoordinates(ctx context.Context, f dto.CoordinateFilter, now time.Time) ([]dto.CoordinateResponse, dto.Page, error)
	GetCoordinate(ctx context.Context, id uuid.UUID, now time.Time) (*dto.CoordinateResponse, error)
	CreateCoordinate(ctx context.Context, req dto.CreateCoordinateRequest, now time.Time, actor *uuid.UUID) (*dto.CoordinateResponse, error)
	UpdateCoordinate(ctx context.Context, id uuid.UUID, req dto.UpdateCoordinateRequest, now time.Time) (*dto.CoordinateResponse, error)
	DeleteCoordinate(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error
}

type placeService struct {
	places      repository.PlaceRepository
	coordinates repository.CoordinateRepository
}

func NewPlaceService(places repository.PlaceRepository, coordinates repository.CoordinateRepository) PlaceService {
	return &placeService{places: places, coordinates: coordinates}
}

// ── Places ────────────────────────────────────────────────────────────────────

func (s *placeService) List(ctx context.Context, f dto.PlaceFilter, now time.Time) ([]dto.PlaceResponse, dto.Page, error) {
	places, total, err := s.places.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.PlaceResponse, len(places))
	for i := range places {
		resp[i] = dto.NewPlaceResponse(&places[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *placeService) Get(ctx context.Context, id uuid.UUID, now time.Time) (*dto.PlaceResponse, error) {
	p, err := s.places.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPlaceResponse(p)
	return &resp, nil
}

func (s *placeService) Create(ctx context.Context, req dto.CreatePlaceRequest, now time.Time, actor *uuid.UUID) (*dto.PlaceResponse, error) {
	coord, err := s.findOrCreateCoordinate(ctx, req.Latitude, req.Longitude, now, actor)
	if err != nil {
		return nil, err
	}

	p := &model.Place{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		CoordinateID: coord.ID,
		Coordinate:   *coord,
	}
	if err := s.places.Create(ctx, p, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewPlaceResponse(p)
	return &resp, nil
}

func (s *placeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePlaceRequest, now time.Time, actor *uuid.UUID) (*dto.PlaceResponse, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Latitude != nil || req.Longitude != nil {
		// Moving a place needs the full pair.
		if req.Latitude == nil || req.Longitude == nil {
			return nil, apierror.E(apierror.BadRequest, "latitude and longitude must be updated together", nil)
		}
		coord, err := s.findOrCreateCoordinate(ctx, *req.Latitude, *req.Longitude, now, actor)
		if err != nil {
			return nil, err
		}
		fields["fk_coordinate"] = coord.ID
	}

	p, err := s.places.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPlaceResponse(p)
	return &resp, nil
}

func (s *placeService) Delete(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.places.SoftDelete(ctx, id, actor, nil, now)
}

func (s *placeService) findOrCreateCoordinate(ctx context.Context, lat, lng decimal.Decimal, now time.Time, actor *uuid.UUID) (*model.Coordinate, error) {
	coord, err := s.coordinates.FindByLatLng(ctx, lat, lng, now)
	if err == nil {
		return coord, nil
	}
	if !apierror.Is(err, apierror.NotFound) {
		return nil, err
	}
	coord = &model.Coordinate{Latitude: lat, Longitude: lng}
	if err := s.coordinates.Create(ctx, coord, now, actor); err != nil {
		return nil, err
	}
	return coord, nil
}

// ── Coordinates ───────────────────────────────────────────────────────────────

func (s *placeService) ListCoordinates(ctx context.Context, f dto.CoordinateFilter, now time.Time) ([]dto.CoordinateResponse, dto.Page, error) {
	coords, total, err := s.coordinates.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.CoordinateResponse, len(coords))
	for i := range coords {
		resp[i] = dto.NewCoordinateResponse(&coords[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *placeService) GetCoordinate(ctx context.Context, id uuid.UUID, now time.Time) (*dto.CoordinateResponse, error) {
	c, err := s.coordinates.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCoordinateResponse(c)
	return &resp, nil
}

func (s *placeService) CreateCoordinate(ctx context.Context, req dto.CreateCoordinateRequest, now time.Time, actor *uuid.UUID) (*dto.CoordinateResponse, error) {
	c := &model.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	if err := s.coordinates.Create(ctx, c, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewCoordinateResponse(c)
	return &resp, nil
}

func (s *placeService) UpdateCoordinate(ctx context.Context, id uuid.UUID, req dto.UpdateCoordinateRequest, now time.Time) (*dto.CoordinateResponse, error) {
	fields := map[string]any{}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	c, err := s.coordinates.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCoordinateResponse(c)
	return &resp, nil
}

func (s *placeService) DeleteCoordinate(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.coordinates.SoftDelete(ctx, id, actor, nil, now)
}
