package dto

import (
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Coordinates ───────────────────────────────────────────────────────────────

type CoordinateFilter struct {
	ListQuery
	UUID      string `form:"uuid"`
	Latitude  string `form:"latitude"`
	Longitude string `form:"longitude"`
}

type CreateCoordinateRequest struct {
	Latitude  decimal.Decimal `json:"latitude" validate:"required"`
	Longitude decimal.Decimal `json:"longitude" validate:"required"`
}

type UpdateCoordinateRequest struct {
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
}

type CoordinateResponse struct {
	UUID      uuid.UUID       `json:"uuid"`
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

func NewCoordinateResponse(c *model.Coordinate) CoordinateResponse {
	return CoordinateResponse{UUID: c.UUID, Latitude: c.Latitude, Longitude: c.Longitude}
}

// ── Places ────────────────────────────────────────────────────────────────────

// PlaceFilter supports substring search over the text columns and an exact
// coordinate lookup; latitude and longitude only filter when both are set.
type PlaceFilter struct {
	ListQuery
	UUID        string `form:"uuid"`
	Name        string `form:"name"`
	Description string `form:"description"`
	Address     string `form:"address"`
	Latitude    string `form:"latitude"`
	Longitude   string `form:"longitude"`
}

type CreatePlaceRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=120"`
	Description *string         `json:"description,omitempty"`
	Address     *string         `json:"address,omitempty"`
	Latitude    decimal.Decimal `json:"latitude" validate:"required"`
	Longitude   decimal.Decimal `json:"longitude" validate:"required"`
}

type UpdatePlaceRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string          `json:"description,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Latitude    *decimal.Decimal `json:"latitude,omitempty"`
	Longitude   *decimal.Decimal `json:"longitude,omitempty"`
}

type PlaceResponse struct {
	UUID        uuid.UUID       `json:"uuid"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Address     *string         `json:"address,omitempty"`
	Latitude    decimal.Decimal `json:"latitude"`
	Longitude   decimal.Decimal `json:"longitude"`
}

func NewPlaceResponse(p *model.Place) PlaceResponse {
	return PlaceResponse{
		UUID:        p.UUID,
		Name:        p.Name,
		Description: p.Description,
		Address:     p.Address,
		Latitude:    p.Coordinate.Latitude,
		Longitude:   p.Coordinate.Longitude,
	}
}
