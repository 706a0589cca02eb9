package dto

import (
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/google/uuid"
)

// ── Report types ──────────────────────────────────────────────────────────────

type ReportTypeFilter struct {
	ListQuery
	UUID string `form:"uuid"`
	Name string `form:"name"`
}

type CreateReportTypeRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=60"`
	Description *string `json:"description,omitempty"`
}

type UpdateReportTypeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Description *string `json:"description,omitempty"`
}

type ReportTypeResponse struct {
	UUID        uuid.UUID `json:"uuid"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

func NewReportTypeResponse(rt *model.ReportType) ReportTypeResponse {
	return ReportTypeResponse{UUID: rt.UUID, Name: rt.Name, Description: rt.Description}
}

// ── Reports (user ↔ place) ───────────────────────────────────────────────────

type ReportFilter struct {
	ListQuery
	UUID      string `form:"uuid"`
	UserUUID  string `form:"user"`
	PlaceUUID string `form:"place"`
}

type CreateReportRequest struct {
	UserUUID  uuid.UUID `json:"user" validate:"required"`
	PlaceUUID uuid.UUID `json:"place" validate:"required"`
}

type UpdateReportRequest struct {
	UserUUID  *uuid.UUID `json:"user,omitempty"`
	PlaceUUID *uuid.UUID `json:"place,omitempty"`
}

// ReportResponse joins user/place display columns into the row, as the list
// endpoint exposes them.
type ReportResponse struct {
	UUID      uuid.UUID `json:"uuid"`
	UserUUID  uuid.UUID `json:"user_uuid"`
	Username  string    `json:"user_username"`
	PlaceUUID uuid.UUID `json:"place_uuid"`
	PlaceName string    `json:"place_name"`
}

func NewReportResponse(r *model.Report) ReportResponse {
	return ReportResponse{
		UUID:      r.UUID,
		UserUUID:  r.User.UUID,
		Username:  r.User.Username,
		PlaceUUID: r.Place.UUID,
		PlaceName: r.Place.Name,
	}
}

// ── Favorites ────────────────────────────────────────────────────────────────

type FavoriteFilter struct {
	ListQuery
	UUID      string `form:"uuid"`
	UserUUID  string `form:"user"`
	PlaceUUID string `form:"place"`
}

type CreateFavoriteRequest struct {
	PlaceUUID uuid.UUID `json:"place" validate:"required"`
	// UserUUID is optional; when omitted the acting user is assumed.
	UserUUID *uuid.UUID `json:"user,omitempty"`
}

type UpdateFavoriteRequest struct {
	UserUUID  *uuid.UUID `json:"user,omitempty"`
	PlaceUUID *uuid.UUID `json:"place,omitempty"`
}

type FavoriteResponse struct {
	UUID      uuid.UUID `json:"uuid"`
	UserUUID  uuid.UUID `json:"user_uuid"`
	Username  string    `json:"user_username"`
	PlaceUUID uuid.UUID `json:"place_uuid"`
	PlaceName string    `json:"place_name"`
}

func NewFavoriteResponse(f *model.Favorite) FavoriteResponse {
	return FavoriteResponse{
		UUID:      f.UUID,
		UserUUID:  f.User.UUID,
		Username:  f.User.Username,
		PlaceUUID: f.Place.UUID,
		PlaceName: f.Place.Name,
	}
}
