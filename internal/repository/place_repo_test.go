package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCoordinate(t *testing.T, db *gorm.DB, lat, lng string, created time.Time) *model.Coordinate {
	t.Helper()
	c := &model.Coordinate{
		Tracked:   model.Tracked{UUID: uuid.New(), Created: created},
		Latitude:  decimal.RequireFromString(lat),
		Longitude: decimal.RequireFromString(lng),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedPlace(t *testing.T, db *gorm.DB, name string, coord *model.Coordinate, created time.Time) *model.Place {
	t.Helper()
	p := &model.Place{
		Tracked:      model.Tracked{UUID: uuid.New(), Created: created},
		Name:         name,
		CoordinateID: coord.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestPlaceListSubstringFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewPlaceRepository(db)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	coord := seedCoordinate(t, db, "41.380000", "2.170000", past)
	seedPlace(t, db, "Sagrada Familia", coord, past)
	seedPlace(t, db, "Park Guell", coord, past)

	places, total, err := repo.List(context.Background(), dto.PlaceFilter{Name: "agrada"}, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Sagrada Familia", places[0].Name)
	// Association loaded for the response mapper.
	assert.True(t, places[0].Coordinate.Latitude.Equal(coord.Latitude))
}

func TestPlaceListByCoordinatePair(t *testing.T) {
	db := openTestDB(t)
	repo := NewPlaceRepository(db)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	here := seedCoordinate(t, db, "41.380000", "2.170000", past)
	there := seedCoordinate(t, db, "40.416000", "-3.703000", past)
	seedPlace(t, db, "Here", here, past)
	seedPlace(t, db, "There", there, past)

	places, total, err := repo.List(context.Background(), dto.PlaceFilter{
		Latitude:  "41.380000",
		Longitude: "2.170000",
	}, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Here", places[0].Name)

	// Half a pair filters nothing.
	_, total, err = repo.List(context.Background(), dto.PlaceFilter{Latitude: "41.380000"}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestCoordinateFindByLatLng(t *testing.T) {
	db := openTestDB(t)
	repo := NewCoordinateRepository(db)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	c := seedCoordinate(t, db, "41.380000", "2.170000", past)

	got, err := repo.FindByLatLng(context.Background(), c.Latitude, c.Longitude, now)
	require.NoError(t, err)
	assert.Equal(t, c.UUID, got.UUID)

	_, err = repo.FindByLatLng(context.Background(),
		decimal.RequireFromString("0.000001"), decimal.RequireFromString("0.000001"), now)
	assert.True(t, apierror.Is(err, apierror.NotFound))
}

func TestPlaceDeleteLeavesCoordinate(t *testing.T) {
	db := openTestDB(t)
	places := NewPlaceRepository(db)
	coords := NewCoordinateRepository(db)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	coord := seedCoordinate(t, db, "41.380000", "2.170000", past)
	p := seedPlace(t, db, "Transient", coord, past)

	require.NoError(t, places.SoftDelete(context.Background(), p.UUID, nil, nil, now))

	// The coordinate survives; other places may anchor to it.
	_, err := coords.FindByUUID(context.Background(), coord.UUID, now)
	assert.NoError(t, err)
}
