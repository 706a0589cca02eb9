package model

import "github.com/shopspring/decimal"

// Coordinate is a latitude/longitude pair. Decimals keep equality lookups
// exact — the (latitude, longitude) pair is the natural key places resolve
// their FK through.
type Coordinate struct {
	Tracked
	Latitude  decimal.Decimal `gorm:"type:numeric(9,6);not null" json:"latitude"`
	Longitude decimal.Decimal `gorm:"type:numeric(9,6);not null" json:"longitude"`
}

func (Coordinate) TableName() string { return "coordinates" }
