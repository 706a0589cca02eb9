package model

// Place is a named location anchored to a coordinate.
type Place struct {
	Tracked
	Name         string     `gorm:"index;not null" json:"name"`
	Description  *string    `json:"description,omitempty"`
	Address      *string    `json:"address,omitempty"`
	CoordinateID uint       `gorm:"column:fk_coordinate;not null" json:"-"`
	Coordinate   Coordinate `gorm:"foreignKey:CoordinateID" json:"-"`
}

func (Place) TableName() string { return "places" }
