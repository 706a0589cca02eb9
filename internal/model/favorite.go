package model

// Favorite marks a place as a favorite of a user.
type Favorite struct {
	Tracked
	UserID  uint  `gorm:"column:fk_user;not null" json:"-"`
	PlaceID uint  `gorm:"column:fk_place;not null" json:"-"`
	User    User  `gorm:"foreignKey:UserID" json:"-"`
	Place   Place `gorm:"foreignKey:PlaceID" json:"-"`
}

func (Favorite) TableName() string { return "favorites" }
