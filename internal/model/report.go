package model

// Report records that a user reported a place (table users_has_places).
type Report struct {
	Tracked
	UserID  uint  `gorm:"column:fk_user;not null" json:"-"`
	PlaceID uint  `gorm:"column:fk_place;not null" json:"-"`
	User    User  `gorm:"foreignKey:UserID" json:"-"`
	Place   Place `gorm:"foreignKey:PlaceID" json:"-"`
}

func (Report) TableName() string { return "users_has_places" }
