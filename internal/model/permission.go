package model

// Permission pairs an HTTP verb with an endpoint template.
type Permission struct {
	Tracked
	Action     string   `gorm:"not null" json:"action"`
	EndpointID uint     `gorm:"column:fk_endpoint;not null" json:"-"`
	Endpoint   Endpoint `gorm:"foreignKey:EndpointID" json:"-"`
}

func (Permission) TableName() string { return "permissions" }
