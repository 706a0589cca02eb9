package model

// Role is referenced by name or uuid from users and role-permission links.
type Role struct {
	Tracked
	Name string `gorm:"index;not null" json:"name"`
}

func (Role) TableName() string { return "roles" }

// DefaultRoleName is assigned to self-registered users.
const DefaultRoleName = "viewer"
