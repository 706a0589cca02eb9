package model

// RolePermission links a role to a permission. A role's effective permission
// set is every permission reachable through non-deleted links; a soft-deleted
// link, permission, or endpoint grants nothing.
type RolePermission struct {
	Tracked
	RoleID       uint       `gorm:"column:fk_role;not null" json:"-"`
	PermissionID uint       `gorm:"column:fk_permission;not null" json:"-"`
	Role         Role       `gorm:"foreignKey:RoleID" json:"-"`
	Permission   Permission `gorm:"foreignKey:PermissionID" json:"-"`
}

func (RolePermission) TableName() string { return "roles_has_permissions" }

// EffectivePermission is one row of a role's effective permission set as
// resolved by the permission join: the verb plus the endpoint it applies to.
type EffectivePermission struct {
	Action     string `json:"action"`
	EndpointID uint   `json:"-"`
	Route      string `json:"route"`
}
