package model

// User stores system accounts. Username must be unique among visible rows:
// the repository checks it against the visibility window before insert, and
// a partial unique index on (username) WHERE deleted IS NULL backs the same
// rule in postgres (see infra.applySchemaPatches).
type User struct {
	Tracked
	Username     string  `gorm:"index;not null" json:"username"`
	PasswordHash string  `gorm:"column:password;not null" json:"-"`
	Email        *string `json:"email,omitempty"`
	RoleID       uint    `gorm:"column:fk_role;not null" json:"-"`
	Role         Role    `gorm:"foreignKey:RoleID" json:"-"`
}

func (User) TableName() string { return "users" }
