package dto

import (
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/google/uuid"
)

// UserFilter mirrors the optional query parameters of GET /users. Absent
// fields contribute no predicate.
type UserFilter struct {
	ListQuery
	UUID     string   `form:"uuid"`
	UUIDList []string `form:"uuidList"`
	Username string   `form:"username"` // substring match
	Email    string   `form:"email"`
	RoleName string   `form:"role"` // resolved via sub-select on roles.name
}

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=60"`
	Password string  `json:"password" validate:"required,min=8"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string  `json:"role,omitempty"` // role name; defaults to viewer
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=60"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty"`
}

type UserResponse struct {
	UUID     uuid.UUID `json:"uuid"`
	Username string    `json:"username"`
	Email    *string   `json:"email,omitempty"`
	Role     string    `json:"role"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UUID:     u.UUID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role.Name,
	}
}
