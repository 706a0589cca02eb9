package dto

import "github.com/Misscott/LocationAPI/internal/token"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=60"`
	Password string  `json:"password" validate:"required,min=8"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// FromPair copies the issued tokens into a login response.
func (r *LoginResponse) FromPair(p token.Pair) {
	r.AccessToken = p.AccessToken
	r.RefreshToken = p.RefreshToken
	r.TokenType = "bearer"
}
