// Package token mints and validates the bearer credentials of the API.
// Tokens are stateless: there is no server-side revocation list, and logout
// or rotation is the caller's responsibility.
package token

import (
	"errors"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Type discriminates access tokens from refresh tokens. An access token must
// never be accepted where a refresh token is required, and vice versa.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Sentinel causes surfaced inside the Unauthorized errors Verify returns.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpired        = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims is the payload embedded in every token.
type Claims struct {
	Role string    `json:"role"`
	User uuid.UUID `json:"user"`
	Type Type      `json:"type"`
	jwt.RegisteredClaims
}

// Pair is the result of issuing credentials.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service signs and verifies tokens with a shared HMAC secret. Access and
// refresh expiries are independent; a zero TTL means the token never expires
// (explicit opt-in via JWT_TIME=0 / JWT_REFRESH_TIME=0).
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.JWTTime) * time.Second,
		refreshTTL: time.Duration(cfg.JWTRefreshTime) * time.Second,
	}
}

// Issue mints an access/refresh pair for the given identity. No side effects
// beyond signing.
func (s *Service) Issue(role string, user uuid.UUID) (Pair, error) {
	access, err := s.sign(role, user, TypeAccess, s.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.sign(role, user, TypeRefresh, s.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) sign(role string, user uuid.UUID, typ Type, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		User: user,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	// Only an exact zero disables expiry; a negative TTL mints an
	// already-expired token rather than an immortal one.
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, expiry, and token type. Every failure is an
// Unauthorized error wrapping the specific cause, so callers can branch on
// ErrExpired / ErrWrongTokenType / ErrInvalidToken while handlers respond 401
// without leaking which check failed.
func (s *Service) Verify(tokenStr string, expected Type) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		cause := ErrInvalidToken
		if errors.Is(err, jwt.ErrTokenExpired) {
			cause = ErrExpired
		}
		return nil, apierror.E(apierror.Unauthorized, "", errors.Join(cause, err))
	}
	if !tok.Valid {
		return nil, apierror.E(apierror.Unauthorized, "", ErrInvalidToken)
	}
	if claims.Type != expected {
		return nil, apierror.E(apierror.Unauthorized, "", ErrWrongTokenType)
	}
	return claims, nil
}
