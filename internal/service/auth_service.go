package service

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/repository"
	"github.com/Misscott/LocationAPI/internal/token"
	"github.com/Misscott/LocationAPI/internal/worker"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, now time.Time) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string, now time.Time) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest, now time.Time) (*dto.UserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tokens     *token.Service
	dispatcher *worker.Dispatcher
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, tokens *token.Service, dispatcher *worker.Dispatcher) AuthService {
	return &authService{users: users, roles: roles, tokens: tokens, dispatcher: dispatcher}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest, now time.Time) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username, now)
	if err != nil {
		// Same answer for unknown user and bad password.
		return nil, apierror.E(apierror.Unauthorized, "invalid credentials", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.E(apierror.Unauthorized, "invalid credentials", err)
	}

	pair, err := s.tokens.Issue(user.Role.Name, user.UUID)
	if err != nil {
		return nil, apierror.E(apierror.ServerError, "", err)
	}

	resp := &dto.LoginResponse{User: dto.NewUserResponse(user)}
	resp.FromPair(pair)
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string, now time.Time) (*dto.LoginResponse, error) {
	claims, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return nil, err
	}

	// The account must still exist and be visible; a deleted user's refresh
	// token buys nothing.
	user, err := s.users.FindByUUID(ctx, claims.User, now)
	if err != nil {
		return nil, apierror.E(apierror.Unauthorized, "invalid credentials", err)
	}

	// Role comes from the row, not the old token, so a role change takes
	// effect on the next refresh.
	pair, err := s.tokens.Issue(user.Role.Name, user.UUID)
	if err != nil {
		return nil, apierror.E(apierror.ServerError, "", err)
	}

	resp := &dto.LoginResponse{User: dto.NewUserResponse(user)}
	resp.FromPair(pair)
	return resp, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest, now time.Time) (*dto.UserResponse, error) {
	role, err := s.roles.FindByName(ctx, model.DefaultRoleName, now)
	if err != nil {
		return nil, apierror.E(apierror.ServerError, "default role is not configured", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apierror.E(apierror.ServerError, "", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := s.users.Create(ctx, user, now, nil); err != nil {
		return nil, err
	}

	if req.Email != nil && s.dispatcher != nil {
		payload := worker.WelcomeEmailPayload{ToEmail: *req.Email, Username: req.Username}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			// Registration already committed; the email is best effort.
			log.Warn().Err(err).Str("username", req.Username).Msg("failed to enqueue welcome email")
		}
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
