package service

import (
	"context"
	"time"

	"github.com/Misscott/LocationAPI/internal/apierror"
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/model"
	"github.com/Misscott/LocationAPI/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	List(ctx context.Context, f dto.UserFilter, now time.Time) ([]dto.UserResponse, dto.Page, error)
	Get(ctx context.Context, id uuid.UUID, now time.Time) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest, now time.Time, actor *uuid.UUID) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest, now time.Time) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) List(ctx context.Context, f dto.UserFilter, now time.Time) ([]dto.UserResponse, dto.Page, error) {
	users, total, err := s.users.List(ctx, f, now)
	if err != nil {
		return nil, dto.Page{}, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.NewUserResponse(&users[i])
	}
	return resp, pageOf(total, f.ListQuery), nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID, now time.Time) (*dto.UserResponse, error) {
	user, err := s.users.FindByUUID(ctx, id, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest, now time.Time, actor *uuid.UUID) (*dto.UserResponse, error) {
	roleName := req.Role
	if roleName == "" {
		roleName = model.DefaultRoleName
	}
	role, err := s.roles.FindByName(ctx, roleName, now)
	if err != nil {
		return nil, apierror.E(apierror.UnprocessableEntity, "unknown role", err)
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
	if err := s.users.Create(ctx, user, now, actor); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest, now time.Time) (*dto.UserResponse, error) {
	fields := map[string]any{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, apierror.E(apierror.ServerError, "", err)
		}
		fields["password"] = string(hash)
	}
	if req.Role != nil {
		role, err := s.roles.FindByName(ctx, *req.Role, now)
		if err != nil {
			return nil, apierror.E(apierror.UnprocessableEntity, "unknown role", err)
		}
		fields["fk_role"] = role.ID
	}

	user, err := s.users.Update(ctx, id, fields, now)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID, now time.Time, actor *uuid.UUID) error {
	return s.users.SoftDelete(ctx, id, actor, nil, now)
}
