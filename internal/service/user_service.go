package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"prodtrack/internal/apperr"
	"prodtrack/internal/dto"
	"prodtrack/internal/model"
	"prodtrack/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers the admin-side user management. Role is immutable after
// creation; there is deliberately no role-change operation.
type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (dto.UserResponse, error)
	// Delete removes a user and their access grants. callerID guards
	// against self-deletion.
	Delete(ctx context.Context, id, callerID uint) error
}

type userService struct {
	users  repository.UserRepository
	access repository.AccessRepository
}

func NewUserService(users repository.UserRepository, access repository.AccessRepository) UserService {
	return &userService{users: users, access: access}
}

func mapUser(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Note:      u.Note,
		CreatedAt: u.CreatedAt.Format(time.DateTime),
	}
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return dto.UserResponse{}, apperr.Conflict("username already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return dto.UserResponse{}, err
	}
	u := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         req.Role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Note:         shapeNote(req.Note),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return dto.UserResponse{}, err
	}
	return mapUser(*u), nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, mapUser(u))
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, apperr.NotFound("user not found")
		}
		return dto.UserResponse{}, err
	}
	return mapUser(*u), nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (dto.UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, apperr.NotFound("user not found")
		}
		return dto.UserResponse{}, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Note != nil {
		u.Note = shapeNote(req.Note)
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return dto.UserResponse{}, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return dto.UserResponse{}, err
	}
	return mapUser(*u), nil
}

func (s *userService) Delete(ctx context.Context, id, callerID uint) error {
	if id == callerID {
		return apperr.Validation("cannot delete your own account")
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	// Grants go with the user; historical target/production rows keep the
	// dangling user id.
	return s.access.DeleteForUser(ctx, id)
}
