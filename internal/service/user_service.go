package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JesusCruzCelis/Sistema-Citas2/internal/dto"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/repository"
)

var (
	ErrEmailTaken  = errors.New("email already registered")
	ErrInvalidRole = errors.New("unknown role")
)

// UserService manages staff accounts (admins, coordinators, guards).
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	GetByName(ctx context.Context, name, paternal, maternal string) (*dto.UserResponse, error)
	List(ctx context.Context, role, area string) ([]dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService builds the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if !passwordStrongEnough(req.Password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("checking email failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:            req.Name,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Email:           req.Email,
		PasswordHash:    string(hash),
		Role:            role,
		Area:            req.Area,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("creating user failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("id", user.UserID),
		zap.String("role", string(user.Role)))

	return toUserResponse(user), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── GetByName ──────────────────────

func (s *userService) GetByName(ctx context.Context, name, paternal, maternal string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByName(ctx, name, paternal, maternal)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading user by name failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── List ──────────────────────

// List returns all users, narrowed by role or area when one is given.
func (s *userService) List(ctx context.Context, role, area string) ([]dto.UserResponse, error) {
	var (
		users []model.User
		err   error
	)
	switch {
	case role != "":
		r := model.Role(role)
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
		users, err = s.repo.User.ListByRole(ctx, r)
	case area != "":
		users, err = s.repo.User.ListByArea(ctx, area)
	default:
		users, err = s.repo.User.List(ctx)
	}
	if err != nil {
		s.logger.Error("listing users failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PaternalSurname != nil {
		user.PaternalSurname = *req.PaternalSurname
	}
	if req.MaternalSurname != nil {
		user.MaternalSurname = *req.MaternalSurname
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if !passwordStrongEnough(*req.Password) {
			return nil, ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		r := model.Role(*req.Role)
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = r
	}
	if req.Area != nil {
		user.Area = *req.Area
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("updating user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("loading user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("deleting user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("user deleted", zap.String("id", id))
	return nil
}

// ── internal helpers ──

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.UserID,
		Name:            u.Name,
		PaternalSurname: u.PaternalSurname,
		MaternalSurname: u.MaternalSurname,
		Email:           u.Email,
		Role:            string(u.Role),
		Area:            u.Area,
		CreatedAt:       u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
