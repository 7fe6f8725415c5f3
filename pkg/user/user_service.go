package user

import (
	"context"
	"errors"
	"strings"

	"tmm-backend/domain"
	"tmm-backend/entities"
	"tmm-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		ValidateSession(ctx context.Context, token string) (domain.Session, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		EnsureAdmin(ctx context.Context, email, name, password string) (bool, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// ValidateSession checks the token and that its user still exists.
func (s *userService) ValidateSession(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrTokenNotFound
	}

	userID, role, err := s.jwtService.GetUserIDByToken(token)
	if err != nil {
		return domain.Session{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, domain.ErrTokenInvalid
		}
		return domain.Session{}, err
	}

	if user.Role != role {
		return domain.Session{}, domain.ErrTokenInvalid
	}

	return domain.Session{UserID: userID, Role: role, Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrTokenInvalid
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin creates the admin account if no user has the email yet. It
// reports whether a user was created.
func (s *userService) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return false, err
	}

	log.Infow("admin user created", "email", email)
	return true, nil
}
