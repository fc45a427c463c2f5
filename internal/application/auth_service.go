package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/domain"
	userDomain "github.com/parkstack/service-parking/internal/domain/user"
)

// RegisterRequest is the DTO for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// LoginRequest is the DTO for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API response representation of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult carries the user and their bearer token.
type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// AuthService handles registration and login.
type AuthService struct {
	users      userDomain.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, logger: logger}
}

// Register creates an account and returns it with a signed token.
// Role defaults to driver when not provided.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	u, err := userDomain.NewUser(req.Name, req.Email, req.Password, req.Role, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.Generate(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", u.Role()),
	)

	dto := toUserDTO(u)
	return &AuthResult{User: dto, Token: token}, nil
}

// Login verifies credentials and returns the user with a signed token.
// Unknown emails and bad passwords return the same error so the response
// does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !u.CheckPassword(req.Password) {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.jwtManager.Generate(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}

	dto := toUserDTO(u)
	return &AuthResult{User: dto, Token: token}, nil
}

// Me retrieves the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// toUserDTO maps a domain User to a UserDTO.
func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role(),
		Phone:     u.Phone(),
		CreatedAt: u.CreatedAt(),
	}
}
