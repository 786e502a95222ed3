// internal/auth/service.go
// Service layer contains all business logic for authentication.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartlink-app/heartlink-backend/internal/common/utils"
)

// Common errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenRevoked          = errors.New("token revoked")
)

// Config carries auth tunables from the application config
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// Service interface
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

type service struct {
	repo   Repository
	redis  *redis.Client // optional; nil disables the logout denylist
	config *Config
}

// NewService creates a new auth service
func NewService(repo Repository, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if exists, err := s.repo.EmailExists(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailAlreadyExists
	}

	if exists, err := s.repo.UsernameExists(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.ValidateToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != utils.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.redis != nil {
		revoked, err := s.redis.Exists(ctx, denylistKey(token)).Result()
		if err == nil && revoked > 0 {
			return nil, ErrTokenRevoked
		}
		// Redis errors are ignored here: the denylist is best-effort and the
		// server must keep working without Redis.
	}

	return claims, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return ErrInvalidToken
	}

	if s.redis == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	return s.redis.Set(ctx, denylistKey(token), "1", ttl).Err()
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) issueTokens(user *User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, utils.TokenTypeAccess, s.config.JWTSecret, s.config.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateJWT(user.ID, user.Email, utils.TokenTypeRefresh, s.config.JWTSecret, s.config.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

func denylistKey(token string) string {
	return "auth:denylist:" + token
}
