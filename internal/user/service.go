package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/config"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailNotVerified = errors.New("google account email is not verified")
	ErrInvalidCode      = errors.New("authorization code is required")
	ErrInvalidToken     = errors.New("invalid refresh token")
)

type Session struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

type UserService interface {
	GoogleLogin(ctx context.Context, code string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListUsers(ctx context.Context) ([]*User, error)
}

type userService struct {
	repo     UserRepository
	provider IdentityProvider
}

func NewService(repo UserRepository, provider IdentityProvider) UserService {
	return &userService{repo: repo, provider: provider}
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*Session, error) {
	log := config.WithContext(ctx)

	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidCode
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google login failed")
		return nil, err
	}
	if !profile.EmailVerified {
		log.WithField("email", profile.Email).Warn("Rejected login with unverified email")
		return nil, ErrEmailNotVerified
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}

	if u == nil {
		u = &User{
			GoogleID: profile.Subject,
			Email:    email,
			FullName: profile.Name,
			Role:     RoleUser,
		}
		if config.IsAdminEmail(email) {
			u.Role = RoleAdmin
		}
		if err := s.repo.Create(ctx, u); err != nil {
			log.WithError(err).Error("Failed to create user")
			return nil, err
		}
		log.WithField("user_id", u.ID).Info("User registered through Google")
	} else {
		u.GoogleID = profile.Subject
		if profile.Name != "" {
			u.FullName = profile.Name
		}
		if config.IsAdminEmail(email) {
			u.Role = RoleAdmin
		}
		if err := s.repo.Update(ctx, u); err != nil {
			log.WithError(err).Error("Failed to update user on login")
			return nil, err
		}
	}

	return s.issue(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateRefreshJWT(refreshToken)
	if err != nil {
		log.WithError(err).Warn("Invalid refresh token")
		return nil, ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load user for refresh")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	return s.issue(u)
}

func (s *userService) issue(u *User) (*Session, error) {
	access, err := auth.GenerateJWT(u.ID.String(), string(u.Role), config.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshJWT(u.ID.String(), config.RefreshTokenTTL())
	if err != nil {
		return nil, err
	}
	return &Session{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*User, error) {
	log := config.WithContext(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get user")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*User, error) {
	log := config.WithContext(ctx)

	users, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list users")
		return nil, err
	}
	return users, nil
}
