package service

import (
	"context"
	"errors"
	"strings"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrCurrentPasswordRequired = errors.New("current password is required to change password")
	ErrCurrentPasswordWrong    = errors.New("current password is incorrect")
)

// ProfileUpdate carries the fields a user may change. Nil fields are left untouched.
type ProfileUpdate struct {
	Name            *string
	Email           *string
	Age             *int
	BodyWeight      *float64
	CurrentPassword string
	NewPassword     string
}

type ProfileService interface {
	Get(ctx context.Context, session domain.AuthSession) (*domain.User, error)
	Update(ctx context.Context, session domain.AuthSession, upd ProfileUpdate) (*domain.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) Get(ctx context.Context, session domain.AuthSession) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) Update(ctx context.Context, session domain.AuthSession, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if upd.NewPassword != "" {
		if upd.CurrentPassword == "" {
			return nil, ErrCurrentPasswordRequired
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(upd.CurrentPassword)) != nil {
			return nil, ErrCurrentPasswordWrong
		}
		if len(upd.NewPassword) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	if upd.Name != nil && *upd.Name != "" {
		user.Name = *upd.Name
	}
	if upd.Email != nil && *upd.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Age != nil {
		user.Age = upd.Age
	}
	if upd.BodyWeight != nil {
		user.BodyWeight = upd.BodyWeight
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
