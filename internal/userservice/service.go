// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/errorspkg"
	"github.com/go-ppob/wallet/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, email, firstName, lastName string) (domain.User, error)
	UpdateProfileImage(ctx context.Context, email, imageURL string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{repo: ur}
}

// NewProfile returns user data with sensitive fields removed.
func NewProfile(u domain.User) domain.Profile {
	return domain.Profile{
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
	}
}

// Create registers the user and returns its profile.
func (s *Service) Create(ctx context.Context, email, password, firstName, lastName string) (domain.Profile, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Profile

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: hashedPassword,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewProfile(gotUser), nil
}

// CheckPassword checks if the password is valid for the given email.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (domain.Profile, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Profile

	gotUser, err := s.repo.Get(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return result, domain.ErrWrongPassword
		}

		return result, err
	}

	if err := passpkg.Check(password, gotUser.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return result, domain.ErrWrongPassword
	}

	return NewProfile(gotUser), nil
}

// GetProfile returns the profile of the given email.
func (s *Service) GetProfile(ctx context.Context, email string) (domain.Profile, error) {
	gotUser, err := s.repo.Get(ctx, email)
	if err != nil {
		return domain.Profile{}, err
	}

	return NewProfile(gotUser), nil
}

// UpdateProfile changes the user's names and returns the updated profile.
func (s *Service) UpdateProfile(ctx context.Context, email, firstName, lastName string) (domain.Profile, error) {
	gotUser, err := s.repo.UpdateProfile(ctx, email, firstName, lastName)
	if err != nil {
		return domain.Profile{}, err
	}

	return NewProfile(gotUser), nil
}

// UpdateProfileImage changes the user's profile image URL and returns the updated profile.
func (s *Service) UpdateProfileImage(ctx context.Context, email, imageURL string) (domain.Profile, error) {
	gotUser, err := s.repo.UpdateProfileImage(ctx, email, imageURL)
	if err != nil {
		return domain.Profile{}, err
	}

	return NewProfile(gotUser), nil
}
