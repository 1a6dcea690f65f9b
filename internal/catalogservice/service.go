// Package catalogservice manages business logic layer of the service catalog.
package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/cachepkg"
	"github.com/rs/zerolog"
)

// Cache keys for catalog reference data.
const (
	servicesCacheKey = "catalog:services"
	bannersCacheKey  = "catalog:banners"
)

// Repo provides data access layer interface needed by catalog service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package catalogservice
type Repo interface {
	GetService(ctx context.Context, code string) (domain.Service, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}

// Cache provides the cache layer interface needed by catalog service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package catalogservice
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service facilitates catalog service layer logic.
//
// List reads are cached; a cache failure other than a miss falls
// through to the repository.
type Service struct {
	repo  Repo
	cache Cache
	ttl   time.Duration
}

// New returns catalog service struct to manage catalog business logic.
func New(cr Repo, cache Cache, ttl time.Duration) *Service {
	return &Service{
		repo:  cr,
		cache: cache,
		ttl:   ttl,
	}
}

// GetService returns the service with the given code.
func (s *Service) GetService(ctx context.Context, code string) (domain.Service, error) {
	return s.repo.GetService(ctx, code)
}

// ListServices returns all active services ordered by id.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service

	if ok := s.fromCache(ctx, servicesCacheKey, &services); ok {
		return services, nil
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, servicesCacheKey, services)

	return services, nil
}

// ListBanners returns all active banners ordered by display order.
func (s *Service) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	var banners []domain.Banner

	if ok := s.fromCache(ctx, bannersCacheKey, &banners); ok {
		return banners, nil
	}

	banners, err := s.repo.ListBanners(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, bannersCacheKey, banners)

	return banners, nil
}

func (s *Service) fromCache(ctx context.Context, key string, out any) bool {
	l := zerolog.Ctx(ctx)

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cachepkg.ErrCacheMiss) {
			l.Warn().Err(err).Str("key", key).Msg("catalog cache get failed")
		}

		return false
	}

	if err := json.Unmarshal([]byte(cached), out); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("corrupt catalog cache entry")
		return false
	}

	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	l := zerolog.Ctx(ctx)

	encoded, err := json.Marshal(value)
	if err != nil {
		l.Warn().Err(err).Str("key", key).Msg("catalog cache encode failed")
		return
	}

	if err := s.cache.Set(ctx, key, string(encoded), s.ttl); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("catalog cache set failed")
	}
}
