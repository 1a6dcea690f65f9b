package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/cachepkg"
	"github.com/go-ppob/wallet/pkg/errorspkg"
)

var testServices = []domain.Service{
	{ID: 1, Code: "PLN", Name: "Listrik", Icon: "https://cdn.example.com/pln.png", Tariff: 10_000, Active: true},
	{ID: 2, Code: "PULSA", Name: "Pulsa", Icon: "https://cdn.example.com/pulsa.png", Tariff: 40_000, Active: true},
}

var testBanners = []domain.Banner{
	{Name: "Banner 1", Image: "https://cdn.example.com/banner1.png", Description: "Promo"},
}

const testTTL = 5 * time.Minute

func TestListServices(t *testing.T) {
	servicesJSON, err := json.Marshal(testServices)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, cache *MockCache)
		checkResponse func(services []domain.Service, err error)
	}{
		{
			name: "CacheHit",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(servicesCacheKey)).
					Times(1).
					Return(string(servicesJSON), nil)
				repo.EXPECT().ListServices(gomock.Any()).Times(0)
			},
			checkResponse: func(services []domain.Service, err error) {
				require.NoError(t, err)
				require.Equal(t, testServices, services)
			},
		},
		{
			name: "CacheMissPopulatesCache",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(servicesCacheKey)).
					Times(1).
					Return("", cachepkg.ErrCacheMiss)
				repo.EXPECT().ListServices(gomock.Any()).
					Times(1).
					Return(testServices, nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Eq(servicesCacheKey), gomock.Eq(string(servicesJSON)), gomock.Eq(testTTL)).
					Times(1).
					Return(nil)
			},
			checkResponse: func(services []domain.Service, err error) {
				require.NoError(t, err)
				require.Equal(t, testServices, services)
			},
		},
		{
			name: "CacheGetErrorFallsThrough",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(servicesCacheKey)).
					Times(1).
					Return("", errors.New("connection refused"))
				repo.EXPECT().ListServices(gomock.Any()).
					Times(1).
					Return(testServices, nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errors.New("connection refused"))
			},
			checkResponse: func(services []domain.Service, err error) {
				require.NoError(t, err)
				require.Equal(t, testServices, services)
			},
		},
		{
			name: "CorruptCacheEntryFallsThrough",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(servicesCacheKey)).
					Times(1).
					Return("{not json", nil)
				repo.EXPECT().ListServices(gomock.Any()).
					Times(1).
					Return(testServices, nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(services []domain.Service, err error) {
				require.NoError(t, err)
				require.Equal(t, testServices, services)
			},
		},
		{
			name: "RepoError",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(servicesCacheKey)).
					Times(1).
					Return("", cachepkg.ErrCacheMiss)
				repo.EXPECT().ListServices(gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
				cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(services []domain.Service, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
				require.Nil(t, services)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			cache := NewMockCache(ctrl)
			tc.buildStubs(repo, cache)

			service := New(repo, cache, testTTL)

			services, err := service.ListServices(context.Background())
			tc.checkResponse(services, err)
		})
	}
}

func TestListBanners(t *testing.T) {
	bannersJSON, err := json.Marshal(testBanners)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo, cache *MockCache)
		checkResponse func(banners []domain.Banner, err error)
	}{
		{
			name: "CacheHit",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(bannersCacheKey)).
					Times(1).
					Return(string(bannersJSON), nil)
				repo.EXPECT().ListBanners(gomock.Any()).Times(0)
			},
			checkResponse: func(banners []domain.Banner, err error) {
				require.NoError(t, err)
				require.Equal(t, testBanners, banners)
			},
		},
		{
			name: "CacheMissPopulatesCache",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(bannersCacheKey)).
					Times(1).
					Return("", cachepkg.ErrCacheMiss)
				repo.EXPECT().ListBanners(gomock.Any()).
					Times(1).
					Return(testBanners, nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Eq(bannersCacheKey), gomock.Eq(string(bannersJSON)), gomock.Eq(testTTL)).
					Times(1).
					Return(nil)
			},
			checkResponse: func(banners []domain.Banner, err error) {
				require.NoError(t, err)
				require.Equal(t, testBanners, banners)
			},
		},
		{
			name: "RepoError",
			buildStubs: func(repo *MockRepo, cache *MockCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Eq(bannersCacheKey)).
					Times(1).
					Return("", cachepkg.ErrCacheMiss)
				repo.EXPECT().ListBanners(gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
				cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(banners []domain.Banner, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
				require.Nil(t, banners)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			cache := NewMockCache(ctrl)
			tc.buildStubs(repo, cache)

			service := New(repo, cache, testTTL)

			banners, err := service.ListBanners(context.Background())
			tc.checkResponse(banners, err)
		})
	}
}

func TestGetService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	cache := NewMockCache(ctrl)

	repo.EXPECT().GetService(gomock.Any(), gomock.Eq("PLN")).
		Times(1).
		Return(testServices[0], nil)

	service := New(repo, cache, testTTL)

	got, err := service.GetService(context.Background(), "PLN")
	require.NoError(t, err)
	require.Equal(t, testServices[0], got)

	repo.EXPECT().GetService(gomock.Any(), gomock.Eq("UNKNOWN")).
		Times(1).
		Return(domain.Service{}, domain.ErrServiceNotFound)

	_, err = service.GetService(context.Background(), "UNKNOWN")
	require.ErrorIs(t, err, domain.ErrServiceNotFound)
}
