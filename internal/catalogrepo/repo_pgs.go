// Package catalogrepo manages repository layer of the service catalog and banners.
package catalogrepo

import (
	"context"
	"database/sql"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/dbpkg"
	"github.com/go-ppob/wallet/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates catalog repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns catalog RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const getServiceQuery = `
SELECT id, service_code, service_name, service_icon, service_tariff, is_active
FROM services
WHERE service_code = $1
`

// GetService returns the service with the given code.
//
// Inactive services still resolve here; only the listing endpoint
// filters on is_active.
func (r *RepoPGS) GetService(ctx context.Context, code string) (domain.Service, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getServiceQuery, code)

	var s domain.Service

	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Icon, &s.Tariff, &s.Active)
	if err != nil {
		if err == sql.ErrNoRows {
			return s, domain.ErrServiceNotFound
		}

		l.Error().Err(err).Send()

		return s, errorspkg.ErrInternal
	}

	return s, nil
}

const listServicesQuery = `
SELECT id, service_code, service_name, service_icon, service_tariff, is_active
FROM services
WHERE is_active = true
ORDER BY id
`

// ListServices returns all active services ordered by id.
func (r *RepoPGS) ListServices(ctx context.Context) ([]domain.Service, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listServicesQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Service{}

	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Icon, &s.Tariff, &s.Active); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const listBannersQuery = `
SELECT banner_name, banner_image, description
FROM banners
WHERE is_active = true
ORDER BY display_order
`

// ListBanners returns all active banners ordered by display order.
func (r *RepoPGS) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listBannersQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Banner{}

	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.Name, &b.Image, &b.Description); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, b)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
