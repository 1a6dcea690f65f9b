// Package helpers provides seed data helpers for integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/dbpkg"
	"github.com/go-ppob/wallet/pkg/randompkg"
)

// SeedUser inserts a random user with a zero balance row and returns it.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	const query = `
	INSERT INTO users (email, first_name, last_name, hashed_password)
	VALUES ($1, $2, $3, $4)
	RETURNING id, email, first_name, last_name, hashed_password, profile_image, created_at`

	row := db.QueryRowContext(context.Background(), query,
		randompkg.Email(), randompkg.Name(), randompkg.Name(), randompkg.String(60))

	var u domain.User

	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.HashedPassword, &u.ProfileImage, &u.CreatedAt)
	if err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}

	const balanceQuery = `INSERT INTO balances (email, balance) VALUES ($1, 0)`

	if _, err := db.ExecContext(context.Background(), balanceQuery, u.Email); err != nil {
		t.Fatalf("seeding balance failed: %v", err)
	}

	return u
}

// SeedBalance sets the balance of the given email.
func SeedBalance(t *testing.T, db dbpkg.SQLInterface, email string, balance int64) {
	t.Helper()

	const query = `UPDATE balances SET balance = $1 WHERE email = $2`

	if _, err := db.ExecContext(context.Background(), query, balance, email); err != nil {
		t.Fatalf("seeding balance failed: %v", err)
	}
}

// SeedService inserts a catalog service with the given tariff and returns it.
func SeedService(t *testing.T, db dbpkg.SQLInterface, tariff int64) domain.Service {
	t.Helper()

	const query = `
	INSERT INTO services (service_code, service_name, service_icon, service_tariff)
	VALUES ($1, $2, $3, $4)
	RETURNING id, service_code, service_name, service_icon, service_tariff, is_active`

	row := db.QueryRowContext(context.Background(), query,
		randompkg.ServiceCode(), randompkg.Name(), "", tariff)

	var s domain.Service

	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Icon, &s.Tariff, &s.Active)
	if err != nil {
		t.Fatalf("seeding service failed: %v", err)
	}

	return s
}

// SeedBanner inserts an active banner with the given display order and returns it.
func SeedBanner(t *testing.T, db dbpkg.SQLInterface, displayOrder int) domain.Banner {
	t.Helper()

	const query = `
	INSERT INTO banners (banner_name, banner_image, description, display_order)
	VALUES ($1, $2, $3, $4)
	RETURNING banner_name, banner_image, description`

	row := db.QueryRowContext(context.Background(), query,
		randompkg.Name(), "https://cdn.example.com/"+randompkg.String(8)+".png", randompkg.String(20), displayOrder)

	var b domain.Banner

	err := row.Scan(&b.Name, &b.Image, &b.Description)
	if err != nil {
		t.Fatalf("seeding banner failed: %v", err)
	}

	return b
}
