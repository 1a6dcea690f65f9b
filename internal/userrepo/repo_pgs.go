// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-ppob/wallet/internal/balancerepo"
	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/pkg/dbpkg"
	"github.com/go-ppob/wallet/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns user RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// NewRepoPGS returns user RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   conn,
		conn: conn,
	}
}

const createQuery = `
INSERT INTO
    users (email, first_name, last_name, hashed_password)
VALUES
    ($1, $2, $3, $4)
RETURNING id, email, first_name, last_name, hashed_password, profile_image, created_at
`

// Create registers the user together with its zero balance row in one
// database transaction and returns the user.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return u, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	row := tx.QueryRowContext(ctx, createQuery,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.HashedPassword,
	)

	err = scanUser(row, &u)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_email_key" {
				return u, domain.ErrEmailAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	if _, err := balancerepo.NewRepoPGS(tx).Create(ctx, u.Email); err != nil {
		return u, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT id, email, first_name, last_name, hashed_password, profile_image, created_at
FROM users
WHERE email = $1
`

// Get returns the user with the given email.
func (r *RepoPGS) Get(ctx context.Context, email string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	err := scanUser(r.db.QueryRowContext(ctx, getQuery, email), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const updateProfileQuery = `
UPDATE users
SET first_name = $1, last_name = $2
WHERE email = $3
RETURNING id, email, first_name, last_name, hashed_password, profile_image, created_at
`

// UpdateProfile changes the user's names and returns the changed user.
func (r *RepoPGS) UpdateProfile(ctx context.Context, email, firstName, lastName string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	err := scanUser(r.db.QueryRowContext(ctx, updateProfileQuery, firstName, lastName, email), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const updateProfileImageQuery = `
UPDATE users
SET profile_image = $1
WHERE email = $2
RETURNING id, email, first_name, last_name, hashed_password, profile_image, created_at
`

// UpdateProfileImage changes the user's profile image URL and returns the changed user.
func (r *RepoPGS) UpdateProfileImage(ctx context.Context, email, imageURL string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	err := scanUser(r.db.QueryRowContext(ctx, updateProfileImageQuery, imageURL, email), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

func scanUser(row *sql.Row, u *domain.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.HashedPassword,
		&u.ProfileImage,
		&u.CreatedAt,
	)
}
