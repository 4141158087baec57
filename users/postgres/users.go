// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/users"
)

const userColumns = `id, email, password, first_name, last_name, phone, profile_image, language, age, gender,
	address, address_detail, birthday, bio, cast_type, married, occupation_type, occupation_detail,
	role_id, country_id, state_id, city_id, is_approved, is_admin, is_active, is_staff, is_superuser,
	last_login, date_joined, created_at`

var _ users.Repository = (*userRepo)(nil)

type userRepo struct {
	db postgres.Database
}

// NewRepository instantiates a PostgreSQL implementation of user
// repository.
func NewRepository(db postgres.Database) users.Repository {
	return &userRepo{
		db: db,
	}
}

func (repo *userRepo) Save(ctx context.Context, user users.User) (users.User, error) {
	q := `INSERT INTO users (` + userColumns + `)
		VALUES (:id, :email, :password, :first_name, :last_name, :phone, :profile_image, :language, :age, :gender,
		:address, :address_detail, :birthday, :bio, :cast_type, :married, :occupation_type, :occupation_detail,
		:role_id, :country_id, :state_id, :city_id, :is_approved, :is_admin, :is_active, :is_staff, :is_superuser,
		:last_login, :date_joined, :created_at)
		RETURNING ` + userColumns

	row, err := repo.db.NamedQueryContext(ctx, q, toDBUser(user))
	if err != nil {
		return users.User{}, saveError(err)
	}
	defer row.Close()

	if !row.Next() {
		if err := row.Err(); err != nil {
			return users.User{}, saveError(err)
		}
		return users.User{}, repoerr.ErrCreateEntity
	}

	var dbu dbUser
	if err := row.StructScan(&dbu); err != nil {
		return users.User{}, errors.Wrap(repoerr.ErrFailedOpDB, err)
	}

	return toUser(dbu), nil
}

func (repo *userRepo) RetrieveByID(ctx context.Context, id string) (users.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return repo.retrieve(ctx, q, id)
}

func (repo *userRepo) RetrieveByEmail(ctx context.Context, email string) (users.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return repo.retrieve(ctx, q, email)
}

func (repo *userRepo) retrieve(ctx context.Context, q string, arg string) (users.User, error) {
	var dbu dbUser
	if err := repo.db.QueryRowxContext(ctx, q, arg).StructScan(&dbu); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, errors.Wrap(repoerr.ErrNotFound, err)
		}
		return users.User{}, postgres.HandleError(repoerr.ErrViewEntity, err)
	}

	return toUser(dbu), nil
}

func (repo *userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	q := `UPDATE users SET password = $2 WHERE id = $1`

	return repo.update(ctx, q, id, hash)
}

func (repo *userRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	q := `UPDATE users SET last_login = $2 WHERE id = $1`

	return repo.update(ctx, q, id, at.UTC())
}

func (repo *userRepo) update(ctx context.Context, q string, args ...interface{}) error {
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return postgres.HandleError(repoerr.ErrUpdateEntity, err)
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(repoerr.ErrUpdateEntity, err)
	}
	if cnt == 0 {
		return repoerr.ErrNotFound
	}

	return nil
}

// saveError reports unique violations on e-mail and phone as their
// domain errors, keeping the conflict in the chain.
func saveError(err error) error {
	wrapped := postgres.HandleError(repoerr.ErrCreateEntity, err)
	if constraint, ok := postgres.IsUniqueViolation(err); ok {
		switch constraint {
		case emailConstraint:
			return errors.Wrap(users.ErrDuplicateEmail, wrapped)
		case phoneConstraint:
			return errors.Wrap(users.ErrDuplicatePhone, wrapped)
		}
	}

	return wrapped
}

type dbUser struct {
	ID               string         `db:"id"`
	Email            string         `db:"email"`
	Password         string         `db:"password"`
	FirstName        sql.NullString `db:"first_name"`
	LastName         sql.NullString `db:"last_name"`
	Phone            sql.NullInt64  `db:"phone"`
	ProfileImage     sql.NullString `db:"profile_image"`
	Language         string         `db:"language"`
	Age              sql.NullInt32  `db:"age"`
	Gender           sql.NullString `db:"gender"`
	Address          sql.NullString `db:"address"`
	AddressDetail    sql.NullString `db:"address_detail"`
	Birthday         sql.NullTime   `db:"birthday"`
	Bio              sql.NullString `db:"bio"`
	Cast             sql.NullString `db:"cast_type"`
	Married          bool           `db:"married"`
	OccupationType   sql.NullString `db:"occupation_type"`
	OccupationDetail sql.NullString `db:"occupation_detail"`
	RoleID           sql.NullString `db:"role_id"`
	CountryID        sql.NullString `db:"country_id"`
	StateID          sql.NullString `db:"state_id"`
	CityID           sql.NullString `db:"city_id"`
	IsApproved       bool           `db:"is_approved"`
	IsAdmin          bool           `db:"is_admin"`
	IsActive         bool           `db:"is_active"`
	IsStaff          bool           `db:"is_staff"`
	IsSuperuser      bool           `db:"is_superuser"`
	LastLogin        sql.NullTime   `db:"last_login"`
	DateJoined       time.Time      `db:"date_joined"`
	CreatedAt        time.Time      `db:"created_at"`
}

func toDBUser(u users.User) dbUser {
	return dbUser{
		ID:               u.ID,
		Email:            u.Email,
		Password:         u.Password,
		FirstName:        nullString(u.FirstName),
		LastName:         nullString(u.LastName),
		Phone:            sql.NullInt64{Int64: u.Phone, Valid: u.Phone != 0},
		ProfileImage:     nullString(u.ProfileImage),
		Language:         u.Language,
		Age:              sql.NullInt32{Int32: int32(u.Age), Valid: u.Age != 0},
		Gender:           nullString(string(u.Gender)),
		Address:          nullString(u.Address),
		AddressDetail:    nullString(u.AddressDetail),
		Birthday:         nullTime(u.Birthday),
		Bio:              nullString(u.Bio),
		Cast:             nullString(string(u.Cast)),
		Married:          u.Married,
		OccupationType:   nullString(string(u.OccupationType)),
		OccupationDetail: nullString(u.OccupationDetail),
		RoleID:           nullString(u.RoleID),
		CountryID:        nullString(u.CountryID),
		StateID:          nullString(u.StateID),
		CityID:           nullString(u.CityID),
		IsApproved:       u.IsApproved,
		IsAdmin:          u.IsAdmin,
		IsActive:         u.IsActive,
		IsStaff:          u.IsStaff,
		IsSuperuser:      u.IsSuperuser,
		LastLogin:        nullTime(u.LastLogin),
		DateJoined:       u.DateJoined.UTC(),
		CreatedAt:        u.CreatedAt.UTC(),
	}
}

func toUser(dbu dbUser) users.User {
	u := users.User{
		ID:               dbu.ID,
		Email:            dbu.Email,
		Password:         dbu.Password,
		FirstName:        dbu.FirstName.String,
		LastName:         dbu.LastName.String,
		Phone:            dbu.Phone.Int64,
		ProfileImage:     dbu.ProfileImage.String,
		Language:         dbu.Language,
		Age:              int(dbu.Age.Int32),
		Gender:           users.Gender(dbu.Gender.String),
		Address:          dbu.Address.String,
		AddressDetail:    dbu.AddressDetail.String,
		Bio:              dbu.Bio.String,
		Cast:             users.Cast(dbu.Cast.String),
		Married:          dbu.Married,
		OccupationType:   users.Occupation(dbu.OccupationType.String),
		OccupationDetail: dbu.OccupationDetail.String,
		RoleID:           dbu.RoleID.String,
		CountryID:        dbu.CountryID.String,
		StateID:          dbu.StateID.String,
		CityID:           dbu.CityID.String,
		IsApproved:       dbu.IsApproved,
		IsAdmin:          dbu.IsAdmin,
		IsActive:         dbu.IsActive,
		IsStaff:          dbu.IsStaff,
		IsSuperuser:      dbu.IsSuperuser,
		DateJoined:       dbu.DateJoined.UTC(),
		CreatedAt:        dbu.CreatedAt.UTC(),
	}
	if dbu.Birthday.Valid {
		u.Birthday = dbu.Birthday.Time.UTC()
	}
	if dbu.LastLogin.Valid {
		u.LastLogin = dbu.LastLogin.Time.UTC()
	}

	return u
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: t.UTC(), Valid: true}
}
