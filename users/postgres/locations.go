// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"

	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	"github.com/absmach/accounts/pkg/postgres"
	"github.com/absmach/accounts/users"
)

var _ users.LocationRepository = (*locationRepo)(nil)

type locationRepo struct {
	db postgres.Database
}

// NewLocationRepository instantiates a PostgreSQL implementation of
// country, state and city repository.
func NewLocationRepository(db postgres.Database) users.LocationRepository {
	return &locationRepo{
		db: db,
	}
}

func (repo *locationRepo) SaveCountry(ctx context.Context, c users.Country) (users.Country, error) {
	q := `INSERT INTO countries (id, name) VALUES (:id, :name)`
	if _, err := repo.db.NamedExecContext(ctx, q, dbCountry(c)); err != nil {
		return users.Country{}, postgres.HandleError(repoerr.ErrCreateEntity, err)
	}

	return c, nil
}

func (repo *locationRepo) RetrieveCountry(ctx context.Context, id string) (users.Country, error) {
	q := `SELECT id, name FROM countries WHERE id = $1`

	var c dbCountry
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&c); err != nil {
		return users.Country{}, retrieveError(err)
	}

	return users.Country(c), nil
}

func (repo *locationRepo) ListCountries(ctx context.Context) ([]users.Country, error) {
	q := `SELECT id, name FROM countries ORDER BY name, id`

	rows, err := repo.db.QueryxContext(ctx, q)
	if err != nil {
		return nil, postgres.HandleError(repoerr.ErrViewEntity, err)
	}
	defer rows.Close()

	countries := []users.Country{}
	for rows.Next() {
		var c dbCountry
		if err := rows.StructScan(&c); err != nil {
			return nil, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		countries = append(countries, users.Country(c))
	}

	return countries, rows.Err()
}

func (repo *locationRepo) RemoveCountry(ctx context.Context, id string) error {
	return remove(ctx, repo.db, `DELETE FROM countries WHERE id = $1`, id)
}

func (repo *locationRepo) SaveState(ctx context.Context, s users.State) (users.State, error) {
	q := `INSERT INTO states (id, name, country_id) VALUES (:id, :name, :country_id)`
	if _, err := repo.db.NamedExecContext(ctx, q, dbState(s)); err != nil {
		return users.State{}, postgres.HandleError(repoerr.ErrCreateEntity, err)
	}

	return s, nil
}

func (repo *locationRepo) RetrieveState(ctx context.Context, id string) (users.State, error) {
	q := `SELECT id, name, country_id FROM states WHERE id = $1`

	var s dbState
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&s); err != nil {
		return users.State{}, retrieveError(err)
	}

	return users.State(s), nil
}

func (repo *locationRepo) ListStates(ctx context.Context, countryID string) ([]users.State, error) {
	q := `SELECT id, name, country_id FROM states WHERE country_id = $1 ORDER BY name, id`

	rows, err := repo.db.QueryxContext(ctx, q, countryID)
	if err != nil {
		return nil, postgres.HandleError(repoerr.ErrViewEntity, err)
	}
	defer rows.Close()

	states := []users.State{}
	for rows.Next() {
		var s dbState
		if err := rows.StructScan(&s); err != nil {
			return nil, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		states = append(states, users.State(s))
	}

	return states, rows.Err()
}

func (repo *locationRepo) RemoveState(ctx context.Context, id string) error {
	return remove(ctx, repo.db, `DELETE FROM states WHERE id = $1`, id)
}

func (repo *locationRepo) SaveCity(ctx context.Context, c users.City) (users.City, error) {
	q := `INSERT INTO cities (id, name, country_id, state_id) VALUES (:id, :name, :country_id, :state_id)`
	if _, err := repo.db.NamedExecContext(ctx, q, toDBCity(c)); err != nil {
		return users.City{}, postgres.HandleError(repoerr.ErrCreateEntity, err)
	}

	return c, nil
}

func (repo *locationRepo) RetrieveCity(ctx context.Context, id string) (users.City, error) {
	q := `SELECT id, name, country_id, state_id FROM cities WHERE id = $1`

	var c dbCity
	if err := repo.db.QueryRowxContext(ctx, q, id).StructScan(&c); err != nil {
		return users.City{}, retrieveError(err)
	}

	return toCity(c), nil
}

func (repo *locationRepo) ListCities(ctx context.Context, countryID, stateID string) ([]users.City, error) {
	q := `SELECT id, name, country_id, state_id FROM cities WHERE country_id = $1`
	args := []interface{}{countryID}
	if stateID != "" {
		q += ` AND state_id = $2`
		args = append(args, stateID)
	}
	q += ` ORDER BY name, id`

	rows, err := repo.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, postgres.HandleError(repoerr.ErrViewEntity, err)
	}
	defer rows.Close()

	cities := []users.City{}
	for rows.Next() {
		var c dbCity
		if err := rows.StructScan(&c); err != nil {
			return nil, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		cities = append(cities, toCity(c))
	}

	return cities, rows.Err()
}

func (repo *locationRepo) RemoveCity(ctx context.Context, id string) error {
	return remove(ctx, repo.db, `DELETE FROM cities WHERE id = $1`, id)
}

func retrieveError(err error) error {
	if err == sql.ErrNoRows {
		return errors.Wrap(repoerr.ErrNotFound, err)
	}

	return postgres.HandleError(repoerr.ErrViewEntity, err)
}

func remove(ctx context.Context, db postgres.Database, q, id string) error {
	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return postgres.HandleError(repoerr.ErrRemoveEntity, err)
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return repoerr.ErrNotFound
	}

	return nil
}

type dbCountry struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type dbState struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CountryID string `db:"country_id"`
}

type dbCity struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	CountryID string         `db:"country_id"`
	StateID   sql.NullString `db:"state_id"`
}

func toDBCity(c users.City) dbCity {
	return dbCity{
		ID:        c.ID,
		Name:      c.Name,
		CountryID: c.CountryID,
		StateID:   nullString(c.StateID),
	}
}

func toCity(c dbCity) users.City {
	return users.City{
		ID:        c.ID,
		Name:      c.Name,
		CountryID: c.CountryID,
		StateID:   c.StateID.String,
	}
}
