// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users

import (
	"context"
	"strings"

	"github.com/absmach/accounts"
	"github.com/absmach/accounts/pkg/apiutil"
	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	svcerr "github.com/absmach/accounts/pkg/errors/service"
)

const (
	MaxLocationNameLen = 50
	MaxRoleNameLen     = 100
)

// Country is reference data a user, state or city points to.
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c Country) String() string {
	return c.Name
}

// State belongs to exactly one Country.
type State struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

func (s State) String() string {
	return s.Name
}

// City belongs to a Country and optionally to a State of that Country.
type City struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
	StateID   string `json:"state_id,omitempty"`
}

func (c City) String() string {
	return c.Name
}

// Role is a label attachable to a user.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r Role) String() string {
	return r.Name
}

// LocationRepository specifies country, state and city persistence API.
type LocationRepository interface {
	SaveCountry(ctx context.Context, c Country) (Country, error)
	RetrieveCountry(ctx context.Context, id string) (Country, error)
	ListCountries(ctx context.Context) ([]Country, error)
	// RemoveCountry removes the country with its states and cities.
	RemoveCountry(ctx context.Context, id string) error

	SaveState(ctx context.Context, s State) (State, error)
	RetrieveState(ctx context.Context, id string) (State, error)
	ListStates(ctx context.Context, countryID string) ([]State, error)
	// RemoveState removes the state. Cities of the state keep their
	// country and lose the state reference.
	RemoveState(ctx context.Context, id string) error

	SaveCity(ctx context.Context, c City) (City, error)
	RetrieveCity(ctx context.Context, id string) (City, error)
	// ListCities lists cities of a country, narrowed to stateID when set.
	ListCities(ctx context.Context, countryID, stateID string) ([]City, error)
	RemoveCity(ctx context.Context, id string) error
}

// RoleRepository specifies role persistence API.
type RoleRepository interface {
	SaveRole(ctx context.Context, r Role) (Role, error)
	RetrieveRole(ctx context.Context, id string) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	RemoveRole(ctx context.Context, id string) error
}

// LocationService manages reference data for administrative tooling.
type LocationService interface {
	AddCountry(ctx context.Context, name string) (Country, error)
	ListCountries(ctx context.Context) ([]Country, error)
	RemoveCountry(ctx context.Context, id string) error

	// AddState adds a state to an existing country.
	AddState(ctx context.Context, countryID, name string) (State, error)
	ListStates(ctx context.Context, countryID string) ([]State, error)
	RemoveState(ctx context.Context, id string) error

	// AddCity adds a city to an existing country. When stateID is set the
	// state must belong to the same country, otherwise ErrLocationMismatch
	// is returned.
	AddCity(ctx context.Context, countryID, stateID, name string) (City, error)
	ListCities(ctx context.Context, countryID, stateID string) ([]City, error)
	RemoveCity(ctx context.Context, id string) error

	AddRole(ctx context.Context, name string) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	RemoveRole(ctx context.Context, id string) error
}

var _ LocationService = (*locationService)(nil)

type locationService struct {
	locations  LocationRepository
	roles      RoleRepository
	idProvider accounts.IDProvider
}

// NewLocationService returns a LocationService backed by the given repositories.
func NewLocationService(locations LocationRepository, roles RoleRepository, idp accounts.IDProvider) LocationService {
	return &locationService{
		locations:  locations,
		roles:      roles,
		idProvider: idp,
	}
}

func (ls *locationService) AddCountry(ctx context.Context, name string) (Country, error) {
	name, err := validName(name, MaxLocationNameLen)
	if err != nil {
		return Country{}, err
	}
	id, err := ls.idProvider.ID()
	if err != nil {
		return Country{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	c, err := ls.locations.SaveCountry(ctx, Country{ID: id, Name: name})
	if err != nil {
		return Country{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}

	return c, nil
}

func (ls *locationService) ListCountries(ctx context.Context) ([]Country, error) {
	cs, err := ls.locations.ListCountries(ctx)
	if err != nil {
		return nil, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	return cs, nil
}

func (ls *locationService) RemoveCountry(ctx context.Context, id string) error {
	if err := ls.locations.RemoveCountry(ctx, id); err != nil {
		return errors.Wrap(svcerr.ErrRemoveEntity, err)
	}

	return nil
}

func (ls *locationService) AddState(ctx context.Context, countryID, name string) (State, error) {
	name, err := validName(name, MaxLocationNameLen)
	if err != nil {
		return State{}, err
	}
	if _, err := ls.locations.RetrieveCountry(ctx, countryID); err != nil {
		return State{}, lookupErr(err)
	}
	id, err := ls.idProvider.ID()
	if err != nil {
		return State{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	s, err := ls.locations.SaveState(ctx, State{ID: id, Name: name, CountryID: countryID})
	if err != nil {
		return State{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}

	return s, nil
}

func (ls *locationService) ListStates(ctx context.Context, countryID string) ([]State, error) {
	ss, err := ls.locations.ListStates(ctx, countryID)
	if err != nil {
		return nil, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	return ss, nil
}

func (ls *locationService) RemoveState(ctx context.Context, id string) error {
	if err := ls.locations.RemoveState(ctx, id); err != nil {
		return errors.Wrap(svcerr.ErrRemoveEntity, err)
	}

	return nil
}

func (ls *locationService) AddCity(ctx context.Context, countryID, stateID, name string) (City, error) {
	name, err := validName(name, MaxLocationNameLen)
	if err != nil {
		return City{}, err
	}
	if _, err := ls.locations.RetrieveCountry(ctx, countryID); err != nil {
		return City{}, lookupErr(err)
	}
	if stateID != "" {
		s, err := ls.locations.RetrieveState(ctx, stateID)
		if err != nil {
			return City{}, lookupErr(err)
		}
		if s.CountryID != countryID {
			return City{}, ErrLocationMismatch
		}
	}
	id, err := ls.idProvider.ID()
	if err != nil {
		return City{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	c, err := ls.locations.SaveCity(ctx, City{ID: id, Name: name, CountryID: countryID, StateID: stateID})
	if err != nil {
		return City{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}

	return c, nil
}

func (ls *locationService) ListCities(ctx context.Context, countryID, stateID string) ([]City, error) {
	cs, err := ls.locations.ListCities(ctx, countryID, stateID)
	if err != nil {
		return nil, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	return cs, nil
}

func (ls *locationService) RemoveCity(ctx context.Context, id string) error {
	if err := ls.locations.RemoveCity(ctx, id); err != nil {
		return errors.Wrap(svcerr.ErrRemoveEntity, err)
	}

	return nil
}

func (ls *locationService) AddRole(ctx context.Context, name string) (Role, error) {
	name, err := validName(name, MaxRoleNameLen)
	if err != nil {
		return Role{}, err
	}
	id, err := ls.idProvider.ID()
	if err != nil {
		return Role{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	r, err := ls.roles.SaveRole(ctx, Role{ID: id, Name: name})
	if err != nil {
		return Role{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}

	return r, nil
}

func (ls *locationService) ListRoles(ctx context.Context) ([]Role, error) {
	rs, err := ls.roles.ListRoles(ctx)
	if err != nil {
		return nil, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	return rs, nil
}

func (ls *locationService) RemoveRole(ctx context.Context, id string) error {
	if err := ls.roles.RemoveRole(ctx, id); err != nil {
		return errors.Wrap(svcerr.ErrRemoveEntity, err)
	}

	return nil
}

func validName(name string, limit int) (string, error) {
	name = strings.TrimSpace(name)
	fe := errors.FieldErrors{}
	switch {
	case name == "":
		fe.Add("name", apiutil.MsgRequired)
	case len([]rune(name)) > limit:
		fe.Add("name", apiutil.MaxLengthMsg(limit))
	}
	if err := fe.AsError(); err != nil {
		return "", err
	}

	return name, nil
}

// lookupErr maps a failed parent lookup to not found, or to a view error
// when the repository itself failed.
func lookupErr(err error) error {
	if errors.Contains(err, repoerr.ErrNotFound) {
		return errors.Wrap(svcerr.ErrNotFound, err)
	}

	return errors.Wrap(svcerr.ErrViewEntity, err)
}
