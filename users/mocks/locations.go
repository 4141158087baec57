// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/accounts/users"
	"github.com/stretchr/testify/mock"
)

var (
	_ users.LocationRepository = (*LocationRepository)(nil)
	_ users.RoleRepository     = (*RoleRepository)(nil)
)

type LocationRepository struct {
	mock.Mock
}

func (m *LocationRepository) SaveCountry(ctx context.Context, c users.Country) (users.Country, error) {
	ret := m.Called(ctx, c)

	return ret.Get(0).(users.Country), ret.Error(1)
}

func (m *LocationRepository) RetrieveCountry(ctx context.Context, id string) (users.Country, error) {
	ret := m.Called(ctx, id)

	return ret.Get(0).(users.Country), ret.Error(1)
}

func (m *LocationRepository) ListCountries(ctx context.Context) ([]users.Country, error) {
	ret := m.Called(ctx)

	return ret.Get(0).([]users.Country), ret.Error(1)
}

func (m *LocationRepository) RemoveCountry(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *LocationRepository) SaveState(ctx context.Context, s users.State) (users.State, error) {
	ret := m.Called(ctx, s)

	return ret.Get(0).(users.State), ret.Error(1)
}

func (m *LocationRepository) RetrieveState(ctx context.Context, id string) (users.State, error) {
	ret := m.Called(ctx, id)

	return ret.Get(0).(users.State), ret.Error(1)
}

func (m *LocationRepository) ListStates(ctx context.Context, countryID string) ([]users.State, error) {
	ret := m.Called(ctx, countryID)

	return ret.Get(0).([]users.State), ret.Error(1)
}

func (m *LocationRepository) RemoveState(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *LocationRepository) SaveCity(ctx context.Context, c users.City) (users.City, error) {
	ret := m.Called(ctx, c)

	return ret.Get(0).(users.City), ret.Error(1)
}

func (m *LocationRepository) RetrieveCity(ctx context.Context, id string) (users.City, error) {
	ret := m.Called(ctx, id)

	return ret.Get(0).(users.City), ret.Error(1)
}

func (m *LocationRepository) ListCities(ctx context.Context, countryID, stateID string) ([]users.City, error) {
	ret := m.Called(ctx, countryID, stateID)

	return ret.Get(0).([]users.City), ret.Error(1)
}

func (m *LocationRepository) RemoveCity(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

type RoleRepository struct {
	mock.Mock
}

func (m *RoleRepository) SaveRole(ctx context.Context, r users.Role) (users.Role, error) {
	ret := m.Called(ctx, r)

	return ret.Get(0).(users.Role), ret.Error(1)
}

func (m *RoleRepository) RetrieveRole(ctx context.Context, id string) (users.Role, error) {
	ret := m.Called(ctx, id)

	return ret.Get(0).(users.Role), ret.Error(1)
}

func (m *RoleRepository) ListRoles(ctx context.Context) ([]users.Role, error) {
	ret := m.Called(ctx)

	return ret.Get(0).([]users.Role), ret.Error(1)
}

func (m *RoleRepository) RemoveRole(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

var _ users.LocationService = (*LocationService)(nil)

type LocationService struct {
	mock.Mock
}

func (m *LocationService) AddCountry(ctx context.Context, name string) (users.Country, error) {
	ret := m.Called(ctx, name)

	return ret.Get(0).(users.Country), ret.Error(1)
}

func (m *LocationService) ListCountries(ctx context.Context) ([]users.Country, error) {
	ret := m.Called(ctx)

	return ret.Get(0).([]users.Country), ret.Error(1)
}

func (m *LocationService) RemoveCountry(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *LocationService) AddState(ctx context.Context, countryID, name string) (users.State, error) {
	ret := m.Called(ctx, countryID, name)

	return ret.Get(0).(users.State), ret.Error(1)
}

func (m *LocationService) ListStates(ctx context.Context, countryID string) ([]users.State, error) {
	ret := m.Called(ctx, countryID)

	return ret.Get(0).([]users.State), ret.Error(1)
}

func (m *LocationService) RemoveState(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *LocationService) AddCity(ctx context.Context, countryID, stateID, name string) (users.City, error) {
	ret := m.Called(ctx, countryID, stateID, name)

	return ret.Get(0).(users.City), ret.Error(1)
}

func (m *LocationService) ListCities(ctx context.Context, countryID, stateID string) ([]users.City, error) {
	ret := m.Called(ctx, countryID, stateID)

	return ret.Get(0).([]users.City), ret.Error(1)
}

func (m *LocationService) RemoveCity(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}

func (m *LocationService) AddRole(ctx context.Context, name string) (users.Role, error) {
	ret := m.Called(ctx, name)

	return ret.Get(0).(users.Role), ret.Error(1)
}

func (m *LocationService) ListRoles(ctx context.Context) ([]users.Role, error) {
	ret := m.Called(ctx)

	return ret.Get(0).([]users.Role), ret.Error(1)
}

func (m *LocationService) RemoveRole(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}
