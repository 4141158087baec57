// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/absmach/accounts/internal/testsutil"
	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	svcerr "github.com/absmach/accounts/pkg/errors/service"
	"github.com/absmach/accounts/pkg/uuid"
	"github.com/absmach/accounts/users"
	"github.com/absmach/accounts/users/hasher"
	"github.com/absmach/accounts/users/mocks"
	"github.com/absmach/accounts/users/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	idProvider = uuid.New()
	phasher    = mocks.NewHasher()
	password   = "Xk9!mQ2z"
	validUser  = users.User{
		Email:     "a@x.com",
		FirstName: "A",
		LastName:  "B",
		Phone:     5551234,
	}
	validToken = users.Token{
		Key:    strings.Repeat("ab", 20),
		UserID: "2d1c5f0e-6c3a-4b8e-9f57-3a1f2b9d7c41",
	}
	errDB = errors.New("db failure")
)

type deps struct {
	repo      *mocks.Repository
	tokens    *mocks.TokenRepository
	cache     *mocks.TokenCache
	locations *mocks.LocationRepository
	roles     *mocks.RoleRepository
	passwords *mocks.PasswordValidator
}

func newService(h users.Hasher) (users.Service, deps) {
	d := deps{
		repo:      new(mocks.Repository),
		tokens:    new(mocks.TokenRepository),
		cache:     new(mocks.TokenCache),
		locations: new(mocks.LocationRepository),
		roles:     new(mocks.RoleRepository),
		passwords: new(mocks.PasswordValidator),
	}
	svc := users.NewService(d.repo, d.tokens, d.cache, d.locations, d.roles, h, d.passwords, tokens.New(), idProvider)

	return svc, d
}

func TestCreateUser(t *testing.T) {
	svc, d := newService(phasher)

	cases := []struct {
		desc    string
		user    users.User
		saveErr error
		err     error
	}{
		{
			desc: "create user successfully",
			user: validUser,
			err:  nil,
		},
		{
			desc: "create user with upper case domain",
			user: users.User{Email: "Someone@Example.COM"},
			err:  nil,
		},
		{
			desc: "create user with empty email",
			user: users.User{Email: ""},
			err:  users.ErrEmptyEmail,
		},
		{
			desc: "create user with blank email",
			user: users.User{Email: "   "},
			err:  users.ErrEmptyEmail,
		},
		{
			desc: "create user with invalid email",
			user: users.User{Email: "invalid"},
			err:  errors.FieldErrors{"email": {"Enter a valid email address."}},
		},
		{
			desc: "create user with invalid gender",
			user: users.User{Email: "a@x.com", Gender: "X"},
			err:  errors.FieldErrors{"gender": {"\"X\" is not a valid choice."}},
		},
		{
			desc:    "create user with duplicate email",
			user:    validUser,
			saveErr: errors.Wrap(users.ErrDuplicateEmail, repoerr.ErrConflict),
			err:     users.ErrDuplicateEmail,
		},
		{
			desc:    "create user with failed save",
			user:    validUser,
			saveErr: errDB,
			err:     svcerr.ErrCreateEntity,
		},
	}

	for _, tc := range cases {
		var saved users.User
		repoCall := d.repo.On("Save", context.Background(), mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(users.User)
		}).Return(users.User{}, tc.saveErr)
		_, err := svc.CreateUser(context.Background(), tc.user, password)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		if tc.err == nil {
			assert.Equal(t, users.NormalizeEmail(tc.user.Email), saved.Email, fmt.Sprintf("%s: email not normalized", tc.desc))
			assert.NotEqual(t, password, saved.Password, fmt.Sprintf("%s: password stored in plain text", tc.desc))
			assert.False(t, saved.IsSuperuser, fmt.Sprintf("%s: unexpected superuser", tc.desc))
			assert.True(t, saved.IsActive, fmt.Sprintf("%s: expected active user", tc.desc))
			assert.Equal(t, users.DefaultLanguage, saved.Language)
			assert.NotEmpty(t, saved.ID)
			assert.WithinDuration(t, time.Now(), saved.DateJoined, 5*time.Second)
		}
		repoCall.Unset()
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	h := hasher.NewWithCost(bcrypt.MinCost)
	svc, d := newService(h)

	for _, email := range []string{"one@example.com", "Two@EXAMPLE.org", "three+tag@sub.example.net"} {
		var saved users.User
		repoCall := d.repo.On("Save", context.Background(), mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(users.User)
		}).Return(users.User{}, nil)
		_, err := svc.CreateUser(context.Background(), users.User{Email: email}, password)
		require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
		assert.NotEqual(t, password, saved.Password)
		assert.Nil(t, h.Compare(password, saved.Password), fmt.Sprintf("stored hash for %s does not verify", email))
		repoCall.Unset()
	}
}

func TestCreateUserWithoutPassword(t *testing.T) {
	h := hasher.NewWithCost(bcrypt.MinCost)
	svc, d := newService(h)

	var saved users.User
	repoCall := d.repo.On("Save", context.Background(), mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(users.User)
	}).Return(users.User{}, nil)
	_, err := svc.CreateUser(context.Background(), users.User{Email: "nopass@example.com"}, "")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.True(t, strings.HasPrefix(saved.Password, "!"), "expected unusable password")
	assert.NotNil(t, h.Compare("", saved.Password), "unusable password must not verify")
	repoCall.Unset()
}

func TestCreateUserOptions(t *testing.T) {
	svc, d := newService(phasher)

	cases := []struct {
		desc      string
		email     string
		superuser bool
		opts      []users.Option
		expected  users.User
		err       error
	}{
		{
			desc:     "create user with defaults",
			expected: users.User{IsActive: true},
		},
		{
			desc:     "create inactive staff user",
			opts:     []users.Option{users.WithStaff(true), users.WithActive(false)},
			expected: users.User{IsStaff: true},
		},
		{
			desc:     "create user with explicit superuser flag",
			opts:     []users.Option{users.WithSuperuser(true)},
			expected: users.User{IsActive: true, IsSuperuser: true},
		},
		{
			desc:      "create superuser with defaults",
			superuser: true,
			expected:  users.User{IsActive: true, IsStaff: true, IsSuperuser: true},
		},
		{
			desc:      "create superuser with explicit superuser flag",
			superuser: true,
			opts:      []users.Option{users.WithSuperuser(true), users.WithStaff(false)},
			expected:  users.User{IsActive: true, IsSuperuser: true},
		},
		{
			desc:      "create superuser with is_superuser=false",
			superuser: true,
			opts:      []users.Option{users.WithSuperuser(false)},
			err:       users.ErrSuperuserFlag,
		},
		{
			desc:      "create superuser with empty email",
			email:     " ",
			superuser: true,
			err:       users.ErrEmptyEmail,
		},
	}

	for _, tc := range cases {
		user := users.User{Email: "admin@example.com"}
		if tc.email != "" {
			user.Email = tc.email
		}
		var saved users.User
		repoCall := d.repo.On("Save", context.Background(), mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(users.User)
		}).Return(users.User{}, nil)

		var err error
		switch tc.superuser {
		case true:
			_, err = svc.CreateSuperuser(context.Background(), user, password, tc.opts...)
		default:
			_, err = svc.CreateUser(context.Background(), user, password, tc.opts...)
		}
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		if tc.err == nil {
			assert.Equal(t, tc.expected.IsActive, saved.IsActive, fmt.Sprintf("%s: is_active", tc.desc))
			assert.Equal(t, tc.expected.IsStaff, saved.IsStaff, fmt.Sprintf("%s: is_staff", tc.desc))
			assert.Equal(t, tc.expected.IsSuperuser, saved.IsSuperuser, fmt.Sprintf("%s: is_superuser", tc.desc))
		}
		repoCall.Unset()
	}
}

func TestCreateUserLocation(t *testing.T) {
	svc, d := newService(phasher)

	countryID := testsutil.GenerateUUID(t)
	otherCountryID := testsutil.GenerateUUID(t)
	stateID := testsutil.GenerateUUID(t)
	otherStateID := testsutil.GenerateUUID(t)
	cityID := testsutil.GenerateUUID(t)
	roleID := testsutil.GenerateUUID(t)

	cases := []struct {
		desc       string
		user       users.User
		country    users.Country
		countryErr error
		state      users.State
		stateErr   error
		city       users.City
		cityErr    error
		roleErr    error
		err        error
	}{
		{
			desc:    "create user with consistent location",
			user:    users.User{Email: "loc@example.com", CountryID: countryID, StateID: stateID, CityID: cityID, RoleID: roleID},
			country: users.Country{ID: countryID},
			state:   users.State{ID: stateID, CountryID: countryID},
			city:    users.City{ID: cityID, CountryID: countryID, StateID: stateID},
			err:     nil,
		},
		{
			desc:       "create user with unknown country",
			user:       users.User{Email: "loc@example.com", CountryID: countryID},
			countryErr: repoerr.ErrNotFound,
			err:        errors.FieldErrors{"country_id": {fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", countryID)}},
		},
		{
			desc:    "create user with state of another country",
			user:    users.User{Email: "loc@example.com", CountryID: countryID, StateID: stateID},
			country: users.Country{ID: countryID},
			state:   users.State{ID: stateID, CountryID: otherCountryID},
			err:     users.ErrLocationMismatch,
		},
		{
			desc:    "create user with city of another state",
			user:    users.User{Email: "loc@example.com", CountryID: countryID, StateID: stateID, CityID: cityID},
			country: users.Country{ID: countryID},
			state:   users.State{ID: stateID, CountryID: countryID},
			city:    users.City{ID: cityID, CountryID: countryID, StateID: otherStateID},
			err:     users.ErrLocationMismatch,
		},
		{
			desc:    "create user with city of another country",
			user:    users.User{Email: "loc@example.com", CountryID: countryID, CityID: cityID},
			country: users.Country{ID: countryID},
			city:    users.City{ID: cityID, CountryID: otherCountryID},
			err:     users.ErrLocationMismatch,
		},
		{
			desc:    "create user with unknown role",
			user:    users.User{Email: "loc@example.com", RoleID: roleID},
			roleErr: repoerr.ErrNotFound,
			err:     errors.FieldErrors{"role_id": {fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", roleID)}},
		},
		{
			desc:       "create user with failed country lookup",
			user:       users.User{Email: "loc@example.com", CountryID: countryID},
			countryErr: errDB,
			err:        svcerr.ErrViewEntity,
		},
	}

	for _, tc := range cases {
		repoCall := d.repo.On("Save", context.Background(), mock.Anything).Return(tc.user, nil)
		repoCall1 := d.locations.On("RetrieveCountry", context.Background(), tc.user.CountryID).Return(tc.country, tc.countryErr)
		repoCall2 := d.locations.On("RetrieveState", context.Background(), tc.user.StateID).Return(tc.state, tc.stateErr)
		repoCall3 := d.locations.On("RetrieveCity", context.Background(), tc.user.CityID).Return(tc.city, tc.cityErr)
		repoCall4 := d.roles.On("RetrieveRole", context.Background(), tc.user.RoleID).Return(users.Role{ID: tc.user.RoleID}, tc.roleErr)
		_, err := svc.CreateUser(context.Background(), tc.user, password)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		if errors.Contains(tc.err, users.ErrLocationMismatch) {
			_, ok := errors.AsFieldErrors(err)
			assert.True(t, ok, fmt.Sprintf("%s: expected field errors in %s", tc.desc, err))
		}
		repoCall.Unset()
		repoCall1.Unset()
		repoCall2.Unset()
		repoCall3.Unset()
		repoCall4.Unset()
	}
}

func TestRegister(t *testing.T) {
	svc, d := newService(phasher)

	saved := validUser
	saved.ID = validToken.UserID

	cases := []struct {
		desc        string
		user        users.User
		existing    error
		policy      []string
		saveErr     error
		expectedErr error
	}{
		{
			desc:        "register new user",
			user:        validUser,
			existing:    repoerr.ErrNotFound,
			expectedErr: nil,
		},
		{
			desc:        "register existing email",
			user:        validUser,
			existing:    nil,
			expectedErr: errors.FieldErrors{"email": {users.MsgEmailTaken}},
		},
		{
			desc:        "register existing email with different domain case",
			user:        users.User{Email: "a@X.COM"},
			existing:    nil,
			expectedErr: errors.FieldErrors{"email": {users.MsgEmailTaken}},
		},
		{
			desc:        "register with weak password",
			user:        validUser,
			existing:    repoerr.ErrNotFound,
			policy:      []string{"This password is too common."},
			expectedErr: errors.FieldErrors{"password": {"This password is too common."}},
		},
		{
			desc:     "register existing email with weak password",
			user:     validUser,
			existing: nil,
			policy:   []string{"This password is entirely numeric."},
			expectedErr: errors.FieldErrors{
				"email":    {users.MsgEmailTaken},
				"password": {"This password is entirely numeric."},
			},
		},
		{
			desc:        "register with email taken concurrently",
			user:        validUser,
			existing:    repoerr.ErrNotFound,
			saveErr:     errors.Wrap(users.ErrDuplicateEmail, repoerr.ErrConflict),
			expectedErr: errors.FieldErrors{"email": {users.MsgEmailTaken}},
		},
		{
			desc:        "register with taken phone",
			user:        validUser,
			existing:    repoerr.ErrNotFound,
			saveErr:     errors.Wrap(users.ErrDuplicatePhone, repoerr.ErrConflict),
			expectedErr: errors.FieldErrors{"phone": {users.MsgPhoneTaken}},
		},
		{
			desc:        "register with failed lookup",
			user:        validUser,
			existing:    errDB,
			expectedErr: svcerr.ErrViewEntity,
		},
	}

	for _, tc := range cases {
		repoCall := d.repo.On("RetrieveByEmail", context.Background(), users.NormalizeEmail(tc.user.Email)).Return(users.User{}, tc.existing)
		repoCall1 := d.passwords.On("Validate", password, mock.Anything).Return(tc.policy)
		repoCall2 := d.repo.On("Save", context.Background(), mock.Anything).Return(saved, tc.saveErr)
		repoCall3 := d.tokens.On("RetrieveByUser", context.Background(), saved.ID).Return(validToken, nil)
		user, token, err := svc.Register(context.Background(), tc.user, password)
		assert.True(t, errors.Contains(err, tc.expectedErr), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.expectedErr, err))
		if tc.expectedErr == nil {
			assert.Equal(t, saved, user, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, saved, user))
			assert.Equal(t, validToken, token, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, validToken, token))
		}
		if fe, ok := tc.expectedErr.(errors.FieldErrors); ok {
			got, isFE := errors.AsFieldErrors(err)
			assert.True(t, isFE, fmt.Sprintf("%s: expected field errors got %s", tc.desc, err))
			assert.Equal(t, fe, got, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, fe, got))
		}
		repoCall.Unset()
		repoCall1.Unset()
		repoCall2.Unset()
		repoCall3.Unset()
	}
}

func TestLogin(t *testing.T) {
	svc, d := newService(phasher)

	stored := validUser
	stored.ID = validToken.UserID
	stored.Password = mocks.HashPrefix + password
	stored.IsActive = true

	inactive := stored
	inactive.IsActive = false

	cases := []struct {
		desc        string
		email       string
		password    string
		user        users.User
		retrieveErr error
		updateErr   error
		err         error
	}{
		{
			desc:     "login with valid credentials",
			email:    validUser.Email,
			password: password,
			user:     stored,
			err:      nil,
		},
		{
			desc:     "login with upper case domain",
			email:    "a@X.com",
			password: password,
			user:     stored,
			err:      nil,
		},
		{
			desc:     "login with wrong password",
			email:    validUser.Email,
			password: "wrong-password",
			user:     stored,
			err:      svcerr.ErrLogin,
		},
		{
			desc:        "login with unknown email",
			email:       "unknown@x.com",
			password:    password,
			retrieveErr: repoerr.ErrNotFound,
			err:         svcerr.ErrLogin,
		},
		{
			desc:     "login with inactive user",
			email:    validUser.Email,
			password: password,
			user:     inactive,
			err:      svcerr.ErrLogin,
		},
		{
			desc:        "login with failed lookup",
			email:       validUser.Email,
			password:    password,
			retrieveErr: errDB,
			err:         svcerr.ErrViewEntity,
		},
		{
			desc:      "login with failed last login update",
			email:     validUser.Email,
			password:  password,
			user:      stored,
			updateErr: errDB,
			err:       svcerr.ErrUpdateEntity,
		},
	}

	for _, tc := range cases {
		repoCall := d.repo.On("RetrieveByEmail", context.Background(), users.NormalizeEmail(tc.email)).Return(tc.user, tc.retrieveErr)
		repoCall1 := d.repo.On("UpdateLastLogin", context.Background(), stored.ID, mock.Anything).Return(tc.updateErr)
		repoCall2 := d.tokens.On("RetrieveByUser", context.Background(), stored.ID).Return(validToken, nil)
		user, token, err := svc.Login(context.Background(), tc.email, tc.password)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		if tc.err == nil {
			assert.Equal(t, stored.ID, user.ID)
			assert.False(t, user.LastLogin.IsZero(), fmt.Sprintf("%s: expected last login to be set", tc.desc))
			assert.Equal(t, validToken.Key, token.Key)
			ok := repoCall1.Parent.AssertCalled(t, "UpdateLastLogin", context.Background(), stored.ID, mock.Anything)
			assert.True(t, ok, fmt.Sprintf("%s: UpdateLastLogin was not called", tc.desc))
		}
		repoCall.Unset()
		repoCall1.Unset()
		repoCall2.Unset()
	}
}

func TestGetOrCreateToken(t *testing.T) {
	svc, d := newService(phasher)
	userID := validToken.UserID

	cases := []struct {
		desc        string
		existingErr error
		saveErr     error
		created     bool
		err         error
	}{
		{
			desc:    "get existing token",
			created: false,
			err:     nil,
		},
		{
			desc:        "create missing token",
			existingErr: repoerr.ErrNotFound,
			created:     true,
			err:         nil,
		},
		{
			desc:        "create token with failed save",
			existingErr: repoerr.ErrNotFound,
			saveErr:     errDB,
			err:         svcerr.ErrCreateEntity,
		},
		{
			desc:        "get token with failed lookup",
			existingErr: errDB,
			err:         svcerr.ErrViewEntity,
		},
	}

	for _, tc := range cases {
		var calls []*mock.Call
		if tc.existingErr != nil {
			calls = append(calls, d.tokens.On("RetrieveByUser", context.Background(), userID).Return(users.Token{}, tc.existingErr).Once())
		}
		calls = append(calls, d.tokens.On("RetrieveByUser", context.Background(), userID).Return(validToken, nil))
		var saved users.Token
		saveCall := d.tokens.On("Save", context.Background(), mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(users.Token)
		}).Return(tc.saveErr)

		token, err := svc.GetOrCreateToken(context.Background(), userID)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		if tc.err == nil {
			assert.Equal(t, validToken, token, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, validToken, token))
		}
		switch tc.created {
		case true:
			assert.Len(t, saved.Key, users.TokenKeyLen, fmt.Sprintf("%s: unexpected key length", tc.desc))
			assert.Equal(t, userID, saved.UserID, fmt.Sprintf("%s: token stored for wrong user", tc.desc))
		default:
			if tc.existingErr == nil {
				saveCall.Parent.AssertNotCalled(t, "Save", context.Background(), mock.Anything)
			}
		}
		saveCall.Unset()
		// Unset drops every expectation with the same arguments.
		calls[0].Unset()
	}
}

// memTokens keeps at most one token per user, like the auth_tokens table.
type memTokens struct {
	mu     sync.Mutex
	byUser map[string]users.Token
}

func (m *memTokens) Save(_ context.Context, token users.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byUser[token.UserID]; !ok {
		m.byUser[token.UserID] = token
	}
	return nil
}

func (m *memTokens) RetrieveByUser(_ context.Context, userID string) (users.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, ok := m.byUser[userID]
	if !ok {
		return users.Token{}, repoerr.ErrNotFound
	}
	return tok, nil
}

func (m *memTokens) RetrieveByKey(_ context.Context, key string) (users.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tok := range m.byUser {
		if tok.Key == key {
			return tok, nil
		}
	}
	return users.Token{}, repoerr.ErrNotFound
}

func (m *memTokens) Remove(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUser, userID)
	return nil
}

func TestGetOrCreateTokenIdempotent(t *testing.T) {
	store := &memTokens{byUser: make(map[string]users.Token)}
	svc := users.NewService(new(mocks.Repository), store, new(mocks.TokenCache), new(mocks.LocationRepository), new(mocks.RoleRepository), phasher, new(mocks.PasswordValidator), tokens.New(), idProvider)
	userID := testsutil.GenerateUUID(t)

	first, err := svc.GetOrCreateToken(context.Background(), userID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	second, err := svc.GetOrCreateToken(context.Background(), userID)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, first, second)

	otherID := testsutil.GenerateUUID(t)
	var wg sync.WaitGroup
	keys := make([]string, 20)
	for i := range keys {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := svc.GetOrCreateToken(context.Background(), otherID)
			assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
			keys[i] = tok.Key
		}(i)
	}
	wg.Wait()
	for _, k := range keys {
		assert.Equal(t, keys[0], k, "concurrent callers got different tokens")
	}
	assert.Len(t, store.byUser, 2)
}

func TestIdentify(t *testing.T) {
	svc, d := newService(phasher)

	user := validUser
	user.ID = validToken.UserID
	user.IsActive = true
	inactive := user
	inactive.IsActive = false

	cases := []struct {
		desc        string
		cacheID     string
		cacheErr    error
		keyErr      error
		user        users.User
		retrieveErr error
		session     authn.Session
		err         error
	}{
		{
			desc:    "identify with cached key",
			cacheID: user.ID,
			user:    user,
			session: authn.Session{UserID: user.ID, Email: user.Email, Token: validToken.Key},
			err:     nil,
		},
		{
			desc:     "identify with key missing from cache",
			cacheErr: repoerr.ErrNotFound,
			user:     user,
			session:  authn.Session{UserID: user.ID, Email: user.Email, Token: validToken.Key},
			err:      nil,
		},
		{
			desc:     "identify with unknown key",
			cacheErr: repoerr.ErrNotFound,
			keyErr:   repoerr.ErrNotFound,
			err:      svcerr.ErrAuthentication,
		},
		{
			desc:    "identify inactive user",
			cacheID: user.ID,
			user:    inactive,
			err:     svcerr.ErrAuthentication,
		},
		{
			desc:        "identify removed user",
			cacheID:     user.ID,
			retrieveErr: repoerr.ErrNotFound,
			err:         svcerr.ErrAuthentication,
		},
	}

	for _, tc := range cases {
		repoCall := d.cache.On("ID", context.Background(), validToken.Key).Return(tc.cacheID, tc.cacheErr)
		repoCall1 := d.tokens.On("RetrieveByKey", context.Background(), validToken.Key).Return(validToken, tc.keyErr)
		repoCall2 := d.cache.On("Save", context.Background(), validToken.Key, validToken.UserID).Return(nil)
		repoCall3 := d.repo.On("RetrieveByID", context.Background(), user.ID).Return(tc.user, tc.retrieveErr)
		session, err := svc.Identify(context.Background(), validToken.Key)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		assert.Equal(t, tc.session, session, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, tc.session, session))
		if tc.cacheErr != nil && tc.keyErr == nil {
			ok := repoCall2.Parent.AssertCalled(t, "Save", context.Background(), validToken.Key, validToken.UserID)
			assert.True(t, ok, fmt.Sprintf("%s: cache was not filled", tc.desc))
		}
		repoCall.Unset()
		repoCall1.Unset()
		repoCall2.Unset()
		repoCall3.Unset()
	}
}

func TestLogout(t *testing.T) {
	session := authn.Session{UserID: validToken.UserID, Token: validToken.Key}

	cases := []struct {
		desc         string
		removeErr    error
		cacheErr     error
		tokenRemoved bool
		err          error
	}{
		{
			desc:         "logout successfully",
			tokenRemoved: true,
			err:          nil,
		},
		{
			desc:         "logout with failed token removal",
			removeErr:    errDB,
			tokenRemoved: true,
			err:          svcerr.ErrRemoveEntity,
		},
		{
			desc:         "logout with failed cache eviction",
			cacheErr:     errDB,
			tokenRemoved: false,
			err:          svcerr.ErrRemoveEntity,
		},
	}

	for _, tc := range cases {
		svc, d := newService(phasher)
		repoCall := d.tokens.On("Remove", context.Background(), session.UserID).Return(tc.removeErr)
		repoCall1 := d.cache.On("Remove", context.Background(), session.Token).Return(tc.cacheErr)
		err := svc.Logout(context.Background(), session)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		ok := repoCall1.Parent.AssertCalled(t, "Remove", context.Background(), session.Token)
		assert.True(t, ok, fmt.Sprintf("%s: cached key was not evicted", tc.desc))
		if tc.tokenRemoved {
			ok = repoCall.Parent.AssertCalled(t, "Remove", context.Background(), session.UserID)
			assert.True(t, ok, fmt.Sprintf("%s: token row was not removed", tc.desc))
		} else {
			ok = repoCall.Parent.AssertNotCalled(t, "Remove", context.Background(), session.UserID)
			assert.True(t, ok, fmt.Sprintf("%s: token row removed before cache eviction succeeded", tc.desc))
		}
		repoCall.Unset()
		repoCall1.Unset()
	}
}

func TestChangePassword(t *testing.T) {
	svc, d := newService(phasher)

	stored := validUser
	stored.ID = validToken.UserID
	stored.Password = mocks.HashPrefix + password
	session := authn.Session{UserID: stored.ID, Token: validToken.Key}
	newPassword := "Zq7#pL4w"

	cases := []struct {
		desc        string
		current     string
		newPassword string
		policy      []string
		retrieveErr error
		updateErr   error
		err         error
	}{
		{
			desc:        "change password successfully",
			current:     password,
			newPassword: newPassword,
			err:         nil,
		},
		{
			desc:        "change password with wrong current password",
			current:     "wrong-password",
			newPassword: newPassword,
			err:         errors.FieldErrors{"current_password": {users.MsgCurrentPasswordMismatch}},
		},
		{
			desc:        "change password with weak new password",
			current:     password,
			newPassword: "123",
			policy:      []string{"This password is too short. It must contain at least 8 characters.", "This password is entirely numeric."},
			err:         errors.FieldErrors{"new_password": {"This password is too short. It must contain at least 8 characters.", "This password is entirely numeric."}},
		},
		{
			desc:        "change password with wrong current and weak new password",
			current:     "wrong-password",
			newPassword: "123",
			policy:      []string{"This password is entirely numeric."},
			err: errors.FieldErrors{
				"current_password": {users.MsgCurrentPasswordMismatch},
				"new_password":     {"This password is entirely numeric."},
			},
		},
		{
			desc:        "change password of missing user",
			current:     password,
			newPassword: newPassword,
			retrieveErr: repoerr.ErrNotFound,
			err:         svcerr.ErrViewEntity,
		},
		{
			desc:        "change password with failed update",
			current:     password,
			newPassword: newPassword,
			updateErr:   errDB,
			err:         svcerr.ErrUpdateEntity,
		},
	}

	for _, tc := range cases {
		repoCall := d.repo.On("RetrieveByID", context.Background(), stored.ID).Return(stored, tc.retrieveErr)
		repoCall1 := d.passwords.On("Validate", tc.newPassword, stored).Return(tc.policy)
		repoCall2 := d.repo.On("UpdatePassword", context.Background(), stored.ID, mocks.HashPrefix+tc.newPassword).Return(tc.updateErr)
		err := svc.ChangePassword(context.Background(), session, tc.current, tc.newPassword)
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
		if tc.err == nil {
			ok := repoCall2.Parent.AssertCalled(t, "UpdatePassword", context.Background(), stored.ID, mocks.HashPrefix+tc.newPassword)
			assert.True(t, ok, fmt.Sprintf("%s: UpdatePassword was not called", tc.desc))
		}
		repoCall.Unset()
		repoCall1.Unset()
		repoCall2.Unset()
	}
}

func TestChangePasswordReplacesHash(t *testing.T) {
	h := hasher.NewWithCost(bcrypt.MinCost)
	svc, d := newService(h)

	oldHash, err := h.Hash(password)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	stored := validUser
	stored.ID = validToken.UserID
	stored.Password = oldHash
	session := authn.Session{UserID: stored.ID, Token: validToken.Key}
	newPassword := "Zq7#pL4w"

	var newHash string
	d.repo.On("RetrieveByID", context.Background(), stored.ID).Return(stored, nil)
	d.passwords.On("Validate", newPassword, stored).Return(nil)
	d.repo.On("UpdatePassword", context.Background(), stored.ID, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		newHash = args.String(2)
	})

	err = svc.ChangePassword(context.Background(), session, password, newPassword)
	require.Nil(t, err, fmt.Sprintf("change password: unexpected error: %s", err))
	require.NotEmpty(t, newHash, "UpdatePassword was not called with a hash")

	assert.NotNil(t, h.Compare(password, newHash), "old password must not verify against the new hash")
	assert.Nil(t, h.Compare(newPassword, newHash), "new password must verify against the new hash")
}
