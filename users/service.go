// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package users

import (
	"context"
	"fmt"
	"time"

	"github.com/absmach/accounts"
	"github.com/absmach/accounts/pkg/authn"
	"github.com/absmach/accounts/pkg/errors"
	repoerr "github.com/absmach/accounts/pkg/errors/repository"
	svcerr "github.com/absmach/accounts/pkg/errors/service"
)

var (
	// ErrEmptyEmail indicates user creation without an e-mail.
	ErrEmptyEmail = errors.New("the given email must be set")

	// ErrSuperuserFlag indicates a superuser created with is_superuser=false.
	ErrSuperuserFlag = errors.New("superuser must have is_superuser=true")

	// ErrDuplicateEmail indicates that the e-mail belongs to another user.
	ErrDuplicateEmail = errors.New("email already taken")

	// ErrDuplicatePhone indicates that the phone belongs to another user.
	ErrDuplicatePhone = errors.New("phone already taken")

	// ErrLocationMismatch indicates a state or city outside of the
	// referenced country or state.
	ErrLocationMismatch = errors.New("location does not belong to the referenced country or state")
)

// Field messages returned to API clients.
const (
	MsgEmailTaken              = "Email is already taken"
	MsgPhoneTaken              = "user with this phone already exists."
	MsgCurrentPasswordMismatch = "Current password does not match"
	MsgStateMismatch           = "State does not belong to the selected country."
	MsgCityMismatch            = "City does not belong to the selected country or state."
	msgUnknownPK               = "Invalid pk \"%s\" - object does not exist."
)

// unusablePrefix marks a stored password that never verifies.
const unusablePrefix = "!"

// Service specifies an API that must be fullfiled by the domain service
// implementation, and all of its decorators (e.g. logging & metrics).
//
//go:generate mockery --name Service --output=./mocks --filename service.go --quiet --note "Copyright (c) Abstract Machines"
type Service interface {
	// CreateUser stores a new user with a hashed password. The user is
	// active and not a superuser unless opts say otherwise.
	CreateUser(ctx context.Context, user User, password string, opts ...Option) (User, error)

	// CreateSuperuser is CreateUser with is_superuser and is_staff set.
	// Passing WithSuperuser(false) fails with ErrSuperuserFlag.
	CreateSuperuser(ctx context.Context, user User, password string, opts ...Option) (User, error)

	// Register creates a user from the public registration form and
	// returns it along with its token. Validation failures are returned
	// as errors.FieldErrors.
	Register(ctx context.Context, user User, password string) (User, Token, error)

	// Login checks the credentials and returns the user with its token.
	Login(ctx context.Context, email, password string) (User, Token, error)

	// Logout deletes the token of the session user.
	Logout(ctx context.Context, session authn.Session) error

	// ChangePassword replaces the password of the session user.
	ChangePassword(ctx context.Context, session authn.Session, current, password string) error

	// GetOrCreateToken returns the token of the user, creating it on
	// first access.
	GetOrCreateToken(ctx context.Context, userID string) (Token, error)

	// Identify resolves a token key into a session of an active user.
	Identify(ctx context.Context, key string) (authn.Session, error)
}

// Option sets a privilege flag on user creation.
type Option func(*createOptions)

type createOptions struct {
	superuser *bool
	staff     *bool
	active    *bool
}

func WithSuperuser(v bool) Option {
	return func(o *createOptions) { o.superuser = &v }
}

func WithStaff(v bool) Option {
	return func(o *createOptions) { o.staff = &v }
}

func WithActive(v bool) Option {
	return func(o *createOptions) { o.active = &v }
}

var _ Service = (*service)(nil)

type service struct {
	users      Repository
	tokens     TokenRepository
	cache      TokenCache
	locations  LocationRepository
	roles      RoleRepository
	hasher     Hasher
	passwords  PasswordValidator
	keys       KeyGenerator
	idProvider accounts.IDProvider
}

// NewService returns a new users service implementation.
func NewService(users Repository, tokens TokenRepository, cache TokenCache, locations LocationRepository, roles RoleRepository, hasher Hasher, passwords PasswordValidator, keys KeyGenerator, idp accounts.IDProvider) Service {
	return &service{
		users:      users,
		tokens:     tokens,
		cache:      cache,
		locations:  locations,
		roles:      roles,
		hasher:     hasher,
		passwords:  passwords,
		keys:       keys,
		idProvider: idp,
	}
}

func (svc *service) CreateUser(ctx context.Context, user User, password string, opts ...Option) (User, error) {
	o := createOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	return svc.createUser(ctx, user, password, o)
}

func (svc *service) CreateSuperuser(ctx context.Context, user User, password string, opts ...Option) (User, error) {
	t := true
	o := createOptions{superuser: &t, staff: &t}
	for _, opt := range opts {
		opt(&o)
	}
	if !*o.superuser {
		return User{}, ErrSuperuserFlag
	}

	return svc.createUser(ctx, user, password, o)
}

func (svc *service) createUser(ctx context.Context, user User, password string, o createOptions) (User, error) {
	user.Email = NormalizeEmail(user.Email)
	if user.Email == "" {
		return User{}, ErrEmptyEmail
	}

	user.IsActive = boolOr(o.active, true)
	user.IsStaff = boolOr(o.staff, false)
	user.IsSuperuser = boolOr(o.superuser, false)
	if user.Language == "" {
		user.Language = DefaultLanguage
	}

	if err := user.Validate(); err != nil {
		return User{}, err
	}
	if err := svc.validateLocation(ctx, user); err != nil {
		return User{}, err
	}

	hash, err := svc.hash(password)
	if err != nil {
		return User{}, errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	user.Password = hash

	if user.ID, err = svc.idProvider.ID(); err != nil {
		return User{}, errors.Wrap(svcerr.ErrUniqueID, err)
	}
	now := time.Now().UTC()
	user.DateJoined = now
	user.CreatedAt = now

	saved, err := svc.users.Save(ctx, user)
	if err != nil {
		return User{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}

	return saved, nil
}

// hash hashes password. An empty password yields a random value behind
// unusablePrefix which no password verifies against.
func (svc *service) hash(password string) (string, error) {
	if password == "" {
		key, err := svc.keys.Generate()
		if err != nil {
			return "", err
		}
		return unusablePrefix + key, nil
	}

	return svc.hasher.Hash(password)
}

// validateLocation checks that referenced reference data exists and that
// the state and city lie within the user's country and state.
func (svc *service) validateLocation(ctx context.Context, user User) error {
	fe := errors.FieldErrors{}

	if user.RoleID != "" {
		if _, err := svc.roles.RetrieveRole(ctx, user.RoleID); err != nil {
			if !errors.Contains(err, repoerr.ErrNotFound) {
				return errors.Wrap(svcerr.ErrViewEntity, err)
			}
			fe.Add("role_id", unknownPK(user.RoleID))
		}
	}

	if user.CountryID != "" {
		if _, err := svc.locations.RetrieveCountry(ctx, user.CountryID); err != nil {
			if !errors.Contains(err, repoerr.ErrNotFound) {
				return errors.Wrap(svcerr.ErrViewEntity, err)
			}
			fe.Add("country_id", unknownPK(user.CountryID))
		}
	}

	mismatch := false
	if user.StateID != "" {
		state, err := svc.locations.RetrieveState(ctx, user.StateID)
		switch {
		case err == nil:
			if user.CountryID != "" && state.CountryID != user.CountryID {
				fe.Add("state_id", MsgStateMismatch)
				mismatch = true
			}
		case errors.Contains(err, repoerr.ErrNotFound):
			fe.Add("state_id", unknownPK(user.StateID))
		default:
			return errors.Wrap(svcerr.ErrViewEntity, err)
		}
	}

	if user.CityID != "" {
		city, err := svc.locations.RetrieveCity(ctx, user.CityID)
		switch {
		case err == nil:
			if (user.CountryID != "" && city.CountryID != user.CountryID) ||
				(user.StateID != "" && city.StateID != "" && city.StateID != user.StateID) {
				fe.Add("city_id", MsgCityMismatch)
				mismatch = true
			}
		case errors.Contains(err, repoerr.ErrNotFound):
			fe.Add("city_id", unknownPK(user.CityID))
		default:
			return errors.Wrap(svcerr.ErrViewEntity, err)
		}
	}

	if len(fe) == 0 {
		return nil
	}
	if mismatch {
		return errors.Wrap(ErrLocationMismatch, fe)
	}

	return fe
}

func (svc *service) Register(ctx context.Context, user User, password string) (User, Token, error) {
	user.Email = NormalizeEmail(user.Email)

	fe := errors.FieldErrors{}
	switch _, err := svc.users.RetrieveByEmail(ctx, user.Email); {
	case err == nil:
		fe.Add("email", MsgEmailTaken)
	case !errors.Contains(err, repoerr.ErrNotFound):
		return User{}, Token{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}
	fe.Add("password", svc.passwords.Validate(password, user)...)
	if err := fe.AsError(); err != nil {
		return User{}, Token{}, err
	}

	saved, err := svc.CreateUser(ctx, user, password)
	switch {
	case errors.Contains(err, ErrDuplicateEmail):
		return User{}, Token{}, errors.FieldErrors{"email": {MsgEmailTaken}}
	case errors.Contains(err, ErrDuplicatePhone):
		return User{}, Token{}, errors.FieldErrors{"phone": {MsgPhoneTaken}}
	case err != nil:
		return User{}, Token{}, err
	}

	token, err := svc.GetOrCreateToken(ctx, saved.ID)
	if err != nil {
		return User{}, Token{}, err
	}

	return saved, token, nil
}

func (svc *service) Login(ctx context.Context, email, password string) (User, Token, error) {
	user, err := svc.users.RetrieveByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Contains(err, repoerr.ErrNotFound) {
			return User{}, Token{}, errors.Wrap(svcerr.ErrLogin, err)
		}
		return User{}, Token{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}
	if err := svc.hasher.Compare(password, user.Password); err != nil {
		return User{}, Token{}, errors.Wrap(svcerr.ErrLogin, err)
	}
	if !user.IsActive {
		return User{}, Token{}, svcerr.ErrLogin
	}

	now := time.Now().UTC()
	if err := svc.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return User{}, Token{}, errors.Wrap(svcerr.ErrUpdateEntity, err)
	}
	user.LastLogin = now

	token, err := svc.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		return User{}, Token{}, err
	}

	return user, token, nil
}

// Logout evicts the cached key before deleting the token row, so a failed
// eviction leaves the token in place for a retry.
func (svc *service) Logout(ctx context.Context, session authn.Session) error {
	if err := svc.cache.Remove(ctx, session.Token); err != nil {
		return errors.Wrap(svcerr.ErrRemoveEntity, err)
	}
	if err := svc.tokens.Remove(ctx, session.UserID); err != nil {
		return errors.Wrap(svcerr.ErrRemoveEntity, err)
	}

	return nil
}

func (svc *service) ChangePassword(ctx context.Context, session authn.Session, current, password string) error {
	user, err := svc.users.RetrieveByID(ctx, session.UserID)
	if err != nil {
		return errors.Wrap(svcerr.ErrViewEntity, err)
	}

	fe := errors.FieldErrors{}
	if err := svc.hasher.Compare(current, user.Password); err != nil {
		fe.Add("current_password", MsgCurrentPasswordMismatch)
	}
	fe.Add("new_password", svc.passwords.Validate(password, user)...)
	if err := fe.AsError(); err != nil {
		return err
	}

	hash, err := svc.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(svcerr.ErrMalformedEntity, err)
	}
	if err := svc.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return errors.Wrap(svcerr.ErrUpdateEntity, err)
	}

	return nil
}

func (svc *service) GetOrCreateToken(ctx context.Context, userID string) (Token, error) {
	token, err := svc.tokens.RetrieveByUser(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Contains(err, repoerr.ErrNotFound) {
		return Token{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	key, err := svc.keys.Generate()
	if err != nil {
		return Token{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}
	// Save is a no-op when a concurrent caller stored a token first, so
	// the token is read back instead of returning key.
	if err := svc.tokens.Save(ctx, Token{Key: key, UserID: userID, CreatedAt: time.Now().UTC()}); err != nil {
		return Token{}, errors.Wrap(svcerr.ErrCreateEntity, err)
	}
	token, err = svc.tokens.RetrieveByUser(ctx, userID)
	if err != nil {
		return Token{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}

	return token, nil
}

func (svc *service) Identify(ctx context.Context, key string) (authn.Session, error) {
	userID, err := svc.cache.ID(ctx, key)
	if err != nil {
		token, err := svc.tokens.RetrieveByKey(ctx, key)
		if err != nil {
			if errors.Contains(err, repoerr.ErrNotFound) {
				return authn.Session{}, errors.Wrap(svcerr.ErrAuthentication, err)
			}
			return authn.Session{}, errors.Wrap(svcerr.ErrViewEntity, err)
		}
		userID = token.UserID
		// A failed cache fill only costs a database lookup next time.
		_ = svc.cache.Save(ctx, key, userID)
	}

	user, err := svc.users.RetrieveByID(ctx, userID)
	if err != nil {
		if errors.Contains(err, repoerr.ErrNotFound) {
			return authn.Session{}, errors.Wrap(svcerr.ErrAuthentication, err)
		}
		return authn.Session{}, errors.Wrap(svcerr.ErrViewEntity, err)
	}
	if !user.IsActive {
		return authn.Session{}, svcerr.ErrAuthentication
	}

	return authn.Session{
		UserID:      user.ID,
		Email:       user.Email,
		Token:       key,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func unknownPK(id string) string {
	return fmt.Sprintf(msgUnknownPK, id)
}
