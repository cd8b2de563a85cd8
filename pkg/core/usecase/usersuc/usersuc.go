// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which supports the
// account related use cases: registration, login, profile reading and
// self-service updates, and the administrative user listing/deletion.
package usersuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
	"github.com/momeni/dealer-web/pkg/core/scram"
	"github.com/momeni/dealer-web/pkg/core/token"
)

// UseCase represents a users use case. It holds a database connection
// pool, the users repository instance (to be guided with the DB pool),
// the password hasher, the session token issuer, and the users use
// case specific settings.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	hasher  scram.Hasher
	tokens  token.Issuer

	sessionTTL time.Duration
	scramIters int
}

// New instantiates a users use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, u repo.Users, h scram.Hasher, t token.Issuer,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, usersrp: u, hasher: h, tokens: t}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.sessionTTL == 0 {
		uc.sessionTTL = 30 * 24 * time.Hour
	}
	if uc.scramIters == 0 {
		uc.scramIters = 15000
	}
	return uc, nil
}

// Register use case creates a new non-admin account with the given
// name, email, and password, and returns the created user model with
// a fresh session token. Emails are unique across live users; an
// already registered email fails with a conflict error.
func (users *UseCase) Register(
	ctx context.Context, name, email, pass string,
) (u *model.User, t string, err error) {
	hash, err := users.hasher.Hash(pass, "", users.scramIters)
	if err != nil {
		return nil, "", cerr.BadRequest(
			fmt.Errorf("hashing password: %w", err),
		)
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		switch _, err := q.ByEmail(ctx, email); {
		case err == nil:
			return cerr.Conflict(
				errors.New("email is already registered"),
			)
		case !cerr.IsNotFound(err):
			return err
		}
		u, err = q.Create(ctx, &model.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			IsAdmin:      false,
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}
	t, err = users.tokens.Issue(u.ID, users.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session token: %w", err)
	}
	return u, t, nil
}

// ErrInvalidCredentials is returned (wrapped as an authentication
// failure) when a login email is unknown or its password mismatches.
// Both cases share one error deliberately, so a caller cannot probe
// which emails are registered.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Login use case authenticates the email/pass pair and returns the
// user model with a fresh session token. No token is issued on
// failure. Only a missing account or a mismatching password count as
// invalid credentials; store failures pass through unchanged.
func (users *UseCase) Login(
	ctx context.Context, email, pass string,
) (u *model.User, t string, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.ByEmail(ctx, email)
		return err
	})
	switch {
	case cerr.IsNotFound(err):
		return nil, "", cerr.Authentication(ErrInvalidCredentials)
	case err != nil:
		return nil, "", err
	}
	if err = users.hasher.Verify(pass, u.PasswordHash); err != nil {
		return nil, "", cerr.Authentication(ErrInvalidCredentials)
	}
	t, err = users.tokens.Issue(u.ID, users.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session token: %w", err)
	}
	return u, t, nil
}

// Profile use case loads the userID user. It backs both the profile
// endpoint and the auth middleware (which resolves a verified token
// subject to an acting user).
func (users *UseCase) Profile(
	ctx context.Context, userID uuid.UUID,
) (u *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.ByID(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// ProfilePatch describes a profile self-service update. Nil fields
// are left unchanged; a provided Password is re-hashed before it is
// persisted.
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateProfile use case applies the provided fields of p to the
// userID user and returns the updated model with a freshly issued
// session token.
func (users *UseCase) UpdateProfile(
	ctx context.Context, userID uuid.UUID, p ProfilePatch,
) (u *model.User, t string, err error) {
	patch := model.UserPatch{Name: p.Name, Email: p.Email}
	if p.Password != nil {
		hash, err := users.hasher.Hash(*p.Password, "", users.scramIters)
		if err != nil {
			return nil, "", cerr.BadRequest(
				fmt.Errorf("hashing password: %w", err),
			)
		}
		patch.PasswordHash = &hash
	}
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		u, err = q.Update(ctx, userID, patch)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	t, err = users.tokens.Issue(u.ID, users.sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing session token: %w", err)
	}
	return u, t, nil
}

// List use case returns all users as stored. Rows are not redacted
// here; deciding which fields reach a client is the resource layer's
// call.
func (users *UseCase) List(
	ctx context.Context,
) (us []model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		us, err = q.List(ctx)
		return err
	})
	if err != nil {
		us = nil
	}
	return
}

// Delete use case hard-deletes the userID user. Requests which were
// filed by that user keep their dangling owner reference.
func (users *UseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	return users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := users.usersrp.Conn(c)
		return q.Delete(ctx, userID)
	})
}
