// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/momeni/dealer-web/internal/test/memrepo"
	"github.com/momeni/dealer-web/pkg/adapter/hash/scram"
	"github.com/momeni/dealer-web/pkg/adapter/token/jwt"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/repo"
	"github.com/momeni/dealer-web/pkg/core/token"
	"github.com/momeni/dealer-web/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (*usersuc.UseCase, token.Issuer) {
	_, pool, urp, _, _ := memrepo.New()
	tokens, err := jwt.New("test-secret", "test", time.Hour)
	require.NoError(t, err, "failed to create token issuer")
	uc, err := usersuc.New(
		pool, urp, scram.SHA256(), tokens,
		usersuc.WithScramIterations(4096), // fast hashing in tests
	)
	require.NoError(t, err, "failed to create users use case")
	return uc, tokens
}

func assertStatusCode(t *testing.T, err error, code int) {
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce, "expected a status coded error")
	assert.Equal(t, code, ce.HTTPStatusCode, "wrong status code")
}

func TestRegisterAndLogin(t *testing.T) {
	uc, tokens := newUseCase(t)
	ctx := context.Background()

	u, tok, err := uc.Register(ctx, "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.False(t, u.IsAdmin, "registration creates non-admin users")
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "pw1", u.PasswordHash, "passwords are hashed")

	uid, err := tokens.Verify(tok)
	require.NoError(t, err, "registration token must verify")
	assert.Equal(t, u.ID, uid)

	u2, _, err := uc.Login(ctx, "alice@example.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, u2.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, _, err := uc.Register(ctx, "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	_, _, err = uc.Register(ctx, "Mallory", "alice@example.com", "pw2")
	assertStatusCode(t, err, http.StatusConflict)
	assert.ErrorContains(t, err, "email is already registered")
}

func TestLoginFailures(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, _, err := uc.Register(ctx, "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	_, tok, err := uc.Login(ctx, "alice@example.com", "wrong")
	assertStatusCode(t, err, http.StatusUnauthorized)
	assert.Empty(t, tok, "no token is issued on failure")

	_, _, err = uc.Login(ctx, "nobody@example.com", "pw1")
	assertStatusCode(t, err, http.StatusUnauthorized)
}

// brokenPool fails every connection attempt with a fixed error.
type brokenPool struct {
	err error
}

func (p brokenPool) Conn(_ context.Context, _ repo.ConnHandler) error {
	return p.err
}

func (p brokenPool) Close() error {
	return nil
}

func TestLoginStoreFailure(t *testing.T) {
	_, _, urp, _, _ := memrepo.New()
	tokens, err := jwt.New("test-secret", "test", time.Hour)
	require.NoError(t, err, "failed to create token issuer")
	dbErr := errors.New("connection refused")
	uc, err := usersuc.New(
		brokenPool{err: dbErr}, urp, scram.SHA256(), tokens,
	)
	require.NoError(t, err, "failed to create users use case")

	_, tok, err := uc.Login(
		context.Background(), "alice@example.com", "pw1",
	)
	assert.ErrorIs(t, err, dbErr, "store failures must pass through")
	var ce *cerr.Error
	assert.False(
		t, errors.As(err, &ce),
		"a store failure must not look like bad credentials",
	)
	assert.Empty(t, tok, "no token is issued on failure")
}

func TestUpdateProfile(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	u, _, err := uc.Register(ctx, "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	name := "Alice L."
	pass := "pw2"
	uu, tok, err := uc.UpdateProfile(ctx, u.ID, usersuc.ProfilePatch{
		Name:     &name,
		Password: &pass,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", uu.Name)
	assert.Equal(
		t, "alice@example.com", uu.Email, "absent fields are unchanged",
	)
	assert.NotEmpty(t, tok, "a fresh token accompanies the update")

	_, _, err = uc.Login(ctx, "alice@example.com", "pw1")
	assertStatusCode(t, err, http.StatusUnauthorized)
	_, _, err = uc.Login(ctx, "alice@example.com", "pw2")
	assert.NoError(t, err, "the new password must be effective")
}

func TestListKeepsStoredRows(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, _, err := uc.Register(ctx, "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)
	_, _, err = uc.Register(ctx, "Bob", "bob@example.com", "pw2")
	require.NoError(t, err)

	us, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, us, 2)
	for _, u := range us {
		assert.NotEmpty(
			t, u.PasswordHash, "listing returns rows as stored",
		)
	}
}

func TestDelete(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	u, _, err := uc.Register(ctx, "Alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, u.ID))
	_, err = uc.Profile(ctx, u.ID)
	assert.True(t, cerr.IsNotFound(err), "expected a not-found error")
	err = uc.Delete(ctx, u.ID)
	assert.True(t, cerr.IsNotFound(err), "expected a not-found error")
}
