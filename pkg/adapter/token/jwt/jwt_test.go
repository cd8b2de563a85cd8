// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/adapter/token/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	i, err := jwt.New("test-secret", "dlrweb", time.Hour)
	require.NoError(t, err, "failed to create issuer")
	userID := uuid.New()
	token, err := i.Issue(userID, 0)
	require.NoError(t, err, "failed to issue token")
	got, err := i.Verify(token)
	require.NoError(t, err, "failed to verify token")
	assert.Equal(t, userID, got)
}

func TestVerifyExpiredToken(t *testing.T) {
	i, err := jwt.New("test-secret", "dlrweb", time.Hour)
	require.NoError(t, err)
	token, err := i.Issue(uuid.New(), -2*time.Minute)
	require.NoError(t, err)
	// a negative ttl falls back to the default, so the token is live
	_, err = i.Verify(token)
	assert.NoError(t, err)

	token, err = i.Issue(uuid.New(), time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = i.Verify(token)
	assert.Error(t, err, "expired token must not verify")
}

func TestVerifyWithWrongSecret(t *testing.T) {
	i1, err := jwt.New("first-secret", "dlrweb", time.Hour)
	require.NoError(t, err)
	i2, err := jwt.New("second-secret", "dlrweb", time.Hour)
	require.NoError(t, err)
	token, err := i1.Issue(uuid.New(), 0)
	require.NoError(t, err)
	_, err = i2.Verify(token)
	assert.Error(t, err, "foreign signature must not verify")

	_, err = i1.Verify("not.a.token")
	assert.Error(t, err)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := jwt.New("", "dlrweb", time.Hour)
	assert.EqualError(t, err, "signing secret is empty")
}
