// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/momeni/dealer-web/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	for name, m := range map[string]*scram.Mechanism{
		"sha1":   scram.SHA1(),
		"sha256": scram.SHA256(),
	} {
		m := m
		t.Run(name, func(t *testing.T) {
			h, err := m.Hash("Secret0rd1na18", "", 4096)
			require.NoError(t, err, "failed to hash password")
			assert.NotContains(t, h, "Secret0rd1na18")
			require.NoError(t, m.Verify("Secret0rd1na18", h))
			err = m.Verify("AnotherPass", h)
			assert.EqualError(t, err, "password mismatch")
		})
	}
}

func TestHashWithFixedSalt(t *testing.T) {
	m := scram.SHA256()
	salt := "c2FsdHNhbHRzYWx0c2FsdA==" // base64("saltsaltsaltsalt")
	h1, err := m.Hash("pass-word", salt, 4096)
	require.NoError(t, err)
	h2, err := m.Hash("pass-word", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "a fixed salt must reproduce the hash")
	assert.True(
		t, strings.HasPrefix(h1, "SCRAM-SHA-256$4096:"+salt+"$"),
		"unexpected hash format: %q", h1,
	)
}

func TestHashRandomSalts(t *testing.T) {
	m := scram.SHA256()
	h1, err := m.Hash("pass-word", "", 4096)
	require.NoError(t, err)
	h2, err := m.Hash("pass-word", "", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "random salts must differ")
}

func TestHashRejectsBadArgs(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", "", 4096)
	assert.EqualError(t, err, "password must be non-empty")
	_, err = m.Hash("pass-word", "", 4095)
	assert.EqualError(t, err, "iters (4095) is less than 4096")
}

func TestVerifyRejectsForeignHashes(t *testing.T) {
	h, err := scram.SHA1().Hash("pass-word", "", 4096)
	require.NoError(t, err)
	err = scram.SHA256().Verify("pass-word", h)
	assert.ErrorContains(t, err, "SCRAM-SHA-1")

	err = scram.SHA256().Verify("pass-word", "not-a-scram-hash")
	assert.EqualError(t, err, "malformed scram hash string")
}
