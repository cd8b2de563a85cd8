// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt presents the JWT-based implementation of the session
// token issuer. Tokens are signed with HS256 using a shared secret
// from the configuration and carry the user identifier as their
// subject claim, so no server-side session state is needed.
//
// It implements the github.com/momeni/dealer-web/pkg/core/token.Issuer
// interface. This package relies on the github.com/golang-jwt/jwt
// module for the JWT implementation.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
}

// New instantiates an Issuer with the given signing secret.
// The secret must be non-empty. The defaultTTL is used by Issue calls
// which pass a non-positive ttl; a non-positive defaultTTL itself
// falls back to 30 days.
func New(secret, issuer string, defaultTTL time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	if defaultTTL <= 0 {
		defaultTTL = 30 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		issuer:     issuer,
		defaultTTL: defaultTTL,
	}, nil
}

// Issue creates a signed session token for the userID subject, valid
// for the ttl duration from now (or the default validity for a
// non-positive ttl).
func (i *Issuer) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and registered claims and returns
// the embedded user identifier.
func (i *Issuer) Verify(token string) (uuid.UUID, error) {
	t, err := jwt.ParseWithClaims(
		token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || !t.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token subject: %w", err)
	}
	return userID, nil
}
