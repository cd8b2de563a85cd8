// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package token exports the expected interface for the session token
// issuance and verification mechanism. For the corresponding JWT-based
// implementation, check the adapter layer.
// A session token is an opaque bearer string which encodes the user
// identifier and an expiry; clients present it in the Authorization
// header and the auth middleware resolves it back to an acting user.
package token

import (
	"time"

	"github.com/google/uuid"
)

// Issuer represents the expectations from a session token
// implementation. Tokens are self-contained: Verify only needs the
// token string itself (plus the key material which the implementation
// was instantiated with) in order to recover the user identifier.
type Issuer interface {
	// Issue creates a signed session token for the userID subject,
	// valid for the ttl duration from now. A non-positive ttl asks
	// for the implementation default validity.
	Issue(userID uuid.UUID, ttl time.Duration) (string, error)

	// Verify checks the token signature and expiry and returns the
	// embedded user identifier. Expired, malformed, or otherwise
	// invalid tokens are reported as errors.
	Verify(token string) (uuid.UUID, error)
}
