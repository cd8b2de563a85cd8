// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// The dealership domain consists of three entities. A User registers
// and authenticates against the system, a Vehicle describes a catalog
// entry which is managed by administrators, and a Request records a
// purchase, rental, or information inquiry which a user files against
// a vehicle.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User models a registered account. The PasswordHash field holds the
// SCRAM hash string of the account password; the plaintext password
// never reaches this layer. Administrators (IsAdmin) gain access to
// the catalog, request, and user management operations.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPatch describes a partial profile update. Each field uses a
// pointer as an explicit present/absent marker, so a legitimate empty
// string is distinguishable from a field which was not provided.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UserSummary carries the user fields which are joined into request
// listings (see the Request model).
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
