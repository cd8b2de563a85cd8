// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/dealer-web/pkg/core/repo"
)

// schemaDDL creates all tables which are expected by the repository
// packages. Statements are idempotent, so InitSchema may run on an
// already initialized database.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    uid UUID PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS vehicles (
    vid UUID PRIMARY KEY,
    make TEXT NOT NULL,
    model TEXT NOT NULL,
    year INT NOT NULL,
    fuel_type TEXT NOT NULL DEFAULT '',
    transmission TEXT NOT NULL DEFAULT '',
    drive TEXT NOT NULL DEFAULT '',
    class TEXT NOT NULL DEFAULT '',
    cylinders INT NOT NULL DEFAULT 0,
    displacement DOUBLE PRECISION NOT NULL DEFAULT 0,
    city_mpg INT NOT NULL DEFAULT 0,
    highway_mpg INT NOT NULL DEFAULT 0,
    combination_mpg INT NOT NULL DEFAULT 0,
    price DOUBLE PRECISION NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    available BOOLEAN NOT NULL DEFAULT TRUE,
    images JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS vehicles_created_at_idx
    ON vehicles (created_at DESC);

CREATE TABLE IF NOT EXISTS requests (
    rid UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    vehicle_id UUID NOT NULL,
    request_type TEXT NOT NULL,
    start_date TIMESTAMPTZ,
    end_date TIMESTAMPTZ,
    status TEXT NOT NULL DEFAULT 'pending',
    message TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS requests_user_id_idx ON requests (user_id);
`

// InitSchema creates the users, vehicles, and requests tables (and
// their indexes) if they do not exist yet. There are no foreign key
// constraints between requests and their referenced rows; deleting a
// user or vehicle leaves dangling references which the repositories
// tolerate when joining.
func InitSchema(ctx context.Context, c repo.Conn) error {
	if _, err := c.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("creating schema tables: %w", err)
	}
	return nil
}
