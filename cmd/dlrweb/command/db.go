// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/dealer-web/pkg/adapter/config"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates the expected
tables and indexes (idempotently) and optionally seeds one admin
account, so the back-office APIs become reachable.`,
}

var (
	adminName  string
	adminEmail string
	adminPass  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize database tables and seed an admin account",
	Long: `Initialize the database with the users, vehicles, and
requests tables, reading the connection information from the config
file. Statements are idempotent, so an already initialized database
is left intact.
If the --admin-name, --admin-email, and --admin-pass flags are given,
one admin account is created with them too. Seeding fails if the
given email is already registered.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.LoadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("config.LoadFile(%q): %w", cfgPath, err)
	}
	if (adminEmail == "") != (adminPass == "") {
		return fmt.Errorf(
			"flags --admin-email and --admin-pass must be given together",
		)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	return p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		if err := postgres.InitSchema(ctx, conn); err != nil {
			return fmt.Errorf("initializing DB schema: %w", err)
		}
		if adminEmail == "" {
			return nil
		}
		return seedAdmin(ctx, conn, c)
	})
}

// seedAdmin hashes the admin password with the configured hasher and
// inserts the admin account using flag provided details.
func seedAdmin(
	ctx context.Context, conn repo.Conn, c *config.Config,
) error {
	iters := 15000
	if c.Auth.ScramIterations != nil {
		iters = *c.Auth.ScramIterations
	}
	hash, err := c.Auth.Hasher().Hash(adminPass, "", iters)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	q := usersrp.New().Conn(conn)
	u, err := q.Create(ctx, &model.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	fmt.Printf("created admin account %q with id %s\n", u.Email, u.ID)
	return nil
}

func init() {
	initCmd.Flags().StringVar(
		&adminName, "admin-name", "admin", "seeded admin display name",
	)
	initCmd.Flags().StringVar(
		&adminEmail, "admin-email", "", "seeded admin email address",
	)
	initCmd.Flags().StringVar(
		&adminPass, "admin-pass", "", "seeded admin password",
	)
	dbCmd.AddCommand(initCmd)
	rootCmd.AddCommand(dbCmd)
}
