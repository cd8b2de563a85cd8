// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the dealer
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database schema initialization and
// admin account seeding.
//
//	./dlrweb [-c /path/of/main/config.yaml]          # start web server
//	./dlrweb db init [-c /path/of/main/config.yaml]
//	    [--admin-name NAME --admin-email EMAIL --admin-pass PASS]
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/dealer-web/pkg/adapter/config"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dlrweb",
	Short: "A vehicle dealership web service",
	Long: `A vehicle dealership web service which exposes a REST API
for account registration and session token based authentication, a
paginated and keyword-filtered vehicle catalog with multipart image
uploads, and a purchase/rental/information request workflow where an
administrator's acceptance of a purchase or rental request takes the
referenced vehicle off the market.
The use cases and models layers are kept independent of the
third-party dependent adapters layer, interacting with them through a
series of interfaces. GORM and Pgx are used for database interactions
and the Gin Gonic web framework for the REST API implementation,
while database repositories may be tested using temporary PostgreSQL
DBMS servers (created as podman containers).`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.LoadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("config.LoadFile(%q): %w", cfgPath, err)
	}
	lg, err := c.Logging.NewLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(lg)
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(c.Gin.Listen); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
