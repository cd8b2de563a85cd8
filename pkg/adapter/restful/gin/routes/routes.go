// Copyright (c) 2023-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealer-web/pkg/adapter/config"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres/requestsrp"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/requestsrs"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/momeni/dealer-web/pkg/core/repo"
	"github.com/momeni/dealer-web/pkg/core/usecase/requestsuc"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like usersuc and each repository package is named like usersrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like usersrs, in order to adapt the use cases
// interfaces with the REST APIs. Three route groups are registered
// using the e gin-gonic engine instance: a public group, a group
// which requires a valid session token, and a group which requires an
// admin acting user on top of that. The uploaded vehicle images
// directory is served statically under the configured route too.
// Possible errors will be returned after possible wrapping.
// Actual instantiation of use case objects are delegated to the
// c Config instance.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	usersRepo := usersrp.New()
	vehiclesRepo := vehiclesrp.New()
	requestsRepo := requestsrp.New()

	tokens, err := c.Auth.NewTokenIssuer()
	if err != nil {
		return fmt.Errorf("creating token issuer: %w", err)
	}
	images, err := c.Images.NewStore()
	if err != nil {
		return fmt.Errorf("creating images store: %w", err)
	}
	users, err := c.NewUsersUseCase(p, usersRepo, tokens)
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}
	vehicles, err := c.NewVehiclesUseCase(p, vehiclesRepo, images)
	if err != nil {
		return fmt.Errorf("creating vehicles use case: %w", err)
	}
	requests := requestsuc.New(p, requestsRepo, vehiclesRepo)

	r := e.Group("/api/dlrweb/v1")
	authed := r.Group("", authmw.Authenticate(tokens, users))
	admin := authed.Group("", authmw.RequireAdmin())
	usersrs.Register(r, authed, admin, users)
	vehiclesrs.Register(r, admin, vehicles)
	requestsrs.Register(authed, admin, requests)
	e.Static(c.Images.Route, c.Images.Dir)
	return nil
}
