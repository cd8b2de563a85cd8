// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authmw provides the authentication and authorization gin
// middlewares. Authenticate resolves a bearer session token to its
// acting user and aborts unauthenticated calls with a 401 status.
// RequireAdmin aborts calls from non-admin users with a 403 status,
// so the two failure modes stay distinguishable for clients.
package authmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/log"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/token"
	"github.com/momeni/dealer-web/pkg/core/usecase/usersuc"
)

// userKey is the gin context key which keeps the acting user.
const userKey = "authmw.user"

// Authenticate creates a middleware which expects an Authorization
// header with the "Bearer {token}" format, verifies the token using
// the t issuer, and loads the acting user (the token subject) with
// the users use case. The loaded model.User is attached to the gin
// context, so handlers may obtain it with the User function.
// A missing or malformed header, an invalid or expired token, and a
// token subject without a (still) existing user account are all
// rejected with a 401 status.
func Authenticate(
	t token.Issuer, users *usersuc.UseCase,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tok, found := strings.CutPrefix(header, "Bearer ")
		if !found || tok == "" {
			serdser.Err(
				c, http.StatusUnauthorized,
				"authorization token is required",
			)
			c.Abort()
			return
		}
		uid, err := t.Verify(tok)
		if err != nil {
			log.Debug(c, "rejecting session token", log.Err("verify", err))
			serdser.Err(
				c, http.StatusUnauthorized,
				"invalid or expired token",
			)
			c.Abort()
			return
		}
		u, err := users.Profile(c, uid)
		if err != nil {
			log.Debug(c, "rejecting vanished subject", log.Err("load", err))
			serdser.Err(
				c, http.StatusUnauthorized,
				"invalid or expired token",
			)
			c.Abort()
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// RequireAdmin creates a middleware which aborts calls with a 403
// status unless the acting user (as attached by Authenticate) is an
// admin. It must be registered after the Authenticate middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := User(c)
		if u == nil || !u.IsAdmin {
			serdser.Err(
				c, http.StatusForbidden, "admin access is required",
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

// User returns the acting user which was attached to the c context by
// the Authenticate middleware, or nil if no user is attached.
func User(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
