// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrs realizes the users resource, allowing the account
// manipulation REST APIs to be accepted and delegated to the users
// use cases respectively.
package usersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/usecase/usersuc"
)

type resource struct {
	users *usersuc.UseCase
}

// Register instantiates a resource adapting the users use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/dlrweb/v1/users
//     in order to register a new account,
//  2. POST request to /api/dlrweb/v1/users/login
//     in order to login and obtain a session token,
//  3. GET and PUT requests to /api/dlrweb/v1/users/profile
//     in order to read and update the acting user's profile,
//  4. GET request to /api/dlrweb/v1/users
//     in order to list all accounts (admin),
//  5. DELETE request to /api/dlrweb/v1/users/:uid
//     in order to delete an account (admin).
func Register(
	public, authed, admin *gin.RouterGroup, users *usersuc.UseCase,
) {
	rs := &resource{users: users}
	public.POST("users", rs.RegisterUser)
	public.POST("users/login", rs.Login)
	authed.GET("users/profile", rs.Profile)
	authed.PUT("users/profile", rs.UpdateProfile)
	admin.GET("users", rs.ListUsers)
	admin.DELETE("users/:uid", rs.DeleteUser)
}

func (rs *resource) RegisterUser(c *gin.Context) {
	req := rs.DserRegisterReq(c)
	if req == nil {
		return
	}
	u, t, err := rs.users.Register(c, req.Name, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	u.PasswordHash = ""
	c.JSON(http.StatusCreated, sessionResp{User: u, Token: t})
}

func (rs *resource) Login(c *gin.Context) {
	req := rs.DserLoginReq(c)
	if req == nil {
		return
	}
	u, t, err := rs.users.Login(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	u.PasswordHash = ""
	c.JSON(http.StatusOK, sessionResp{User: u, Token: t})
}

func (rs *resource) Profile(c *gin.Context) {
	u := rs.DserActingUser(c)
	if u == nil {
		return
	}
	u.PasswordHash = ""
	c.JSON(http.StatusOK, u)
}

func (rs *resource) UpdateProfile(c *gin.Context) {
	u := rs.DserActingUser(c)
	if u == nil {
		return
	}
	req := rs.DserUpdateProfileReq(c)
	if req == nil {
		return
	}
	uu, t, err := rs.users.UpdateProfile(c, u.ID, usersuc.ProfilePatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	uu.PasswordHash = ""
	c.JSON(http.StatusOK, sessionResp{User: uu, Token: t})
}

// ListUsers serializes users as stored, including their password hash
// strings, so the back-office view matches the persisted records.
func (rs *resource) ListUsers(c *gin.Context) {
	us, err := rs.users.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, us)
}

func (rs *resource) DeleteUser(c *gin.Context) {
	uid, ok := rs.DserUserID(c)
	if !ok {
		return
	}
	if err := rs.users.Delete(c, uid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
