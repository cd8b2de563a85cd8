// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package requestsrs realizes the requests resource, allowing the
// purchase/rental/information request REST APIs to be accepted and
// delegated to the requests use cases respectively.
package requestsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/usecase/requestsuc"
)

type resource struct {
	requests *requestsuc.UseCase
}

// Register instantiates a resource adapting the requests use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/dlrweb/v1/requests
//     in order to file a new request,
//  2. GET request to /api/dlrweb/v1/requests/myRequests
//     in order to list the acting user's own requests,
//  3. GET request to /api/dlrweb/v1/requests
//     in order to list all requests (admin),
//  4. PUT request to /api/dlrweb/v1/requests/:rid
//     in order to transition a request's status (admin).
func Register(
	authed, admin *gin.RouterGroup, requests *requestsuc.UseCase,
) {
	rs := &resource{requests: requests}
	authed.POST("requests", rs.CreateRequest)
	authed.GET("requests/myRequests", rs.ListMyRequests)
	admin.GET("requests", rs.ListRequests)
	admin.PUT("requests/:rid", rs.UpdateRequestStatus)
}

func (rs *resource) CreateRequest(c *gin.Context) {
	u := rs.DserActingUser(c)
	if u == nil {
		return
	}
	req := rs.DserCreateRequestReq(c)
	if req == nil {
		return
	}
	r, err := rs.requests.Create(c, u.ID, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (rs *resource) ListMyRequests(c *gin.Context) {
	u := rs.DserActingUser(c)
	if u == nil {
		return
	}
	rss, err := rs.requests.ListMine(c, u.ID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rss)
}

func (rs *resource) ListRequests(c *gin.Context) {
	rss, err := rs.requests.ListAll(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rss)
}

func (rs *resource) UpdateRequestStatus(c *gin.Context) {
	rid, ok := rs.DserRequestID(c)
	if !ok {
		return
	}
	status, ok := rs.DserRequestStatus(c)
	if !ok {
		return
	}
	r, err := rs.requests.UpdateStatus(c, rid, status)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
