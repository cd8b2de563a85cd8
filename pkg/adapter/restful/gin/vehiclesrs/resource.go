// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, allowing the
// vehicle catalog REST APIs to be accepted and delegated to the
// vehicles use cases respectively. Vehicle creation and update accept
// multipart forms, so image files may be uploaded alongside the
// vehicle fields.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealer-web/pkg/core/usecase/vehiclesuc"
)

type resource struct {
	vehicles *vehiclesuc.UseCase
}

// Register instantiates a resource adapting the vehicles use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/dlrweb/v1/vehicles
//     in order to list one catalog page, filtered by an optional
//     keyword and paginated by the page and pageSize query params,
//  2. GET request to /api/dlrweb/v1/vehicles/:vid
//     in order to read one vehicle,
//  3. POST request to /api/dlrweb/v1/vehicles
//     in order to create a vehicle with uploaded images (admin),
//  4. PUT request to /api/dlrweb/v1/vehicles/:vid
//     in order to update a vehicle, keeping the keepImages listed
//     image paths and appending freshly uploaded images (admin),
//  5. DELETE request to /api/dlrweb/v1/vehicles/:vid
//     in order to delete a vehicle (admin).
func Register(
	public, admin *gin.RouterGroup, vehicles *vehiclesuc.UseCase,
) {
	rs := &resource{vehicles: vehicles}
	public.GET("vehicles", rs.ListVehicles)
	public.GET("vehicles/:vid", rs.GetVehicle)
	admin.POST("vehicles", rs.CreateVehicle)
	admin.PUT("vehicles/:vid", rs.UpdateVehicle)
	admin.DELETE("vehicles/:vid", rs.DeleteVehicle)
}

func (rs *resource) ListVehicles(c *gin.Context) {
	f := rs.DserListFilter(c)
	vp, err := rs.vehicles.List(c, f.Keyword, f.Page, f.PageSize)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vp)
}

func (rs *resource) GetVehicle(c *gin.Context) {
	vid, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	v, err := rs.vehicles.GetByID(c, vid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (rs *resource) CreateVehicle(c *gin.Context) {
	req := rs.DserCreateVehicleReq(c)
	if req == nil {
		return
	}
	v, err := rs.vehicles.Create(c, req.Fields, req.Uploads)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	vid, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	req := rs.DserUpdateVehicleReq(c)
	if req == nil {
		return
	}
	v, err := rs.vehicles.Update(
		c, vid, req.Patch, req.KeepImages, req.Uploads,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (rs *resource) DeleteVehicle(c *gin.Context) {
	vid, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	if err := rs.vehicles.Delete(c, vid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
