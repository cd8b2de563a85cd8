// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicles UseCase which supports the
// catalog related use cases: listing with keyword filtering and
// pagination, fetching, and the administrative create/update/delete
// operations including the image upload bookkeeping.
package vehiclesuc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/imgstore"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
)

// UseCase represents a vehicles use case. It holds a database
// connection pool, the vehicles repository instance (to be guided with
// the DB pool), the image store collaborator, and the vehicles use
// case specific settings.
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles
	images     imgstore.Store

	defaultPageSize int
	maxImages       int
	maxImageSize    int64
}

// New instantiates a vehicles use case, with optional parameters
// passed as a series of functional options.
func New(
	p repo.Pool, v repo.Vehicles, s imgstore.Store, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, vehiclesrp: v, images: s}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultPageSize == 0 {
		uc.defaultPageSize = 10
	}
	if uc.maxImages == 0 {
		uc.maxImages = 10
	}
	if uc.maxImageSize == 0 {
		uc.maxImageSize = 5 << 20
	}
	return uc, nil
}

// List use case returns one page of the catalog. The keyword, if
// non-empty, restricts results to vehicles whose make, model, or class
// contains it case-insensitively. Non-positive page and pageSize
// values fall back to 1 and the configured default page size, so
// absent or non-numeric query parameters behave alike.
func (vehicles *UseCase) List(
	ctx context.Context, keyword string, page, pageSize int,
) (vp *model.VehiclePage, err error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = vehicles.defaultPageSize
	}
	f := model.VehicleFilter{
		Keyword:  keyword,
		Page:     page,
		PageSize: pageSize,
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		vp, err = q.List(ctx, f)
		return err
	})
	if err != nil {
		vp = nil
	}
	return
}

// GetByID use case returns the vehicleID vehicle, or a not-found
// error.
func (vehicles *UseCase) GetByID(
	ctx context.Context, vehicleID uuid.UUID,
) (v *model.Vehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		v, err = q.ByID(ctx, vehicleID)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// NewVehicle carries the fields of a vehicle creation. Available uses
// a pointer so an absent value can default to true while an explicit
// false is honored.
type NewVehicle struct {
	Make           string
	Model          string
	Year           int
	FuelType       string
	Transmission   string
	Drive          string
	Class          string
	Cylinders      int
	Displacement   float64
	CityMPG        int
	HighwayMPG     int
	CombinationMPG int
	Price          float64
	Status         model.VehicleStatus
	Available      *bool
}

// Create use case stores the uploaded images and persists a new
// vehicle record referencing them. Upload constraints (count, size,
// and type) are validated before any file is stored.
func (vehicles *UseCase) Create(
	ctx context.Context, nv NewVehicle, uploads []imgstore.Upload,
) (v *model.Vehicle, err error) {
	if err := nv.Status.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	paths, err := vehicles.storeImages(ctx, uploads)
	if err != nil {
		return nil, err
	}
	available := true
	if nv.Available != nil {
		available = *nv.Available
	}
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		v, err = q.Create(ctx, &model.Vehicle{
			Make:           nv.Make,
			Model:          nv.Model,
			Year:           nv.Year,
			FuelType:       nv.FuelType,
			Transmission:   nv.Transmission,
			Drive:          nv.Drive,
			Class:          nv.Class,
			Cylinders:      nv.Cylinders,
			Displacement:   nv.Displacement,
			CityMPG:        nv.CityMPG,
			HighwayMPG:     nv.HighwayMPG,
			CombinationMPG: nv.CombinationMPG,
			Price:          nv.Price,
			Status:         nv.Status,
			Available:      available,
			Images:         paths,
		})
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// Update use case applies the provided fields of p to the vehicleID
// vehicle and replaces its image list with keepImages followed by the
// freshly stored uploads. Images which drop out of the list are not
// garbage-collected from the store.
func (vehicles *UseCase) Update(
	ctx context.Context, vehicleID uuid.UUID, p model.VehiclePatch,
	keepImages []string, uploads []imgstore.Upload,
) (v *model.Vehicle, err error) {
	if p.Status != nil {
		if err := p.Status.Validate(); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	paths, err := vehicles.storeImages(ctx, uploads)
	if err != nil {
		return nil, err
	}
	images := make([]string, 0, len(keepImages)+len(paths))
	images = append(images, keepImages...)
	images = append(images, paths...)
	p.Images = images
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		v, err = q.Update(ctx, vehicleID, p)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// Delete use case hard-deletes the vehicleID vehicle document.
// Its image files and referencing requests are left in place.
func (vehicles *UseCase) Delete(
	ctx context.Context, vehicleID uuid.UUID,
) error {
	return vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehicles.vehiclesrp.Conn(c)
		return q.Delete(ctx, vehicleID)
	})
}

// imageExts and imageTypes list the accepted upload file extensions
// and declared content types. Both checks must pass.
var (
	imageExts = map[string]bool{
		".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	}
	imageTypes = map[string]bool{
		"image/jpeg": true, "image/jpg": true,
		"image/png": true, "image/gif": true,
	}
)

// storeImages validates the uploads against the configured limits and
// stores them, returning their storage-relative paths in order.
func (vehicles *UseCase) storeImages(
	ctx context.Context, uploads []imgstore.Upload,
) ([]string, error) {
	if len(uploads) > vehicles.maxImages {
		return nil, cerr.BadRequest(fmt.Errorf(
			"too many images: %d exceeds the %d images limit",
			len(uploads), vehicles.maxImages,
		))
	}
	for _, up := range uploads {
		if up.Size > vehicles.maxImageSize {
			return nil, cerr.BadRequest(fmt.Errorf(
				"image %q exceeds the %d bytes limit",
				up.Name, vehicles.maxImageSize,
			))
		}
		ext := strings.ToLower(filepath.Ext(up.Name))
		if !imageExts[ext] || !imageTypes[up.ContentType] {
			return nil, cerr.BadRequest(
				errors.New("images only (jpeg, jpg, png, gif)"),
			)
		}
	}
	paths := make([]string, 0, len(uploads))
	for _, up := range uploads {
		p, err := vehicles.images.Save(ctx, up)
		if err != nil {
			return nil, fmt.Errorf("storing image %q: %w", up.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
