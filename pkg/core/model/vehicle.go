// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vehicle models a catalog entry which may be persisted in a database.
// The Images field keeps an ordered list of storage-relative paths as
// reported by the image store adapter; files themselves live outside
// the database. The Available flag gates whether new purchase/rental
// requests may be filed against this vehicle. It is true unless a
// purchase or rental request has been accepted, and that invariant is
// only enforced at the moment of the request status transition (see
// the requestsuc package).
type Vehicle struct {
	ID             uuid.UUID     `json:"id"`
	Make           string        `json:"make"`
	Model          string        `json:"model"`
	Year           int           `json:"year"`
	FuelType       string        `json:"fuel_type"`
	Transmission   string        `json:"transmission"`
	Drive          string        `json:"drive"`
	Class          string        `json:"class"`
	Cylinders      int           `json:"cylinders"`
	Displacement   float64       `json:"displacement"`
	CityMPG        int           `json:"city_mpg"`
	HighwayMPG     int           `json:"highway_mpg"`
	CombinationMPG int           `json:"combination_mpg"`
	Price          float64       `json:"price"`
	Status         VehicleStatus `json:"status"`
	Available      bool          `json:"available"`
	Images         []string      `json:"images"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// VehiclePatch describes a partial vehicle update. Pointer fields act
// as explicit present/absent markers, so zero values (e.g., a zero
// price) remain expressible. The Images field, when non-nil, replaces
// the whole list; the keep/add set union is computed by the use case
// before the patch reaches a repository.
type VehiclePatch struct {
	Make           *string
	Model          *string
	Year           *int
	FuelType       *string
	Transmission   *string
	Drive          *string
	Class          *string
	Cylinders      *int
	Displacement   *float64
	CityMPG        *int
	HighwayMPG     *int
	CombinationMPG *int
	Price          *float64
	Status         *VehicleStatus
	Available      *bool
	Images         []string
}

// VehicleFilter selects and paginates vehicles for a listing.
// An empty Keyword matches all vehicles; otherwise it is matched
// case-insensitively against the make, model, and class fields
// (logical OR). Page numbers start at 1.
type VehicleFilter struct {
	Keyword  string
	Page     int
	PageSize int
}

// VehiclePage is one page of a vehicles listing, sorted by creation
// time descending, together with the pagination bookkeeping fields.
// Pages equals ceil(Count/PageSize) for the requested page size.
type VehiclePage struct {
	Vehicles []Vehicle `json:"vehicles"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Count    int64     `json:"count"`
}

// VehicleSummary carries the vehicle fields which are joined into
// request listings (see the Request model).
type VehicleSummary struct {
	ID     uuid.UUID     `json:"id"`
	Make   string        `json:"make"`
	Model  string        `json:"model"`
	Year   int           `json:"year"`
	Images []string      `json:"images"`
	Status VehicleStatus `json:"status"`
	Price  float64       `json:"price"`
}

// VehicleStatus specifies the sales status enum of a vehicle.
// Although this enum is numeric, it is (de)serialized as a string for
// readability in the adapter layer.
type VehicleStatus int

// Valid values for the VehicleStatus enum.
const (
	VehicleStatusInvalid VehicleStatus = iota // zero value is invalid

	VehicleStatusForSale   // listed for purchase
	VehicleStatusForRent   // listed for rental
	VehicleStatusToAcquire // not in stock yet, shown for information
)

// ErrUnknownVehicleStatus indicates that a given string may not be
// parsed as a valid/known vehicle status.
var ErrUnknownVehicleStatus = errors.New("unknown vehicle status")

// VehicleStatusError indicates an invalid vehicle status. This error
// contains the invalid status as an integer.
type VehicleStatusError int

// Error implements the error interface, returning a string
// representation of the VehicleStatusError.
func (e VehicleStatusError) Error() string {
	return fmt.Sprintf("invalid vehicle status: %d", int(e))
}

// Validate returns nil if VehicleStatus value is valid. For invalid
// values, an instance of the VehicleStatusError will be returned.
func (s VehicleStatus) Validate() error {
	switch s {
	case VehicleStatusForSale, VehicleStatusForRent, VehicleStatusToAcquire:
		return nil
	default:
		return VehicleStatusError(s)
	}
}

// String converts the VehicleStatus enum to a string, helping to
// serialize it for transmission to web clients. Invalid status causes
// a panic.
func (s VehicleStatus) String() string {
	switch s {
	case VehicleStatusForSale:
		return "for-sale"
	case VehicleStatusForRent:
		return "for-rent"
	case VehicleStatusToAcquire:
		return "to-acquire"
	default:
		panic(VehicleStatusError(s))
	}
}

// MarshalJSON serializes the VehicleStatus as its string form.
func (s VehicleStatus) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalText deserializes a text byte slice as a VehicleStatus
// using the ParseVehicleStatus function, so a quoted JSON string can
// be decoded back into this enum.
func (s *VehicleStatus) UnmarshalText(text []byte) error {
	v, err := ParseVehicleStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseVehicleStatus parses the given string and returns a
// VehicleStatus, helping to deserialize it when reading a REST API
// request. For invalid strings, VehicleStatusInvalid and
// ErrUnknownVehicleStatus will be returned.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch s {
	case "for-sale":
		return VehicleStatusForSale, nil
	case "for-rent":
		return VehicleStatusForRent, nil
	case "to-acquire":
		return VehicleStatusToAcquire, nil
	default:
		return VehicleStatusInvalid, ErrUnknownVehicleStatus
	}
}
