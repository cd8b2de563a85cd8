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

// Request models a customer's purchase, rental, or information inquiry
// about a vehicle (not to be confused with an HTTP request). A request
// is owned by the user who filed it and is never deleted; only its
// status may change, by an administrator decision.
// The StartDate and EndDate fields are only meaningful for rental
// requests and stay nil otherwise.
// The User and Vehicle summaries are filled by the repository when a
// listing asks for them to be joined in; they are nil in all other
// code paths.
type Request struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"userId"`
	VehicleID uuid.UUID     `json:"vehicleId"`
	Type      RequestType   `json:"requestType"`
	StartDate *time.Time    `json:"startDate,omitempty"`
	EndDate   *time.Time    `json:"endDate,omitempty"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`

	User    *UserSummary    `json:"user,omitempty"`
	Vehicle *VehicleSummary `json:"vehicle,omitempty"`
}

// RequestType specifies the inquiry type enum of a request.
type RequestType int

// Valid values for the RequestType enum.
const (
	RequestTypeInvalid RequestType = iota // zero value is invalid

	RequestTypePurchase    // buy the vehicle
	RequestTypeRental      // rent the vehicle for a date range
	RequestTypeInformation // ask about the vehicle, no reservation
)

// ErrUnknownRequestType indicates that a given string may not be
// parsed as a valid/known request type.
var ErrUnknownRequestType = errors.New("unknown request type")

// RequestTypeError indicates an invalid request type, containing the
// invalid type as an integer.
type RequestTypeError int

// Error implements the error interface, returning a string
// representation of the RequestTypeError.
func (e RequestTypeError) Error() string {
	return fmt.Sprintf("invalid request type: %d", int(e))
}

// Validate returns nil if RequestType value is valid. For invalid
// values, an instance of the RequestTypeError will be returned.
func (t RequestType) Validate() error {
	switch t {
	case RequestTypePurchase, RequestTypeRental, RequestTypeInformation:
		return nil
	default:
		return RequestTypeError(t)
	}
}

// Reserves reports whether an accepted request of this type takes the
// vehicle off the market, that is, whether accepting it must clear the
// vehicle's Available flag. Information requests reserve nothing.
func (t RequestType) Reserves() bool {
	return t == RequestTypePurchase || t == RequestTypeRental
}

// String converts the RequestType enum to a string, helping to
// serialize it for transmission to web clients. Invalid type causes
// a panic.
func (t RequestType) String() string {
	switch t {
	case RequestTypePurchase:
		return "purchase"
	case RequestTypeRental:
		return "rental"
	case RequestTypeInformation:
		return "information"
	default:
		panic(RequestTypeError(t))
	}
}

// MarshalJSON serializes the RequestType as its string form.
func (t RequestType) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalText deserializes a text byte slice as a RequestType using
// the ParseRequestType function, so a quoted JSON string can be
// decoded back into this enum.
func (t *RequestType) UnmarshalText(text []byte) error {
	v, err := ParseRequestType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseRequestType parses the given string and returns a RequestType,
// helping to deserialize it when reading a REST API request.
// For invalid strings, RequestTypeInvalid and ErrUnknownRequestType
// will be returned.
func ParseRequestType(t string) (RequestType, error) {
	switch t {
	case "purchase":
		return RequestTypePurchase, nil
	case "rental":
		return RequestTypeRental, nil
	case "information":
		return RequestTypeInformation, nil
	default:
		return RequestTypeInvalid, ErrUnknownRequestType
	}
}

// RequestStatus specifies the workflow status enum of a request.
// A request starts pending and is moved by an administrator to one
// of the two terminal states.
type RequestStatus int

// Valid values for the RequestStatus enum.
const (
	RequestStatusInvalid RequestStatus = iota // zero value is invalid

	RequestStatusPending  // initial state, awaiting a decision
	RequestStatusAccepted // terminal
	RequestStatusRejected // terminal
)

// ErrUnknownRequestStatus indicates that a given string may not be
// parsed as a valid/known request status.
var ErrUnknownRequestStatus = errors.New("unknown request status")

// RequestStatusError indicates an invalid request status, containing
// the invalid status as an integer.
type RequestStatusError int

// Error implements the error interface, returning a string
// representation of the RequestStatusError.
func (e RequestStatusError) Error() string {
	return fmt.Sprintf("invalid request status: %d", int(e))
}

// Validate returns nil if RequestStatus value is valid. For invalid
// values, an instance of the RequestStatusError will be returned.
func (s RequestStatus) Validate() error {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return nil
	default:
		return RequestStatusError(s)
	}
}

// CanTransition reports whether this status may be changed to the
// given target status. The terminal states are closed, except that
// re-applying the current state is allowed (and its side effects must
// be idempotent), so an administrator may safely repeat a decision.
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	if s == to {
		return true
	}
	return s == RequestStatusPending &&
		(to == RequestStatusAccepted || to == RequestStatusRejected)
}

// String converts the RequestStatus enum to a string, helping to
// serialize it for transmission to web clients. Invalid status causes
// a panic.
func (s RequestStatus) String() string {
	switch s {
	case RequestStatusPending:
		return "pending"
	case RequestStatusAccepted:
		return "accepted"
	case RequestStatusRejected:
		return "rejected"
	default:
		panic(RequestStatusError(s))
	}
}

// MarshalJSON serializes the RequestStatus as its string form.
func (s RequestStatus) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalText deserializes a text byte slice as a RequestStatus
// using the ParseRequestStatus function, so a quoted JSON string can
// be decoded back into this enum.
func (s *RequestStatus) UnmarshalText(text []byte) error {
	v, err := ParseRequestStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseRequestStatus parses the given string and returns a
// RequestStatus, helping to deserialize it when reading a REST API
// request. For invalid strings, RequestStatusInvalid and
// ErrUnknownRequestStatus will be returned.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch s {
	case "pending":
		return RequestStatusPending, nil
	case "accepted":
		return RequestStatusAccepted, nil
	case "rejected":
		return RequestStatusRejected, nil
	default:
		return RequestStatusInvalid, ErrUnknownRequestStatus
	}
}
