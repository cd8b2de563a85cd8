// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTypeRoundTrip(t *testing.T) {
	for _, name := range []string{"purchase", "rental", "information"} {
		rt, err := model.ParseRequestType(name)
		require.NoError(t, err, "failed to parse %q", name)
		require.NoError(t, rt.Validate())
		assert.Equal(t, name, rt.String())
	}

	_, err := model.ParseRequestType("lease")
	assert.ErrorIs(t, err, model.ErrUnknownRequestType)
}

func TestRequestTypeReserves(t *testing.T) {
	assert.True(t, model.RequestTypePurchase.Reserves())
	assert.True(t, model.RequestTypeRental.Reserves())
	assert.False(t, model.RequestTypeInformation.Reserves())
}

func TestRequestStatusRoundTrip(t *testing.T) {
	for _, name := range []string{"pending", "accepted", "rejected"} {
		rs, err := model.ParseRequestStatus(name)
		require.NoError(t, err, "failed to parse %q", name)
		require.NoError(t, rs.Validate())
		assert.Equal(t, name, rs.String())
	}

	_, err := model.ParseRequestStatus("cancelled")
	assert.ErrorIs(t, err, model.ErrUnknownRequestStatus)
}

func TestRequestStatusCanTransition(t *testing.T) {
	const (
		pending  = model.RequestStatusPending
		accepted = model.RequestStatusAccepted
		rejected = model.RequestStatusRejected
	)
	for _, tc := range []struct {
		from, to model.RequestStatus
		ok       bool
	}{
		{pending, accepted, true},
		{pending, rejected, true},
		{pending, pending, true},
		{accepted, accepted, true}, // repeating a decision is allowed
		{rejected, rejected, true},
		{accepted, rejected, false},
		{rejected, accepted, false},
		{accepted, pending, false},
		{rejected, pending, false},
	} {
		assert.Equal(
			t, tc.ok, tc.from.CanTransition(tc.to),
			"%v -> %v", tc.from, tc.to,
		)
	}
}
