// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package requestsuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/internal/test/memrepo"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
	"github.com/momeni/dealer-web/pkg/core/usecase/requestsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc       *requestsuc.UseCase
	vehicles repo.Vehicles
}

func newFixture() *fixture {
	_, pool, _, vrp, rrp := memrepo.New()
	return &fixture{
		uc:       requestsuc.New(pool, rrp, vrp),
		vehicles: vrp,
	}
}

func (f *fixture) createVehicle(
	t *testing.T, available bool,
) *model.Vehicle {
	v, err := f.vehicles.Conn(nil).Create(
		context.Background(), &model.Vehicle{
			Make:      "Honda",
			Model:     "Civic",
			Year:      2021,
			Class:     "compact car",
			Price:     23000,
			Status:    model.VehicleStatusForSale,
			Available: available,
		},
	)
	require.NoError(t, err, "failed to create test vehicle")
	return v
}

func (f *fixture) vehicleByID(
	t *testing.T, vid uuid.UUID,
) *model.Vehicle {
	v, err := f.vehicles.Conn(nil).ByID(context.Background(), vid)
	require.NoError(t, err, "failed to read back test vehicle")
	return v
}

func assertStatusCode(t *testing.T, err error, code int) {
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce, "expected a status coded error")
	assert.Equal(t, code, ce.HTTPStatusCode, "wrong status code")
}

func TestCreateAgainstUnavailableVehicle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.createVehicle(t, false)
	userID := uuid.New()

	for _, rt := range []model.RequestType{
		model.RequestTypePurchase, model.RequestTypeRental,
	} {
		_, err := f.uc.Create(ctx, userID, requestsuc.NewRequest{
			VehicleID: v.ID,
			Type:      rt,
		})
		assertStatusCode(t, err, http.StatusBadRequest)
	}

	r, err := f.uc.Create(ctx, userID, requestsuc.NewRequest{
		VehicleID: v.ID,
		Type:      model.RequestTypeInformation,
		Message:   "is a newer model arriving?",
	})
	require.NoError(t, err, "information requests reserve nothing")
	assert.Equal(t, model.RequestStatusPending, r.Status)
	assert.Equal(t, userID, r.UserID)
}

func TestCreateAgainstMissingVehicle(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(
		context.Background(), uuid.New(), requestsuc.NewRequest{
			VehicleID: uuid.New(),
			Type:      model.RequestTypePurchase,
		},
	)
	assert.True(t, cerr.IsNotFound(err), "expected a not-found error")
}

func TestCreateWithInvalidType(t *testing.T) {
	f := newFixture()
	v := f.createVehicle(t, true)
	_, err := f.uc.Create(
		context.Background(), uuid.New(), requestsuc.NewRequest{
			VehicleID: v.ID,
		},
	)
	assertStatusCode(t, err, http.StatusBadRequest)
}

func TestAcceptReservingRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, rt := range []model.RequestType{
		model.RequestTypePurchase, model.RequestTypeRental,
	} {
		v := f.createVehicle(t, true)
		r, err := f.uc.Create(ctx, uuid.New(), requestsuc.NewRequest{
			VehicleID: v.ID,
			Type:      rt,
		})
		require.NoError(t, err)

		r, err = f.uc.UpdateStatus(
			ctx, r.ID, model.RequestStatusAccepted,
		)
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusAccepted, r.Status)
		assert.False(
			t, f.vehicleByID(t, v.ID).Available,
			"accepting a %s request must close availability", rt,
		)

		// re-applying the same terminal state is idempotent
		r, err = f.uc.UpdateStatus(
			ctx, r.ID, model.RequestStatusAccepted,
		)
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusAccepted, r.Status)
		assert.False(t, f.vehicleByID(t, v.ID).Available)
	}
}

func TestAcceptInformationRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.createVehicle(t, true)
	r, err := f.uc.Create(ctx, uuid.New(), requestsuc.NewRequest{
		VehicleID: v.ID,
		Type:      model.RequestTypeInformation,
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, r.ID, model.RequestStatusAccepted)
	require.NoError(t, err)
	assert.True(
		t, f.vehicleByID(t, v.ID).Available,
		"information requests must not touch availability",
	)
}

func TestRejectRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.createVehicle(t, true)
	r, err := f.uc.Create(ctx, uuid.New(), requestsuc.NewRequest{
		VehicleID: v.ID,
		Type:      model.RequestTypePurchase,
	})
	require.NoError(t, err)

	r, err = f.uc.UpdateStatus(ctx, r.ID, model.RequestStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, r.Status)
	assert.True(
		t, f.vehicleByID(t, v.ID).Available,
		"rejections must not touch availability",
	)

	// a settled request may not change its decision
	_, err = f.uc.UpdateStatus(ctx, r.ID, model.RequestStatusAccepted)
	assertStatusCode(t, err, http.StatusBadRequest)
	assert.True(t, f.vehicleByID(t, v.ID).Available)
}

func TestUpdateStatusOfMissingRequest(t *testing.T) {
	f := newFixture()
	_, err := f.uc.UpdateStatus(
		context.Background(), uuid.New(), model.RequestStatusAccepted,
	)
	assert.True(t, cerr.IsNotFound(err), "expected a not-found error")
}

func TestAcceptWithDanglingVehicleReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.createVehicle(t, true)
	r, err := f.uc.Create(ctx, uuid.New(), requestsuc.NewRequest{
		VehicleID: v.ID,
		Type:      model.RequestTypePurchase,
	})
	require.NoError(t, err)
	err = f.vehicles.Conn(nil).Delete(ctx, v.ID)
	require.NoError(t, err)

	r, err = f.uc.UpdateStatus(ctx, r.ID, model.RequestStatusAccepted)
	require.NoError(
		t, err, "a deleted vehicle must not block the decision",
	)
	assert.Equal(t, model.RequestStatusAccepted, r.Status)
}

func TestListMineAndAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	v := f.createVehicle(t, true)
	alice, bob := uuid.New(), uuid.New()
	for _, uid := range []uuid.UUID{alice, bob, alice} {
		_, err := f.uc.Create(ctx, uid, requestsuc.NewRequest{
			VehicleID: v.ID,
			Type:      model.RequestTypeInformation,
		})
		require.NoError(t, err)
	}

	mine, err := f.uc.ListMine(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, alice, r.UserID)
		if assert.NotNil(t, r.Vehicle, "vehicle summary is joined") {
			assert.Equal(t, "Civic", r.Vehicle.Model)
		}
	}

	all, err := f.uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStatusCodedErrorsUnwrap(t *testing.T) {
	f := newFixture()
	_, err := f.uc.UpdateStatus(
		context.Background(), uuid.New(), model.RequestStatusInvalid,
	)
	var ce *cerr.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
}
