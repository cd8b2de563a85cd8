// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package requestsuc contains the requests UseCase which supports the
// request workflow: filing a request against an available vehicle,
// listing own or all requests, and the administrative status
// transition which, on acceptance of a purchase or rental request,
// closes the referenced vehicle's availability.
package requestsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/log"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
)

// UseCase represents a requests use case. It holds a database
// connection pool, the requests repository, and the vehicles
// repository (which is consulted for availability gating and mutated
// by the acceptance side effect).
type UseCase struct {
	pool       repo.Pool
	requestsrp repo.Requests
	vehiclesrp repo.Vehicles
}

// New instantiates a requests use case.
func New(p repo.Pool, r repo.Requests, v repo.Vehicles) *UseCase {
	return &UseCase{pool: p, requestsrp: r, vehiclesrp: v}
}

// NewRequest carries the fields of a request creation. StartDate and
// EndDate are only meaningful for rental requests.
type NewRequest struct {
	VehicleID uuid.UUID
	Type      model.RequestType
	StartDate *time.Time
	EndDate   *time.Time
	Message   string
}

// Create use case files a new pending request owned by userID.
// It fails with a not-found error if the vehicle is absent and with a
// bad-request error if a purchase or rental request targets a vehicle
// which is not available. Information requests are accepted regardless
// of availability since they reserve nothing.
// No temporal-overlap check is performed against existing accepted
// rentals for the same vehicle.
func (requests *UseCase) Create(
	ctx context.Context, userID uuid.UUID, nr NewRequest,
) (r *model.Request, err error) {
	if err := nr.Type.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = requests.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vq := requests.vehiclesrp.Conn(c)
		v, err := vq.ByID(ctx, nr.VehicleID)
		if err != nil {
			return err
		}
		if nr.Type.Reserves() && !v.Available {
			return cerr.BadRequest(
				errors.New("vehicle is not available"),
			)
		}
		rq := requests.requestsrp.Conn(c)
		r, err = rq.Create(ctx, &model.Request{
			UserID:    userID,
			VehicleID: nr.VehicleID,
			Type:      nr.Type,
			StartDate: nr.StartDate,
			EndDate:   nr.EndDate,
			Status:    model.RequestStatusPending,
			Message:   nr.Message,
		})
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// ListMine use case returns the requests owned by userID with their
// vehicle summaries joined in.
func (requests *UseCase) ListMine(
	ctx context.Context, userID uuid.UUID,
) (rs []model.Request, err error) {
	err = requests.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := requests.requestsrp.Conn(c)
		rs, err = q.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		rs = nil
	}
	return
}

// ListAll use case returns all requests with their user and vehicle
// summaries joined in.
func (requests *UseCase) ListAll(
	ctx context.Context,
) (rs []model.Request, err error) {
	err = requests.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := requests.requestsrp.Conn(c)
		rs, err = q.ListAll(ctx)
		return err
	})
	if err != nil {
		rs = nil
	}
	return
}

// UpdateStatus use case transitions the requestID request to the
// newStatus state. Requests start pending and may move to accepted or
// rejected; terminal states only admit an idempotent re-application of
// themselves. When a purchase or rental request becomes accepted, the
// referenced vehicle's availability is closed as part of the same
// transaction, so a crash cannot leave an accepted request next to an
// available vehicle. A vehicle which was deleted in the meantime is
// tolerated; the request keeps its dangling reference.
func (requests *UseCase) UpdateStatus(
	ctx context.Context, requestID uuid.UUID, newStatus model.RequestStatus,
) (r *model.Request, err error) {
	if err := newStatus.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = requests.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			rq := requests.requestsrp.Tx(tx)
			old, err := rq.ByID(ctx, requestID)
			if err != nil {
				return err
			}
			if !old.Status.CanTransition(newStatus) {
				return cerr.BadRequest(fmt.Errorf(
					"cannot transition request from %s to %s",
					old.Status, newStatus,
				))
			}
			r, err = rq.UpdateStatus(ctx, requestID, newStatus)
			if err != nil {
				return err
			}
			if newStatus == model.RequestStatusAccepted &&
				old.Type.Reserves() {
				log.Info(
					ctx, "reserving vehicle for accepted request",
					slog.String("vehicle", old.VehicleID.String()),
					slog.String("request", requestID.String()),
				)
				vq := requests.vehiclesrp.Tx(tx)
				return vq.SetAvailable(ctx, old.VehicleID, false)
			}
			return nil
		})
	})
	if err != nil {
		r = nil
	}
	return
}
