// Package vehiclesrp provides the PostgreSQL implementation of the
// vehicles repository, mapping the model.Vehicle entity to the
// vehicles table with its images list kept in a JSONB column.
package vehiclesrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) ByID(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return ByID(ctx, cq.Conn, vehicleID)
}

func (cq connQueryer) List(ctx context.Context, f model.VehicleFilter) (*model.VehiclePage, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) Update(ctx context.Context, vehicleID uuid.UUID, p model.VehiclePatch) (*model.Vehicle, error) {
	return Update(ctx, cq.Conn, vehicleID, p)
}

func (cq connQueryer) SetAvailable(ctx context.Context, vehicleID uuid.UUID, available bool) error {
	return SetAvailable(ctx, cq.Conn, vehicleID, available)
}

func (cq connQueryer) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	return Delete(ctx, cq.Conn, vehicleID)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) ByID(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return ByID(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) List(ctx context.Context, f model.VehicleFilter) (*model.VehiclePage, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) Update(ctx context.Context, vehicleID uuid.UUID, p model.VehiclePatch) (*model.Vehicle, error) {
	return Update(ctx, tq.Tx, vehicleID, p)
}

func (tq txQueryer) SetAvailable(ctx context.Context, vehicleID uuid.UUID, available bool) error {
	return SetAvailable(ctx, tq.Tx, vehicleID, available)
}

func (tq txQueryer) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	return Delete(ctx, tq.Tx, vehicleID)
}
