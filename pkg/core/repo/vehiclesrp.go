package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/model"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

type VehiclesQueryer interface {
	Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	ByID(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, f model.VehicleFilter) (*model.VehiclePage, error)
	Update(ctx context.Context, vehicleID uuid.UUID, p model.VehiclePatch) (*model.Vehicle, error)
	SetAvailable(ctx context.Context, vehicleID uuid.UUID, available bool) error
	Delete(ctx context.Context, vehicleID uuid.UUID) error
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
