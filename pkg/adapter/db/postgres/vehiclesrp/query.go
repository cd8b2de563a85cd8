package vehiclesrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gVehicle struct {
	VID            uuid.UUID `gorm:"primaryKey;type:uuid;column:vid"`
	Make           string
	Model          string
	Year           int
	FuelType       string
	Transmission   string
	Drive          string
	Class          string
	Cylinders      int
	Displacement   float64
	CityMPG        int `gorm:"column:city_mpg"`
	HighwayMPG     int `gorm:"column:highway_mpg"`
	CombinationMPG int `gorm:"column:combination_mpg"`
	Price          float64
	Status         string
	Available      bool
	Images         postgres.JSONStrings
	CreatedAt      time.Time
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

// toModel converts the row to a model.Vehicle. The status column only
// ever receives values which were written through the enum String
// method, so a parse failure indicates data corruption and is reported
// as an error instead of a panic.
func (gv *gVehicle) toModel() (*model.Vehicle, error) {
	status, err := model.ParseVehicleStatus(gv.Status)
	if err != nil {
		return nil, fmt.Errorf("status column %q: %w", gv.Status, err)
	}
	return &model.Vehicle{
		ID:             gv.VID,
		Make:           gv.Make,
		Model:          gv.Model,
		Year:           gv.Year,
		FuelType:       gv.FuelType,
		Transmission:   gv.Transmission,
		Drive:          gv.Drive,
		Class:          gv.Class,
		Cylinders:      gv.Cylinders,
		Displacement:   gv.Displacement,
		CityMPG:        gv.CityMPG,
		HighwayMPG:     gv.HighwayMPG,
		CombinationMPG: gv.CombinationMPG,
		Price:          gv.Price,
		Status:         status,
		Available:      gv.Available,
		Images:         []string(gv.Images),
		CreatedAt:      gv.CreatedAt,
	}, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, v *model.Vehicle) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	gv := &gVehicle{
		VID:            uuid.New(),
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		FuelType:       v.FuelType,
		Transmission:   v.Transmission,
		Drive:          v.Drive,
		Class:          v.Class,
		Cylinders:      v.Cylinders,
		Displacement:   v.Displacement,
		CityMPG:        v.CityMPG,
		HighwayMPG:     v.HighwayMPG,
		CombinationMPG: v.CombinationMPG,
		Price:          v.Price,
		Status:         v.Status.String(),
		Available:      v.Available,
		Images:         postgres.JSONStrings(v.Images),
		CreatedAt:      time.Now(),
	}
	if err := gdb.Create(gv).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.toModel()
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	gv := &gVehicle{}
	err := gdb.Where("vid=?", vehicleID).Take(gv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(errors.New("vehicle not found"))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.toModel()
}

func List[Q postgres.Queryer](ctx context.Context, q Q, f model.VehicleFilter) (*model.VehiclePage, error) {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gVehicle{})
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		tt = tt.Where(
			"make ILIKE ? OR model ILIKE ? OR class ILIKE ?",
			kw, kw, kw,
		)
	}
	var count int64
	if err := tt.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count query: %w", err)
	}
	var gvs []gVehicle
	err := tt.Order("created_at DESC").
		Limit(f.PageSize).
		Offset(f.PageSize * (f.Page - 1)).
		Find(&gvs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vs := make([]model.Vehicle, 0, len(gvs))
	for i := range gvs {
		v, err := gvs[i].toModel()
		if err != nil {
			return nil, err
		}
		vs = append(vs, *v)
	}
	pages := int((count + int64(f.PageSize) - 1) / int64(f.PageSize))
	return &model.VehiclePage{
		Vehicles: vs,
		Page:     f.Page,
		Pages:    pages,
		Count:    count,
	}, nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID, p model.VehiclePatch) (*model.Vehicle, error) {
	vals := make(map[string]any, 16)
	if p.Make != nil {
		vals["make"] = *p.Make
	}
	if p.Model != nil {
		vals["model"] = *p.Model
	}
	if p.Year != nil {
		vals["year"] = *p.Year
	}
	if p.FuelType != nil {
		vals["fuel_type"] = *p.FuelType
	}
	if p.Transmission != nil {
		vals["transmission"] = *p.Transmission
	}
	if p.Drive != nil {
		vals["drive"] = *p.Drive
	}
	if p.Class != nil {
		vals["class"] = *p.Class
	}
	if p.Cylinders != nil {
		vals["cylinders"] = *p.Cylinders
	}
	if p.Displacement != nil {
		vals["displacement"] = *p.Displacement
	}
	if p.CityMPG != nil {
		vals["city_mpg"] = *p.CityMPG
	}
	if p.HighwayMPG != nil {
		vals["highway_mpg"] = *p.HighwayMPG
	}
	if p.CombinationMPG != nil {
		vals["combination_mpg"] = *p.CombinationMPG
	}
	if p.Price != nil {
		vals["price"] = *p.Price
	}
	if p.Status != nil {
		vals["status"] = p.Status.String()
	}
	if p.Available != nil {
		vals["available"] = *p.Available
	}
	if p.Images != nil {
		vals["images"] = postgres.JSONStrings(p.Images)
	}
	if len(vals) == 0 {
		return ByID(ctx, q, vehicleID)
	}
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb.Model(&gv).Clauses(clause.Returning{}).Where(
		"vid=?", vehicleID,
	).Updates(vals)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gv); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gv[0].toModel()
}

// SetAvailable flips the availability flag of the vehicleID vehicle.
// A missing vehicle is tolerated silently: the caller applies the
// acceptance side effect to a possibly dangling reference.
func SetAvailable[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID, available bool) error {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gVehicle{}).Where("vid=?", vehicleID).
		Update("available", available)
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, vehicleID uuid.UUID) error {
	gdb := q.GORM(ctx)
	tt := gdb.Where("vid=?", vehicleID).Delete(&gVehicle{})
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if tt.RowsAffected == 0 {
		return cerr.NotFound(errors.New("vehicle not found"))
	}
	return nil
}
