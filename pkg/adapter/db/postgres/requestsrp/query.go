package requestsrp

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

type gRequest struct {
	RID         uuid.UUID `gorm:"primaryKey;type:uuid;column:rid"`
	UserID      uuid.UUID `gorm:"type:uuid"`
	VehicleID   uuid.UUID `gorm:"type:uuid"`
	RequestType string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
	Message     string
	CreatedAt   time.Time
}

func (gr *gRequest) TableName() string {
	return "requests"
}

func (gr *gRequest) toModel() (*model.Request, error) {
	rtype, err := model.ParseRequestType(gr.RequestType)
	if err != nil {
		return nil, fmt.Errorf(
			"request_type column %q: %w", gr.RequestType, err,
		)
	}
	status, err := model.ParseRequestStatus(gr.Status)
	if err != nil {
		return nil, fmt.Errorf("status column %q: %w", gr.Status, err)
	}
	return &model.Request{
		ID:        gr.RID,
		UserID:    gr.UserID,
		VehicleID: gr.VehicleID,
		Type:      rtype,
		StartDate: gr.StartDate,
		EndDate:   gr.EndDate,
		Status:    status,
		Message:   gr.Message,
		CreatedAt: gr.CreatedAt,
	}, nil
}

// gRequestRow extends gRequest with the LEFT JOINed user and vehicle
// summary columns. Join columns use pointers since a referenced row
// may have been deleted (references are not cleaned up).
type gRequestRow struct {
	gRequest

	UserName      *string
	UserEmail     *string
	VehicleMake   *string
	VehicleModel  *string
	VehicleYear   *int
	VehicleImages postgres.JSONStrings
	VehicleStatus *string
	VehiclePrice  *float64
}

func (grr *gRequestRow) toModel(withUser bool) (*model.Request, error) {
	r, err := grr.gRequest.toModel()
	if err != nil {
		return nil, err
	}
	if withUser && grr.UserName != nil {
		r.User = &model.UserSummary{
			ID:    grr.UserID,
			Name:  *grr.UserName,
			Email: *grr.UserEmail,
		}
	}
	if grr.VehicleMake != nil {
		status, err := model.ParseVehicleStatus(*grr.VehicleStatus)
		if err != nil {
			return nil, fmt.Errorf(
				"vehicle status column %q: %w", *grr.VehicleStatus, err,
			)
		}
		r.Vehicle = &model.VehicleSummary{
			ID:     grr.VehicleID,
			Make:   *grr.VehicleMake,
			Model:  *grr.VehicleModel,
			Year:   *grr.VehicleYear,
			Images: []string(grr.VehicleImages),
			Status: status,
			Price:  *grr.VehiclePrice,
		}
	}
	return r, nil
}

const joinedColumns = `requests.*,
users.name AS user_name, users.email AS user_email,
vehicles.make AS vehicle_make, vehicles.model AS vehicle_model,
vehicles.year AS vehicle_year, vehicles.images AS vehicle_images,
vehicles.status AS vehicle_status, vehicles.price AS vehicle_price`

func Create[Q postgres.Queryer](ctx context.Context, q Q, r *model.Request) (*model.Request, error) {
	gdb := q.GORM(ctx)
	gr := &gRequest{
		RID:         uuid.New(),
		UserID:      r.UserID,
		VehicleID:   r.VehicleID,
		RequestType: r.Type.String(),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      r.Status.String(),
		Message:     r.Message,
		CreatedAt:   time.Now(),
	}
	if err := gdb.Create(gr).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.toModel()
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, requestID uuid.UUID) (*model.Request, error) {
	gdb := q.GORM(ctx)
	gr := &gRequest{}
	err := gdb.Where("rid=?", requestID).Take(gr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(errors.New("request not found"))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gr.toModel()
}

func ListByUser[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) ([]model.Request, error) {
	return list(ctx, q, &userID)
}

func ListAll[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Request, error) {
	return list(ctx, q, nil)
}

func list[Q postgres.Queryer](ctx context.Context, q Q, userID *uuid.UUID) ([]model.Request, error) {
	gdb := q.GORM(ctx)
	tt := gdb.Table("requests").Select(joinedColumns).
		Joins("LEFT JOIN users ON users.uid = requests.user_id").
		Joins("LEFT JOIN vehicles ON vehicles.vid = requests.vehicle_id")
	if userID != nil {
		tt = tt.Where("requests.user_id = ?", *userID)
	}
	var grrs []gRequestRow
	if err := tt.Order("requests.created_at DESC").Scan(&grrs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	// The owner's own listing does not repeat the owner summary.
	withUser := userID == nil
	rs := make([]model.Request, 0, len(grrs))
	for i := range grrs {
		r, err := grrs[i].toModel(withUser)
		if err != nil {
			return nil, err
		}
		rs = append(rs, *r)
	}
	return rs, nil
}

func UpdateStatus[Q postgres.Queryer](ctx context.Context, q Q, requestID uuid.UUID, s model.RequestStatus) (*model.Request, error) {
	gdb := q.GORM(ctx)
	var grs []gRequest
	gdb.Model(&grs).Clauses(clause.Returning{}).Where(
		"rid=?", requestID,
	).Updates(map[string]any{"status": s.String()})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(grs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return grs[0].toModel()
}
