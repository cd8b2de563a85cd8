package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/model"
)

type RequestsConnQueryer interface {
	RequestsQueryer
}

type RequestsTxQueryer interface {
	RequestsQueryer
}

type RequestsQueryer interface {
	Create(ctx context.Context, r *model.Request) (*model.Request, error)
	ByID(ctx context.Context, requestID uuid.UUID) (*model.Request, error)
	// ListByUser returns the requests which are owned by userID with
	// their vehicle summaries joined in.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Request, error)
	// ListAll returns all requests with both the user and vehicle
	// summaries joined in.
	ListAll(ctx context.Context) ([]model.Request, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, s model.RequestStatus) (*model.Request, error)
}

type Requests interface {
	Conn(Conn) RequestsConnQueryer
	Tx(Tx) RequestsTxQueryer
}
