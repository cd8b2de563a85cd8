// Package requestsrp provides the PostgreSQL implementation of the
// requests repository, mapping the model.Request entity to the
// requests table. Listings LEFT JOIN the users and vehicles tables in
// order to attach the summaries which clients render next to each
// request.
package requestsrp

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

func (requests *Repo) Conn(c repo.Conn) repo.RequestsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, r *model.Request) (*model.Request, error) {
	return Create(ctx, cq.Conn, r)
}

func (cq connQueryer) ByID(ctx context.Context, requestID uuid.UUID) (*model.Request, error) {
	return ByID(ctx, cq.Conn, requestID)
}

func (cq connQueryer) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Request, error) {
	return ListByUser(ctx, cq.Conn, userID)
}

func (cq connQueryer) ListAll(ctx context.Context) ([]model.Request, error) {
	return ListAll(ctx, cq.Conn)
}

func (cq connQueryer) UpdateStatus(ctx context.Context, requestID uuid.UUID, s model.RequestStatus) (*model.Request, error) {
	return UpdateStatus(ctx, cq.Conn, requestID, s)
}

type txQueryer struct {
	*postgres.Tx
}

func (requests *Repo) Tx(tx repo.Tx) repo.RequestsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, r *model.Request) (*model.Request, error) {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) ByID(ctx context.Context, requestID uuid.UUID) (*model.Request, error) {
	return ByID(ctx, tq.Tx, requestID)
}

func (tq txQueryer) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Request, error) {
	return ListByUser(ctx, tq.Tx, userID)
}

func (tq txQueryer) ListAll(ctx context.Context) ([]model.Request, error) {
	return ListAll(ctx, tq.Tx)
}

func (tq txQueryer) UpdateStatus(ctx context.Context, requestID uuid.UUID, s model.RequestStatus) (*model.Request, error) {
	return UpdateStatus(ctx, tq.Tx, requestID, s)
}
