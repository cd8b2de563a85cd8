// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It provides in-memory implementations of the repo.Pool and the
// users, vehicles, and requests repositories, so the use case layer
// logic (availability gating, status transitions, pagination
// arithmetic) can be tested without a DBMS server. The fakes mirror
// the error taxonomy of the PostgreSQL repositories: missing rows are
// reported as not-found and duplicate emails as conflict errors.
package memrepo

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
)

// DB is an in-memory stand-in for the database. All repositories
// which are created by the New function share one DB instance, so a
// use case exercises the same data set through all of them.
type DB struct {
	mu sync.Mutex

	users    map[uuid.UUID]model.User
	vehicles map[uuid.UUID]model.Vehicle
	requests map[uuid.UUID]model.Request

	seq int64 // drives distinct creation timestamps
}

// New creates a fresh in-memory database with its connection pool and
// repository instances.
func New() (*DB, repo.Pool, *UsersRepo, *VehiclesRepo, *RequestsRepo) {
	db := &DB{
		users:    make(map[uuid.UUID]model.User),
		vehicles: make(map[uuid.UUID]model.Vehicle),
		requests: make(map[uuid.UUID]model.Request),
	}
	return db, &Pool{db: db},
		&UsersRepo{db: db}, &VehiclesRepo{db: db}, &RequestsRepo{db: db}
}

// now returns a strictly increasing timestamp, so creation-time
// ordering stays deterministic even within one wall-clock tick.
func (db *DB) now() time.Time {
	db.seq++
	return time.Unix(0, db.seq).UTC()
}

// Pool implements repo.Pool over the in-memory DB.
type Pool struct {
	db *DB
}

// Conn runs handler with an in-memory connection.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	return handler(ctx, &Conn{db: p.db})
}

// Close releases the in-memory pool; it holds no resources.
func (p *Pool) Close() error {
	return nil
}

// Conn implements repo.Conn. Raw SQL statements are not supported.
type Conn struct {
	db *DB
}

// IsConn marks Conn as a connection.
func (c *Conn) IsConn() {}

// Tx runs handler with an in-memory transaction. There is no
// rollback support; tests which exercise failing transactions should
// assert on the observable state instead.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, &Tx{db: c.db})
}

// Exec fails since the in-memory DB holds models, not tables.
func (c *Conn) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	return 0, errors.New("memrepo: raw SQL is not supported")
}

// Query fails since the in-memory DB holds models, not tables.
func (c *Conn) Query(
	ctx context.Context, sql string, args ...any,
) (repo.Rows, error) {
	return nil, errors.New("memrepo: raw SQL is not supported")
}

// Tx implements repo.Tx. Raw SQL statements are not supported.
type Tx struct {
	db *DB
}

// IsTx marks Tx as a transaction.
func (tx *Tx) IsTx() {}

// Exec fails since the in-memory DB holds models, not tables.
func (tx *Tx) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	return 0, errors.New("memrepo: raw SQL is not supported")
}

// Query fails since the in-memory DB holds models, not tables.
func (tx *Tx) Query(
	ctx context.Context, sql string, args ...any,
) (repo.Rows, error) {
	return nil, errors.New("memrepo: raw SQL is not supported")
}

func notFound() error {
	return cerr.NotFound(errors.New("expected one row, but got 0"))
}

// UsersRepo implements repo.Users over the in-memory DB.
type UsersRepo struct {
	db *DB
}

// Conn projects this repository over an in-memory connection.
func (users *UsersRepo) Conn(repo.Conn) repo.UsersConnQueryer {
	return usersQueryer{db: users.db}
}

// Tx projects this repository over an in-memory transaction.
func (users *UsersRepo) Tx(repo.Tx) repo.UsersTxQueryer {
	return usersQueryer{db: users.db}
}

type usersQueryer struct {
	db *DB
}

func (q usersQueryer) Create(
	ctx context.Context, u *model.User,
) (*model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	for _, o := range q.db.users {
		if o.Email == u.Email {
			return nil, cerr.Conflict(
				errors.New("email is already registered"),
			)
		}
	}
	uu := *u
	uu.ID = uuid.New()
	uu.CreatedAt = q.db.now()
	q.db.users[uu.ID] = uu
	return &uu, nil
}

func (q usersQueryer) ByID(
	ctx context.Context, userID uuid.UUID,
) (*model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	u, ok := q.db.users[userID]
	if !ok {
		return nil, notFound()
	}
	return &u, nil
}

func (q usersQueryer) ByEmail(
	ctx context.Context, email string,
) (*model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	for _, u := range q.db.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, notFound()
}

func (q usersQueryer) Update(
	ctx context.Context, userID uuid.UUID, p model.UserPatch,
) (*model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	u, ok := q.db.users[userID]
	if !ok {
		return nil, notFound()
	}
	if p.Email != nil {
		for id, o := range q.db.users {
			if id != userID && o.Email == *p.Email {
				return nil, cerr.Conflict(
					errors.New("email is already registered"),
				)
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	q.db.users[userID] = u
	return &u, nil
}

func (q usersQueryer) List(ctx context.Context) ([]model.User, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	us := make([]model.User, 0, len(q.db.users))
	for _, u := range q.db.users {
		us = append(us, u)
	}
	sort.Slice(us, func(i, j int) bool {
		return us[i].CreatedAt.Before(us[j].CreatedAt)
	})
	return us, nil
}

func (q usersQueryer) Delete(
	ctx context.Context, userID uuid.UUID,
) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.users[userID]; !ok {
		return notFound()
	}
	delete(q.db.users, userID)
	return nil
}

// VehiclesRepo implements repo.Vehicles over the in-memory DB.
type VehiclesRepo struct {
	db *DB
}

// Conn projects this repository over an in-memory connection.
func (vehicles *VehiclesRepo) Conn(repo.Conn) repo.VehiclesConnQueryer {
	return vehiclesQueryer{db: vehicles.db}
}

// Tx projects this repository over an in-memory transaction.
func (vehicles *VehiclesRepo) Tx(repo.Tx) repo.VehiclesTxQueryer {
	return vehiclesQueryer{db: vehicles.db}
}

type vehiclesQueryer struct {
	db *DB
}

func (q vehiclesQueryer) Create(
	ctx context.Context, v *model.Vehicle,
) (*model.Vehicle, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	vv := *v
	vv.ID = uuid.New()
	vv.CreatedAt = q.db.now()
	if vv.Images == nil {
		vv.Images = []string{}
	}
	q.db.vehicles[vv.ID] = vv
	return &vv, nil
}

func (q vehiclesQueryer) ByID(
	ctx context.Context, vehicleID uuid.UUID,
) (*model.Vehicle, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	v, ok := q.db.vehicles[vehicleID]
	if !ok {
		return nil, notFound()
	}
	return &v, nil
}

func (q vehiclesQueryer) List(
	ctx context.Context, f model.VehicleFilter,
) (*model.VehiclePage, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	kw := strings.ToLower(f.Keyword)
	matched := make([]model.Vehicle, 0, len(q.db.vehicles))
	for _, v := range q.db.vehicles {
		if kw == "" ||
			strings.Contains(strings.ToLower(v.Make), kw) ||
			strings.Contains(strings.ToLower(v.Model), kw) ||
			strings.Contains(strings.ToLower(v.Class), kw) {
			matched = append(matched, v)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	count := int64(len(matched))
	pages := int((count + int64(f.PageSize) - 1) / int64(f.PageSize))
	lo := (f.Page - 1) * f.PageSize
	if lo > len(matched) {
		lo = len(matched)
	}
	hi := lo + f.PageSize
	if hi > len(matched) {
		hi = len(matched)
	}
	return &model.VehiclePage{
		Vehicles: matched[lo:hi],
		Page:     f.Page,
		Pages:    pages,
		Count:    count,
	}, nil
}

func (q vehiclesQueryer) Update(
	ctx context.Context, vehicleID uuid.UUID, p model.VehiclePatch,
) (*model.Vehicle, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	v, ok := q.db.vehicles[vehicleID]
	if !ok {
		return nil, notFound()
	}
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.FuelType != nil {
		v.FuelType = *p.FuelType
	}
	if p.Transmission != nil {
		v.Transmission = *p.Transmission
	}
	if p.Drive != nil {
		v.Drive = *p.Drive
	}
	if p.Class != nil {
		v.Class = *p.Class
	}
	if p.Cylinders != nil {
		v.Cylinders = *p.Cylinders
	}
	if p.Displacement != nil {
		v.Displacement = *p.Displacement
	}
	if p.CityMPG != nil {
		v.CityMPG = *p.CityMPG
	}
	if p.HighwayMPG != nil {
		v.HighwayMPG = *p.HighwayMPG
	}
	if p.CombinationMPG != nil {
		v.CombinationMPG = *p.CombinationMPG
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.Available != nil {
		v.Available = *p.Available
	}
	if p.Images != nil {
		v.Images = p.Images
	}
	q.db.vehicles[vehicleID] = v
	return &v, nil
}

func (q vehiclesQueryer) SetAvailable(
	ctx context.Context, vehicleID uuid.UUID, available bool,
) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	v, ok := q.db.vehicles[vehicleID]
	if !ok {
		return nil // dangling references are tolerated
	}
	v.Available = available
	q.db.vehicles[vehicleID] = v
	return nil
}

func (q vehiclesQueryer) Delete(
	ctx context.Context, vehicleID uuid.UUID,
) error {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	if _, ok := q.db.vehicles[vehicleID]; !ok {
		return notFound()
	}
	delete(q.db.vehicles, vehicleID)
	return nil
}

// RequestsRepo implements repo.Requests over the in-memory DB.
type RequestsRepo struct {
	db *DB
}

// Conn projects this repository over an in-memory connection.
func (requests *RequestsRepo) Conn(repo.Conn) repo.RequestsConnQueryer {
	return requestsQueryer{db: requests.db}
}

// Tx projects this repository over an in-memory transaction.
func (requests *RequestsRepo) Tx(repo.Tx) repo.RequestsTxQueryer {
	return requestsQueryer{db: requests.db}
}

type requestsQueryer struct {
	db *DB
}

func (q requestsQueryer) Create(
	ctx context.Context, r *model.Request,
) (*model.Request, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	rr := *r
	rr.ID = uuid.New()
	rr.CreatedAt = q.db.now()
	q.db.requests[rr.ID] = rr
	return &rr, nil
}

func (q requestsQueryer) ByID(
	ctx context.Context, requestID uuid.UUID,
) (*model.Request, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	r, ok := q.db.requests[requestID]
	if !ok {
		return nil, notFound()
	}
	return &r, nil
}

func (q requestsQueryer) ListByUser(
	ctx context.Context, userID uuid.UUID,
) ([]model.Request, error) {
	return q.list(&userID)
}

func (q requestsQueryer) ListAll(
	ctx context.Context,
) ([]model.Request, error) {
	return q.list(nil)
}

// list joins the vehicle summaries in, and the user summaries too
// when all requests are listed (userID == nil), mirroring the
// PostgreSQL repository projection.
func (q requestsQueryer) list(userID *uuid.UUID) ([]model.Request, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	rs := make([]model.Request, 0, len(q.db.requests))
	for _, r := range q.db.requests {
		if userID != nil && r.UserID != *userID {
			continue
		}
		if v, ok := q.db.vehicles[r.VehicleID]; ok {
			r.Vehicle = &model.VehicleSummary{
				ID:     v.ID,
				Make:   v.Make,
				Model:  v.Model,
				Year:   v.Year,
				Images: v.Images,
				Status: v.Status,
				Price:  v.Price,
			}
		}
		if userID == nil {
			if u, ok := q.db.users[r.UserID]; ok {
				r.User = &model.UserSummary{
					ID:    u.ID,
					Name:  u.Name,
					Email: u.Email,
				}
			}
		}
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].CreatedAt.After(rs[j].CreatedAt)
	})
	return rs, nil
}

func (q requestsQueryer) UpdateStatus(
	ctx context.Context, requestID uuid.UUID, s model.RequestStatus,
) (*model.Request, error) {
	q.db.mu.Lock()
	defer q.db.mu.Unlock()
	r, ok := q.db.requests[requestID]
	if !ok {
		return nil, notFound()
	}
	r.Status = s
	q.db.requests[requestID] = r
	return &r, nil
}
