package usersrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres"
	"github.com/momeni/dealer-web/pkg/core/cerr"
	"github.com/momeni/dealer-web/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gUser struct {
	UID          uuid.UUID `gorm:"primaryKey;type:uuid;column:uid"`
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:           gu.UID,
		Name:         gu.Name,
		Email:        gu.Email,
		PasswordHash: gu.PasswordHash,
		IsAdmin:      gu.IsAdmin,
		CreatedAt:    gu.CreatedAt,
	}
}

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation,
// raised by the users email unique index on concurrent registrations.
const uniqueViolation = "23505"

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{
		UID:          uuid.New(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    time.Now(),
	}
	if err := gdb.Create(gu).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation {
			return nil, cerr.Conflict(
				errors.New("email is already registered"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func ByID[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{}
	err := gdb.Where("uid=?", userID).Take(gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(errors.New("user not found"))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func ByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, error) {
	gdb := q.GORM(ctx)
	gu := &gUser{}
	err := gdb.Where("email=?", email).Take(gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(errors.New("user not found"))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gu.Model(), nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID, p model.UserPatch) (*model.User, error) {
	vals := make(map[string]any, 3)
	if p.Name != nil {
		vals["name"] = *p.Name
	}
	if p.Email != nil {
		vals["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		vals["password_hash"] = *p.PasswordHash
	}
	if len(vals) == 0 {
		return ByID(ctx, q, userID)
	}
	gdb := q.GORM(ctx)
	var gu []gUser
	gdb.Model(&gu).Clauses(clause.Returning{}).Where(
		"uid=?", userID,
	).Updates(vals)
	if err := gdb.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation {
			return nil, cerr.Conflict(
				errors.New("email is already registered"),
			)
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gu); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gu[0].Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.User, error) {
	gdb := q.GORM(ctx)
	var gus []gUser
	if err := gdb.Order("created_at").Find(&gus).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	us := make([]model.User, 0, len(gus))
	for i := range gus {
		us = append(us, *gus[i].Model())
	}
	return us, nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, userID uuid.UUID) error {
	gdb := q.GORM(ctx)
	tt := gdb.Where("uid=?", userID).Delete(&gUser{})
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if tt.RowsAffected == 0 {
		return cerr.NotFound(errors.New("user not found"))
	}
	return nil
}
