package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/dealer-web/pkg/core/model"
)

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

type UsersQueryer interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	ByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, userID uuid.UUID, p model.UserPatch) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
