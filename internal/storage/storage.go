package storage

import (
	"context"

	usermodel "github.com/claytonfaria/userapi/internal/models/user"
)

// UserStore is the persistence boundary for user records. Every
// mutating operation verifies existence before touching the row and
// returns the canonical persisted representation afterwards.
type UserStore interface {
	List(ctx context.Context) ([]*usermodel.User, error)
	GetByID(ctx context.Context, id int64) (*usermodel.User, error)
	Create(ctx context.Context, req *usermodel.CreateUserRequest) (*usermodel.User, error)
	Update(ctx context.Context, id int64, req *usermodel.UpdateUserRequest) (*usermodel.User, error)
	Delete(ctx context.Context, id int64) error
}
