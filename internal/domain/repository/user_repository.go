package repository

import (
	"context"
	"errors"
	"time"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
)

// UserRepository defines the persistence operations for the auth domain.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken matches a stored reset-token hash whose expiry is
	// still after now. Both conditions are part of the query so a stale
	// token can never resolve a user.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}

// Sentinel errors returned by repository implementations. Services map
// them onto the API error taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)
