package repository

import (
	"context"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
)

// Cond is one whitelisted filter condition. Op is "eq", "gt", "gte", "lt",
// "lte", or "in"; anything else never reaches the store.
type Cond struct {
	Field string
	Op    string
	Value any
}

// ListQuery carries the whitelisted filter/sort/pagination options parsed
// from a list request. Implementations translate it to store predicates;
// client input is never passed through as raw operators.
type ListQuery struct {
	Conds  []Cond
	Select []string
	Sort   []string // field or -field for descending
	Page   int
	Limit  int
}

// BootcampRepository defines persistence for bootcamps.
type BootcampRepository interface {
	List(ctx context.Context, q ListQuery) ([]entity.Bootcamp, int64, error)
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	Create(ctx context.Context, b *entity.Bootcamp) error
	Update(ctx context.Context, b *entity.Bootcamp) error
	// Delete removes the bootcamp and all of its courses.
	Delete(ctx context.Context, id string) error
	// FindWithinRadius returns bootcamps whose location falls within the
	// angular radius (radians) of the given point.
	FindWithinRadius(ctx context.Context, lng, lat, radius float64) ([]entity.Bootcamp, error)
}
