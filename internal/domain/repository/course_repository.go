package repository

import (
	"context"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
)

// CourseRepository defines persistence for courses.
type CourseRepository interface {
	List(ctx context.Context, q ListQuery) ([]entity.Course, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error)
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Create(ctx context.Context, c *entity.Course) error
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
}
