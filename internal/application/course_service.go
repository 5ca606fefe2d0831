package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/pkg/apperr"
)

// CourseService orchestrates course CRUD. Every operation that references a
// bootcamp checks its existence first; absence is a 404, never a silent no-op.
type CourseService struct {
	Repo      repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Logger    *logrus.Logger
}

func NewCourseService(repo repository.CourseRepository, bootcamps repository.BootcampRepository, logger *logrus.Logger) *CourseService {
	return &CourseService{Repo: repo, Bootcamps: bootcamps, Logger: logger}
}

func (s *CourseService) List(ctx context.Context, q repository.ListQuery) ([]entity.Course, int64, error) {
	return s.Repo.List(ctx, q)
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	if err := s.requireBootcamp(ctx, bootcampID); err != nil {
		return nil, err
	}
	courses, err := s.Repo.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", bootcampID))
		}
		return nil, err
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("course not found with id of %s", id))
		}
		return nil, err
	}
	return c, nil
}

// Create adds a course to an existing bootcamp.
func (s *CourseService) Create(ctx context.Context, bootcampID string, c *entity.Course, userID string) (*entity.Course, error) {
	if err := s.requireBootcamp(ctx, bootcampID); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", bootcampID))
	}
	c.Bootcamp = oid
	if uid, err := primitive.ObjectIDFromHex(userID); err == nil {
		c.User = uid
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCourseInput carries the optional fields of a partial update.
type UpdateCourseInput struct {
	Title                string
	Description          string
	Weeks                *int
	Tuition              *int
	MinimumSkill         string
	ScholarshipAvailable *bool
}

func (s *CourseService) Update(ctx context.Context, id string, in UpdateCourseInput) (*entity.Course, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		c.Title = in.Title
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.MinimumSkill != "" {
		c.MinimumSkill = in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("course not found with id of %s", id))
		}
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("course not found with id of %s", id))
		}
		return err
	}
	return nil
}

func (s *CourseService) requireBootcamp(ctx context.Context, bootcampID string) error {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", bootcampID))
		}
		return err
	}
	return nil
}
