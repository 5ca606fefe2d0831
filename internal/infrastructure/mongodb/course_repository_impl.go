package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
)

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection("courses")}
}

func (r *CourseRepository) List(ctx context.Context, q repository.ListQuery) ([]entity.Course, int64, error) {
	filter := buildFilter(q.Conds)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts, _, _ := buildFindOptions(q)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	courses := []entity.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	oid, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"bootcamp": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []entity.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var c entity.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	c.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	c.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
