package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
)

type BootcampRepository struct {
	col     *mongo.Collection
	courses *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{
		col:     db.Collection("bootcamps"),
		courses: db.Collection("courses"),
	}
}

func (r *BootcampRepository) List(ctx context.Context, q repository.ListQuery) ([]entity.Bootcamp, int64, error) {
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

	bootcamps := []entity.Bootcamp{}
	if err := cur.All(ctx, &bootcamps); err != nil {
		return nil, 0, err
	}
	return bootcamps, total, nil
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var b entity.Bootcamp
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	b.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	b.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the bootcamp and cascades to its courses. The cascade is
// an application-level invariant enforced here, not assumed store behavior.
func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
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
	_, err = r.courses.DeleteMany(ctx, bson.M{"bootcamp": oid})
	return err
}

func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, radius float64) ([]entity.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radius},
			},
		},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bootcamps := []entity.Bootcamp{}
	if err := cur.All(ctx, &bootcamps); err != nil {
		return nil, err
	}
	return bootcamps, nil
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
