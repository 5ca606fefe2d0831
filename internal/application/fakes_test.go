package application

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/pkg/geocoder"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(nilWriter{})
	return l
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*entity.User // keyed by hex id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	for _, u := range r.users {
		if u.ResetPasswordToken == hash && u.ResetPasswordExpire.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

// fakeBootcampRepo is an in-memory BootcampRepository.
type fakeBootcampRepo struct {
	bootcamps map[string]*entity.Bootcamp
	courses   *fakeCourseRepo // cascade target, optional
}

func newFakeBootcampRepo() *fakeBootcampRepo {
	return &fakeBootcampRepo{bootcamps: map[string]*entity.Bootcamp{}}
}

func (r *fakeBootcampRepo) List(_ context.Context, _ repository.ListQuery) ([]entity.Bootcamp, int64, error) {
	out := []entity.Bootcamp{}
	for _, b := range r.bootcamps {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBootcampRepo) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	b, ok := r.bootcamps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	for _, ex := range r.bootcamps {
		if ex.Slug == b.Slug {
			return repository.ErrDuplicate
		}
	}
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	cp := *b
	r.bootcamps[b.ID.Hex()] = &cp
	return nil
}

func (r *fakeBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	if _, ok := r.bootcamps[b.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.bootcamps[b.ID.Hex()] = &cp
	return nil
}

func (r *fakeBootcampRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bootcamps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bootcamps, id)
	if r.courses != nil {
		for cid, c := range r.courses.courses {
			if c.Bootcamp.Hex() == id {
				delete(r.courses.courses, cid)
			}
		}
	}
	return nil
}

func (r *fakeBootcampRepo) FindWithinRadius(_ context.Context, lng, lat, radius float64) ([]entity.Bootcamp, error) {
	out := []entity.Bootcamp{}
	for _, b := range r.bootcamps {
		if len(b.Location.Coordinates) != 2 {
			continue
		}
		dLng := b.Location.Coordinates[0] - lng
		dLat := b.Location.Coordinates[1] - lat
		// flat-earth approximation in radians, close enough for tests
		distRad := (dLng*dLng + dLat*dLat)
		if distRad <= radius*radius*degSq {
			out = append(out, *b)
		}
	}
	return out, nil
}

// degSq converts the squared radian radius into squared degrees.
const degSq = (180.0 / 3.141592653589793) * (180.0 / 3.141592653589793)

// fakeCourseRepo is an in-memory CourseRepository.
type fakeCourseRepo struct {
	courses map[string]*entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]*entity.Course{}}
}

func (r *fakeCourseRepo) List(_ context.Context, _ repository.ListQuery) ([]entity.Course, int64, error) {
	out := []entity.Course{}
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Course, error) {
	out := []entity.Course{}
	for _, c := range r.courses {
		if c.Bootcamp.Hex() == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	cp := *c
	r.courses[c.ID.Hex()] = &cp
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
	if _, ok := r.courses[c.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	r.courses[c.ID.Hex()] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

// fakeSender records sent mail and can simulate delivery failure.
type fakeSender struct {
	sent []string // recipients
	fail bool
}

func (f *fakeSender) Send(_ context.Context, to, subject, text string) error {
	if f.fail {
		return errors.New("mailgun unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

// fakeGeocoder returns a fixed point for any query.
type fakeGeocoder struct {
	loc geocoder.Location
	err error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (geocoder.Location, error) {
	if f.err != nil {
		return geocoder.Location{}, f.err
	}
	return f.loc, nil
}

func newAuthService(users repository.UserRepository, mail *fakeSender) *AuthService {
	return NewAuthService(
		users,
		helpers.NewJWTManager("testsecret", time.Hour),
		mail,
		nil, // no queue in tests
		testLogger(),
		"http://localhost:8080/api/v1/auth/resetpassword",
		false,
	)
}
