package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/pkg/apperr"
	"github.com/codetrail/bootcamp-api/pkg/geocoder"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
)

// earthRadiusMiles converts a linear distance to the angular radius used
// by spherical containment queries.
const earthRadiusMiles = 3963.0

// BootcampService orchestrates bootcamp CRUD, geospatial search, photo
// upload, and full-text indexing.
type BootcampService struct {
	Repo       repository.BootcampRepository
	Geo        geocoder.Geocoder
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESIndex    string
	UploadPath string
	MaxUpload  int64
}

func NewBootcampService(repo repository.BootcampRepository, geo geocoder.Geocoder, logger *logrus.Logger, es *elasticsearch.Client, esIndex, uploadPath string, maxUpload int64) *BootcampService {
	return &BootcampService{
		Repo:       repo,
		Geo:        geo,
		Logger:     logger,
		ES:         es,
		ESIndex:    esIndex,
		UploadPath: uploadPath,
		MaxUpload:  maxUpload,
	}
}

func (s *BootcampService) List(ctx context.Context, q repository.ListQuery) ([]entity.Bootcamp, int64, error) {
	return s.Repo.List(ctx, q)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
		}
		return nil, err
	}
	return b, nil
}

// Create validates, geocodes the address into a GeoJSON point, and persists
// the bootcamp.
func (s *BootcampService) Create(ctx context.Context, b *entity.Bootcamp, userID string) (*entity.Bootcamp, error) {
	b.Slug = helpers.Slugify(b.Name)
	if uid, err := primitive.ObjectIDFromHex(userID); err == nil {
		b.User = uid
	}
	if b.Careers == nil {
		b.Careers = []string{}
	}
	if b.Address != "" {
		loc, err := s.geocode(ctx, b.Address)
		if err != nil {
			return nil, err
		}
		b.Location = loc
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("a bootcamp with that name already exists")
		}
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

// UpdateBootcampInput carries the optional fields of a partial update.
type UpdateBootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	AverageCost   *int
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

// Update merges the provided fields into the stored record. Repeating an
// identical update leaves the persisted state unchanged.
func (s *BootcampService) Update(ctx context.Context, id string, in UpdateBootcampInput) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		b.Name = in.Name
		b.Slug = helpers.Slugify(in.Name)
	}
	if in.Description != "" {
		b.Description = in.Description
	}
	if in.Website != "" {
		b.Website = in.Website
	}
	if in.Phone != "" {
		b.Phone = in.Phone
	}
	if in.Email != "" {
		b.Email = in.Email
	}
	if in.Address != "" && in.Address != b.Address {
		loc, err := s.geocode(ctx, in.Address)
		if err != nil {
			return nil, err
		}
		b.Address = in.Address
		b.Location = loc
	}
	if in.Careers != nil {
		b.Careers = in.Careers
	}
	if in.AverageCost != nil {
		b.AverageCost = *in.AverageCost
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGi != nil {
		b.AcceptGi = *in.AcceptGi
	}
	if err := s.Repo.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
		}
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

// Delete removes the bootcamp; course cleanup cascades at the repository
// boundary.
func (s *BootcampService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("bootcamp not found with id of %s", id))
		}
		return err
	}
	s.deindex(ctx, id)
	return nil
}

// FindWithinRadius geocodes the zipcode and returns bootcamps inside the
// spherical radius. Geocoder failures propagate without retry.
func (s *BootcampService) FindWithinRadius(ctx context.Context, zipcode string, distance float64) ([]entity.Bootcamp, error) {
	loc, err := s.Geo.Geocode(ctx, zipcode)
	if err != nil {
		return nil, apperr.Delivery("geocoding failed", err)
	}
	radius := distance / earthRadiusMiles
	return s.Repo.FindWithinRadius(ctx, loc.Lng, loc.Lat, radius)
}

// PhotoUpload describes an incoming multipart image.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadPhoto validates the file, writes it under the configured path, and
// records the deterministic filename on the already-resolved record. The
// write completes (or fails) before any response is produced; nothing
// touches the filesystem for an invalid upload.
func (s *BootcampService) UploadPhoto(ctx context.Context, id string, up PhotoUpload) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if up.Content == nil {
		return "", apperr.Validation("please upload a file")
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", apperr.Validation("please upload an image file")
	}
	if up.Size > s.MaxUpload {
		return "", apperr.Validation(fmt.Sprintf("please upload an image less than %d bytes", s.MaxUpload))
	}

	name := fmt.Sprintf("photo_%s%s", b.ID.Hex(), strings.ToLower(filepath.Ext(up.Filename)))
	if err := s.writeFile(filepath.Join(s.UploadPath, name), up.Content); err != nil {
		s.Logger.WithError(err).WithField("bootcamp", id).Error("photo write failed")
		return "", apperr.IO("problem with file upload", err)
	}

	b.Photo = name
	if err := s.Repo.Update(ctx, b); err != nil {
		return "", err
	}
	return name, nil
}

func (s *BootcampService) writeFile(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *BootcampService) geocode(ctx context.Context, address string) (entity.Location, error) {
	loc, err := s.Geo.Geocode(ctx, address)
	if err != nil {
		return entity.Location{}, apperr.Delivery("geocoding failed", err)
	}
	return entity.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.Lng, loc.Lat},
		FormattedAddress: loc.FormattedAddress,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.Zipcode,
		Country:          loc.Country,
	}, nil
}

// Search runs a multi-match query over name and description. Without a
// configured Elasticsearch client it degrades to an empty result.
func (s *BootcampService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          b.ID.Hex(),
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"city":        b.Location.City,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.ID.Hex(), Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("bootcamp", b.ID.Hex()).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("bootcamp", b.ID.Hex()).Warn("es index response error")
	}
}

func (s *BootcampService) deindex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("bootcamp", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}
