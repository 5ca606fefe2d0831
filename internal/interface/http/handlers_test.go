package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/codetrail/bootcamp-api/internal/application"
	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/internal/interface/middleware"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
	"github.com/codetrail/bootcamp-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discard{})
	return l
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByResetToken(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	for _, u := range r.users {
		if u.ResetPasswordToken == hash && u.ResetPasswordExpire.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID.Hex()] = &cp
	return nil
}

type noopSender struct{}

func (noopSender) Send(_ context.Context, _, _, _ string) error { return nil }

func newAuthRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	jwt := helpers.NewJWTManager("testsecret", time.Hour)
	svc := application.NewAuthService(users, jwt, noopSender{}, nil, quietLogger(), "http://localhost/resetpassword", false)
	h := NewAuthHandler(svc, helpers.NewCookie("localhost", false, time.Hour), quietLogger())

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/logout", h.Logout)
	protected := api.Group("/")
	protected.Use(middleware.Protect(users, jwt))
	protected.GET("/auth/me", h.GetMe)
	return r, users
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRegisterRoute(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := doJSON(t, r, "POST", "/api/v1/auth/register",
		`{"name":"John Doe","email":"john@example.com","password":"123456"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data, _ := body["data"].(map[string]any)
	if tok, _ := data["token"].(string); tok == "" {
		t.Error("token missing from body")
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "token=") || !strings.Contains(cookie, "HttpOnly") {
		t.Errorf("auth cookie not set: %q", cookie)
	}
}

func TestRegisterRouteValidation(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := doJSON(t, r, "POST", "/api/v1/auth/register",
		`{"name":"John","email":"not-an-email","password":"123"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	details, _ := body["error"].(map[string]any)
	if _, ok := details["email"]; !ok {
		t.Errorf("email error missing: %v", body)
	}
	if _, ok := details["password"]; !ok {
		t.Errorf("password error missing: %v", body)
	}
}

func TestLoginRouteIdenticalFailures(t *testing.T) {
	r, _ := newAuthRouter(t)
	doJSON(t, r, "POST", "/api/v1/auth/register",
		`{"name":"John","email":"john@example.com","password":"123456"}`, nil)

	wrongPwd := doJSON(t, r, "POST", "/api/v1/auth/login",
		`{"email":"john@example.com","password":"nope99"}`, nil)
	unknown := doJSON(t, r, "POST", "/api/v1/auth/login",
		`{"email":"ghost@example.com","password":"123456"}`, nil)

	if wrongPwd.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d", wrongPwd.Code, unknown.Code)
	}
	msg1 := decodeBody(t, wrongPwd)["message"]
	msg2 := decodeBody(t, unknown)["message"]
	if msg1 != msg2 {
		t.Errorf("login failures must be indistinguishable: %q vs %q", msg1, msg2)
	}
}

func TestMeRoute(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := doJSON(t, r, "POST", "/api/v1/auth/register",
		`{"name":"John","email":"john@example.com","password":"123456"}`, nil)
	data := decodeBody(t, w)["data"].(map[string]any)
	token := data["token"].(string)

	me := doJSON(t, r, "GET", "/api/v1/auth/me", "", map[string]string{"Authorization": "Bearer " + token})
	if me.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", me.Code, me.Body.String())
	}
	body := decodeBody(t, me)
	user, _ := body["data"].(map[string]any)
	if user["email"] != "john@example.com" {
		t.Errorf("me = %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password serialized in response")
	}

	anon := doJSON(t, r, "GET", "/api/v1/auth/me", "", nil)
	if anon.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d", anon.Code)
	}
}

func TestAuthorizeRoleGuard(t *testing.T) {
	users := newMemUserRepo()
	jwt := helpers.NewJWTManager("testsecret", time.Hour)

	reader := &entity.User{Name: "Reader", Email: "reader@example.com", Role: entity.RoleUser}
	publisher := &entity.User{Name: "Publisher", Email: "pub@example.com", Role: entity.RolePublisher}
	_ = users.Create(context.Background(), reader)
	_ = users.Create(context.Background(), publisher)

	svc := application.NewBootcampService(&listCaptureRepo{}, nil, quietLogger(), nil, "", t.TempDir(), 1000)
	h := NewBootcampHandler(svc, quietLogger())

	r := gin.New()
	write := r.Group("/api/v1")
	write.Use(middleware.Protect(users, jwt))
	write.Use(middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	write.DELETE("/bootcamps/:id", h.Delete)

	readerTok, _, err := jwt.GenerateToken(reader.ID.Hex())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	pubTok, _, err := jwt.GenerateToken(publisher.ID.Hex())
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	denied := doJSON(t, r, "DELETE", "/api/v1/bootcamps/5d713995b721c3bb38c1f5d0", "",
		map[string]string{"Authorization": "Bearer " + readerTok})
	if denied.Code != http.StatusForbidden {
		t.Fatalf("user-role write status = %d, want 403", denied.Code)
	}
	body := decodeBody(t, denied)
	if msg, _ := body["message"].(string); !strings.Contains(msg, "user role user is not authorized") {
		t.Errorf("message = %q", msg)
	}

	// publisher clears the guard; 404 from the empty store proves the
	// handler ran.
	allowed := doJSON(t, r, "DELETE", "/api/v1/bootcamps/5d713995b721c3bb38c1f5d0", "",
		map[string]string{"Authorization": "Bearer " + pubTok})
	if allowed.Code != http.StatusNotFound {
		t.Errorf("publisher write status = %d, want 404 from the handler", allowed.Code)
	}
}

type listCaptureRepo struct {
	got repository.ListQuery
}

func (r *listCaptureRepo) List(_ context.Context, q repository.ListQuery) ([]entity.Bootcamp, int64, error) {
	r.got = q
	return []entity.Bootcamp{{Name: "Devworks"}}, 42, nil
}

func (r *listCaptureRepo) GetByID(_ context.Context, _ string) (*entity.Bootcamp, error) {
	return nil, repository.ErrNotFound
}
func (r *listCaptureRepo) Create(_ context.Context, _ *entity.Bootcamp) error { return nil }
func (r *listCaptureRepo) Update(_ context.Context, _ *entity.Bootcamp) error { return nil }
func (r *listCaptureRepo) Delete(_ context.Context, _ string) error           { return repository.ErrNotFound }
func (r *listCaptureRepo) FindWithinRadius(_ context.Context, _, _, _ float64) ([]entity.Bootcamp, error) {
	return nil, nil
}

func TestBootcampListRoute(t *testing.T) {
	repo := &listCaptureRepo{}
	svc := application.NewBootcampService(repo, nil, quietLogger(), nil, "", t.TempDir(), 1000)
	h := NewBootcampHandler(svc, quietLogger())

	r := gin.New()
	r.GET("/api/v1/bootcamps", h.List)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps?averageCost[lte]=10000&page=2&limit=10&name[regex]=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if _, ok := findCond(repo.got.Conds, "averageCost", "lte"); !ok {
		t.Errorf("filter not forwarded: %+v", repo.got.Conds)
	}
	if _, ok := findCond(repo.got.Conds, "name", "regex"); ok {
		t.Error("unwhitelisted operator reached the repository")
	}

	body := decodeBody(t, w)
	meta, _ := body["meta"].(map[string]any)
	if meta["total"] != float64(42) || meta["page"] != float64(2) {
		t.Errorf("meta = %v", meta)
	}
}

func TestBootcampGetRouteNotFound(t *testing.T) {
	svc := application.NewBootcampService(&listCaptureRepo{}, nil, quietLogger(), nil, "", t.TempDir(), 1000)
	h := NewBootcampHandler(svc, quietLogger())

	r := gin.New()
	r.GET("/api/v1/bootcamps/:id", h.Get)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps/5d713995b721c3bb38c1f5d0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if msg, _ := body["message"].(string); !strings.Contains(msg, "bootcamp not found with id of") {
		t.Errorf("message = %q", body["message"])
	}
}
