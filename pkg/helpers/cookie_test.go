package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func cookieCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "token" {
			return ck
		}
	}
	t.Fatal("token cookie not set")
	return nil
}

func TestSetTokenUsesConfiguredTTL(t *testing.T) {
	c, w := cookieCtx(t)
	m := NewCookie("localhost", false, 2*time.Hour)
	m.SetToken(c, "tok", time.Now().Add(time.Minute))

	ck := tokenCookie(t, w)
	if ck.Value != "tok" || !ck.HttpOnly {
		t.Fatalf("cookie = %+v", ck)
	}
	if ck.MaxAge != 7200 {
		t.Errorf("max-age = %d, want 7200 from the configured TTL", ck.MaxAge)
	}
}

func TestSetTokenFallsBackToTokenExpiry(t *testing.T) {
	c, w := cookieCtx(t)
	m := NewCookie("localhost", false, 0)
	m.SetToken(c, "tok", time.Now().Add(time.Hour))

	ck := tokenCookie(t, w)
	if ck.MaxAge <= 0 || ck.MaxAge > 3600 {
		t.Errorf("max-age = %d, want it derived from the token expiry", ck.MaxAge)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	c, w := cookieCtx(t)
	m := NewCookie("localhost", false, time.Hour)
	m.Clear(c)

	ck := tokenCookie(t, w)
	if ck.Value != "" || ck.MaxAge >= 0 {
		t.Errorf("clear should expire the cookie: %+v", ck)
	}
}
