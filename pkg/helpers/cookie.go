package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager writes the auth token cookie. The cookie is always HttpOnly;
// Secure is enabled only for production deployments. TTL controls the cookie
// max-age; when unset the token expiry is used instead.
type CookieManager struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookie(domain string, secure bool, ttl time.Duration) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure, TTL: ttl}
}

// SetToken mirrors the bearer token into an HTTP-only cookie.
func (m *CookieManager) SetToken(c *gin.Context, token string, exp time.Time) {
	maxAge := int(m.TTL.Seconds())
	if maxAge <= 0 {
		maxAge = maxAgeFrom(exp)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, maxAge, "/", m.Domain, m.Secure, true)
}

// Clear expires the token cookie.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
