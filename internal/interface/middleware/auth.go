package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
	"github.com/codetrail/bootcamp-api/pkg/response"
)

// Protect validates the bearer token and resolves a live user record, so a
// deleted account is rejected even while its token is still unexpired. The
// token is read from the Authorization header first, then the cookie. Sets
// userID and userRole in the Gin context on success.
func Protect(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "not authorized to access this route", nil)
			return
		}
		c.Set("userID", u.ID.Hex())
		c.Set("userRole", u.Role)
		c.Next()
	}
}

// Authorize gates a route to the given roles. Must run after Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.AbortError[any](c, http.StatusForbidden,
			"user role "+role+" is not authorized to access this route", nil)
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if tok, err := c.Cookie("token"); err == nil {
		return tok
	}
	return ""
}
