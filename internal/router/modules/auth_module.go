package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codetrail/bootcamp-api/internal/container"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	handlers "github.com/codetrail/bootcamp-api/internal/interface/http"
	"github.com/codetrail/bootcamp-api/internal/interface/middleware"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Users: users, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits; credential endpoints get
	// the tightest buckets.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/forgotpassword", forgotLimiter, m.Handler.ForgotPassword)
	rg.PUT("/auth/resetpassword/:resettoken", resetLimiter, m.Handler.ResetPassword)

	// Protected profile endpoints with a user-based rate limit
	auth := rg.Group("/")
	auth.Use(middleware.Protect(m.Users, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.GetMe)
		auth.PUT("/auth/updatedetails", m.Handler.UpdateDetails)
		auth.PUT("/auth/updatepassword", m.Handler.UpdatePassword)
	}
}
