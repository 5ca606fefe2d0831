package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codetrail/bootcamp-api/internal/container"
	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	handlers "github.com/codetrail/bootcamp-api/internal/interface/http"
	"github.com/codetrail/bootcamp-api/internal/interface/middleware"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewCourseModule(h *handlers.CourseHandler, users repository.UserRepository, jwt *helpers.JWTManager) *CourseModule {
	return &CourseModule{Handler: h, Users: users, JWT: jwt}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/courses", readLimiter, m.Handler.List)
	rg.GET("/courses/:id", readLimiter, m.Handler.Get)

	write := rg.Group("/")
	write.Use(middleware.Protect(m.Users, m.JWT))
	write.Use(middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	write.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		write.PUT("/courses/:id", m.Handler.Update)
		write.DELETE("/courses/:id", m.Handler.Delete)
	}
}
