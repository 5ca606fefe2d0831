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

type BootcampModule struct {
	Handler *handlers.BootcampHandler
	Courses *handlers.CourseHandler
	Users   repository.UserRepository
	JWT     *helpers.JWTManager
}

func NewBootcampModule(h *handlers.BootcampHandler, courses *handlers.CourseHandler, users repository.UserRepository, jwt *helpers.JWTManager) *BootcampModule {
	return &BootcampModule{Handler: h, Courses: courses, Users: users, JWT: jwt}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/bootcamps", readLimiter, m.Handler.List)
	rg.GET("/bootcamps/search", readLimiter, m.Handler.Search)
	rg.GET("/bootcamps/radius/:zipcode/:distance", readLimiter, m.Handler.Radius)
	rg.GET("/bootcamps/:id", readLimiter, m.Handler.Get)
	rg.GET("/bootcamps/:id/courses", readLimiter, m.Courses.List)

	// Writes require an authenticated publisher or admin.
	write := rg.Group("/")
	write.Use(middleware.Protect(m.Users, m.JWT))
	write.Use(middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	write.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		write.POST("/bootcamps", m.Handler.Create)
		write.PUT("/bootcamps/:id", m.Handler.Update)
		write.DELETE("/bootcamps/:id", m.Handler.Delete)
		write.PUT("/bootcamps/:id/photo", m.Handler.UploadPhoto)
		write.POST("/bootcamps/:id/courses", m.Courses.Create)
	}
}
