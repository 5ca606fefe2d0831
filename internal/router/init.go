package router

import (
	"github.com/codetrail/bootcamp-api/internal/application"
	"github.com/codetrail/bootcamp-api/internal/container"
	"github.com/codetrail/bootcamp-api/internal/domain/repository"
	"github.com/codetrail/bootcamp-api/internal/infrastructure/mongodb"
	handlers "github.com/codetrail/bootcamp-api/internal/interface/http"
	"github.com/codetrail/bootcamp-api/internal/router/modules"
	"github.com/codetrail/bootcamp-api/pkg/geocoder"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
)

type deps struct {
	users     repository.UserRepository
	bootcamps repository.BootcampRepository
	courses   repository.CourseRepository

	auth      *handlers.AuthHandler
	bootcampH *handlers.BootcampHandler
	courseH   *handlers.CourseHandler
}

func buildDeps() deps {
	cfg := container.GetConfig()
	db := container.GetMongo()
	logger := container.GetLogger()

	users := mongodb.NewUserRepository(db)
	bootcamps := mongodb.NewBootcampRepository(db)
	courses := mongodb.NewCourseRepository(db)

	authSvc := application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetMailgun(),
		container.GetRabbitPub(),
		logger,
		cfg.ResetPasswordURL,
		cfg.MailSendEnabled,
	)
	geo := geocoder.NewMapQuest(cfg.GeocoderAPIKey, cfg.GeocoderBaseURL)
	bootcampSvc := application.NewBootcampService(
		bootcamps,
		geo,
		logger,
		container.GetES(),
		cfg.ESBootcampsIndex,
		cfg.FileUploadPath,
		cfg.MaxFileUpload,
	)
	courseSvc := application.NewCourseService(courses, bootcamps, logger)

	cookie := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure(), cfg.CookieTTL)

	return deps{
		users:     users,
		bootcamps: bootcamps,
		courses:   courses,
		auth:      handlers.NewAuthHandler(authSvc, cookie, logger),
		bootcampH: handlers.NewBootcampHandler(bootcampSvc, logger),
		courseH:   handlers.NewCourseHandler(courseSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	d := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(d.auth, d.users, jwt))
	r.Add(modules.NewBootcampModule(d.bootcampH, d.courseH, d.users, jwt))
	r.Add(modules.NewCourseModule(d.courseH, d.users, jwt))
	r.Add(modules.NewDebugModule())
}
