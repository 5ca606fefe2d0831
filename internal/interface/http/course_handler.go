package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetrail/bootcamp-api/internal/application"
	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/pkg/response"
	"github.com/codetrail/bootcamp-api/pkg/validation"
)

type CourseHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/courses, or GET /api/v1/bootcamps/:id/courses when the
// route carries a bootcamp id.
func (h *CourseHandler) List(c *gin.Context) {
	if bootcampID := c.Param("id"); bootcampID != "" {
		courses, err := h.Svc.ListByBootcamp(c.Request.Context(), bootcampID)
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, courses, "", gin.H{"count": len(courses)})
		return
	}
	q := ParseListQuery(c)
	items, total, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "", paginate(q, total))
}

// Get GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "", nil)
}

type createCourseRequest struct {
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description" binding:"required"`
	Weeks                int    `json:"weeks" binding:"required"`
	Tuition              int    `json:"tuition" binding:"required"`
	MinimumSkill         string `json:"minimum_skill" binding:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool   `json:"scholarship_available"`
}

// Create POST /api/v1/bootcamps/:id/courses (publisher or admin)
func (h *CourseHandler) Create(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course := &entity.Course{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}
	created, err := h.Svc.Create(c.Request.Context(), c.Param("id"), course, c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "", nil)
}

type updateCourseRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Weeks                *int   `json:"weeks"`
	Tuition              *int   `json:"tuition"`
	MinimumSkill         string `json:"minimum_skill" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool  `json:"scholarship_available"`
}

// Update PUT /api/v1/courses/:id (publisher or admin)
func (h *CourseHandler) Update(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateCourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}
	course, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "", nil)
}

// Delete DELETE /api/v1/courses/:id (publisher or admin)
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{}, "course deleted", nil)
}
