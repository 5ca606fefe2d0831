package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetrail/bootcamp-api/internal/application"
	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/pkg/response"
	"github.com/codetrail/bootcamp-api/pkg/validation"
)

type BootcampHandler struct {
	Svc    *application.BootcampService
	Logger *logrus.Logger
}

func NewBootcampHandler(svc *application.BootcampService, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	q := ParseListQuery(c)
	items, total, err := h.Svc.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "", paginate(q, total))
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "", nil)
}

type createBootcampRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGi      bool     `json:"accept_gi"`
}

// Create POST /api/v1/bootcamps (publisher or admin)
func (h *BootcampHandler) Create(c *gin.Context) {
	var req createBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	b := &entity.Bootcamp{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	}
	created, err := h.Svc.Create(c.Request.Context(), b, c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "", nil)
}

type updateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	AverageCost   *int     `json:"average_cost"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGi      *bool    `json:"accept_gi"`
}

// Update PUT /api/v1/bootcamps/:id (publisher or admin)
func (h *BootcampHandler) Update(c *gin.Context) {
	var req updateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateBootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		AverageCost:   req.AverageCost,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	}
	b, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "", nil)
}

// Delete DELETE /api/v1/bootcamps/:id (publisher or admin)
func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{}, "bootcamp deleted", nil)
}

// Radius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) Radius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		response.Error[any](c, http.StatusBadRequest, "distance must be a positive number", nil)
		return
	}
	items, err := h.Svc.FindWithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "", gin.H{"count": len(items)})
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo (publisher or admin)
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	name, err := h.Svc.UploadPhoto(c.Request.Context(), c.Param("id"), application.PhotoUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Content:     src,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"photo": name}, "", nil)
}

// Search GET /api/v1/bootcamps/search?q=
func (h *BootcampHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "", gin.H{"count": len(hits)})
}
