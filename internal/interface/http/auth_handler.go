package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/codetrail/bootcamp-api/internal/application"
	"github.com/codetrail/bootcamp-api/internal/domain/entity"
	"github.com/codetrail/bootcamp-api/pkg/helpers"
	"github.com/codetrail/bootcamp-api/pkg/response"
	"github.com/codetrail/bootcamp-api/pkg/validation"
)

// AuthHandler exposes the credential lifecycle over HTTP. Token issuance
// always goes through sendToken so the cookie and the body stay in sync.
type AuthHandler struct {
	Auth   *application.AuthService
	Cookie *helpers.CookieManager
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookie *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookie: cookie, Logger: logger}
}

// sendToken issues a signed token for the user, mirrors it into the
// HTTP-only cookie, and writes it in the body.
func (h *AuthHandler) sendToken(c *gin.Context, status int, u *entity.User) {
	token, exp, err := h.Auth.IssueToken(u)
	if err != nil {
		h.Logger.WithError(err).Error("token issue failed")
		response.Error[any](c, http.StatusInternalServerError, "could not issue token", nil)
		return
	}
	h.Cookie.SetToken(c, token, exp)
	response.Success(c, status, gin.H{"token": token}, "", nil)
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,pwd"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, u)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, u)
}

// Logout GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookie.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{}, "logged out", nil)
}

// GetMe GET /api/v1/auth/me (auth required)
func (h *AuthHandler) GetMe(c *gin.Context) {
	u, err := h.Auth.GetMe(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "", nil)
}

// UpdateDetails PUT /api/v1/auth/updatedetails (auth required)
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.UpdateDetails(c.Request.Context(), c.GetString("userID"), req.Name, req.Email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "details updated", nil)
}

// UpdatePassword PUT /api/v1/auth/updatepassword (auth required)
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.UpdatePassword(c.Request.Context(), c.GetString("userID"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, u)
}

// ForgotPassword POST /api/v1/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{}, "email sent", nil)
}

// ResetPassword PUT /api/v1/auth/resetpassword/:resettoken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.sendToken(c, http.StatusOK, u)
}
