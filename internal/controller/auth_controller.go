package controller

import (
	"errors"
	"net/http"
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/middleware"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth         *service.AuthService
	cookieMaxAge int
	secureCookie bool
}

func NewAuthController(auth *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		auth:         auth,
		cookieMaxAge: int(cfg.JWT.ExpireTime / time.Second),
		secureCookie: cfg.Server.Mode == "release",
	}
}

func (ctrl *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, ctrl.cookieMaxAge, "/", "", ctrl.secureCookie, true)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration payload"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.auth.Register(req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(c, "Email is already registered")
	case err != nil:
		util.LogInternalError(c, err)
	default:
		util.Created(c, gin.H{
			"user":  result.User,
			"token": result.Token,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.auth.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(c, "Invalid email or password")
	case err != nil:
		util.LogInternalError(c, err)
	case result.NeedsVerification:
		// Correct credentials but unverified: a fresh verification email
		// was sent, no session is issued.
		util.Success(c, gin.H{
			"isEmailVerified": false,
			"message":         "Please verify your email. A new verification link has been sent.",
		})
	default:
		ctrl.setSessionCookie(c, result.Token)
		util.Success(c, gin.H{
			"user":  result.User,
			"token": result.Token,
		})
	}
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", ctrl.secureCookie, true)
	util.Success(c, gin.H{"message": "Logged out"})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerification godoc
// @Summary Resend the verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body emailRequest true "Account email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/auth/resend-verification [post]
func (ctrl *AuthController) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	err := ctrl.auth.ResendVerification(req.Email)
	switch {
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(c, "User not found")
	case errors.Is(err, util.ErrAlreadyVerified):
		util.BadRequest(c, "Email is already verified")
	case err != nil:
		util.LogInternalError(c, err)
	default:
		util.Success(c, gin.H{"message": "Verification email sent"})
	}
}

// VerifyEmail godoc
// @Summary Verify an email address with a token
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/verify-email/{token} [post]
func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	result, err := ctrl.auth.VerifyEmail(c.Param("token"))
	switch {
	case errors.Is(err, util.ErrTokenInvalid):
		util.BadRequest(c, "Invalid or expired verification token")
	case err != nil:
		util.LogInternalError(c, err)
	default:
		ctrl.setSessionCookie(c, result.Token)
		util.Success(c, gin.H{
			"user":  result.User,
			"token": result.Token,
		})
	}
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body emailRequest true "Account email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	err := ctrl.auth.ForgotPassword(req.Email)
	switch {
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(c, "User not found")
	case err != nil:
		util.LogInternalError(c, err)
	default:
		util.Success(c, gin.H{"message": "Password reset email sent"})
	}
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ResetPassword godoc
// @Summary Reset the password with a token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body resetPasswordRequest true "New password"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/reset-password/{token} [put]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.auth.ResetPassword(c.Param("token"), req.Password)
	switch {
	case errors.Is(err, util.ErrTokenInvalid):
		util.BadRequest(c, "Invalid or expired reset token")
	case err != nil:
		util.LogInternalError(c, err)
	default:
		ctrl.setSessionCookie(c, result.Token)
		util.Success(c, gin.H{
			"user":  result.User,
			"token": result.Token,
		})
	}
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	util.Success(c, middleware.CurrentUser(c))
}
