package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// CookieOptions controls the session cookie
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieOptions
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, cookie CookieOptions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Login godoc
// @Summary      Log in with the shared password
// @Description  Starts a session and sets an HTTP-only session cookie valid for 24 hours
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Shared password"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Malformed body"
// @Failure      401 {object} response.ErrorResponse "Invalid password"
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.TTL.Seconds()))
	response.SendSuccess(c, http.StatusOK)
}

// Logout godoc
// @Summary      Log out
// @Description  Ends the current session, if any, and clears the cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	h.setCookie(c, "", -1)
	response.SendSuccess(c, http.StatusOK)
}

// Status godoc
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.AuthStatusResponse
// @Router       /auth-status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	c.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: h.authService.Status(c.Request.Context(), token),
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
