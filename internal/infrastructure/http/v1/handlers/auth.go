package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/domain/auth"
	"dukapos/internal/infrastructure/http/v1/dto"
	"dukapos/internal/infrastructure/http/v1/middleware"
	"dukapos/internal/infrastructure/storage/postgres"
	"dukapos/pkg/logger"
)

// AuthHandler serves authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service      *auth.Service
	activity     *postgres.ActivityLog
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler. cookieMaxAge is in seconds.
func NewAuthHandler(base *BaseHandler, service *auth.Service, activity *postgres.ActivityLog, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		service:      service,
		activity:     activity,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// Register handles POST /auth/register. Only admins may create users,
// except for the very first user which bootstraps the system and is
// always created as an admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	hasUsers, err := h.service.HasUsers(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	role := req.Role
	if !hasUsers {
		role = appctx.RoleAdmin
	} else if u := appctx.GetUser(ctx); u == nil || !u.IsAdmin() {
		h.Error(c, apperror.NewForbidden("only admins can register users"))
		return
	}

	user, err := h.service.Register(ctx, auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Login handles POST /auth/login. On success the access token is
// returned in the body and also set as a cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token.AccessToken, h.cookieMaxAge, "/", "", h.cookieSecure, true)

	if h.activity != nil {
		ctx := appctx.WithUser(c.Request.Context(), user.UserContext())
		if err := h.activity.RecordChange(ctx, "user", user.ID, postgres.ActivityLogin, gin.H{"email": user.Email}); err != nil {
			logger.Warn(ctx, "record login activity failed", "user_id", user.ID, "error", err)
		}
	}

	h.OK(c, dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		User:        dto.FromUser(user),
	})
}

// Logout handles POST /auth/logout by clearing the token cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookieSecure, true)
	h.Success(c, "logged out")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := id.Parse(h.GetUserID(c))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromUser(user))
}
