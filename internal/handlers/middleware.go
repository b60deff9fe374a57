package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travro/internal/apperr"
	"travro/internal/models"
)

const ctxUserKey = "user"

// requireUser resolves the bearer token to a stored user. Every failure gets
// the same 401 body.
func (h *Handler) requireUser(c *gin.Context) {
	user, err := h.services.Authorize(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_rejected", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: apperr.ErrUnauthenticated.Error()})
		return
	}

	// store in Gin context
	c.Set(ctxUserKey, user)
	c.Next()
}

// currentUser returns the user stored by requireUser.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// loginRateLimit throttles login attempts per client IP. A failing limiter
// backend lets the request through.
func (h *Handler) loginRateLimit(c *gin.Context) {
	if h.limiter == nil {
		c.Next()
		return
	}
	ok, err := h.limiter.Allow(c.Request.Context(), c.ClientIP())
	if err != nil {
		if h.log != nil {
			h.log.Warnw("rate_limit_backend_failed", "err", err)
		}
		c.Next()
		return
	}
	if !ok {
		h.writeError(c, "login_rate_limited", apperr.ErrRateLimited)
		return
	}
	c.Next()
}

func (h *Handler) cors(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", h.allowedOrigin)
	header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	header.Add("Vary", "Origin")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
