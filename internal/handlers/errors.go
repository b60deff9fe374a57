package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travro/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err onto the taxonomy status and a client-safe message.
// Server-side failures are logged with full detail.
func (h *Handler) writeError(c *gin.Context, event string, err error) {
	status := apperr.HTTPStatus(err)
	if h.log != nil {
		if status >= http.StatusInternalServerError {
			h.log.Errorw(event, "err", err, "path", c.FullPath())
		} else {
			h.log.Infow(event, "err", err, "path", c.FullPath())
		}
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: apperr.Message(err)})
}
