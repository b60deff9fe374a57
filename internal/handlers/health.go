package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// @Summary      Health
// @Description  Reports whether the credential store is reachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	st := h.services.Health.Status(c.Request.Context())
	status := "disconnected"
	if st.Connected {
		status = "connected"
	}
	c.JSON(http.StatusOK, healthResponse{Status: status, Message: st.Message})
}
