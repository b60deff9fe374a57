package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Explore
// @Description  Travelers whose destination is within the configured radius (400 km by default) of yours.
// @Tags         explore
// @Produce      json
// @Success      200  {array}   models.NearbyUser
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/explore [get]
// @Security     BearerAuth
func (h *Handler) explore(c *gin.Context) {
	nearby, err := h.services.Explore(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, "explore_failed", err)
		return
	}
	c.JSON(http.StatusOK, nearby)
}

// @Summary      City suggestions
// @Description  Up to five city names containing the query, case-insensitively.
// @Tags         explore
// @Produce      json
// @Param        query  query  string  false  "Partial city name"
// @Success      200  {array}   string
// @Router       /api/city-suggestions [get]
func (h *Handler) citySuggestions(c *gin.Context) {
	names, err := h.services.Suggest(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.writeError(c, "city_suggestions_failed", err)
		return
	}
	c.JSON(http.StatusOK, names)
}
