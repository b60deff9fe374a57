package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travro/internal/service"
)

type profileUpdateRequest struct {
	Destination *string `json:"destination"`
}

// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  models.Profile
// @Failure      401  {object}  errorResponse
// @Router       /api/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Profile.Get(currentUser(c)))
}

// @Summary      Update profile
// @Description  Change destination and/or photo. Send multipart form data, or JSON when only the destination changes.
// @Tags         profile
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        destination  formData  string  false  "New destination"
// @Param        image        formData  file    false  "New profile photo"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var in service.ProfileInput

	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var body profileUpdateRequest
		if ok := h.bindJSONOrBadRequest(c, &body); !ok {
			return
		}
		in.Destination = body.Destination
	} else {
		if d, ok := c.GetPostForm("destination"); ok {
			in.Destination = &d
		}
		image, closeImage, err := h.formImage(c, "image")
		if err != nil {
			h.writeError(c, "profile_bad_image", err)
			return
		}
		defer closeImage()
		in.Image = image
	}

	updated, err := h.services.Profile.Update(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.writeError(c, "profile_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(updated))
}
