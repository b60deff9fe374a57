package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travro/internal/apperr"
	"travro/internal/models"
	"travro/internal/service"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userResponse is a user as returned to its owner.
type userResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DOB         string    `json:"dob"`
	Destination string    `json:"destination"`
	ImageRef    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		DOB:         u.DOB(),
		Destination: u.Destination,
		ImageRef:    u.ImageRef,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.writeError(c, "bad_request_body", fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
		return false
	}
	return true
}

// @Summary      Register
// @Description  Create an account with a profile photo. Returns the user and a bearer token.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        username     formData  string  true  "Username"
// @Param        password     formData  string  true  "Password"
// @Param        dob          formData  string  true  "Date of birth (YYYY-MM-DD)"  example(1990-05-01)
// @Param        destination  formData  string  true  "Destination city"
// @Param        image        formData  file    true  "Profile photo"
// @Success      201  {object}  authResponse
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	image, closeImage, err := h.formImage(c, "image")
	if err != nil {
		h.writeError(c, "register_bad_image", err)
		return
	}
	defer closeImage()

	user, token, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username:    c.PostForm("username"),
		Password:    c.PostForm("password"),
		DOB:         c.PostForm("dob"),
		Destination: c.PostForm("destination"),
		Image:       image,
	})
	if err != nil {
		h.writeError(c, "register_failed", err)
		return
	}

	if h.log != nil {
		h.log.Infow("user_registered", "user_id", user.ID)
	}
	c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user), Token: token})
}

// @Summary      Login
// @Description  Exchange credentials for a bearer token. Unknown usernames and wrong passwords get the same answer.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.writeError(c, "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, authResponse{User: toUserResponse(user), Token: token})
}
