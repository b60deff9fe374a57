package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"travro/internal/logger"
	"travro/internal/ratelimit"
	"travro/internal/service"
)

const defaultMaxUploadBytes = 5 << 20 // 5 MB

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	limiter        ratelimit.Limiter
	uploadsDir     string
	allowedOrigin  string
	maxUploadBytes int64
}

// Option customizes a Handler.
type Option func(*Handler)

// WithLoginLimiter throttles POST /api/login per client IP.
func WithLoginLimiter(l ratelimit.Limiter) Option {
	return func(h *Handler) { h.limiter = l }
}

// WithUploads serves locally stored photos from dir under /uploads.
func WithUploads(dir string) Option {
	return func(h *Handler) { h.uploadsDir = dir }
}

// WithCORS allows browser calls from origin.
func WithCORS(origin string) Option {
	return func(h *Handler) { h.allowedOrigin = origin }
}

// WithMaxUploadBytes caps the size of an uploaded photo.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, maxUploadBytes: defaultMaxUploadBytes}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = h.maxUploadBytes
	if h.allowedOrigin != "" {
		router.Use(h.cors)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.uploadsDir != "" {
		router.StaticFS("/uploads", http.Dir(h.uploadsDir))
	}

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/city-suggestions", h.citySuggestions)

		h.registerAuthRoutes(api)
		h.registerProtectedRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	api.POST("/register", h.register)
	api.POST("/login", h.loginRateLimit, h.login)
}

func (h *Handler) registerProtectedRoutes(api *gin.RouterGroup) {
	protected := api.Group("", h.requireUser)
	{
		protected.GET("/profile", h.getProfile)
		protected.PUT("/profile", h.updateProfile)
		protected.GET("/explore", h.explore)
	}

	v1 := api.Group("/v1")
	{
		v1.GET("/explore/ws", wsToken, h.requireUser, h.wsExplore)
		v1.GET("/activity", h.requireUser, h.getActivity)
	}
}
