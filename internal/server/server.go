// Package server assembles the gin engine: ambient middleware, ops endpoints and the API routes.
package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/workshop-hub-api/api/swagger"
	"github.com/noah-isme/workshop-hub-api/internal/handler"
	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/service"
	"github.com/noah-isme/workshop-hub-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/workshop-hub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/workshop-hub-api/pkg/middleware/requestid"
)

// Options carries the ambient collaborators of the router.
type Options struct {
	APIPrefix      string
	EnableDocs     bool
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Passes         middleware.PassValidator
	ChatLimiter    *middleware.RateLimiter
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Views        *handler.ViewHandler
	Registration *handler.RegistrationHandler
	Chat         *handler.ChatHandler
	Feedback     *handler.FeedbackHandler
	Exports      *handler.ExportHandler
	Metrics      *handler.MetricsHandler
}

// NewRouter builds the engine.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	prefix := "/" + strings.Trim(opts.APIPrefix, "/")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(prefix)
	api.GET("/metrics/summary", h.Metrics.Snapshot)

	api.GET("/views/current", h.Views.Current)
	api.PUT("/views/current", h.Views.Select)
	api.GET("/views/:view", h.Views.Show)
	api.GET("/participants", h.Views.Participants)
	api.POST("/modules/:id/select", h.Views.SelectModule)
	api.GET("/events", h.Views.Events)

	reg := api.Group("/registration")
	reg.GET("", h.Registration.State)
	reg.PUT("/fields/:field", h.Registration.UpdateField)
	reg.POST("/fields/:field/blur", h.Registration.BlurField)
	reg.POST("/next", h.Registration.Next)
	reg.POST("/back", h.Registration.Back)
	reg.POST("/submit", h.Registration.Submit)
	reg.POST("/resend-code", h.Registration.ResendCode)

	api.GET("/chat", h.Chat.Transcript)
	api.POST("/chat/messages", middleware.RateLimit(opts.ChatLimiter), h.Chat.Send)

	api.POST("/feedback", middleware.OptionalPass(opts.Passes), h.Feedback.Submit)
	api.GET("/feedback/stats", h.Feedback.Stats)

	api.POST("/summary/export", h.Exports.Summary)
	api.POST("/certificate", middleware.RequirePass(opts.Passes), h.Exports.Certificate)
	api.GET("/downloads/:token", h.Exports.Download)

	return r
}
