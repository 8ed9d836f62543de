package ginserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayhub/internal/infra/config"
	"stayhub/internal/infra/obs"
)

type Handlers struct {
	Auth            AuthHTTP
	Listing         ListingHTTP
	HostListing     HostListingHTTP
	Reservation     ReservationHTTP
	HostApplication HostApplicationHTTP
	Admin           AdminHTTP
	AuthMiddleware  gin.HandlerFunc
}

func NewServer(cfg config.Config, logger *slog.Logger, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if logger != nil {
		logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obs.RequestID())
	if logger != nil {
		router.Use(obs.Logger(logger))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-Id",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
		api.GET("/listings/:id", h.Listing.Get)
		api.GET("/listings/:id/calendar", h.Listing.Calendar)
	}
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Create)
		api.PATCH("/reservations/:id/status", h.Reservation.SetStatus)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		api.GET("/me/reservations", h.Reservation.ListMine)
	}
	if h.HostListing != nil {
		hostGroup := api.Group("/host")
		hostGroup.GET("/listings", h.HostListing.List)
		hostGroup.POST("/listings", h.HostListing.Create)
		hostGroup.PUT("/listings/:id", h.HostListing.Update)
		hostGroup.POST("/listings/:id/photo", h.HostListing.UploadPhoto)
		hostGroup.DELETE("/listings/:id", h.HostListing.Delete)
		hostGroup.GET("/reservations", h.HostListing.Reservations)
	}
	if h.HostApplication != nil {
		api.POST("/host/applications", h.HostApplication.Apply)
		api.GET("/me/applications", h.HostApplication.ListMine)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.GET("/listings", h.Admin.Listings)
		adminGroup.POST("/listings/:id/review", h.Admin.ReviewListing)
		adminGroup.DELETE("/listings/:id", h.Admin.DeleteListing)
		adminGroup.GET("/reservations", h.Admin.Reservations)
		adminGroup.DELETE("/reservations/:id", h.Admin.DeleteReservation)
		adminGroup.GET("/applications", h.Admin.Applications)
		adminGroup.POST("/applications/:id/review", h.Admin.ReviewApplication)
		adminGroup.POST("/users/:id/ban", h.Admin.SetUserBan)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
