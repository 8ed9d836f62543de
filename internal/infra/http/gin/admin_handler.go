package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	authsvc "stayhub/internal/app/auth"
	hostappsvc "stayhub/internal/app/hostapps"
	listingsvc "stayhub/internal/app/listings"
	reservationsvc "stayhub/internal/app/reservations"
	"stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/approval"
	domainuser "stayhub/internal/domain/user"
)

type AdminHTTP interface {
	Listings(c *gin.Context)
	ReviewListing(c *gin.Context)
	DeleteListing(c *gin.Context)
	Reservations(c *gin.Context)
	DeleteReservation(c *gin.Context)
	Applications(c *gin.Context)
	ReviewApplication(c *gin.Context)
	SetUserBan(c *gin.Context)
}

// AdminHandler is the moderation console: approval queues, reversals and
// account suspension.
type AdminHandler struct {
	ListingsSvc     *listingsvc.Service
	ReservationsSvc *reservationsvc.Service
	ApplicationsSvc *hostappsvc.Service
	Auth            *authsvc.Service
	Logger          *slog.Logger
}

type reviewRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type banRequest struct {
	Banned bool `json:"banned"`
}

func (h AdminHandler) Listings(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	list, err := h.ListingsSvc.ListAll(c.Request.Context(), p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": newListingViews(list)})
}

func (h AdminHandler) ReviewListing(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	status, err := approval.Parse(req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	l, err := h.ListingsSvc.SetApproval(c.Request.Context(), listing.ListingID(c.Param("id")), status, p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newListingView(l))
}

func (h AdminHandler) DeleteListing(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if err := h.ListingsSvc.Delete(c.Request.Context(), listing.ListingID(c.Param("id")), p.actor()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) Reservations(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	list, err := h.ReservationsSvc.ListAll(c.Request.Context(), p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": newReservationViews(list)})
}

func (h AdminHandler) DeleteReservation(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	if err := h.ReservationsSvc.Delete(c.Request.Context(), reservation.ReservationID(c.Param("id")), p.actor()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) Applications(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	list, err := h.ApplicationsSvc.ListAll(c.Request.Context(), p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": newApplicationViews(list)})
}

func (h AdminHandler) ReviewApplication(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	status, err := approval.Parse(req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	app, err := h.ApplicationsSvc.Review(c.Request.Context(), hostapp.ApplicationID(c.Param("id")), status, req.Notes, p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationView(app))
}

func (h AdminHandler) SetUserBan(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	u, err := h.Auth.SetBanned(c.Request.Context(), domainuser.ID(c.Param("id")), req.Banned, p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newUserProfile(u))
}

var _ AdminHTTP = AdminHandler{}
