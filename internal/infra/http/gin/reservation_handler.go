package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	reservationsvc "stayhub/internal/app/reservations"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/reservation"
)

type ReservationHTTP interface {
	Create(c *gin.Context)
	SetStatus(c *gin.Context)
	Cancel(c *gin.Context)
	ListMine(c *gin.Context)
}

type ReservationHandler struct {
	Service *reservationsvc.Service
	Logger  *slog.Logger
}

type createReservationRequest struct {
	ListingID string `json:"listing_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Guests    int    `json:"guests"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}
	res, err := h.Service.Create(c.Request.Context(), reservationsvc.CreateParams{
		ListingID: listing.ListingID(req.ListingID),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    req.Guests,
		Actor:     p.actor(),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, newReservationView(res))
}

// SetStatus confirms or cancels a reservation. Who may do what is decided by
// the authorization guard, not here.
func (h ReservationHandler) SetStatus(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	status, err := reservation.ParseStatus(req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	res, err := h.Service.SetStatus(c.Request.Context(), reservation.ReservationID(c.Param("id")), status, p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newReservationView(res))
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	res, err := h.Service.Cancel(c.Request.Context(), reservation.ReservationID(c.Param("id")), p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newReservationView(res))
}

func (h ReservationHandler) ListMine(c *gin.Context) {
	p, ok := requireRole(c, "")
	if !ok {
		return
	}
	list, err := h.Service.ListByGuest(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": newReservationViews(list)})
}

var _ ReservationHTTP = ReservationHandler{}
