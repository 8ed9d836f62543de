package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	listingsvc "stayhub/internal/app/listings"
	reservationsvc "stayhub/internal/app/reservations"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/shared/money"
)

type HostListingHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	UploadPhoto(c *gin.Context)
	Delete(c *gin.Context)
	Reservations(c *gin.Context)
}

// HostListingHandler serves the host console: listing management and the
// reservations arriving for the host's properties.
type HostListingHandler struct {
	Listings        *listingsvc.Service
	ReservationsSvc *reservationsvc.Service
	Currency        string
	Logger          *slog.Logger
}

type listingRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PricePerNight int64  `json:"price_per_night"`
	MaxGuests     int    `json:"max_guests"`
}

func (h HostListingHandler) List(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	list, err := h.Listings.ListByHost(c.Request.Context(), listing.HostID(p.ID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": newListingViews(list)})
}

func (h HostListingHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rate, err := money.New(req.PricePerNight, h.currency())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	l, err := h.Listings.Create(c.Request.Context(), listingsvc.CreateParams{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		PricePerNight: rate,
		MaxGuests:     req.MaxGuests,
		Actor:         p.actor(),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, newListingView(l))
}

func (h HostListingHandler) Update(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rate, err := money.New(req.PricePerNight, h.currency())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	l, err := h.Listings.Update(c.Request.Context(), listing.ListingID(c.Param("id")), listing.UpdateParams{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		PricePerNight: rate,
		MaxGuests:     req.MaxGuests,
	}, p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newListingView(l))
}

func (h HostListingHandler) UploadPhoto(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	l, err := h.Listings.UploadPhoto(c.Request.Context(), listing.ListingID(c.Param("id")), p.actor(), file, contentType)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newListingView(l))
}

func (h HostListingHandler) Delete(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	if err := h.Listings.Delete(c.Request.Context(), listing.ListingID(c.Param("id")), p.actor()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HostListingHandler) Reservations(c *gin.Context) {
	p, ok := requireRole(c, "host")
	if !ok {
		return
	}
	list, err := h.ReservationsSvc.ListByHost(c.Request.Context(), listing.HostID(p.ID))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": newReservationViews(list)})
}

func (h HostListingHandler) currency() string {
	if h.Currency != "" {
		return h.Currency
	}
	return "USD"
}

var _ HostListingHTTP = HostListingHandler{}
