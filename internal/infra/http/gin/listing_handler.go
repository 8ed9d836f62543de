package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	listingsvc "stayhub/internal/app/listings"
	reservationsvc "stayhub/internal/app/reservations"
	"stayhub/internal/domain/listing"
)

type ListingHTTP interface {
	Catalog(c *gin.Context)
	Get(c *gin.Context)
	Calendar(c *gin.Context)
}

// ListingHandler serves the public, read-only listing surface.
type ListingHandler struct {
	Listings     *listingsvc.Service
	Reservations *reservationsvc.Service
	Logger       *slog.Logger
}

func (h ListingHandler) Catalog(c *gin.Context) {
	list, err := h.Listings.Catalog(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": newListingViews(list)})
}

func (h ListingHandler) Get(c *gin.Context) {
	p, _ := currentPrincipal(c)
	l, err := h.Listings.Get(c.Request.Context(), listing.ListingID(c.Param("id")), p.actor())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, newListingView(l))
}

// Calendar returns the listing's occupied intervals and the flat set of
// booked days, for client-side date pickers.
func (h ListingHandler) Calendar(c *gin.Context) {
	id := listing.ListingID(c.Param("id"))
	intervals, err := h.Reservations.BookedIntervals(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	dates, err := h.Reservations.BookedDates(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	outIntervals := make([]intervalView, 0, len(intervals))
	for _, iv := range intervals {
		outIntervals = append(outIntervals, intervalView{
			CheckIn:  iv.CheckIn.Format(dateLayout),
			CheckOut: iv.CheckOut.Format(dateLayout),
		})
	}
	outDates := make([]string, 0, len(dates))
	for _, d := range dates {
		outDates = append(outDates, d.Format(dateLayout))
	}
	c.JSON(http.StatusOK, gin.H{
		"listing_id":   string(id),
		"intervals":    outIntervals,
		"booked_dates": outDates,
	})
}

var _ ListingHTTP = ListingHandler{}
