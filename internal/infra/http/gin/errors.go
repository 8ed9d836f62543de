package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	applistings "stayhub/internal/app/listings"
	"stayhub/internal/domain/authz"
	"stayhub/internal/domain/availability"
	"stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/pricing"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/approval"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
	domainuser "stayhub/internal/domain/user"
	mongodb "stayhub/internal/infra/db/mongo"
)

// respondError maps domain sentinel errors onto HTTP statuses. Anything it
// does not recognize is logged and reported as a 500 without leaking details.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, listing.ErrNotFound),
		errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, hostapp.ErrNotFound),
		errors.Is(err, domainuser.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, authz.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})

	case errors.Is(err, reservation.ErrListingUnavailable),
		errors.Is(err, reservation.ErrListingNotBookable),
		errors.Is(err, reservation.ErrTerminalState),
		errors.Is(err, approval.ErrInvalidTransition),
		errors.Is(err, hostapp.ErrAlreadyPending),
		errors.Is(err, applistings.ErrActiveReservations),
		errors.Is(err, domainuser.ErrEmailAlreadyUsed),
		errors.Is(err, mongodb.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, reservation.ErrCheckInInPast),
		errors.Is(err, reservation.ErrInvalidGuests),
		errors.Is(err, reservation.ErrCapacityExceeded),
		errors.Is(err, reservation.ErrInvalidStatus),
		errors.Is(err, approval.ErrInvalidStatus),
		errors.Is(err, pricing.ErrInvalidRate),
		errors.Is(err, money.ErrInvalidCurrency),
		errors.Is(err, money.ErrCurrencyMismatch),
		errors.Is(err, listing.ErrTitleRequired),
		errors.Is(err, listing.ErrGuestsLimit),
		errors.Is(err, listing.ErrNightlyRate),
		errors.Is(err, hostapp.ErrPhoneRequired),
		errors.Is(err, hostapp.ErrMotivationShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, availability.ErrCalendarCorrupted):
		if logger != nil {
			logger.Error("calendar invariant violated", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})

	default:
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
