package ginserver

import (
	"time"

	"stayhub/internal/domain/hostapp"
	"stayhub/internal/domain/listing"
	"stayhub/internal/domain/reservation"
	domainuser "stayhub/internal/domain/user"
)

type userProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	Banned    bool      `json:"banned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userProfile `json:"user"`
}

type moneyView struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type listingView struct {
	ID            string    `json:"id"`
	HostID        string    `json:"host_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city"`
	PricePerNight moneyView `json:"price_per_night"`
	MaxGuests     int       `json:"max_guests"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type reservationView struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	GuestID   string    `json:"guest_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Nights    int       `json:"nights"`
	Guests    int       `json:"guests"`
	Total     moneyView `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type intervalView struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

type applicationView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	Motivation  string    `json:"motivation"`
	Experience  string    `json:"experience,omitempty"`
	Status      string    `json:"status"`
	AdminNotes  string    `json:"admin_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func newUserProfile(u *domainuser.User) userProfile {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	return userProfile{
		ID:        string(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Roles:     roles,
		Banned:    u.Banned,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newListingView(l *listing.Listing) listingView {
	return listingView{
		ID:          string(l.ID),
		HostID:      string(l.Host),
		Title:       l.Title,
		Description: l.Description,
		Address:     l.Address,
		City:        l.City,
		PricePerNight: moneyView{
			Amount:   l.PricePerNight.Amount,
			Currency: l.PricePerNight.Currency,
		},
		MaxGuests: l.MaxGuests,
		PhotoURL:  l.PhotoURL,
		Status:    string(l.Approval),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func newListingViews(list []*listing.Listing) []listingView {
	out := make([]listingView, 0, len(list))
	for _, l := range list {
		out = append(out, newListingView(l))
	}
	return out
}

func newReservationView(r *reservation.Reservation) reservationView {
	return reservationView{
		ID:        string(r.ID),
		ListingID: string(r.ListingID),
		GuestID:   r.GuestID,
		CheckIn:   r.Range.CheckIn.Format(dateLayout),
		CheckOut:  r.Range.CheckOut.Format(dateLayout),
		Nights:    r.Range.Nights(),
		Guests:    r.Guests,
		Total: moneyView{
			Amount:   r.Total.Amount,
			Currency: r.Total.Currency,
		},
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newReservationViews(list []*reservation.Reservation) []reservationView {
	out := make([]reservationView, 0, len(list))
	for _, r := range list {
		out = append(out, newReservationView(r))
	}
	return out
}

func newApplicationView(a *hostapp.Application) applicationView {
	return applicationView{
		ID:          string(a.ID),
		UserID:      string(a.UserID),
		PhoneNumber: a.PhoneNumber,
		Address:     a.Address,
		City:        a.City,
		Motivation:  a.Motivation,
		Experience:  a.Experience,
		Status:      string(a.Status),
		AdminNotes:  a.AdminNotes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func newApplicationViews(list []*hostapp.Application) []applicationView {
	out := make([]applicationView, 0, len(list))
	for _, a := range list {
		out = append(out, newApplicationView(a))
	}
	return out
}
