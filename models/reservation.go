package models

import "time"

// DateLayout is the calendar-day format used for all reservation dates.
// ISO dates in this layout compare correctly as plain strings.
const DateLayout = "2006-01-02"

// Reservation statuses.
const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusUpdated   = "updated"
)

// Reservation is the durable room allocation record. The interval is half-open:
// check-in inclusive, check-out exclusive, so back-to-back stays never collide.
type Reservation struct {
	ID         string    `bson:"id" json:"id"`
	PropertyID string    `bson:"property_id" json:"property_id"`
	RoomID     string    `bson:"room_id" json:"room_id"`
	RoomNo     string    `bson:"room_no" json:"room_no"`
	GuestName  string    `bson:"guest_name" json:"guest_name"`
	CheckIn    string    `bson:"check_in" json:"check_in"`   // YYYY-MM-DD
	CheckOut   string    `bson:"check_out" json:"check_out"` // YYYY-MM-DD
	Adults     int       `bson:"adults" json:"adults"`
	Children   int       `bson:"children" json:"children"`
	Amount     float64   `bson:"amount" json:"amount"`
	Cancelled  bool      `bson:"cancelled" json:"cancelled"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// AvailabilityQuery describes one availability lookup. ExcludeReservationID is
// set when editing an existing reservation so it never conflicts with itself.
type AvailabilityQuery struct {
	PropertyID           string `json:"propertyId"`
	CheckIn              string `json:"checkIn"`
	CheckOut             string `json:"checkOut"`
	ExcludeReservationID string `json:"excludeReservationId,omitempty"`
}

// Overlaps reports whether the half-open intervals [CheckIn, CheckOut) of the
// reservation and the query touch the same nights.
func (r Reservation) Overlaps(checkIn, checkOut string) bool {
	return r.CheckIn < checkOut && checkIn < r.CheckOut
}
