package models

// ReservationNotifyPayload is the task payload handed to the notification
// fan-out after a reservation commit. Delivery never blocks the commit path.
type ReservationNotifyPayload struct {
	ReservationID string  `json:"reservationId"`
	PropertyID    string  `json:"propertyId"`
	RoomNo        string  `json:"roomNo"`
	GuestName     string  `json:"guestName"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
	Amount        float64 `json:"amount"`
	Updated       bool    `json:"updated"`
}
