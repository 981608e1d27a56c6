package models

// DialogStep identifies one node in the reservation dialogue state machine.
type DialogStep string

const (
	StepGuestName  DialogStep = "guest_name"
	StepCheckIn    DialogStep = "check_in"
	StepCheckOut   DialogStep = "check_out"
	StepRoomSelect DialogStep = "room_select"
	StepAdults     DialogStep = "adults"
	StepChildren   DialogStep = "children"
	StepAmount     DialogStep = "amount"
	StepConfirm    DialogStep = "confirm"
)

// ReservationDraft is the data accumulated across dialogue steps. Each step
// writes only the fields it owns; commit preconditions check the full set.
type ReservationDraft struct {
	PropertyID string  `json:"propertyId"`
	GuestName  string  `json:"guestName,omitempty"`
	CheckIn    string  `json:"checkIn,omitempty"`
	CheckOut   string  `json:"checkOut,omitempty"`
	RoomID     string  `json:"roomId,omitempty"`
	RoomNo     string  `json:"roomNo,omitempty"`
	Adults     int     `json:"adults,omitempty"`
	Children   int     `json:"children,omitempty"`
	Amount     float64 `json:"amount,omitempty"`

	// EditTargetID is set in modify flows: the reservation being edited.
	EditTargetID string `json:"editTargetId,omitempty"`

	// RoomsOffered is the availability snapshot presented at room selection.
	// A selection outside this list is re-resolved before being rejected.
	RoomsOffered []RoomOption `json:"roomsOffered,omitempty"`

	// ConfirmationToken binds the confirm action to the summary that issued it.
	ConfirmationToken string `json:"confirmationToken,omitempty"`
}

// GuestSession holds one conversation's progress through the dialogue.
// Exactly one live session exists per SessionID; starting a new flow
// overwrites any stale one.
type GuestSession struct {
	SessionID string           `json:"sessionId"`
	OwnerID   string           `json:"ownerId"`
	Step      DialogStep       `json:"step"`
	Data      ReservationDraft `json:"data"`

	// CalendarMonth is the month currently shown by a date step, YYYY-MM.
	// Paging it never advances the step.
	CalendarMonth string `json:"calendarMonth,omitempty"`

	// LastInput is the last accepted unambiguous selection. A repeat of the
	// same selection is replayed as a no-op so duplicate transport delivery
	// is safe. Free-text and day repeats are re-validated by the current
	// step instead, since their meaning is not tied to one step.
	LastInput string `json:"lastInput,omitempty"`
}
