package models

// InputKind classifies one inbound user action from the messaging transport.
type InputKind string

const (
	InputText   InputKind = "text"   // free-form text entry
	InputSelect InputKind = "select" // selection from a previously offered option set
	InputAction InputKind = "action" // flow control: start, cancel, edit
)

// Flow-control action values.
const (
	ActionStartNew = "new"
	ActionCancel   = "cancel"
)

// InputEvent is one structured user action delivered by the transport.
type InputEvent struct {
	SessionID  string    `json:"sessionId" binding:"required"`
	OwnerID    string    `json:"ownerId"`
	Kind       InputKind `json:"kind" binding:"required"`
	Text       string    `json:"text,omitempty"`
	Value      string    `json:"value,omitempty"`
	PropertyID string    `json:"propertyId,omitempty"`
}

// PromptOption is one bounded choice offered back to the user.
type PromptOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Prompt is the engine's reply after each accepted or rejected input.
type Prompt struct {
	Text    string         `json:"text"`
	Options []PromptOption `json:"options,omitempty"`

	// Done marks a terminal reply: the session was committed or cancelled.
	Done bool `json:"done,omitempty"`

	// ReservationID is set on the committed terminal reply.
	ReservationID string `json:"reservationId,omitempty"`
}
