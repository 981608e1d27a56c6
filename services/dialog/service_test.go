package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reservationRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/reservation"
	roomRepo "github.com/rahul-s-rajput/voyageur-nest-sub004/database/repository/room"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/booking"
)

func testDialogRooms() []models.Room {
	return []models.Room{
		{ID: "r101", PropertyID: "p1", RoomNo: "101", RoomType: "double", MaxOccupancy: 2},
		{ID: "r102", PropertyID: "p1", RoomNo: "102", RoomType: "family", MaxOccupancy: 4},
		{ID: "r103", PropertyID: "p1", RoomNo: "103", RoomType: "double", MaxOccupancy: 2},
	}
}

func newTestDialog(reservations ...models.Reservation) *DefaultDialogService {
	reservationsRepo := reservationRepo.NewMemoryReservationRepo(reservations...)
	engine := &booking.DefaultReservationEngine{
		Rooms:           roomRepo.NewMemoryRoomRepo(testDialogRooms()...),
		Reservations:    reservationsRepo,
		DefaultCapacity: 6,
	}
	return &DefaultDialogService{
		Store:        NewMemorySessionStore(),
		Engine:       engine,
		Reservations: reservationsRepo,
	}
}

func sendAction(t *testing.T, svc *DefaultDialogService, sessionID, value, propertyID string) *models.Prompt {
	t.Helper()
	prompt, err := svc.HandleInput(context.Background(), models.InputEvent{
		SessionID: sessionID, Kind: models.InputAction, Value: value, PropertyID: propertyID,
	})
	require.NoError(t, err)
	return prompt
}

func sendText(t *testing.T, svc *DefaultDialogService, sessionID, text string) *models.Prompt {
	t.Helper()
	prompt, err := svc.HandleInput(context.Background(), models.InputEvent{
		SessionID: sessionID, Kind: models.InputText, Text: text,
	})
	require.NoError(t, err)
	return prompt
}

func sendSelect(t *testing.T, svc *DefaultDialogService, sessionID, value string) *models.Prompt {
	t.Helper()
	prompt, err := svc.HandleInput(context.Background(), models.InputEvent{
		SessionID: sessionID, Kind: models.InputSelect, Value: value,
	})
	require.NoError(t, err)
	return prompt
}

// confirmValue extracts the confirm option value from a summary prompt.
func confirmValue(t *testing.T, prompt *models.Prompt) string {
	t.Helper()
	for _, opt := range prompt.Options {
		if strings.HasPrefix(opt.Value, "confirm:") {
			return opt.Value
		}
	}
	t.Fatalf("prompt has no confirm option: %q", prompt.Text)
	return ""
}

func optionValues(prompt *models.Prompt) []string {
	values := make([]string, 0, len(prompt.Options))
	for _, opt := range prompt.Options {
		values = append(values, opt.Value)
	}
	return values
}

// driveToConfirm walks a fresh session through the whole flow up to the
// summary prompt and returns it.
func driveToConfirm(t *testing.T, svc *DefaultDialogService, sessionID, guest, checkIn, checkOut, roomValue string) *models.Prompt {
	t.Helper()
	sendAction(t, svc, sessionID, models.ActionStartNew, "p1")
	sendText(t, svc, sessionID, guest)
	sendSelect(t, svc, sessionID, "day:"+checkIn)
	sendSelect(t, svc, sessionID, "day:"+checkOut)
	sendSelect(t, svc, sessionID, roomValue)
	sendSelect(t, svc, sessionID, "adults:2")
	sendSelect(t, svc, sessionID, "children:0")
	return sendText(t, svc, sessionID, "1500")
}

func TestFullReservationDialogue(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	prompt := sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	assert.Contains(t, prompt.Text, "guest's name")

	prompt = sendText(t, svc, "s1", "Alice")
	assert.Contains(t, prompt.Text, "check-in")

	prompt = sendSelect(t, svc, "s1", "day:2025-06-01")
	assert.Contains(t, prompt.Text, "check-out")

	prompt = sendSelect(t, svc, "s1", "day:2025-06-03")
	values := optionValues(prompt)
	assert.Contains(t, values, "room:r101")
	assert.Contains(t, values, "room:r102")
	assert.Contains(t, values, "room:r103")

	prompt = sendSelect(t, svc, "s1", "room:r101")
	assert.Contains(t, prompt.Text, "How many adults?")
	// Room 101 sleeps two, so only two choices are offered.
	assert.Equal(t, []string{"adults:1", "adults:2"}, optionValues(prompt))

	prompt = sendSelect(t, svc, "s1", "adults:2")
	assert.Contains(t, prompt.Text, "How many children?")
	assert.Equal(t, []string{"children:0"}, optionValues(prompt))

	prompt = sendSelect(t, svc, "s1", "children:0")
	assert.Contains(t, prompt.Text, "amount")

	prompt = sendText(t, svc, "s1", "1500")
	assert.Contains(t, prompt.Text, "Alice")
	assert.Contains(t, prompt.Text, "101")

	prompt = sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, prompt.Done)
	require.NotEmpty(t, prompt.ReservationID)

	stored, err := svc.Reservations.GetByID(ctx, prompt.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.GuestName)
	assert.Equal(t, "r101", stored.RoomID)
	assert.Equal(t, "2025-06-01", stored.CheckIn)
	assert.Equal(t, "2025-06-03", stored.CheckOut)
	assert.Equal(t, 2, stored.Adults)
	assert.Equal(t, 1500.0, stored.Amount)

	// The terminal reply ends the session.
	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestTwoSessionsRaceForSameRoom(t *testing.T) {
	svc := newTestDialog()

	// Both dialogues see room 101 as free and reach the summary.
	p1 := driveToConfirm(t, svc, "s1", "Alice", "2025-06-01", "2025-06-03", "room:r101")
	p2 := driveToConfirm(t, svc, "s2", "Bob", "2025-06-01", "2025-06-03", "room:r101")

	done := sendSelect(t, svc, "s1", confirmValue(t, p1))
	require.True(t, done.Done)
	require.NotEmpty(t, done.ReservationID)

	// The loser is sent back to room selection with a refreshed list that no
	// longer offers the contested room.
	reprompt := sendSelect(t, svc, "s2", confirmValue(t, p2))
	assert.False(t, reprompt.Done)
	assert.Contains(t, reprompt.Text, "just taken")
	values := optionValues(reprompt)
	assert.NotContains(t, values, "room:r101")
	assert.Contains(t, values, "room:r102")
	assert.Contains(t, values, "room:r103")

	// The loser recovers on another room without re-entering anything else.
	prompt := sendSelect(t, svc, "s2", "room:r102")
	prompt = sendSelect(t, svc, "s2", "adults:2")
	prompt = sendSelect(t, svc, "s2", "children:0")
	prompt = sendText(t, svc, "s2", "1800")
	done = sendSelect(t, svc, "s2", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(context.Background(), done.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "r102", stored.RoomID)
	assert.Equal(t, "Bob", stored.GuestName)
}

func TestChildrenCountBoundedByCapacity(t *testing.T) {
	svc := newTestDialog()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Carol")
	sendSelect(t, svc, "s1", "day:2025-06-01")
	sendSelect(t, svc, "s1", "day:2025-06-03")
	sendSelect(t, svc, "s1", "room:r102") // sleeps four

	prompt := sendSelect(t, svc, "s1", "adults:3")
	assert.Equal(t, []string{"children:0", "children:1"}, optionValues(prompt))

	// A stale or forged count above the remaining capacity is rejected with a
	// reprompt, never defaulted.
	prompt = sendSelect(t, svc, "s1", "children:2")
	assert.Contains(t, prompt.Text, "up to 1 children")
	assert.Equal(t, []string{"children:0", "children:1"}, optionValues(prompt))

	prompt = sendSelect(t, svc, "s1", "children:1")
	assert.Contains(t, prompt.Text, "amount")
}

func TestDuplicateSelectionReplaysPrompt(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")
	sendSelect(t, svc, "s1", "day:2025-06-01")
	sendSelect(t, svc, "s1", "day:2025-06-03")
	first := sendSelect(t, svc, "s1", "room:r101")
	assert.Contains(t, first.Text, "How many adults?")

	// The transport redelivers the accepted room selection. The reply is the
	// current prompt again and the dialogue has not moved.
	replay := sendSelect(t, svc, "s1", "room:r101")
	assert.Contains(t, replay.Text, "How many adults?")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepAdults, sess.Step)
	assert.Equal(t, "r101", sess.Data.RoomID)
	assert.Zero(t, sess.Data.Adults)
}

func TestIdenticalTextAcceptedAtNextStep(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Carol")
	sendSelect(t, svc, "s1", "day:2025-06-01")
	sendSelect(t, svc, "s1", "day:2025-06-03")
	sendSelect(t, svc, "s1", "room:r102")

	// Adults and children both typed as the same free text. The second "2" is
	// a fresh answer for the children step, not a duplicate of the first.
	prompt := sendText(t, svc, "s1", "2")
	assert.Contains(t, prompt.Text, "How many children?")

	prompt = sendText(t, svc, "s1", "2")
	assert.Contains(t, prompt.Text, "amount")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepAmount, sess.Step)
	assert.Equal(t, 2, sess.Data.Adults)
	assert.Equal(t, 2, sess.Data.Children)
}

func TestRepeatedDaySelectionRevalidatedAtCheckOut(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")
	sendSelect(t, svc, "s1", "day:2025-06-03")

	// The same day arriving again is judged by the check-out step's own rule
	// and rejected with its message, not silently replayed.
	prompt := sendSelect(t, svc, "s1", "day:2025-06-03")
	assert.Contains(t, prompt.Text, "Check-out must be after check-in")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepCheckOut, sess.Step)
	assert.Empty(t, sess.Data.CheckOut)
}

func TestCancelOfferedAtSummaryIsHonored(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	summary := driveToConfirm(t, svc, "s1", "Alice", "2025-06-01", "2025-06-03", "room:r101")
	assert.Contains(t, optionValues(summary), models.ActionCancel)
	confirm := confirmValue(t, summary)

	// The summary's cancel control arrives as a selection, like any other
	// offered option.
	done := sendSelect(t, svc, "s1", models.ActionCancel)
	assert.True(t, done.Done)
	assert.Contains(t, done.Text, "cancelled")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)

	// The abandoned summary's token cannot commit anything.
	prompt := sendSelect(t, svc, "s1", confirm)
	assert.Empty(t, prompt.ReservationID)

	overlapping, err := svc.Reservations.GetOverlapping(ctx, "p1", "2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestStartNewViaSelection(t *testing.T) {
	svc := newTestDialog()

	prompt, err := svc.HandleInput(context.Background(), models.InputEvent{
		SessionID: "s1", Kind: models.InputSelect, Value: models.ActionStartNew, PropertyID: "p1",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "guest's name")
}

func TestCancelClearsSession(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")

	prompt := sendAction(t, svc, "s1", models.ActionCancel, "")
	assert.True(t, prompt.Done)
	assert.Contains(t, prompt.Text, "cancelled")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)

	prompt = sendText(t, svc, "s1", "Alice")
	assert.Contains(t, prompt.Text, "No reservation flow in progress")
}

func TestStaleConfirmationTokenFailsClosed(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	driveToConfirm(t, svc, "s1", "Alice", "2025-06-01", "2025-06-03", "room:r101")

	prompt := sendSelect(t, svc, "s1", "confirm:WRONGTOKEN")
	assert.True(t, prompt.Done)
	assert.Contains(t, prompt.Text, "expired")

	// Nothing was written and the session is gone.
	overlapping, err := svc.Reservations.GetOverlapping(ctx, "p1", "2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Empty(t, overlapping)

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSupersededFlowInvalidatesOldToken(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	summary := driveToConfirm(t, svc, "s1", "Alice", "2025-06-01", "2025-06-03", "room:r101")
	oldConfirm := confirmValue(t, summary)

	// The conversation starts over before confirming. The old summary's token
	// must not commit anything against the new flow.
	sendAction(t, svc, "s1", models.ActionStartNew, "p1")

	prompt, err := svc.HandleInput(ctx, models.InputEvent{
		SessionID: "s1", Kind: models.InputSelect, Value: oldConfirm,
	})
	require.NoError(t, err)
	assert.False(t, prompt.Done)
	assert.Empty(t, prompt.ReservationID)

	overlapping, err := svc.Reservations.GetOverlapping(ctx, "p1", "2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestConfirmationTokenSingleUse(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	summary := driveToConfirm(t, svc, "s1", "Alice", "2025-06-01", "2025-06-03", "room:r101")
	confirm := confirmValue(t, summary)

	done := sendSelect(t, svc, "s1", confirm)
	require.True(t, done.Done)

	// Replaying the consumed confirm cannot commit a second reservation.
	replay := sendSelect(t, svc, "s1", confirm)
	assert.Empty(t, replay.ReservationID)

	overlapping, err := svc.Reservations.GetOverlapping(ctx, "p1", "2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)
}

func TestAmountRejectsNonPositiveInput(t *testing.T) {
	svc := newTestDialog()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")
	sendSelect(t, svc, "s1", "day:2025-06-01")
	sendSelect(t, svc, "s1", "day:2025-06-03")
	sendSelect(t, svc, "s1", "room:r101")
	sendSelect(t, svc, "s1", "adults:2")
	sendSelect(t, svc, "s1", "children:0")

	for _, raw := range []string{"abc", "-5", "0", ""} {
		prompt := sendText(t, svc, "s1", raw)
		assert.Equal(t, "Please enter a valid positive amount.", prompt.Text, "input %q", raw)
	}

	prompt := sendText(t, svc, "s1", "1200.50")
	assert.Contains(t, prompt.Text, "1200.50")
	confirmValue(t, prompt)
}

// failingCommitEngine wraps a real engine but fails every commit with an
// infrastructure-style error.
type failingCommitEngine struct {
	booking.ReservationEngine
	err error
}

func (f *failingCommitEngine) Commit(ctx context.Context, draft models.ReservationDraft) (*models.Reservation, error) {
	return nil, f.err
}

func TestCommitInfrastructureFailureIsRetryable(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	summary := driveToConfirm(t, svc, "s1", "Alice", "2025-06-01", "2025-06-03", "room:r101")
	confirm := confirmValue(t, summary)

	realEngine := svc.Engine
	svc.Engine = &failingCommitEngine{ReservationEngine: realEngine, err: errors.New("connection reset")}

	_, err := svc.HandleInput(ctx, models.InputEvent{
		SessionID: "s1", Kind: models.InputSelect, Value: confirm,
	})
	require.Error(t, err)

	// The stored session still holds the token, so the same confirm can be
	// retried once the infrastructure recovers.
	sess, serr := svc.Store.Get(ctx, "s1")
	require.NoError(t, serr)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepConfirm, sess.Step)
	assert.NotEmpty(t, sess.Data.ConfirmationToken)

	svc.Engine = realEngine
	done := sendSelect(t, svc, "s1", confirm)
	require.True(t, done.Done)
	require.NotEmpty(t, done.ReservationID)
}

func TestNoAvailabilityRoutesBackToDates(t *testing.T) {
	svc := newTestDialog(
		models.Reservation{ID: "a", PropertyID: "p1", RoomID: "r101", RoomNo: "101", CheckIn: "2025-06-01", CheckOut: "2025-06-05"},
		models.Reservation{ID: "b", PropertyID: "p1", RoomID: "r102", RoomNo: "102", CheckIn: "2025-06-01", CheckOut: "2025-06-05"},
		models.Reservation{ID: "c", PropertyID: "p1", RoomID: "r103", RoomNo: "103", CheckIn: "2025-06-01", CheckOut: "2025-06-05"},
	)
	ctx := context.Background()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")
	sendSelect(t, svc, "s1", "day:2025-06-02")
	prompt := sendSelect(t, svc, "s1", "day:2025-06-04")
	assert.Contains(t, prompt.Text, "No rooms are available")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepCheckIn, sess.Step)

	// New dates outside the blocked interval succeed.
	prompt = sendSelect(t, svc, "s1", "day:2025-06-10")
	assert.Contains(t, prompt.Text, "check-out")
	prompt = sendSelect(t, svc, "s1", "day:2025-06-12")
	assert.Contains(t, optionValues(prompt), "room:r101")
}

func TestCheckOutMustFollowCheckIn(t *testing.T) {
	svc := newTestDialog()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")
	sendSelect(t, svc, "s1", "day:2025-06-03")

	prompt := sendSelect(t, svc, "s1", "day:2025-06-01")
	assert.Contains(t, prompt.Text, "Check-out must be after check-in")

	// Same-day check-out typed as text is rejected too.
	prompt = sendText(t, svc, "s1", "2025-06-03")
	assert.Contains(t, prompt.Text, "Check-out must be after check-in")

	prompt = sendSelect(t, svc, "s1", "day:2025-06-04")
	assert.Contains(t, optionValues(prompt), "room:r101")
}

func TestCalendarNavigationDoesNotAdvanceStep(t *testing.T) {
	svc := newTestDialog()
	ctx := context.Background()

	sendAction(t, svc, "s1", models.ActionStartNew, "p1")
	sendText(t, svc, "s1", "Alice")

	prompt := sendSelect(t, svc, "s1", "cal:next")
	assert.Contains(t, prompt.Text, "check-in")
	prompt = sendSelect(t, svc, "s1", "cal:prev")
	assert.Contains(t, prompt.Text, "check-in")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepCheckIn, sess.Step)

	// Day selection still works after paging around.
	prompt = sendSelect(t, svc, "s1", "day:2025-06-01")
	assert.Contains(t, prompt.Text, "check-out")
}

func TestHandleInputRequiresSession(t *testing.T) {
	svc := newTestDialog()

	_, err := svc.HandleInput(context.Background(), models.InputEvent{Kind: models.InputText, Text: "hi"})
	assert.Error(t, err)

	prompt, err := svc.HandleInput(context.Background(), models.InputEvent{
		SessionID: "unknown", Kind: models.InputText, Text: "hi",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "No reservation flow in progress")
}

func TestStartNewRequiresProperty(t *testing.T) {
	svc := newTestDialog()

	prompt := sendAction(t, svc, "s1", models.ActionStartNew, "")
	assert.Contains(t, prompt.Text, "property is required")

	sess, err := svc.Store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
