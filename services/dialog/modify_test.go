package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

func existingReservation() models.Reservation {
	return models.Reservation{
		ID: "resX", PropertyID: "p1", RoomID: "r101", RoomNo: "101",
		GuestName: "Alice", CheckIn: "2025-06-01", CheckOut: "2025-06-03",
		Adults: 2, Children: 0, Amount: 1500,
		Status: models.ReservationStatusConfirmed,
	}
}

func TestModifyDatesKeepsFreeRoom(t *testing.T) {
	svc := newTestDialog(existingReservation())
	ctx := context.Background()

	prompt := sendAction(t, svc, "s1", "edit:dates:resX", "")
	assert.Contains(t, prompt.Text, "check-in")

	sendSelect(t, svc, "s1", "day:2025-07-01")
	prompt = sendSelect(t, svc, "s1", "day:2025-07-03")

	// Room 101 is free for the new dates, so no room step: straight to the
	// summary.
	assert.Contains(t, prompt.Text, "still available")
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)
	assert.Equal(t, "resX", done.ReservationID)

	stored, err := svc.Reservations.GetByID(ctx, "resX")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", stored.CheckIn)
	assert.Equal(t, "2025-07-03", stored.CheckOut)
	assert.Equal(t, "r101", stored.RoomID)
	assert.Equal(t, models.ReservationStatusUpdated, stored.Status)
}

func TestModifyDatesForcesReselectionWhenRoomTaken(t *testing.T) {
	svc := newTestDialog(
		existingReservation(),
		models.Reservation{
			ID: "resZ", PropertyID: "p1", RoomID: "r101", RoomNo: "101",
			GuestName: "Bob", CheckIn: "2025-07-01", CheckOut: "2025-07-03",
		},
	)
	ctx := context.Background()

	sendAction(t, svc, "s1", "edit:dates:resX", "")
	sendSelect(t, svc, "s1", "day:2025-07-01")
	prompt := sendSelect(t, svc, "s1", "day:2025-07-03")

	// Room 101 is taken for the new dates, so the guest must pick again from
	// rooms that are free.
	values := optionValues(prompt)
	assert.NotContains(t, values, "room:r101")
	assert.Contains(t, values, "room:r102")
	assert.Contains(t, values, "room:r103")

	// Guest counts were carried over, so the pick goes straight to the
	// summary.
	prompt = sendSelect(t, svc, "s1", "room:r102")
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(ctx, "resX")
	require.NoError(t, err)
	assert.Equal(t, "r102", stored.RoomID)
	assert.Equal(t, "102", stored.RoomNo)
	assert.Equal(t, "2025-07-01", stored.CheckIn)
}

func TestModifyRoomExcludesOwnReservation(t *testing.T) {
	svc := newTestDialog(
		existingReservation(),
		models.Reservation{
			ID: "resY", PropertyID: "p1", RoomID: "r103", RoomNo: "103",
			GuestName: "Bob", CheckIn: "2025-06-01", CheckOut: "2025-06-03",
		},
	)

	prompt := sendAction(t, svc, "s1", "edit:room:resX", "")

	// The reservation's own room stays on offer for its own interval; the
	// room held by someone else does not.
	values := optionValues(prompt)
	assert.Contains(t, values, "room:r101")
	assert.Contains(t, values, "room:r102")
	assert.NotContains(t, values, "room:r103")

	// Picking the occupied room anyway is rejected against a refreshed list.
	prompt = sendSelect(t, svc, "s1", "room:r103")
	assert.Contains(t, prompt.Text, "not available")

	prompt = sendSelect(t, svc, "s1", "room:r102")
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(context.Background(), "resX")
	require.NoError(t, err)
	assert.Equal(t, "r102", stored.RoomID)
	assert.Equal(t, "2025-06-01", stored.CheckIn)
}

func TestModifyDatesRecheckOccupancyOnKeptRoom(t *testing.T) {
	// The stored counts exceed room 101's current limit of two, as if the
	// room was reconfigured after the original booking.
	res := existingReservation()
	res.Children = 1
	svc := newTestDialog(res)
	ctx := context.Background()

	sendAction(t, svc, "s1", "edit:dates:resX", "")
	sendSelect(t, svc, "s1", "day:2025-07-01")
	prompt := sendSelect(t, svc, "s1", "day:2025-07-03")

	// Room 101 is still free, but the carried guest counts no longer fit, so
	// the flow routes to the guest-count step instead of the summary.
	assert.Contains(t, prompt.Text, "no longer fits")
	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepAdults, sess.Step)

	sendSelect(t, svc, "s1", "adults:2")
	prompt = sendSelect(t, svc, "s1", "children:0")
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(ctx, "resX")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", stored.CheckIn)
	assert.Equal(t, 2, stored.Adults)
	assert.Equal(t, 0, stored.Children)
}

func TestModifyRoomReselectionRechecksOccupancy(t *testing.T) {
	res := existingReservation()
	res.RoomID, res.RoomNo = "r102", "102"
	res.Adults, res.Children = 3, 1
	svc := newTestDialog(
		res,
		models.Reservation{
			ID: "resZ", PropertyID: "p1", RoomID: "r102", RoomNo: "102",
			GuestName: "Bob", CheckIn: "2025-07-01", CheckOut: "2025-07-03",
		},
	)
	ctx := context.Background()

	sendAction(t, svc, "s1", "edit:dates:resX", "")
	sendSelect(t, svc, "s1", "day:2025-07-01")
	prompt := sendSelect(t, svc, "s1", "day:2025-07-03")
	assert.NotContains(t, optionValues(prompt), "room:r102")

	// The replacement room sleeps two; four carried guests do not fit, so the
	// pick routes to the guest-count step instead of the summary.
	prompt = sendSelect(t, svc, "s1", "room:r103")
	assert.Contains(t, prompt.Text, "fits up to 2 guests")
	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepAdults, sess.Step)
	assert.Equal(t, "r103", sess.Data.RoomID)

	sendSelect(t, svc, "s1", "adults:2")
	prompt = sendSelect(t, svc, "s1", "children:0")
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(ctx, "resX")
	require.NoError(t, err)
	assert.Equal(t, "r103", stored.RoomID)
	assert.Equal(t, 2, stored.Adults)
	assert.Equal(t, 0, stored.Children)
}

func TestModifyGuestsSkipsToSummary(t *testing.T) {
	svc := newTestDialog(existingReservation())

	prompt := sendAction(t, svc, "s1", "edit:guests:resX", "")
	assert.Contains(t, prompt.Text, "How many adults?")
	assert.Equal(t, []string{"adults:1", "adults:2"}, optionValues(prompt))

	sendSelect(t, svc, "s1", "adults:1")
	prompt = sendSelect(t, svc, "s1", "children:1")

	// Amount is already known in a modify flow, so the summary follows the
	// guest counts directly.
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(context.Background(), "resX")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Adults)
	assert.Equal(t, 1, stored.Children)
	assert.Equal(t, 1500.0, stored.Amount)
}

func TestModifyAmount(t *testing.T) {
	svc := newTestDialog(existingReservation())

	prompt := sendAction(t, svc, "s1", "edit:amount:resX", "")
	assert.Contains(t, prompt.Text, "1500.00")

	prompt = sendText(t, svc, "s1", "1750")
	done := sendSelect(t, svc, "s1", confirmValue(t, prompt))
	require.True(t, done.Done)

	stored, err := svc.Reservations.GetByID(context.Background(), "resX")
	require.NoError(t, err)
	assert.Equal(t, 1750.0, stored.Amount)
}

func TestModifyRejectsBadTargets(t *testing.T) {
	cancelled := existingReservation()
	cancelled.ID = "resC"
	cancelled.Cancelled = true
	svc := newTestDialog(existingReservation(), cancelled)

	prompt := sendAction(t, svc, "s1", "edit:dates:missing", "")
	assert.Contains(t, prompt.Text, "could not be found")

	prompt = sendAction(t, svc, "s1", "edit:dates:resC", "")
	assert.Contains(t, prompt.Text, "cancelled")

	prompt = sendAction(t, svc, "s1", "edit:color:resX", "")
	assert.Contains(t, prompt.Text, "cannot be edited")

	prompt = sendAction(t, svc, "s1", "edit:dates", "")
	assert.Contains(t, prompt.Text, "not valid")

	// None of the rejected edits left a session behind.
	sess, err := svc.Store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestModifyDatesNoAvailabilityRoutesBack(t *testing.T) {
	svc := newTestDialog(
		existingReservation(),
		models.Reservation{ID: "a", PropertyID: "p1", RoomID: "r101", RoomNo: "101", CheckIn: "2025-07-01", CheckOut: "2025-07-05"},
		models.Reservation{ID: "b", PropertyID: "p1", RoomID: "r102", RoomNo: "102", CheckIn: "2025-07-01", CheckOut: "2025-07-05"},
		models.Reservation{ID: "c", PropertyID: "p1", RoomID: "r103", RoomNo: "103", CheckIn: "2025-07-01", CheckOut: "2025-07-05"},
	)
	ctx := context.Background()

	sendAction(t, svc, "s1", "edit:dates:resX", "")
	sendSelect(t, svc, "s1", "day:2025-07-02")
	prompt := sendSelect(t, svc, "s1", "day:2025-07-04")
	assert.Contains(t, prompt.Text, "No rooms are available")

	sess, err := svc.Store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.StepCheckIn, sess.Step)

	// The stored reservation is untouched while the edit is unresolved.
	stored, err := svc.Reservations.GetByID(ctx, "resX")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", stored.CheckIn)
}
