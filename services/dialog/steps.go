// File: dialog/steps.go
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/booking"
)

const roomSelectPrefix = "room:"

// acceptGuestName validates the guest name and moves the dialogue to the
// check-in date.
func (s *DefaultDialogService) acceptGuestName(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	name := strings.TrimSpace(ev.Text)
	if ev.Kind != models.InputText || name == "" {
		return &models.Prompt{Text: "Please enter the guest's name."}, nil
	}
	if len(name) > 120 {
		return &models.Prompt{Text: "That name is too long. Please enter up to 120 characters."}, nil
	}

	sess.Data.GuestName = name
	sess.Step = models.StepCheckIn
	sess.CalendarMonth = currentMonth()
	s.markAccepted(sess, ev)
	return calendarPrompt(fmt.Sprintf("Thanks, %s. Select the check-in date", name), sess.CalendarMonth), nil
}

// acceptCheckIn handles calendar navigation and the check-in day selection.
func (s *DefaultDialogService) acceptCheckIn(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	if handleCalendarNav(sess, ev.Value) {
		return calendarPrompt("Select the check-in date", sess.CalendarMonth), nil
	}

	date := selectedDate(ev)
	if date == "" {
		return calendarPrompt("That is not a valid date. Select the check-in date", sess.CalendarMonth), nil
	}

	sess.Data.CheckIn = date
	// A fresh check-in invalidates any previously chosen check-out.
	sess.Data.CheckOut = ""
	sess.Step = models.StepCheckOut
	sess.CalendarMonth = monthOf(date)
	s.markAccepted(sess, ev)
	return calendarPrompt(fmt.Sprintf("Check-in %s. Select the check-out date", date), sess.CalendarMonth), nil
}

// acceptCheckOut enforces a strictly later check-out, then resolves room
// availability for the completed interval.
func (s *DefaultDialogService) acceptCheckOut(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	if handleCalendarNav(sess, ev.Value) {
		return calendarPrompt("Select the check-out date", sess.CalendarMonth), nil
	}

	date := selectedDate(ev)
	if date == "" {
		return calendarPrompt("That is not a valid date. Select the check-out date", sess.CalendarMonth), nil
	}
	if date <= sess.Data.CheckIn {
		return calendarPrompt(
			fmt.Sprintf("Check-out must be after check-in (%s). Select the check-out date", sess.Data.CheckIn),
			sess.CalendarMonth), nil
	}

	sess.Data.CheckOut = date
	s.markAccepted(sess, ev)
	return s.enterRoomSelection(ctx, sess, fmt.Sprintf("Dates %s to %s.", sess.Data.CheckIn, sess.Data.CheckOut))
}

// enterRoomSelection resolves availability for the session's interval and
// either presents the room list or, in a modify flow whose held room is still
// free, skips straight on. An empty result routes back to date selection.
func (s *DefaultDialogService) enterRoomSelection(ctx context.Context, sess *models.GuestSession, intro string) (*models.Prompt, error) {
	offered, err := s.Engine.ResolveAvailability(ctx, models.AvailabilityQuery{
		PropertyID:           sess.Data.PropertyID,
		CheckIn:              sess.Data.CheckIn,
		CheckOut:             sess.Data.CheckOut,
		ExcludeReservationID: sess.Data.EditTargetID,
	})
	if err != nil {
		return nil, err
	}

	if len(offered) == 0 {
		sess.Step = models.StepCheckIn
		sess.CalendarMonth = monthOf(sess.Data.CheckIn)
		return calendarPrompt("No rooms are available for those dates. Select a different check-in date", sess.CalendarMonth), nil
	}

	// Modify flow: when the previously held room is still available for the
	// new dates, no room step is needed. Occupancy is still re-checked since
	// the unchanged room may not fit previously collected guest counts.
	if sess.Data.EditTargetID != "" && sess.Data.RoomID != "" && containsOffer(offered, sess.Data.RoomID) {
		if sess.Data.Adults >= 1 {
			capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
			if !s.Engine.ValidateOccupancy(sess.Data.Adults, sess.Data.Children, capacity) {
				return s.promptAdults(ctx, sess,
					fmt.Sprintf("%s Room %s no longer fits %d guests.", intro, sess.Data.RoomNo, sess.Data.Adults+sess.Data.Children)), nil
			}
		}
		return s.enterConfirm(sess, intro+" Room "+sess.Data.RoomNo+" is still available.")
	}

	sess.Data.RoomID = ""
	sess.Data.RoomNo = ""
	sess.Data.RoomsOffered = offered
	sess.Step = models.StepRoomSelect
	return roomListPrompt(intro+" Select a room.", offered), nil
}

// acceptRoom validates the selection against the offered list. A selection
// outside the list triggers one re-resolve before rejection, since the list
// may have gone stale between presentation and selection.
func (s *DefaultDialogService) acceptRoom(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	if !strings.HasPrefix(ev.Value, roomSelectPrefix) {
		return roomListPrompt("Please select one of the offered rooms.", sess.Data.RoomsOffered), nil
	}
	roomID := strings.TrimPrefix(ev.Value, roomSelectPrefix)
	if roomID == "" {
		return roomListPrompt("Please select one of the offered rooms.", sess.Data.RoomsOffered), nil
	}

	offer, ok := findOffer(sess.Data.RoomsOffered, roomID)
	if !ok {
		refreshed, err := s.Engine.ResolveAvailability(ctx, models.AvailabilityQuery{
			PropertyID:           sess.Data.PropertyID,
			CheckIn:              sess.Data.CheckIn,
			CheckOut:             sess.Data.CheckOut,
			ExcludeReservationID: sess.Data.EditTargetID,
		})
		if err != nil {
			return nil, err
		}
		sess.Data.RoomsOffered = refreshed
		offer, ok = findOffer(refreshed, roomID)
		if !ok {
			return roomListPrompt("That room is not available for your dates. Select one of these rooms.", refreshed), nil
		}
	}

	sess.Data.RoomID = offer.RoomID
	sess.Data.RoomNo = offer.RoomNo
	s.markAccepted(sess, ev)

	// Modify flow with guest counts already collected: re-check occupancy for
	// the newly picked room, then go straight to the summary.
	if sess.Data.EditTargetID != "" && sess.Data.Adults >= 1 {
		capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
		if s.Engine.ValidateOccupancy(sess.Data.Adults, sess.Data.Children, capacity) {
			return s.enterConfirm(sess, "Room "+offer.RoomNo+" selected.")
		}
		return s.promptAdults(ctx, sess,
			fmt.Sprintf("Room %s fits up to %d guests.", offer.RoomNo, capacity)), nil
	}

	return s.promptAdults(ctx, sess, "Room "+offer.RoomNo+" selected."), nil
}

// promptAdults moves the dialogue to adult-count selection, offering only
// counts the room can hold.
func (s *DefaultDialogService) promptAdults(ctx context.Context, sess *models.GuestSession, intro string) *models.Prompt {
	capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
	sess.Step = models.StepAdults
	return countPrompt(intro+" How many adults?", "adults:", 1, capacity)
}

// acceptAdults validates the adult count against room capacity. Children are
// always re-collected afterwards so a later adult change can never leave an
// over-capacity total behind.
func (s *DefaultDialogService) acceptAdults(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
	n, ok := selectedCount(ev, "adults:")
	if !ok || n < 1 || n > capacity {
		return countPrompt(fmt.Sprintf("Room %s sleeps up to %d. How many adults?", sess.Data.RoomNo, capacity), "adults:", 1, capacity), nil
	}

	sess.Data.Adults = n
	sess.Step = models.StepChildren
	s.markAccepted(sess, ev)
	return countPrompt("How many children?", "children:", 0, capacity-n), nil
}

// acceptChildren validates the children count. The offered range already
// excludes illegal values, but the submitted value is checked independently.
func (s *DefaultDialogService) acceptChildren(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
	n, ok := selectedCount(ev, "children:")
	if !ok || !s.Engine.ValidateOccupancy(sess.Data.Adults, n, capacity) {
		return countPrompt(
			fmt.Sprintf("With %d adults, room %s can take up to %d children. How many children?",
				sess.Data.Adults, sess.Data.RoomNo, capacity-sess.Data.Adults),
			"children:", 0, capacity-sess.Data.Adults), nil
	}

	sess.Data.Children = n
	s.markAccepted(sess, ev)

	if sess.Data.EditTargetID != "" && sess.Data.Amount > 0 {
		return s.enterConfirm(sess, "Guest count updated.")
	}
	sess.Step = models.StepAmount
	return &models.Prompt{Text: "Enter the total amount for the stay."}, nil
}

// acceptAmount accepts a positive numeric amount. Anything else is rejected
// with the same error, never silently defaulted.
func (s *DefaultDialogService) acceptAmount(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	raw := strings.TrimSpace(ev.Text)
	if raw == "" {
		raw = strings.TrimSpace(ev.Value)
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return &models.Prompt{Text: "Please enter a valid positive amount."}, nil
	}

	sess.Data.Amount = amount
	s.markAccepted(sess, ev)
	return s.enterConfirm(sess, fmt.Sprintf("Amount %.2f noted.", amount))
}

// enterConfirm issues a fresh single-use confirmation token and presents the
// immutable summary. The token ties the confirm action to this exact snapshot.
func (s *DefaultDialogService) enterConfirm(sess *models.GuestSession, intro string) (*models.Prompt, error) {
	token, err := booking.NewConfirmationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue confirmation token: %w", err)
	}
	sess.Data.ConfirmationToken = token
	sess.Step = models.StepConfirm
	return summaryPrompt(sess, intro), nil
}

// acceptConfirm guards the commit with the confirmation token, runs the
// commit, and maps each conflict back to the step that can fix it.
func (s *DefaultDialogService) acceptConfirm(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	supplied := strings.TrimPrefix(ev.Value, "confirm:")
	if supplied == ev.Value {
		// Not a confirm action at all; show the summary again.
		return summaryPrompt(sess, ""), nil
	}

	if !booking.VerifyConfirmationToken(sess, supplied) {
		// The snapshot behind this summary is no longer trustworthy; force a
		// full restart.
		if err := s.Store.Delete(ctx, sess.SessionID); err != nil {
			return nil, err
		}
		return &models.Prompt{
			Text:    "This confirmation has expired. Please start again.",
			Options: []models.PromptOption{{Value: models.ActionStartNew, Label: "Start over"}},
			Done:    true,
		}, nil
	}

	// The token is consumed by the attempt, success or not. Only an
	// infrastructure failure below restores it so confirm can be retried.
	sess.Data.ConfirmationToken = ""

	res, err := s.Engine.Commit(ctx, sess.Data)
	switch {
	case err == nil:
		if derr := s.Store.Delete(ctx, sess.SessionID); derr != nil {
			return nil, derr
		}
		return &models.Prompt{
			Text: fmt.Sprintf("Reservation confirmed: %s, room %s, %s to %s.",
				sess.Data.GuestName, sess.Data.RoomNo, sess.Data.CheckIn, sess.Data.CheckOut),
			Done:          true,
			ReservationID: res.ID,
		}, nil

	case errors.Is(err, booking.ErrRoomUnavailable):
		// Lost the race for the room: back to room selection with a fresh
		// list, keeping everything else the guest already entered.
		sess.Data.RoomID = ""
		sess.Data.RoomNo = ""
		return s.enterRoomSelection(ctx, sess, "That room was just taken by another booking.")

	case errors.Is(err, booking.ErrCapacityExceeded):
		return s.promptAdults(ctx, sess, "The room can no longer fit that guest count."), nil

	case errors.Is(err, booking.ErrIncompleteDraft):
		if derr := s.Store.Delete(ctx, sess.SessionID); derr != nil {
			return nil, derr
		}
		return &models.Prompt{
			Text:    "Something went wrong with this reservation flow. Please start again.",
			Options: []models.PromptOption{{Value: models.ActionStartNew, Label: "Start over"}},
			Done:    true,
		}, nil

	default:
		// Infrastructure failure: restore the token and leave stored state
		// untouched so the same confirm can be retried without data loss.
		sess.Data.ConfirmationToken = supplied
		return nil, err
	}
}

// markAccepted records an accepted input when a later redelivery of the same
// event can be recognized unambiguously, so duplicate transport delivery
// replays the current prompt instead of mutating state. Free text and day
// selections carry meaning at more than one step, so a repeat of those must
// be re-validated by whichever step receives it, never swallowed.
func (s *DefaultDialogService) markAccepted(sess *models.GuestSession, ev models.InputEvent) {
	if replayableValue(ev) {
		sess.LastInput = inputKey(ev)
		return
	}
	sess.LastInput = ""
}

// replayableValue reports whether the accepted input's value prefix is owned
// by exactly one step.
func replayableValue(ev models.InputEvent) bool {
	if ev.Kind != models.InputSelect {
		return false
	}
	for _, prefix := range []string{roomSelectPrefix, "adults:", "children:"} {
		if strings.HasPrefix(ev.Value, prefix) {
			return true
		}
	}
	return false
}

func inputKey(ev models.InputEvent) string {
	return string(ev.Kind) + "|" + ev.Value + "|" + ev.Text
}

func findOffer(offered []models.RoomOption, roomID string) (models.RoomOption, bool) {
	for _, opt := range offered {
		if opt.RoomID == roomID {
			return opt, true
		}
	}
	return models.RoomOption{}, false
}

func containsOffer(offered []models.RoomOption, roomID string) bool {
	_, ok := findOffer(offered, roomID)
	return ok
}

func roomListPrompt(text string, offered []models.RoomOption) *models.Prompt {
	options := make([]models.PromptOption, 0, len(offered))
	for _, opt := range offered {
		label := "Room " + opt.RoomNo
		if opt.RoomType != "" {
			label += " (" + opt.RoomType + ")"
		}
		options = append(options, models.PromptOption{Value: roomSelectPrefix + opt.RoomID, Label: label})
	}
	return &models.Prompt{Text: text, Options: options}
}

func countPrompt(text, prefix string, min, max int) *models.Prompt {
	options := make([]models.PromptOption, 0, max-min+1)
	for n := min; n <= max; n++ {
		options = append(options, models.PromptOption{Value: prefix + strconv.Itoa(n), Label: strconv.Itoa(n)})
	}
	return &models.Prompt{Text: text, Options: options}
}

func selectedCount(ev models.InputEvent, prefix string) (int, bool) {
	raw := ""
	switch {
	case strings.HasPrefix(ev.Value, prefix):
		raw = strings.TrimPrefix(ev.Value, prefix)
	case ev.Kind == models.InputText:
		raw = strings.TrimSpace(ev.Text)
	default:
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func summaryPrompt(sess *models.GuestSession, intro string) *models.Prompt {
	d := sess.Data
	text := fmt.Sprintf(
		"Please confirm:\nGuest: %s\nRoom: %s\nCheck-in: %s\nCheck-out: %s\nAdults: %d, Children: %d\nAmount: %.2f",
		d.GuestName, d.RoomNo, d.CheckIn, d.CheckOut, d.Adults, d.Children, d.Amount)
	if intro != "" {
		text = intro + "\n" + text
	}
	return &models.Prompt{
		Text: text,
		Options: []models.PromptOption{
			{Value: "confirm:" + d.ConfirmationToken, Label: "Confirm"},
			{Value: models.ActionCancel, Label: "Cancel"},
		},
	}
}
