// File: dialog/service.go
package dialog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// HandleInput routes one inbound user input through the state machine:
// load session, validate against the current step, mutate, save. Validation
// failures reply with a reprompt and leave state unchanged; only
// infrastructure failures return an error, with the stored session untouched
// so the same input can be retried.
func (s *DefaultDialogService) HandleInput(ctx context.Context, ev models.InputEvent) (*models.Prompt, error) {
	if ev.SessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	// Flow-control values are honored regardless of the input kind: the
	// cancel and start-over controls offered on prompts arrive from the
	// transport as selections, not bare actions.
	switch {
	case ev.Value == models.ActionCancel:
		return s.cancel(ctx, ev.SessionID)
	case ev.Value == models.ActionStartNew:
		return s.startNew(ctx, ev)
	case strings.HasPrefix(ev.Value, "edit:"):
		return s.startModify(ctx, ev)
	}

	sess, err := s.Store.Get(ctx, ev.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return &models.Prompt{
			Text:    "No reservation flow in progress.",
			Options: []models.PromptOption{{Value: models.ActionStartNew, Label: "New reservation"}},
		}, nil
	}

	// Duplicate delivery of an already-accepted input is a no-op: replay the
	// current step's prompt without touching state.
	if sess.LastInput != "" && sess.LastInput == inputKey(ev) {
		utils.GetLogger().Debug("duplicate input replayed",
			zap.String("sessionID", sess.SessionID), zap.String("step", string(sess.Step)))
		return s.promptForStep(ctx, sess), nil
	}

	prompt, err := s.dispatch(ctx, sess, ev)
	if err != nil {
		return nil, err
	}
	if !prompt.Done {
		if err := s.Store.Save(ctx, sess); err != nil {
			return nil, err
		}
	}
	return prompt, nil
}

func (s *DefaultDialogService) dispatch(ctx context.Context, sess *models.GuestSession, ev models.InputEvent) (*models.Prompt, error) {
	switch sess.Step {
	case models.StepGuestName:
		return s.acceptGuestName(ctx, sess, ev)
	case models.StepCheckIn:
		return s.acceptCheckIn(ctx, sess, ev)
	case models.StepCheckOut:
		return s.acceptCheckOut(ctx, sess, ev)
	case models.StepRoomSelect:
		return s.acceptRoom(ctx, sess, ev)
	case models.StepAdults:
		return s.acceptAdults(ctx, sess, ev)
	case models.StepChildren:
		return s.acceptChildren(ctx, sess, ev)
	case models.StepAmount:
		return s.acceptAmount(ctx, sess, ev)
	case models.StepConfirm:
		return s.acceptConfirm(ctx, sess, ev)
	default:
		return nil, fmt.Errorf("session %s in unknown step %q", sess.SessionID, sess.Step)
	}
}

// startNew begins a fresh reservation flow, overwriting any stale session for
// the same conversation.
func (s *DefaultDialogService) startNew(ctx context.Context, ev models.InputEvent) (*models.Prompt, error) {
	if ev.PropertyID == "" {
		return &models.Prompt{Text: "A property is required to start a reservation."}, nil
	}

	sess := &models.GuestSession{
		SessionID: ev.SessionID,
		OwnerID:   ev.OwnerID,
		Step:      models.StepGuestName,
		Data:      models.ReservationDraft{PropertyID: ev.PropertyID},
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("reservation flow started",
		zap.String("sessionID", ev.SessionID), zap.String("propertyID", ev.PropertyID))
	return &models.Prompt{Text: "Starting a new reservation. What is the guest's name?"}, nil
}

// cancel clears the session immediately and unconditionally. No partial state
// remains.
func (s *DefaultDialogService) cancel(ctx context.Context, sessionID string) (*models.Prompt, error) {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	return &models.Prompt{
		Text:    "Reservation flow cancelled.",
		Options: []models.PromptOption{{Value: models.ActionStartNew, Label: "New reservation"}},
		Done:    true,
	}, nil
}

// promptForStep re-renders the current step's prompt without mutating state.
func (s *DefaultDialogService) promptForStep(ctx context.Context, sess *models.GuestSession) *models.Prompt {
	switch sess.Step {
	case models.StepGuestName:
		return &models.Prompt{Text: "What is the guest's name?"}
	case models.StepCheckIn:
		return calendarPrompt("Select the check-in date", sess.CalendarMonth)
	case models.StepCheckOut:
		return calendarPrompt("Select the check-out date", sess.CalendarMonth)
	case models.StepRoomSelect:
		return roomListPrompt("Select a room.", sess.Data.RoomsOffered)
	case models.StepAdults:
		capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
		return countPrompt("How many adults?", "adults:", 1, capacity)
	case models.StepChildren:
		capacity := s.Engine.RoomCapacity(ctx, sess.Data.PropertyID, sess.Data.RoomID)
		return countPrompt("How many children?", "children:", 0, capacity-sess.Data.Adults)
	case models.StepAmount:
		return &models.Prompt{Text: "Enter the total amount for the stay."}
	case models.StepConfirm:
		return summaryPrompt(sess, "")
	default:
		return &models.Prompt{
			Text:    "No reservation flow in progress.",
			Options: []models.PromptOption{{Value: models.ActionStartNew, Label: "New reservation"}},
		}
	}
}
