// File: dialog/modify.go
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// Editable fields for modify flows, encoded as "edit:<field>:<reservationID>".
const (
	editDates  = "dates"
	editRoom   = "room"
	editGuests = "guests"
	editAmount = "amount"
)

// startModify enters the modification flow for an existing reservation. The
// session draft is seeded from the stored record and every availability call
// made from it excludes the reservation itself, so it never shows up as its
// own conflict. Starting an edit supersedes any in-progress flow for the same
// conversation.
func (s *DefaultDialogService) startModify(ctx context.Context, ev models.InputEvent) (*models.Prompt, error) {
	parts := strings.SplitN(ev.Value, ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return &models.Prompt{Text: "That edit request is not valid."}, nil
	}
	field, reservationID := parts[1], parts[2]

	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Prompt{Text: "That reservation could not be found."}, nil
		}
		return nil, fmt.Errorf("failed to load reservation %s: %w", reservationID, err)
	}
	if res.Cancelled {
		return &models.Prompt{Text: "That reservation is cancelled and can no longer be edited."}, nil
	}

	sess := &models.GuestSession{
		SessionID: ev.SessionID,
		OwnerID:   ev.OwnerID,
		Data: models.ReservationDraft{
			PropertyID:   res.PropertyID,
			GuestName:    res.GuestName,
			CheckIn:      res.CheckIn,
			CheckOut:     res.CheckOut,
			RoomID:       res.RoomID,
			RoomNo:       res.RoomNo,
			Adults:       res.Adults,
			Children:     res.Children,
			Amount:       res.Amount,
			EditTargetID: res.ID,
		},
	}

	var prompt *models.Prompt
	switch field {
	case editDates:
		sess.Step = models.StepCheckIn
		sess.CalendarMonth = monthOf(res.CheckIn)
		prompt = calendarPrompt(
			fmt.Sprintf("Editing dates for room %s (%s to %s). Select the new check-in date",
				res.RoomNo, res.CheckIn, res.CheckOut),
			sess.CalendarMonth)

	case editRoom:
		// Room-only change: resolve for the unchanged interval and force an
		// explicit pick, so a selection colliding with another reservation is
		// rejected by list membership and again at commit.
		sess.Data.RoomID = ""
		sess.Data.RoomNo = ""
		var err error
		prompt, err = s.enterRoomSelection(ctx, sess,
			fmt.Sprintf("Editing room for %s to %s.", res.CheckIn, res.CheckOut))
		if err != nil {
			return nil, err
		}

	case editGuests:
		prompt = s.promptAdults(ctx, sess,
			fmt.Sprintf("Editing guest count for room %s.", res.RoomNo))

	case editAmount:
		sess.Step = models.StepAmount
		prompt = &models.Prompt{Text: fmt.Sprintf("Current amount is %.2f. Enter the new amount.", res.Amount)}

	default:
		return &models.Prompt{Text: "That field cannot be edited."}, nil
	}

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("modification flow started",
		zap.String("sessionID", ev.SessionID),
		zap.String("reservationID", reservationID),
		zap.String("field", field))
	return prompt, nil
}
