package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/tasks"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/utils"
)

// Commit is the atomic write path. The dialogue holds no lock on the room
// while the guest types, so availability and capacity are re-checked here,
// authoritatively, before the record is written. The earlier room-selection
// result is only a hint.
func (e *DefaultReservationEngine) Commit(ctx context.Context, draft models.ReservationDraft) (*models.Reservation, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	// Step 1: authoritative availability re-check. Another session may have
	// taken the room since it was offered.
	available, err := e.ResolveAvailability(ctx, models.AvailabilityQuery{
		PropertyID:           draft.PropertyID,
		CheckIn:              draft.CheckIn,
		CheckOut:             draft.CheckOut,
		ExcludeReservationID: draft.EditTargetID,
	})
	if err != nil {
		return nil, fmt.Errorf("commit availability check failed: %w", err)
	}
	if !containsRoom(available, draft.RoomID) {
		return nil, ErrRoomUnavailable
	}

	// Step 2: capacity re-check. The room may have been reconfigured since
	// guest counts were collected.
	capacity := e.RoomCapacity(ctx, draft.PropertyID, draft.RoomID)
	if !e.ValidateOccupancy(draft.Adults, draft.Children, capacity) {
		return nil, ErrCapacityExceeded
	}

	// Step 3: write the record.
	res := &models.Reservation{
		ID:         draft.EditTargetID,
		PropertyID: draft.PropertyID,
		RoomID:     draft.RoomID,
		RoomNo:     draft.RoomNo,
		GuestName:  draft.GuestName,
		CheckIn:    draft.CheckIn,
		CheckOut:   draft.CheckOut,
		Adults:     draft.Adults,
		Children:   draft.Children,
		Amount:     draft.Amount,
		Status:     models.ReservationStatusConfirmed,
	}

	if draft.EditTargetID != "" {
		existing, err := e.Reservations.GetByID(ctx, draft.EditTargetID)
		if err != nil {
			return nil, fmt.Errorf("failed to load reservation %s for update: %w", draft.EditTargetID, err)
		}
		res.Cancelled = existing.Cancelled
		res.CreatedAt = existing.CreatedAt
		res.Status = models.ReservationStatusUpdated
		if err := e.Reservations.Update(ctx, res); err != nil {
			return nil, fmt.Errorf("failed to update reservation %s: %w", res.ID, err)
		}
	} else {
		res.ID = uuid.New().String()
		if err := e.Reservations.Insert(ctx, res); err != nil {
			return nil, fmt.Errorf("failed to insert reservation: %w", err)
		}
	}

	utils.GetLogger().Info("reservation committed",
		zap.String("reservationID", res.ID),
		zap.String("roomNo", res.RoomNo),
		zap.String("checkIn", res.CheckIn),
		zap.String("checkOut", res.CheckOut),
		zap.Bool("updated", draft.EditTargetID != ""))

	e.notifyCommitted(res, draft.EditTargetID != "")
	return res, nil
}

// notifyCommitted enqueues the downstream fan-out. Commit never blocks on
// delivery; an enqueue failure is logged and surfaced through health checks.
func (e *DefaultReservationEngine) notifyCommitted(res *models.Reservation, updated bool) {
	if e.TaskClient == nil {
		return
	}
	task, err := tasks.NewReservationNotifyTask(models.ReservationNotifyPayload{
		ReservationID: res.ID,
		PropertyID:    res.PropertyID,
		RoomNo:        res.RoomNo,
		GuestName:     res.GuestName,
		CheckIn:       res.CheckIn,
		CheckOut:      res.CheckOut,
		Amount:        res.Amount,
		Updated:       updated,
	})
	if err != nil {
		utils.GetLogger().Error("failed to build notification task", zap.Error(err))
		return
	}
	if _, err := e.TaskClient.Enqueue(task); err != nil {
		utils.GetLogger().Error("failed to enqueue notification task",
			zap.String("reservationID", res.ID), zap.Error(err))
	}
}

func validateDraft(d models.ReservationDraft) error {
	switch {
	case d.PropertyID == "":
		return fmt.Errorf("%w: property missing", ErrIncompleteDraft)
	case d.GuestName == "":
		return fmt.Errorf("%w: guest name missing", ErrIncompleteDraft)
	case d.RoomID == "":
		return fmt.Errorf("%w: room missing", ErrIncompleteDraft)
	case d.Adults < 1:
		return fmt.Errorf("%w: adult count missing", ErrIncompleteDraft)
	case d.Children < 0:
		return fmt.Errorf("%w: invalid children count", ErrIncompleteDraft)
	case d.Amount <= 0:
		return fmt.Errorf("%w: amount missing", ErrIncompleteDraft)
	}
	return validateInterval(d.CheckIn, d.CheckOut)
}

func containsRoom(options []models.RoomOption, roomID string) bool {
	for _, opt := range options {
		if opt.RoomID == roomID {
			return true
		}
	}
	return false
}
