package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

const TypeReservationNotify = "reservation:notify"

// NewReservationNotifyTask builds the post-commit fan-out task.
func NewReservationNotifyTask(payload models.ReservationNotifyPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationNotify, b), nil
}
