package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/config"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/notification"
	"github.com/rahul-s-rajput/voyageur-nest-sub004/services/tasks"
)

// InitNotifyWorker runs the async worker that fans out reservation
// notifications in the background. Commit never waits on it.
func InitNotifyWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReservationNotify, handleNotifyTask(notifSvc))

	go func() {
		log.Println("[NotifyWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNotifyTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReservationNotifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotifyHandler] Invalid payload: %v", err)
			return err
		}

		if err := notifSvc.NotifyReservationCommitted(ctx, p); err != nil {
			log.Printf("[NotifyHandler] Failed to deliver notification for %s: %v", p.ReservationID, err)
			return err
		}
		return nil
	}
}
