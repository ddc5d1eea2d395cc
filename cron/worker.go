package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookit/config"
	"bookit/models"
	"bookit/services/notification"
	"bookit/services/tasks"
	"bookit/utils"
)

// ReminderSender delivers a queued reminder. *notification.ReminderService satisfies it.
type ReminderSender interface {
	SendReminder(ctx context.Context, p models.ReminderPayload) error
}

// QueueRedisOpt is the asynq connection shared by the worker and the enqueuing client.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the reminder worker in background. The returned
// server is shut down by the caller.
func InitReminderWorker(sender ReminderSender) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(sender, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Reminder worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask decodes a reminder and pushes it. Reminders for devices
// without a push token are dropped rather than retried.
func HandleReminderTask(sender ReminderSender, logger *zap.Logger) asynq.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReminderTask(task)
		if err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		logger.Info("Sending booking reminder",
			zap.String("deviceID", p.DeviceID),
			zap.String("spotID", p.SpotID),
			zap.Time("startsAt", p.StartsAt))

		if err := sender.SendReminder(ctx, p); err != nil {
			if errors.Is(err, notification.ErrNoPushToken) {
				logger.Warn("Device has no push token, dropping reminder", zap.String("deviceID", p.DeviceID))
				return nil
			}
			logger.Error("Failed to send reminder", zap.Error(err))
			return err
		}
		return nil
	}
}
