package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"bookit/models"
)

const TypeSendReminder = "reminder:send"

// reminderQueue is the asynq queue reminders are enqueued to.
const reminderQueue = "default"

// NewReminderTask builds a reminder task processed at fireAt. The task id makes
// re-enqueueing the same reminder a no-op.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderID(payload)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseReminderTask decodes the payload of a reminder task.
func ParseReminderTask(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

func reminderID(p models.ReminderPayload) string {
	return fmt.Sprintf("reminder:%s:%s:%d", p.DeviceID, p.SpotID, p.StartsAt.Unix())
}

// Enqueuer queues tasks. *asynq.Client satisfies it.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Inspector finds and removes queued tasks. *asynq.Inspector satisfies it.
type Inspector interface {
	DeleteTask(queue, id string) error
	ListScheduledTasks(queue string, opts ...asynq.ListOption) ([]*asynq.TaskInfo, error)
}

// Scheduler queues a push reminder ahead of each booked window and takes it
// back when the booking goes away.
type Scheduler struct {
	client    Enqueuer
	inspector Inspector
	lead      time.Duration
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewScheduler(client Enqueuer, inspector Inspector, lead time.Duration, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		client:    client,
		inspector: inspector,
		lead:      lead,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// ScheduleReminder queues the reminder lead before the window starts. Windows
// starting too soon get no reminder.
func (s *Scheduler) ScheduleReminder(ctx context.Context, deviceID, spotID string, window models.TimeWindow) error {
	startsAt := window.Start(s.loc)
	fireAt := startsAt.Add(-s.lead)
	if !fireAt.After(s.now()) {
		s.logger.Debug("Skipping reminder, window starts too soon",
			zap.String("deviceID", deviceID),
			zap.Time("startsAt", startsAt))
		return nil
	}

	payload := models.ReminderPayload{
		DeviceID:  deviceID,
		SpotID:    spotID,
		Title:     "Your booking starts soon",
		Body:      fmt.Sprintf("Spot %s is booked from %02d:%02d", spotID, window.From.Hour, window.From.Minute),
		StartsAt:  startsAt,
		CreatedAt: s.now(),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	s.logger.Info("Reminder scheduled",
		zap.String("deviceID", deviceID),
		zap.String("spotID", spotID),
		zap.Time("fireAt", fireAt))
	return nil
}

// CancelReminder removes the reminder queued for the window. A reminder that
// was never queued, or already went out, is not an error.
func (s *Scheduler) CancelReminder(ctx context.Context, deviceID, spotID string, window models.TimeWindow) error {
	if s.inspector == nil {
		return nil
	}
	id := reminderID(models.ReminderPayload{DeviceID: deviceID, SpotID: spotID, StartsAt: window.Start(s.loc)})
	if err := s.deleteTask(id); err != nil {
		return err
	}
	s.logger.Info("Reminder cancelled", zap.String("deviceID", deviceID), zap.String("taskID", id))
	return nil
}

// CancelDeviceReminders removes every reminder still queued for the device.
func (s *Scheduler) CancelDeviceReminders(ctx context.Context, deviceID string) error {
	if s.inspector == nil {
		return nil
	}
	var ids []string
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		infos, err := s.inspector.ListScheduledTasks(reminderQueue, asynq.Page(page), asynq.PageSize(listPageSize))
		if errors.Is(err, asynq.ErrQueueNotFound) {
			break
		}
		if err != nil {
			return fmt.Errorf("list reminders: %w", err)
		}
		for _, info := range infos {
			if info.Type != TypeSendReminder {
				continue
			}
			var p models.ReminderPayload
			if json.Unmarshal(info.Payload, &p) == nil && p.DeviceID == deviceID {
				ids = append(ids, info.ID)
			}
		}
		if len(infos) < listPageSize {
			break
		}
	}
	for _, id := range ids {
		if err := s.deleteTask(id); err != nil {
			return err
		}
	}
	if len(ids) > 0 {
		s.logger.Info("Reminders cancelled", zap.String("deviceID", deviceID), zap.Int("count", len(ids)))
	}
	return nil
}

const listPageSize = 100

func (s *Scheduler) deleteTask(id string) error {
	err := s.inspector.DeleteTask(reminderQueue, id)
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("delete reminder %s: %w", id, err)
}
