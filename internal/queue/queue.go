package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewPublishTask(payload PublishPostPayload) (*asynq.Task, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePublishPost, taskPayload), nil
}

// EnqueuePost schedules a publish task. The task id is derived from the post
// and its publish time so re-saving an unchanged schedule does not queue a
// duplicate.
func EnqueuePost(ctx context.Context, client Enqueuer, payload PublishPostPayload, at time.Time, delay time.Duration) error {
	task, err := NewPublishTask(payload)
	if err != nil {
		return err
	}

	taskID := fmt.Sprintf("publish:%s:%d", payload.PostID, at.Unix())
	_, err = client.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.TaskID(taskID), asynq.MaxRetry(5))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}

	log.Printf("Task scheduled: %+v in %s", payload, delay)
	return nil
}

// Scheduler publishes posts at their publish date through asynq.
type Scheduler struct {
	client Enqueuer
	now    func() time.Time
}

func NewScheduler(client Enqueuer, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{client: client, now: now}
}

func (s *Scheduler) SchedulePublish(ctx context.Context, postID string, at time.Time) error {
	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	return EnqueuePost(ctx, s.client, PublishPostPayload{PostID: postID}, at, delay)
}
