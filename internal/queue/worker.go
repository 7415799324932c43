package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

func (q *Queue) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypePublishPost, q.HandlePublishPostTask)
}

// HandlePublishPostTask publishes the post if it is still scheduled and due.
// A post that was edited, deleted or already swept is left alone.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.PostID == "" {
		return fmt.Errorf("payload has no post id: %w", asynq.SkipRetry)
	}

	published, err := q.r.PublishIfDue(ctx, payload.PostID)
	if err != nil {
		return err
	}

	if published {
		log.Printf("Post %s published", payload.PostID)
	} else {
		log.Printf("Post %s not due or already published", payload.PostID)
	}
	return nil
}
