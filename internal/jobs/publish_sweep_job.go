package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/robfig/cron"
)

const sweepTimeout = time.Minute

// PublishSweepJob runs the due-post sweep on a cron schedule, as a fallback
// for delayed tasks that were lost or never enqueued.
type PublishSweepJob struct {
	r service.Resolver

	mu      sync.Mutex
	running bool
}

func NewPublishSweepJob(r service.Resolver) *PublishSweepJob {
	return &PublishSweepJob{
		r: r,
	}
}

// Register adds the job to c using a spec such as "@every 5m".
func (j *PublishSweepJob) Register(c *cron.Cron, spec string) error {
	return c.AddFunc(spec, j.Sweep)
}

// Sweep skips the run if the previous one has not finished.
func (j *PublishSweepJob) Sweep() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		slog.Info("previous publish sweep still running, skipping")
		return
	}
	j.running = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	posts, err := j.r.SweepDue(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, p := range posts {
		slog.Info("post published by sweep", "post_id", p.ID, "publish_date", p.PublishDate)
	}
}
