package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
)

// ResolveOnWrite derives a post's status from its publish date. A post whose
// publish date is not after now is published with published_at = now;
// otherwise it is scheduled and published_at stays unset.
func ResolveOnWrite(publishDate, now time.Time) (string, *time.Time) {
	if publishDate.After(now) {
		return models.PostStatusScheduled, nil
	}
	publishedAt := now
	return models.PostStatusPublished, &publishedAt
}

type Resolver interface {
	SweepDue(ctx context.Context) ([]*models.Post, error)
	PublishIfDue(ctx context.Context, postID string) (bool, error)
}

type resolver struct {
	pr  repository.PostRepository
	now func() time.Time
}

func NewResolver(pr repository.PostRepository, now func() time.Time) Resolver {
	if now == nil {
		now = time.Now
	}
	return &resolver{
		pr:  pr,
		now: now,
	}
}

// SweepDue publishes every scheduled post that has come due. It is safe to
// run repeatedly; a second run with nothing due returns an empty slice.
func (r *resolver) SweepDue(ctx context.Context) ([]*models.Post, error) {
	posts, err := r.pr.PublishDue(ctx, r.now().UTC())
	if err != nil {
		slog.Error("sweep failed", "error", err)
		return nil, fmt.Errorf("sweeping due posts: %w", err)
	}

	if len(posts) > 0 {
		slog.Info("published due posts", "count", len(posts))
	}
	return posts, nil
}

func (r *resolver) PublishIfDue(ctx context.Context, postID string) (bool, error) {
	if postID == "" {
		return false, newValidationError("post id is required")
	}

	published, err := r.pr.PublishByID(ctx, postID, r.now().UTC())
	if err != nil {
		return false, fmt.Errorf("publishing post %s: %w", postID, err)
	}
	return published, nil
}
