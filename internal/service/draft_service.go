package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/devjournal/internal/transfer"
	"github.com/maheshrc27/devjournal/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const draftTTL = 30 * 24 * time.Hour

// DraftService keeps one unsaved editor draft per author.
type DraftService interface {
	Save(ctx context.Context, userID string, draft *transfer.Draft) (*transfer.Draft, error)
	Get(ctx context.Context, userID string) (*transfer.Draft, error)
	Clear(ctx context.Context, userID string) error
}

type draftService struct {
	cache *redis.Client
	now   func() time.Time
}

func NewDraftService(cache *redis.Client, now func() time.Time) DraftService {
	if now == nil {
		now = time.Now
	}
	return &draftService{cache: cache, now: now}
}

func draftKey(userID string) string {
	return fmt.Sprintf("draft:%s", userID)
}

func (s *draftService) Save(ctx context.Context, userID string, draft *transfer.Draft) (*transfer.Draft, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if draft == nil {
		return nil, newValidationError("draft is required")
	}

	draft.Tags = utils.ParseTags([]string(draft.Tags))
	draft.SavedAt = s.now().UTC()

	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, draftKey(userID), payload, draftTTL).Err(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	return draft, nil
}

// Get returns ErrNotFound when the author has no saved draft.
func (s *draftService) Get(ctx context.Context, userID string) (*transfer.Draft, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	data, err := s.cache.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	var draft transfer.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		slog.Error("discarding unreadable draft", "user_id", userID, "error", err)
		if err := s.cache.Del(ctx, draftKey(userID)).Err(); err != nil {
			slog.Info(err.Error())
		}
		return nil, ErrNotFound
	}
	return &draft, nil
}

func (s *draftService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}

	if err := s.cache.Del(ctx, draftKey(userID)).Err(); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
