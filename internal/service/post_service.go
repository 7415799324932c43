package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
	"github.com/maheshrc27/devjournal/internal/transfer"
	"github.com/maheshrc27/devjournal/pkg/utils"
)

const (
	PostFilterAll = "all"
	SortAsc       = "asc"
	SortDesc      = "desc"
)

// PublishScheduler arranges for a scheduled post to be published at its
// publish date without waiting for the next sweep.
type PublishScheduler interface {
	SchedulePublish(ctx context.Context, postID string, at time.Time) error
}

type PostService interface {
	Create(ctx context.Context, authorID string, pc *transfer.PostCreation) (*models.Post, error)
	Get(ctx context.Context, id, viewerID string) (*models.Post, error)
	List(ctx context.Context, filter *transfer.PostFilter, viewerID string) ([]*models.Post, error)
	Update(ctx context.Context, id, authorID string, pu *transfer.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id, authorID string) (*models.Post, error)
}

type postService struct {
	pr        repository.PostRepository
	scheduler PublishScheduler
	now       func() time.Time
}

func NewPostService(pr repository.PostRepository, scheduler PublishScheduler, now func() time.Time) PostService {
	if now == nil {
		now = time.Now
	}
	return &postService{
		pr:        pr,
		scheduler: scheduler,
		now:       now,
	}
}

func (s *postService) Create(ctx context.Context, authorID string, pc *transfer.PostCreation) (*models.Post, error) {
	if authorID == "" {
		return nil, ErrUnauthorized
	}
	if pc == nil {
		return nil, newValidationError("post data is required")
	}

	publishDate, err := s.validatePost(pc)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	status, publishedAt := ResolveOnWrite(publishDate, now)

	post := &models.Post{
		ID:          uuid.NewString(),
		UserID:      authorID,
		Title:       strings.TrimSpace(pc.Title),
		Content:     pc.Content,
		Tags:        []string(pc.Tags),
		Hours:       *pc.Hours,
		PublishDate: publishDate,
		Status:      status,
		PublishedAt: publishedAt,
		Reactions:   models.Reactions{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.pr.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.schedule(ctx, post)
	return post, nil
}

// validatePost normalizes tags in place, checks field constraints and
// returns the parsed publish date.
func (s *postService) validatePost(pc *transfer.PostCreation) (time.Time, error) {
	pc.Tags = utils.ParseTags([]string(pc.Tags))
	pc.Title = strings.TrimSpace(pc.Title)

	if err := validateStruct(pc); err != nil {
		slog.Info(err.Error())
		return time.Time{}, err
	}
	return parsePublishDate(pc.PublishDate)
}

func (s *postService) schedule(ctx context.Context, post *models.Post) {
	if s.scheduler == nil || post.Status != models.PostStatusScheduled {
		return
	}
	// The periodic sweep still publishes the post if this fails.
	if err := s.scheduler.SchedulePublish(ctx, post.ID, post.PublishDate); err != nil {
		slog.Error("failed to schedule publish", "post_id", post.ID, "error", err)
	}
}

func (s *postService) Get(ctx context.Context, id, viewerID string) (*models.Post, error) {
	if id == "" {
		return nil, newValidationError("post id is required")
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}

	if !post.IsVisibleTo(viewerID) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, filter *transfer.PostFilter, viewerID string) ([]*models.Post, error) {
	if filter == nil {
		filter = &transfer.PostFilter{}
	}

	q := repository.PostQuery{
		Tag: strings.TrimSpace(filter.Tag),
	}

	switch strings.ToLower(filter.Sort) {
	case "", SortDesc:
	case SortAsc:
		q.Ascending = true
	default:
		return nil, newValidationError("sort must be asc or desc")
	}

	switch strings.ToLower(filter.Status) {
	case "", models.PostStatusPublished:
		q.Status = models.PostStatusPublished
	case models.PostStatusScheduled:
		if viewerID == "" {
			return []*models.Post{}, nil
		}
		q.Status = models.PostStatusScheduled
		q.VisibleTo = viewerID
	case PostFilterAll:
		if viewerID == "" {
			q.Status = models.PostStatusPublished
		} else {
			q.VisibleTo = viewerID
		}
	default:
		return nil, newValidationError("status must be published, scheduled or all")
	}

	if filter.StartDate != "" {
		start, err := parseDateParam("startDate", filter.StartDate, false)
		if err != nil {
			return nil, err
		}
		q.Start = &start
	}
	if filter.EndDate != "" {
		end, err := parseDateParam("endDate", filter.EndDate, true)
		if err != nil {
			return nil, err
		}
		q.End = &end
	}
	if q.Start != nil && q.End != nil && q.Start.After(*q.End) {
		return nil, newValidationError("startDate must not be after endDate")
	}

	posts, err := s.pr.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// parseDateParam reads a date range bound. A date-only end bound covers the
// whole day.
func parseDateParam(name, value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, newValidationError("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func (s *postService) Update(ctx context.Context, id, authorID string, pu *transfer.PostUpdate) (*models.Post, error) {
	if authorID == "" {
		return nil, ErrUnauthorized
	}
	if pu == nil {
		return nil, newValidationError("post data is required")
	}

	existing, err := s.ownedPost(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	hours := existing.Hours
	merged := &transfer.PostCreation{
		Title:       existing.Title,
		Content:     existing.Content,
		Hours:       &hours,
		Tags:        transfer.Tags(existing.Tags),
		PublishDate: existing.PublishDate.Format(time.RFC3339Nano),
	}
	if pu.Title != nil {
		merged.Title = *pu.Title
	}
	if pu.Content != nil {
		merged.Content = *pu.Content
	}
	if pu.Hours != nil {
		merged.Hours = pu.Hours
	}
	if pu.Tags != nil {
		merged.Tags = *pu.Tags
	}
	if pu.PublishDate != nil {
		merged.PublishDate = *pu.PublishDate
	}

	publishDate, err := s.validatePost(merged)
	if err != nil {
		return nil, err
	}
	if pu.PublishDate == nil {
		publishDate = existing.PublishDate
	}

	now := s.now().UTC()
	status, publishedAt := ResolveOnWrite(publishDate, now)
	if status == models.PostStatusPublished && existing.Status == models.PostStatusPublished && existing.PublishedAt != nil {
		publishedAt = existing.PublishedAt
	}

	post := &models.Post{
		ID:          existing.ID,
		UserID:      authorID,
		Title:       merged.Title,
		Content:     merged.Content,
		Tags:        []string(merged.Tags),
		Hours:       *merged.Hours,
		PublishDate: publishDate,
		Status:      status,
		PublishedAt: publishedAt,
		UpdatedAt:   now,
	}

	updated, err := s.pr.Update(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating post: %w", err)
	}

	if existing.Status != models.PostStatusScheduled || !existing.PublishDate.Equal(updated.PublishDate) {
		s.schedule(ctx, updated)
	}
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id, authorID string) (*models.Post, error) {
	if authorID == "" {
		return nil, ErrUnauthorized
	}

	if _, err := s.ownedPost(ctx, id, authorID); err != nil {
		return nil, err
	}

	post, err := s.pr.Remove(ctx, id, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("deleting post: %w", err)
	}
	return post, nil
}

// ownedPost loads a post for mutation. A missing post is ErrNotFound and a
// post written by someone else is ErrUnauthorized.
func (s *postService) ownedPost(ctx context.Context, id, authorID string) (*models.Post, error) {
	if id == "" {
		return nil, newValidationError("post id is required")
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}

	if post.UserID != authorID {
		slog.Info("rejected mutation by non-author", "post_id", id, "user_id", authorID)
		return nil, ErrUnauthorized
	}
	return post, nil
}
