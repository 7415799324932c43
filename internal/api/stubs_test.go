package api

import (
	"context"
	"io"
	"time"

	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/service"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

var sessions = map[string]string{
	"author-token":  "author-1",
	"visitor-token": "visitor-1",
}

type stubAuth struct{}

func (stubAuth) LoginURL(state string) string {
	return "https://idp.example.test/auth?state=" + state
}

func (stubAuth) LoginCallback(ctx context.Context, code string) (string, *models.User, error) {
	if code != "good-code" {
		return "", nil, service.ErrUnauthorized
	}
	return "author-token", &models.User{ID: "author-1"}, nil
}

func (stubAuth) ValidateSession(token string) (string, error) {
	if id, ok := sessions[token]; ok {
		return id, nil
	}
	return "", service.ErrUnauthorized
}

type stubPosts struct {
	post     *models.Post
	err      error
	viewer   string
	authorID string
	filter   *transfer.PostFilter
	created  *transfer.PostCreation
}

func (s *stubPosts) Create(ctx context.Context, authorID string, pc *transfer.PostCreation) (*models.Post, error) {
	s.authorID, s.created = authorID, pc
	return s.post, s.err
}

func (s *stubPosts) Get(ctx context.Context, id, viewerID string) (*models.Post, error) {
	s.viewer = viewerID
	return s.post, s.err
}

func (s *stubPosts) List(ctx context.Context, filter *transfer.PostFilter, viewerID string) ([]*models.Post, error) {
	s.viewer, s.filter = viewerID, filter
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Post{s.post}, nil
}

func (s *stubPosts) Update(ctx context.Context, id, authorID string, pu *transfer.PostUpdate) (*models.Post, error) {
	s.authorID = authorID
	return s.post, s.err
}

func (s *stubPosts) Delete(ctx context.Context, id, authorID string) (*models.Post, error) {
	s.authorID = authorID
	return s.post, s.err
}

type stubReactions struct {
	last *transfer.ReactionRequest
	err  error
}

func (s *stubReactions) Toggle(ctx context.Context, req *transfer.ReactionRequest) (*transfer.ReactionResult, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &transfer.ReactionResult{HasReacted: true, Count: 1, Reactions: models.Reactions{"love": 1}}, nil
}

func (s *stubReactions) Check(ctx context.Context, req *transfer.ReactionRequest) (*transfer.ReactionResult, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &transfer.ReactionResult{HasReacted: false, Count: 4, Reactions: models.Reactions{"love": 4}}, nil
}

type stubResolver struct {
	posts []*models.Post
	err   error
	calls int
}

func (s *stubResolver) SweepDue(ctx context.Context) ([]*models.Post, error) {
	s.calls++
	return s.posts, s.err
}

func (s *stubResolver) PublishIfDue(ctx context.Context, postID string) (bool, error) {
	return false, nil
}

type stubHours struct{}

func (stubHours) Summary(ctx context.Context) (*transfer.HoursSummary, error) {
	return &transfer.HoursSummary{HoursCompleted: 12, TotalRequired: 400, HoursRemaining: 388, CompletionPercent: 3}, nil
}

type stubDrafts struct {
	draft *transfer.Draft
}

func (s *stubDrafts) Save(ctx context.Context, userID string, draft *transfer.Draft) (*transfer.Draft, error) {
	draft.SavedAt = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	s.draft = draft
	return draft, nil
}

func (s *stubDrafts) Get(ctx context.Context, userID string) (*transfer.Draft, error) {
	if s.draft == nil {
		return nil, service.ErrNotFound
	}
	return s.draft, nil
}

func (s *stubDrafts) Clear(ctx context.Context, userID string) error {
	s.draft = nil
	return nil
}

type stubMedia struct {
	received  []byte
	listedFor string
}

func (s *stubMedia) List(ctx context.Context, userID string) ([]*models.MediaAsset, error) {
	s.listedFor = userID
	return []*models.MediaAsset{{ID: 1, UserID: userID, FileName: "abc.png", FileURL: "https://cdn.example.test/abc.png"}}, nil
}

func (s *stubMedia) Upload(ctx context.Context, userID string, file io.Reader) (*models.MediaAsset, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.received = data
	return &models.MediaAsset{ID: 1, UserID: userID, FileName: "abc.png", FileURL: "https://cdn.example.test/abc.png"}, nil
}

type stubUsers struct{}

func (stubUsers) GetUserInfo(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Email: "dev@example.com"}, nil
}

func (stubUsers) RemoveUser(ctx context.Context, userID string) error {
	return nil
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(ctx context.Context) error {
	return p.err
}
