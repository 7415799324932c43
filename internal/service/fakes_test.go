package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakePostRepo is an in-memory PostRepository.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	err   error
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: map[string]*models.Post{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	c.Reactions = models.Reactions{}
	for k, v := range p.Reactions {
		c.Reactions[k] = v
	}
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *fakePostRepo) List(ctx context.Context, q repository.PostQuery) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}

	displayDate := func(p *models.Post) time.Time {
		if p.PublishedAt != nil {
			return *p.PublishedAt
		}
		return p.PublishDate
	}

	out := []*models.Post{}
	for _, p := range r.posts {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.VisibleTo != "" && p.Status != models.PostStatusPublished && p.UserID != q.VisibleTo {
			continue
		}
		if q.Tag != "" && !containsTag(p.Tags, q.Tag) {
			continue
		}
		if q.Start != nil && displayDate(p).Before(*q.Start) {
			continue
		}
		if q.End != nil && displayDate(p).After(*q.End) {
			continue
		}
		out = append(out, clonePost(p))
	}

	sort.Slice(out, func(i, j int) bool {
		if q.Ascending {
			return displayDate(out[i]).Before(displayDate(out[j]))
		}
		return displayDate(out[i]).After(displayDate(out[j]))
	})
	return out, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (r *fakePostRepo) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	existing, ok := r.posts[post.ID]
	if !ok || existing.UserID != post.UserID {
		return nil, repository.ErrNotFound
	}
	updated := clonePost(post)
	updated.Reactions = existing.Reactions
	updated.CreatedAt = existing.CreatedAt
	r.posts[post.ID] = updated
	return clonePost(updated), nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id, userID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	delete(r.posts, id)
	return p, nil
}

func (r *fakePostRepo) PublishDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*models.Post{}
	for _, p := range r.posts {
		if p.Status == models.PostStatusScheduled && !p.PublishDate.After(now) {
			publish(p, now)
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (r *fakePostRepo) PublishByID(ctx context.Context, id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	p, ok := r.posts[id]
	if !ok || p.Status != models.PostStatusScheduled || p.PublishDate.After(now) {
		return false, nil
	}
	publish(p, now)
	return true, nil
}

func publish(p *models.Post, now time.Time) {
	t := now
	p.Status = models.PostStatusPublished
	p.PublishedAt = &t
	p.UpdatedAt = now
}

func (r *fakePostRepo) ListPublishedHours(ctx context.Context) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*models.Post{}
	for _, p := range r.posts {
		if p.Status == models.PostStatusPublished {
			out = append(out, &models.Post{PublishDate: p.PublishDate, Hours: p.Hours})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishDate.After(out[j].PublishDate) })
	return out, nil
}

func (r *fakePostRepo) get(id string) *models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts[id]
}

// fakeReactionRepo keeps membership rows and updates counters on the posts
// held by a fakePostRepo.
type fakeReactionRepo struct {
	posts   *fakePostRepo
	members map[models.Reaction]bool
	err     error
}

func newFakeReactionRepo(posts *fakePostRepo) *fakeReactionRepo {
	return &fakeReactionRepo{posts: posts, members: map[models.Reaction]bool{}}
}

func (r *fakeReactionRepo) Toggle(ctx context.Context, reaction *models.Reaction) (bool, models.Reactions, error) {
	if r.err != nil {
		return false, nil, r.err
	}
	r.posts.mu.Lock()
	defer r.posts.mu.Unlock()

	p, ok := r.posts.posts[reaction.PostID]
	if !ok {
		return false, nil, repository.ErrNotFound
	}
	if p.Reactions == nil {
		p.Reactions = models.Reactions{}
	}

	key := models.Reaction{PostID: reaction.PostID, UserID: reaction.UserID, ReactionType: reaction.ReactionType}
	if r.members[key] {
		delete(r.members, key)
		if p.Reactions[reaction.ReactionType] > 0 {
			p.Reactions[reaction.ReactionType]--
		}
	} else {
		r.members[key] = true
		p.Reactions[reaction.ReactionType]++
	}
	return r.members[key], clonePost(p).Reactions, nil
}

func (r *fakeReactionRepo) Exists(ctx context.Context, reaction *models.Reaction) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.posts.mu.Lock()
	defer r.posts.mu.Unlock()
	key := models.Reaction{PostID: reaction.PostID, UserID: reaction.UserID, ReactionType: reaction.ReactionType}
	return r.members[key], nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	err       error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: map[string]time.Time{}}
}

func (s *fakeScheduler) SchedulePublish(ctx context.Context, postID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.scheduled[postID] = at
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, bool, error) {
	if r.err != nil {
		return nil, false, r.err
	}
	u, ok := r.users[id]
	return u, ok, nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) Remove(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.users, id)
	return nil
}

type fakeIdentityProvider struct {
	info *transfer.GoogleUserInfo
	err  error
}

func (p *fakeIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.test/auth?state=" + state
}

func (p *fakeIdentityProvider) Exchange(ctx context.Context, code string) (*transfer.GoogleUserInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.info, nil
}

type fakeMediaRepo struct {
	assets []*models.MediaAsset
	err    error
}

func (r *fakeMediaRepo) Create(ctx context.Context, ma *models.MediaAsset) (int64, error) {
	r.assets = append(r.assets, ma)
	return int64(len(r.assets)), nil
}

func (r *fakeMediaRepo) ListByUserID(ctx context.Context, userID string) ([]*models.MediaAsset, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []*models.MediaAsset{}
	for _, a := range r.assets {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStorage struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, file []byte, contentType string) error {
	if s.err != nil {
		return s.err
	}
	s.objects[key] = file
	s.types[key] = contentType
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.test/" + key
}
