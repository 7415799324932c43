package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/devjournal/internal/models"
)

const postColumns = `id, user_id, title, content, tags, hours, publish_date, status, published_at, reactions, created_at, updated_at`

// PostQuery narrows a post listing. Zero values mean "no filter".
type PostQuery struct {
	Status    string
	VisibleTo string // published posts plus this author's scheduled ones
	Tag       string
	Start     *time.Time
	End       *time.Time
	Ascending bool
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, q PostQuery) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Remove(ctx context.Context, id, userID string) (*models.Post, error)
	PublishDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	PublishByID(ctx context.Context, id string, now time.Time) (bool, error)
	ListPublishedHours(ctx context.Context) ([]*models.Post, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	var publishedAt sql.NullTime
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.Tags,
		&post.Hours,
		&post.PublishDate,
		&post.Status,
		&publishedAt,
		&post.Reactions,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return &post, nil
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, title, content, tags, hours, publish_date, status, published_at, reactions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.UserID,
		post.Title,
		post.Content,
		post.Tags,
		post.Hours,
		post.PublishDate,
		post.Status,
		nullTime(post.PublishedAt),
		post.Reactions,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context, q PostQuery) ([]*models.Post, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.Status != "" {
		add("status = $%d", q.Status)
	}
	if q.VisibleTo != "" {
		add("(status = 'published' OR user_id = $%d)", q.VisibleTo)
	}
	if q.Tag != "" {
		add("$%d = ANY(tags)", q.Tag)
	}
	if q.Start != nil {
		add("COALESCE(published_at, publish_date) >= $%d", *q.Start)
	}
	if q.End != nil {
		add("COALESCE(published_at, publish_date) <= $%d", *q.End)
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	order := "DESC"
	if q.Ascending {
		order = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY COALESCE(published_at, publish_date) %s, created_at %s`, order, order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return scanPosts(rows)
}

// Update writes every mutable field of post. The write is scoped to the
// post's author; ErrNotFound means no row matched (id, user_id).
func (r *postRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = $1,
			content = $2,
			tags = $3,
			hours = $4,
			publish_date = $5,
			status = $6,
			published_at = $7,
			updated_at = $8
		WHERE id = $9 AND user_id = $10
		RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.Title,
		post.Content,
		post.Tags,
		post.Hours,
		post.PublishDate,
		post.Status,
		nullTime(post.PublishedAt),
		post.UpdatedAt,
		post.ID,
		post.UserID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return updated, nil
}

func (r *postRepository) Remove(ctx context.Context, id, userID string) (*models.Post, error) {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2 RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

// PublishDue flips every scheduled post whose publish_date has passed and
// returns the flipped rows. Running it again with nothing due is a no-op.
func (r *postRepository) PublishDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `
		UPDATE posts
		SET status = 'published',
			published_at = $1,
			updated_at = $1
		WHERE status = 'scheduled' AND publish_date <= $1
		RETURNING ` + postColumns

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return scanPosts(rows)
}

func (r *postRepository) PublishByID(ctx context.Context, id string, now time.Time) (bool, error) {
	query := `
		UPDATE posts
		SET status = 'published',
			published_at = $1,
			updated_at = $1
		WHERE id = $2 AND status = 'scheduled' AND publish_date <= $1
	`
	result, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *postRepository) ListPublishedHours(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT publish_date, hours FROM posts WHERE status = 'published' ORDER BY publish_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.PublishDate, &p.Hours); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
