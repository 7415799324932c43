package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"user_id"`
	Title       string         `db:"title" json:"title"`
	Content     string         `db:"content" json:"content"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Hours       float64        `db:"hours" json:"hours"`
	PublishDate time.Time      `db:"publish_date" json:"publish_date"`
	Status      string         `db:"status" json:"status"` // scheduled, published
	PublishedAt *time.Time     `db:"published_at" json:"published_at"`
	Reactions   Reactions      `db:"reactions" json:"reactions"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// IsVisibleTo reports whether viewerID may read the post. Scheduled posts are
// only visible to their author.
func (p *Post) IsVisibleTo(viewerID string) bool {
	return p.Status == PostStatusPublished || (viewerID != "" && p.UserID == viewerID)
}

type MediaAsset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Reactions maps a reaction type to its count. It is stored as a jsonb column.
type Reactions map[string]int

func (r Reactions) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	// lib/pq sends []byte as bytea, jsonb needs text
	return string(b), nil
}

func (r *Reactions) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = Reactions{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("reactions: unsupported column type")
	}

	out := Reactions{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return err
		}
	}
	// jsonb null decodes to a nil map
	if out == nil {
		out = Reactions{}
	}
	*r = out
	return nil
}
