package models

import "time"

type Reaction struct {
	PostID       string    `db:"post_id" json:"post_id"`
	UserID       string    `db:"user_id" json:"user_id"`
	ReactionType string    `db:"reaction_type" json:"reaction_type"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	ReactionLove = "love"
	ReactionWow  = "wow"
	ReactionHaha = "haha"
)

var ReactionTypes = map[string]struct{}{
	ReactionLove: {},
	ReactionWow:  {},
	ReactionHaha: {},
}

func IsReactionType(t string) bool {
	_, ok := ReactionTypes[t]
	return ok
}
