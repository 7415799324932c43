package transfer

import "github.com/maheshrc27/devjournal/internal/models"

type ReactionRequest struct {
	PostID       string `json:"postId"`
	UserID       string `json:"userId"`
	ReactionType string `json:"reactionType"`
}

type ReactionResult struct {
	HasReacted bool             `json:"hasReacted"`
	Count      int              `json:"count"`
	Reactions  models.Reactions `json:"reactions,omitempty"`
}
