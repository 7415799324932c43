package transfer

import "github.com/maheshrc27/devjournal/internal/models"

type SweepResult struct {
	Success      bool           `json:"success"`
	UpdatedPosts []*models.Post `json:"updatedPosts"`
}
