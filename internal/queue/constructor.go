package queue

import (
	"github.com/maheshrc27/devjournal/internal/service"
)

type Queue struct {
	r service.Resolver
}

func NewQueue(r service.Resolver) *Queue {
	return &Queue{
		r: r,
	}
}

const TaskTypePublishPost = "post:publish"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
