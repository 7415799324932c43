package transfer

import (
	"encoding/json"

	"github.com/maheshrc27/devjournal/pkg/utils"
)

// Tags accepts either a JSON array or a comma separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = utils.ParseTags(v)
	return nil
}

type PostCreation struct {
	Title       string   `json:"title" validate:"required,min=6,max=100"`
	Content     string   `json:"content" validate:"required,min=20"`
	Hours       *float64 `json:"hours" validate:"required,gte=0,lte=24"`
	Tags        Tags     `json:"tags" validate:"required,min=1,dive,required"`
	PublishDate string   `json:"publish_date" validate:"required"`
}

// PostUpdate carries a partial edit. Nil fields keep their stored value; the
// merged post is validated like a new one.
type PostUpdate struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Hours       *float64 `json:"hours"`
	Tags        *Tags    `json:"tags"`
	PublishDate *string  `json:"publish_date"`
}

type PostFilter struct {
	Status    string `query:"status"`
	Tag       string `query:"tag"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Sort      string `query:"sort"`
}
