package uploads

import "time"

// Upload is one stored screenshot.
type Upload struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	SizeBytes   int64     `json:"sizeBytes"`
	ContentType string    `json:"contentType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
