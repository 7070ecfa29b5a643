package domain

import "time"

// Chapter status lifecycle: pending -> processing -> completed | error.
// Completed and error chapters may re-enter processing on retry.
const (
	ChapterPending    = "pending"
	ChapterProcessing = "processing"
	ChapterCompleted  = "completed"
	ChapterError      = "error"
)

type Chapter struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	Number         int       `json:"chapter_number"`
	Title          string    `json:"title"`
	OriginalText   string    `json:"original_text"`
	TranslatedText *string   `json:"translated_text"`
	Status         string    `json:"status"`
	StatsRaw       string    `json:"translation_stats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
