package domain

import "time"

// Batch job statuses.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
	JobCancelled  = "cancelled"
)

// Job is a persisted batch translation run over a set of chapters. The
// job row is the single source of truth for progress; only the cancel
// handle lives in process memory.
type Job struct {
	ID                int64      `json:"id"`
	ProjectID         int64      `json:"project_id"`
	ChapterIDsRaw     string     `json:"chapter_ids"`
	Status            string     `json:"status"`
	Progress          int        `json:"progress"`
	TotalChapters     int        `json:"total_chapters"`
	CompletedChapters int        `json:"completed_chapters"`
	FailedRaw         string     `json:"failed_chapters"`
	StartedAt         *time.Time `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

// JobFailure records one chapter that failed within a batch.
type JobFailure struct {
	ChapterID int64  `json:"chapter_id"`
	Error     string `json:"error"`
}
