package domain

import "time"

// CostRecord is one append-only ledger row per non-cached translation call.
type CostRecord struct {
	ID            int64     `json:"id"`
	ProjectID     *int64    `json:"project_id"`
	ChapterID     *int64    `json:"chapter_id"`
	Provider      string    `json:"ai_provider"`
	InputTokens   int       `json:"input_tokens"`
	OutputTokens  int       `json:"output_tokens"`
	TotalTokens   int       `json:"total_tokens"`
	EstimatedCost float64   `json:"estimated_cost"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// CostSummary aggregates ledger rows for one provider.
type CostSummary struct {
	Provider     string  `json:"ai_provider"`
	Calls        int     `json:"calls"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	TotalCost    float64 `json:"total_cost"`
}
