package domain

import "time"

type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SourceLang  string    `json:"source_language"`
	TargetLang  string    `json:"target_language"`
	Provider    string    `json:"ai_provider"`
	Model       string    `json:"ai_model"`
	SettingsRaw string    `json:"settings_json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
