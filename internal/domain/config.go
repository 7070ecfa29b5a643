package domain

import "time"

// APIConfig holds per-provider credentials and call settings. At most one
// row exists per provider name (upsert semantics).
type APIConfig struct {
	ID           int64     `json:"id"`
	ProviderName string    `json:"provider_name"`
	APIKey       string    `json:"api_key"`
	APIURL       string    `json:"api_url"`
	Model        string    `json:"model"`
	MaxTokens    int       `json:"max_tokens"`
	Temperature  float64   `json:"temperature"`
	Enabled      bool      `json:"enabled"`
	ExtraRaw     string    `json:"extra_config"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
