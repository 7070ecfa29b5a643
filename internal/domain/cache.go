package domain

import "time"

// CacheEntry is a prior translation keyed by the SHA-256 of the exact
// source text plus project and language pair. Entries are append-only and
// never invalidated when the glossary evolves; callers choose a cache mode
// instead.
type CacheEntry struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	SourceHash     string    `json:"source_text_hash"`
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	Provider       string    `json:"ai_provider"`
	CreatedAt      time.Time `json:"created_at"`
}

// Cache modes controlling how the pipeline consults prior translations.
const (
	CacheUse     = "use"     // exact-match lookup, write on miss
	CacheBypass  = "bypass"  // skip lookup, still write
	CacheRefresh = "refresh" // skip lookup, overwrite existing row
)
