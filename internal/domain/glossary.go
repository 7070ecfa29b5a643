package domain

import "time"

// Glossary term types. Organization terms are stored as general,
// matching how extracted categories map onto the stored set.
const (
	TermCharacter = "character"
	TermLocation  = "location"
	TermSkill     = "skill"
	TermItem      = "item"
	TermGeneral   = "general"
)

type GlossaryEntry struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	OriginalTerm   string    `json:"original_term"`
	TranslatedTerm string    `json:"translated_term"`
	TermType       string    `json:"term_type"`
	Context        string    `json:"context"`
	UsageCount     int       `json:"usage_count"`
	Confirmed      bool      `json:"confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
