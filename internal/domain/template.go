package domain

import "time"

// Template is a stored prompt template override. Resolution order is
// provider -> project -> global -> builtin.
type Template struct {
	ID        int64     `json:"id"`
	Scope     string    `json:"scope"`  // global | project | provider
	RefID     *int64    `json:"ref_id"` // project id or api config id
	Type      string    `json:"type"`   // translate
	Role      string    `json:"role"`   // system
	Body      string    `json:"body"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at"`
}
