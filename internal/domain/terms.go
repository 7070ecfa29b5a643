package domain

// TermPair is one extracted terminology mapping.
type TermPair struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// TermSet is the categorized terminology a provider may return alongside a
// translation. The five categories are fixed by the response protocol.
type TermSet struct {
	Character    []TermPair `json:"character"`
	Location     []TermPair `json:"location"`
	Skill        []TermPair `json:"skill"`
	Item         []TermPair `json:"item"`
	Organization []TermPair `json:"organization"`
}

// Categories returns the set as (glossary term type, pairs) tuples.
func (s TermSet) Categories() []struct {
	Type  string
	Pairs []TermPair
} {
	return []struct {
		Type  string
		Pairs []TermPair
	}{
		{TermCharacter, s.Character},
		{TermLocation, s.Location},
		{TermSkill, s.Skill},
		{TermItem, s.Item},
		{TermGeneral, s.Organization},
	}
}

func (s TermSet) Len() int {
	return len(s.Character) + len(s.Location) + len(s.Skill) + len(s.Item) + len(s.Organization)
}

func (s TermSet) Empty() bool { return s.Len() == 0 }
