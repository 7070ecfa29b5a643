package glossary

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

// Thresholds for similarity-based features.
const (
	SimilarThreshold     = 0.7
	ConsistencyThreshold = 0.8
)

// Service layers term management on top of the glossary store: search,
// similarity analysis, bulk edits and duplicate merging.
type Service struct {
	repo   ports.GlossaryRepository
	metric strutil.StringMetric
}

func New(repo ports.GlossaryRepository) *Service {
	return &Service{repo: repo, metric: metrics.NewSorensenDice()}
}

func (s *Service) similarity(a, b string) float64 {
	return strutil.Similarity(strings.ToLower(a), strings.ToLower(b), s.metric)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// AddTerm inserts a term or, when the exact original already exists for
// the project, bumps its usage count instead.
func (s *Service) AddTerm(ctx context.Context, e *domain.GlossaryEntry) (*domain.GlossaryEntry, error) {
	existing, err := s.repo.FindByTerm(ctx, e.ProjectID, e.OriginalTerm)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.repo.IncrementUsage(ctx, existing.ID); err != nil {
			return nil, err
		}
		existing.UsageCount++
		return existing, nil
	}
	if e.UsageCount == 0 {
		e.UsageCount = 1
	}
	if e.TermType == "" {
		e.TermType = domain.TermGeneral
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Search(ctx context.Context, q ports.GlossarySearch) ([]*domain.GlossaryEntry, error) {
	return s.repo.Search(ctx, q)
}

// SimilarTerm is one near-match against an existing glossary entry.
type SimilarTerm struct {
	ID             int64   `json:"id"`
	OriginalTerm   string  `json:"original_term"`
	TranslatedTerm string  `json:"translated_term"`
	Similarity     float64 `json:"similarity"`
	TermType       string  `json:"term_type"`
}

// FindSimilar ranks existing terms by string similarity to the given
// term, excluding exact (case-insensitive) matches. Top five at or above
// the threshold.
func (s *Service) FindSimilar(ctx context.Context, projectID int64, term string, threshold float64) ([]SimilarTerm, error) {
	if threshold <= 0 {
		threshold = SimilarThreshold
	}
	entries, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var out []SimilarTerm
	for _, e := range entries {
		if strings.EqualFold(term, e.OriginalTerm) {
			continue
		}
		sim := s.similarity(term, e.OriginalTerm)
		if sim >= threshold {
			out = append(out, SimilarTerm{
				ID:             e.ID,
				OriginalTerm:   e.OriginalTerm,
				TranslatedTerm: e.TranslatedTerm,
				Similarity:     round2(sim),
				TermType:       e.TermType,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > 5 {
		out = out[:5]
	}
	return out, nil
}

type TermUsage struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Count      int    `json:"count"`
	Type       string `json:"type"`
}

type RecentTerm struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Type       string `json:"type"`
	Confirmed  bool   `json:"confirmed"`
}

type Statistics struct {
	TotalTerms    int            `json:"total_terms"`
	ByType        map[string]int `json:"by_type"`
	ByStatus      map[string]int `json:"by_status"`
	MostUsed      []TermUsage    `json:"most_used"`
	RecentlyAdded []RecentTerm   `json:"recently_added"`
}

func (s *Service) Statistics(ctx context.Context, projectID int64) (*Statistics, error) {
	entries, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stats := &Statistics{
		TotalTerms: len(entries),
		ByType:     map[string]int{},
		ByStatus:   map[string]int{"confirmed": 0, "unconfirmed": 0},
	}
	for _, e := range entries {
		stats.ByType[e.TermType]++
		if e.Confirmed {
			stats.ByStatus["confirmed"]++
		} else {
			stats.ByStatus["unconfirmed"]++
		}
	}

	byUsage := append([]*domain.GlossaryEntry(nil), entries...)
	sort.SliceStable(byUsage, func(i, j int) bool { return byUsage[i].UsageCount > byUsage[j].UsageCount })
	for _, e := range top(byUsage, 10) {
		stats.MostUsed = append(stats.MostUsed, TermUsage{
			Original: e.OriginalTerm, Translated: e.TranslatedTerm,
			Count: e.UsageCount, Type: e.TermType,
		})
	}

	byCreated := append([]*domain.GlossaryEntry(nil), entries...)
	sort.SliceStable(byCreated, func(i, j int) bool { return byCreated[i].CreatedAt.After(byCreated[j].CreatedAt) })
	for _, e := range top(byCreated, 10) {
		stats.RecentlyAdded = append(stats.RecentlyAdded, RecentTerm{
			Original: e.OriginalTerm, Translated: e.TranslatedTerm,
			Type: e.TermType, Confirmed: e.Confirmed,
		})
	}
	return stats, nil
}

func top(entries []*domain.GlossaryEntry, n int) []*domain.GlossaryEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func (s *Service) BulkConfirm(ctx context.Context, projectID int64, ids []int64) (int64, error) {
	return s.repo.ConfirmByIDs(ctx, projectID, ids)
}

func (s *Service) BulkDelete(ctx context.Context, projectID int64, ids []int64) (int64, error) {
	return s.repo.DeleteByIDs(ctx, projectID, ids)
}

func (s *Service) BulkUpdateType(ctx context.Context, projectID int64, ids []int64, termType string) (int64, error) {
	return s.repo.UpdateTypeByIDs(ctx, projectID, ids, termType)
}

// MergeDuplicates collapses entries sharing one original_term into the
// best-ranked entry (confirmed first, then usage). The survivor absorbs
// the usage counts of the rest and stays confirmed if any duplicate was.
// Returns the number of removed entries.
func (s *Service) MergeDuplicates(ctx context.Context, projectID int64) (int, error) {
	entries, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	groups := map[string][]*domain.GlossaryEntry{}
	for _, e := range entries {
		groups[e.OriginalTerm] = append(groups[e.OriginalTerm], e)
	}

	merged := 0
	for _, group := range groups {
		if len(group) <= 1 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Confirmed != group[j].Confirmed {
				return group[i].Confirmed
			}
			return group[i].UsageCount > group[j].UsageCount
		})
		keep := group[0]
		var removeIDs []int64
		for _, dup := range group[1:] {
			keep.UsageCount += dup.UsageCount
			if dup.Confirmed {
				keep.Confirmed = true
			}
			removeIDs = append(removeIDs, dup.ID)
		}
		if err := s.repo.Update(ctx, keep); err != nil {
			return merged, err
		}
		if _, err := s.repo.DeleteByIDs(ctx, projectID, removeIDs); err != nil {
			return merged, err
		}
		merged += len(removeIDs)
	}
	return merged, nil
}

// translationPatterns maps common fantasy-novel vocabulary to Turkish.
var translationPatterns = []struct{ eng, tr string }{
	{"Guild", "Lonca"},
	{"Hunter", "Avcı"},
	{"King", "Kral"},
	{"Queen", "Kraliçe"},
	{"Monarch", "Hükümdar"},
	{"Shadow", "Gölge"},
	{"Dark", "Karanlık"},
	{"Light", "Işık"},
	{"Dragon", "Ejderha"},
	{"Sword", "Kılıç"},
	{"Magic", "Büyü"},
	{"Skill", "Yetenek"},
	{"Level", "Seviye"},
	{"Dungeon", "Zindan"},
}

// SuggestTranslations proposes up to three candidate translations from
// simple vocabulary patterns. Fully capitalized compounds (likely proper
// names) also get an as-is suggestion.
func (s *Service) SuggestTranslations(originalTerm string) []string {
	var suggestions []string
	if strings.Contains(originalTerm, " ") {
		allUpper := true
		for _, w := range strings.Fields(originalTerm) {
			r := []rune(w)
			if len(r) == 0 || !(r[0] >= 'A' && r[0] <= 'Z') {
				allUpper = false
				break
			}
		}
		if allUpper {
			suggestions = append(suggestions, originalTerm)
		}
	}
	for _, p := range translationPatterns {
		if strings.Contains(originalTerm, p.eng) {
			candidate := strings.ReplaceAll(originalTerm, p.eng, p.tr)
			dup := false
			for _, existing := range suggestions {
				if existing == candidate {
					dup = true
					break
				}
			}
			if !dup {
				suggestions = append(suggestions, candidate)
			}
		}
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// ConsistencyIssue flags a near-duplicate pair translated differently.
type ConsistencyIssue struct {
	Type         string  `json:"type"`
	Term1        string  `json:"term1"`
	Translation1 string  `json:"translation1"`
	Term2        string  `json:"term2"`
	Translation2 string  `json:"translation2"`
	Similarity   float64 `json:"similarity"`
}

type ConsistencyReport struct {
	TotalEntries      int                `json:"total_entries"`
	ConsistencyIssues []ConsistencyIssue `json:"consistency_issues"`
	IssueCount        int                `json:"issue_count"`
}

// AnalyzeConsistency does a pairwise scan for highly similar originals
// carrying different translations. Quadratic, fine at glossary scale.
func (s *Service) AnalyzeConsistency(ctx context.Context, projectID int64) (*ConsistencyReport, error) {
	entries, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var issues []ConsistencyIssue
	for i, e := range entries {
		for _, other := range entries[i+1:] {
			sim := s.similarity(e.OriginalTerm, other.OriginalTerm)
			if sim > ConsistencyThreshold && e.TranslatedTerm != other.TranslatedTerm {
				issues = append(issues, ConsistencyIssue{
					Type:         "similar_terms_different_translation",
					Term1:        e.OriginalTerm,
					Translation1: e.TranslatedTerm,
					Term2:        other.OriginalTerm,
					Translation2: other.TranslatedTerm,
					Similarity:   round2(sim),
				})
			}
		}
	}
	report := &ConsistencyReport{
		TotalEntries: len(entries),
		IssueCount:   len(issues),
	}
	if len(issues) > 10 {
		issues = issues[:10]
	}
	report.ConsistencyIssues = issues
	return report, nil
}
