package glossary

import (
	"context"
	"testing"
	"time"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

// fakeRepo is an in-memory glossary store.
type fakeRepo struct {
	entries []*domain.GlossaryEntry
	nextID  int64
}

func (f *fakeRepo) Create(_ context.Context, e *domain.GlossaryEntry) error {
	f.nextID++
	e.ID = f.nextID
	f.entries = append(f.entries, e)
	return nil
}
func (f *fakeRepo) Update(_ context.Context, e *domain.GlossaryEntry) error {
	for i, cur := range f.entries {
		if cur.ID == e.ID {
			f.entries[i] = e
		}
	}
	return nil
}
func (f *fakeRepo) Get(_ context.Context, id int64) (*domain.GlossaryEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	_, err := f.DeleteByIDs(context.Background(), 0, []int64{id})
	return err
}
func (f *fakeRepo) ListByProject(_ context.Context, projectID int64) ([]*domain.GlossaryEntry, error) {
	var out []*domain.GlossaryEntry
	for _, e := range f.entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeRepo) FindByTerm(_ context.Context, projectID int64, original string) (*domain.GlossaryEntry, error) {
	for _, e := range f.entries {
		if e.ProjectID == projectID && e.OriginalTerm == original {
			// The sqlite repo scans a fresh row, so hand out a copy
			// rather than aliasing the stored entry.
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeRepo) Mapping(_ context.Context, projectID int64) (map[string]string, error) {
	out := map[string]string{}
	for _, e := range f.entries {
		if e.ProjectID == projectID {
			out[e.OriginalTerm] = e.TranslatedTerm
		}
	}
	return out, nil
}
func (f *fakeRepo) Search(context.Context, ports.GlossarySearch) ([]*domain.GlossaryEntry, error) {
	return nil, nil
}
func (f *fakeRepo) IncrementUsage(_ context.Context, id int64) error {
	for _, e := range f.entries {
		if e.ID == id {
			e.UsageCount++
		}
	}
	return nil
}
func (f *fakeRepo) ConfirmByIDs(_ context.Context, projectID int64, ids []int64) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.ProjectID == projectID && contains(ids, e.ID) && !e.Confirmed {
			e.Confirmed = true
			n++
		}
	}
	return n, nil
}
func (f *fakeRepo) DeleteByIDs(_ context.Context, _ int64, ids []int64) (int64, error) {
	var kept []*domain.GlossaryEntry
	var n int64
	for _, e := range f.entries {
		if contains(ids, e.ID) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return n, nil
}
func (f *fakeRepo) UpdateTypeByIDs(_ context.Context, projectID int64, ids []int64, termType string) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if e.ProjectID == projectID && contains(ids, e.ID) {
			e.TermType = termType
			n++
		}
	}
	return n, nil
}
func (f *fakeRepo) CountByProject(_ context.Context, projectID int64) (int, error) {
	out, _ := f.ListByProject(context.Background(), projectID)
	return len(out), nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func seed(repo *fakeRepo, entries ...*domain.GlossaryEntry) {
	for _, e := range entries {
		_ = repo.Create(context.Background(), e)
	}
}

// ---------------------------------------------------------------------------

func TestAddTerm_UpsertOnReuse(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	first, err := svc.AddTerm(context.Background(), &domain.GlossaryEntry{
		ProjectID: 1, OriginalTerm: "Arthur", TranslatedTerm: "Artur", Confirmed: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if first.UsageCount != 1 || first.TermType != domain.TermGeneral {
		t.Errorf("new entry = %+v", first)
	}

	again, err := svc.AddTerm(context.Background(), &domain.GlossaryEntry{
		ProjectID: 1, OriginalTerm: "Arthur", TranslatedTerm: "Whatever",
	})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != first.ID {
		t.Error("reuse must not create a second entry")
	}
	if again.UsageCount != 2 {
		t.Errorf("usage = %d, want 2", again.UsageCount)
	}
	if len(repo.entries) != 1 {
		t.Errorf("entries = %d", len(repo.entries))
	}
}

func TestFindSimilar(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Shadow Monarch", TranslatedTerm: "Gölge Hükümdarı"},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Shadow Monarchs", TranslatedTerm: "Gölge Hükümdarlar"},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Dragon", TranslatedTerm: "Ejderha"},
	)
	svc := New(repo)

	similar, err := svc.FindSimilar(context.Background(), 1, "Shadow Monarch", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(similar) != 1 {
		t.Fatalf("similar = %+v", similar)
	}
	if similar[0].OriginalTerm != "Shadow Monarchs" {
		t.Errorf("top match = %q", similar[0].OriginalTerm)
	}
	if similar[0].Similarity < 0.7 || similar[0].Similarity > 1 {
		t.Errorf("similarity = %v", similar[0].Similarity)
	}
}

func TestFindSimilar_ExcludesExactMatchAndCapsAtFive(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo, &domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "dragon", TranslatedTerm: "x"})
	for _, term := range []string{"Dragons", "Dragonn", "Dragone", "Dragonx", "Dragony", "Dragonz"} {
		seed(repo, &domain.GlossaryEntry{ProjectID: 1, OriginalTerm: term, TranslatedTerm: "x"})
	}
	svc := New(repo)

	similar, err := svc.FindSimilar(context.Background(), 1, "Dragon", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(similar) > 5 {
		t.Errorf("cap is 5, got %d", len(similar))
	}
	for _, s := range similar {
		if s.OriginalTerm == "dragon" {
			t.Error("case-insensitive exact match must be excluded")
		}
	}
}

func TestStatistics(t *testing.T) {
	repo := &fakeRepo{}
	now := time.Now()
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "a", TermType: domain.TermCharacter, UsageCount: 5, Confirmed: true, CreatedAt: now.Add(-time.Hour)},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "b", TermType: domain.TermCharacter, UsageCount: 2, CreatedAt: now},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "c", TermType: domain.TermItem, UsageCount: 9, CreatedAt: now.Add(-2 * time.Hour)},
		&domain.GlossaryEntry{ProjectID: 2, OriginalTerm: "other", TermType: domain.TermItem},
	)
	svc := New(repo)

	stats, err := svc.Statistics(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTerms != 3 {
		t.Errorf("total = %d", stats.TotalTerms)
	}
	if stats.ByType[domain.TermCharacter] != 2 || stats.ByType[domain.TermItem] != 1 {
		t.Errorf("by type = %v", stats.ByType)
	}
	if stats.ByStatus["confirmed"] != 1 || stats.ByStatus["unconfirmed"] != 2 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
	if stats.MostUsed[0].Original != "c" {
		t.Errorf("most used = %+v", stats.MostUsed)
	}
	if stats.RecentlyAdded[0].Original != "b" {
		t.Errorf("recently added = %+v", stats.RecentlyAdded)
	}
}

func TestMergeDuplicates(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Arthur", TranslatedTerm: "Artur", UsageCount: 2},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Arthur", TranslatedTerm: "Arthur", UsageCount: 7, Confirmed: true},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Arthur", TranslatedTerm: "Artür", UsageCount: 4},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Dragon", TranslatedTerm: "Ejderha", UsageCount: 1},
	)
	svc := New(repo)

	merged, err := svc.MergeDuplicates(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if merged != 2 {
		t.Errorf("merged = %d, want 2", merged)
	}

	var arthur *domain.GlossaryEntry
	count := 0
	for _, e := range repo.entries {
		if e.OriginalTerm == "Arthur" {
			arthur = e
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Arthur entries after merge = %d", count)
	}
	if arthur.UsageCount != 13 {
		t.Errorf("usage sum = %d, want 13", arthur.UsageCount)
	}
	if !arthur.Confirmed {
		t.Error("merged entry must stay confirmed")
	}
	if arthur.TranslatedTerm != "Arthur" {
		t.Errorf("survivor should be the confirmed entry, got %q", arthur.TranslatedTerm)
	}
	if len(repo.entries) != 2 {
		t.Errorf("total entries = %d", len(repo.entries))
	}
}

func TestMergeDuplicates_UnconfirmedRanksByUsage(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Guild", TranslatedTerm: "low", UsageCount: 1},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Guild", TranslatedTerm: "high", UsageCount: 8},
	)
	svc := New(repo)

	if _, err := svc.MergeDuplicates(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if len(repo.entries) != 1 || repo.entries[0].TranslatedTerm != "high" {
		t.Errorf("survivor = %+v", repo.entries)
	}
	if repo.entries[0].UsageCount != 9 {
		t.Errorf("usage = %d", repo.entries[0].UsageCount)
	}
	if repo.entries[0].Confirmed {
		t.Error("no duplicate was confirmed, survivor must stay unconfirmed")
	}
}

func TestSuggestTranslations(t *testing.T) {
	svc := New(&fakeRepo{})

	got := svc.SuggestTranslations("Shadow Monarch")
	if len(got) == 0 {
		t.Fatal("expected suggestions")
	}
	if got[0] != "Shadow Monarch" {
		t.Errorf("proper-noun compound should suggest keeping as-is first, got %v", got)
	}
	found := false
	for _, s := range got {
		if s == "Gölge Hükümdar" {
			found = true
		}
	}
	if !found {
		t.Errorf("pattern replacement missing: %v", got)
	}

	if got := svc.SuggestTranslations("Hunter Guild"); len(got) > 3 {
		t.Errorf("cap is 3, got %v", got)
	}
	if got := svc.SuggestTranslations("nothing matches"); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestAnalyzeConsistency(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Shadow Monarch", TranslatedTerm: "Gölge Hükümdarı"},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Shadow Monarchs", TranslatedTerm: "Karanlık Kral"},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Dragon", TranslatedTerm: "Ejderha"},
	)
	svc := New(repo)

	report, err := svc.AnalyzeConsistency(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalEntries != 3 {
		t.Errorf("total = %d", report.TotalEntries)
	}
	if report.IssueCount != 1 || len(report.ConsistencyIssues) != 1 {
		t.Fatalf("issues = %+v", report)
	}
	issue := report.ConsistencyIssues[0]
	if issue.Type != "similar_terms_different_translation" {
		t.Errorf("issue type = %q", issue.Type)
	}
	if issue.Translation1 == issue.Translation2 {
		t.Error("flagged pair must differ in translation")
	}
}

func TestAnalyzeConsistency_IdenticalTranslationsNotFlagged(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Iron Guild", TranslatedTerm: "Demir Lonca"},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "Iron Guilds", TranslatedTerm: "Demir Lonca"},
	)
	svc := New(repo)

	report, err := svc.AnalyzeConsistency(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if report.IssueCount != 0 {
		t.Errorf("same translation should not be an issue: %+v", report.ConsistencyIssues)
	}
}

func TestBulkOperations(t *testing.T) {
	repo := &fakeRepo{}
	seed(repo,
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "a", TermType: domain.TermGeneral},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "b", TermType: domain.TermGeneral},
		&domain.GlossaryEntry{ProjectID: 1, OriginalTerm: "c", TermType: domain.TermGeneral},
	)
	svc := New(repo)

	n, err := svc.BulkConfirm(context.Background(), 1, []int64{1, 2})
	if err != nil || n != 2 {
		t.Fatalf("confirm: n=%d err=%v", n, err)
	}
	n, err = svc.BulkUpdateType(context.Background(), 1, []int64{3}, domain.TermSkill)
	if err != nil || n != 1 {
		t.Fatalf("retype: n=%d err=%v", n, err)
	}
	n, err = svc.BulkDelete(context.Background(), 1, []int64{1})
	if err != nil || n != 1 {
		t.Fatalf("delete: n=%d err=%v", n, err)
	}
	if len(repo.entries) != 2 {
		t.Errorf("entries = %d", len(repo.entries))
	}
}
