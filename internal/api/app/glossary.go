package app

import (
	"context"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
	"github.com/turanbagtur/novel-translator/internal/usecase/glossary"
)

type GlossaryAPI struct {
	svc  *glossary.Service
	repo ports.GlossaryRepository
}

func NewGlossaryAPI(svc *glossary.Service, repo ports.GlossaryRepository) *GlossaryAPI {
	return &GlossaryAPI{svc: svc, repo: repo}
}

// Add stores a manually entered term. Manual terms are trusted, so they
// start out confirmed, unlike terms extracted during translation.
func (a *GlossaryAPI) Add(projectID int64, original, translated, termType string) (*domain.GlossaryEntry, error) {
	ctx := context.Background()
	return a.svc.AddTerm(ctx, &domain.GlossaryEntry{
		ProjectID:      projectID,
		OriginalTerm:   original,
		TranslatedTerm: translated,
		TermType:       termType,
		Confirmed:      true,
	})
}

func (a *GlossaryAPI) List(projectID int64) ([]*domain.GlossaryEntry, error) {
	ctx := context.Background()
	return a.repo.ListByProject(ctx, projectID)
}

func (a *GlossaryAPI) Search(q ports.GlossarySearch) ([]*domain.GlossaryEntry, error) {
	ctx := context.Background()
	return a.svc.Search(ctx, q)
}

func (a *GlossaryAPI) Update(e domain.GlossaryEntry) (*domain.GlossaryEntry, error) {
	ctx := context.Background()
	existing, err := a.repo.Get(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	existing.TranslatedTerm = e.TranslatedTerm
	existing.TermType = e.TermType
	existing.Context = e.Context
	existing.Confirmed = e.Confirmed
	if err := a.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (a *GlossaryAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	return true, a.repo.Delete(ctx, id)
}

func (a *GlossaryAPI) FindSimilar(projectID int64, term string, threshold float64) ([]glossary.SimilarTerm, error) {
	ctx := context.Background()
	return a.svc.FindSimilar(ctx, projectID, term, threshold)
}

func (a *GlossaryAPI) Statistics(projectID int64) (*glossary.Statistics, error) {
	ctx := context.Background()
	return a.svc.Statistics(ctx, projectID)
}

func (a *GlossaryAPI) BulkConfirm(projectID int64, ids []int64) (int64, error) {
	ctx := context.Background()
	return a.svc.BulkConfirm(ctx, projectID, ids)
}

func (a *GlossaryAPI) BulkDelete(projectID int64, ids []int64) (int64, error) {
	ctx := context.Background()
	return a.svc.BulkDelete(ctx, projectID, ids)
}

func (a *GlossaryAPI) BulkUpdateType(projectID int64, ids []int64, termType string) (int64, error) {
	ctx := context.Background()
	return a.svc.BulkUpdateType(ctx, projectID, ids, termType)
}

func (a *GlossaryAPI) MergeDuplicates(projectID int64) (int, error) {
	ctx := context.Background()
	return a.svc.MergeDuplicates(ctx, projectID)
}

func (a *GlossaryAPI) SuggestTranslations(term string) []string {
	return a.svc.SuggestTranslations(term)
}

func (a *GlossaryAPI) AnalyzeConsistency(projectID int64) (*glossary.ConsistencyReport, error) {
	ctx := context.Background()
	return a.svc.AnalyzeConsistency(ctx, projectID)
}
