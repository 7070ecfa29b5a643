package app

import (
	"context"
	"errors"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

type ChapterAPI struct {
	repo ports.ChapterRepository
}

func NewChapterAPI(repo ports.ChapterRepository) *ChapterAPI { return &ChapterAPI{repo: repo} }

func (a *ChapterAPI) Create(projectID int64, number int, title, text string) (*domain.Chapter, error) {
	ctx := context.Background()
	if text == "" {
		return nil, errors.New("original text is required")
	}
	c := &domain.Chapter{
		ProjectID:    projectID,
		Number:       number,
		Title:        title,
		OriginalText: text,
		Status:       domain.ChapterPending,
	}
	if err := a.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *ChapterAPI) Get(id int64) (*domain.Chapter, error) {
	ctx := context.Background()
	c, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (a *ChapterAPI) ListByProject(projectID int64) ([]*domain.Chapter, error) {
	ctx := context.Background()
	return a.repo.ListByProject(ctx, projectID)
}

// Update replaces the chapter title and original text. Changing the
// original text resets the chapter to pending so it gets retranslated.
func (a *ChapterAPI) Update(id int64, title, text string) (*domain.Chapter, error) {
	ctx := context.Background()
	c, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	c.Title = title
	if text != "" && text != c.OriginalText {
		c.OriginalText = text
		c.TranslatedText = nil
		c.Status = domain.ChapterPending
	}
	if err := a.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *ChapterAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	return true, a.repo.Delete(ctx, id)
}
