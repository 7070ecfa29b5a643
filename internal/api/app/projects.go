package app

import (
	"context"
	"errors"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

var ErrNotFound = errors.New("not found")

type ProjectAPI struct {
	repo ports.ProjectRepository
}

func NewProjectAPI(repo ports.ProjectRepository) *ProjectAPI { return &ProjectAPI{repo: repo} }

func (a *ProjectAPI) Create(p domain.Project) (*domain.Project, error) {
	ctx := context.Background()
	if p.Name == "" {
		return nil, errors.New("name is required")
	}
	if p.SourceLang == "" {
		p.SourceLang = "en"
	}
	if p.TargetLang == "" {
		p.TargetLang = "tr"
	}
	if p.Provider == "" {
		p.Provider = "gemini"
	}
	if err := a.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *ProjectAPI) Get(id int64) (*domain.Project, error) {
	ctx := context.Background()
	p, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (a *ProjectAPI) List() ([]*domain.Project, error) {
	ctx := context.Background()
	return a.repo.List(ctx)
}

func (a *ProjectAPI) Update(p domain.Project) (*domain.Project, error) {
	ctx := context.Background()
	existing, err := a.repo.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if p.Name != "" {
		existing.Name = p.Name
	}
	existing.Description = p.Description
	if p.Provider != "" {
		existing.Provider = p.Provider
	}
	existing.Model = p.Model
	if err := a.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the project and everything hanging off it: chapters,
// glossary, cache and cost rows go with it.
func (a *ProjectAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	return true, a.repo.Delete(ctx, id)
}
