package ports

import (
	"context"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

type ChapterRepository interface {
	Create(ctx context.Context, c *domain.Chapter) error
	Get(ctx context.Context, id int64) (*domain.Chapter, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Chapter, error)
	Update(ctx context.Context, c *domain.Chapter) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	// SetResult stores the translation outcome in one write.
	SetResult(ctx context.Context, id int64, translated *string, status, statsRaw string) error
	// PrevTranslated returns the chapter with the highest number strictly
	// below the given one within the project, or nil.
	PrevTranslated(ctx context.Context, projectID int64, beforeNumber int) (*domain.Chapter, error)
	Delete(ctx context.Context, id int64) error
}

type GlossarySearch struct {
	ProjectID     int64
	Query         string
	TermType      string
	ConfirmedOnly bool
}

type GlossaryRepository interface {
	Create(ctx context.Context, e *domain.GlossaryEntry) error
	Update(ctx context.Context, e *domain.GlossaryEntry) error
	Get(ctx context.Context, id int64) (*domain.GlossaryEntry, error)
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]*domain.GlossaryEntry, error)
	// FindByTerm matches the exact original term within a project.
	FindByTerm(ctx context.Context, projectID int64, original string) (*domain.GlossaryEntry, error)
	// Mapping returns the flat original -> translated map used as
	// translation input.
	Mapping(ctx context.Context, projectID int64) (map[string]string, error)
	Search(ctx context.Context, q GlossarySearch) ([]*domain.GlossaryEntry, error)
	IncrementUsage(ctx context.Context, id int64) error
	ConfirmByIDs(ctx context.Context, projectID int64, ids []int64) (int64, error)
	DeleteByIDs(ctx context.Context, projectID int64, ids []int64) (int64, error)
	UpdateTypeByIDs(ctx context.Context, projectID int64, ids []int64, termType string) (int64, error)
	CountByProject(ctx context.Context, projectID int64) (int, error)
}

type CacheRepository interface {
	Get(ctx context.Context, hash string, projectID int64, sourceLang, targetLang string) (*domain.CacheEntry, error)
	Put(ctx context.Context, e *domain.CacheEntry) error
}

type ConfigRepository interface {
	// Upsert inserts or replaces the single row for the provider name.
	Upsert(ctx context.Context, c *domain.APIConfig) error
	GetByProvider(ctx context.Context, providerName string) (*domain.APIConfig, error)
	List(ctx context.Context) ([]*domain.APIConfig, error)
	Delete(ctx context.Context, id int64) error
}

type CostRepository interface {
	Add(ctx context.Context, r *domain.CostRecord) error
	ListByProject(ctx context.Context, projectID int64) ([]*domain.CostRecord, error)
	SummaryByProvider(ctx context.Context, projectID *int64) ([]*domain.CostSummary, error)
}

type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Job, error)
	List(ctx context.Context, limit int) ([]*domain.Job, error)
	MarkStarted(ctx context.Context, id int64) error
	UpdateProgress(ctx context.Context, id int64, progress, completed int) error
	Finish(ctx context.Context, id int64, status string, completed int, failedRaw string) error
	SetStatus(ctx context.Context, id int64, status string) error
}

type TemplateRepository interface {
	GetEffective(ctx context.Context, scope string, refID *int64, typ, role string) (*domain.Template, error)
	Upsert(ctx context.Context, t *domain.Template) error
}
