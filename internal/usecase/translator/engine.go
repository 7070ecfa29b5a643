package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/turanbagtur/novel-translator/internal/cost"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

// Precondition failures. These reject the request before any chapter
// state mutation; everything after the processing transition is reported
// through the structured Outcome instead.
var (
	ErrChapterNotFound       = fmt.Errorf("chapter not found")
	ErrProjectNotFound       = fmt.Errorf("project not found")
	ErrProviderNotConfigured = fmt.Errorf("provider not configured or disabled")
	ErrTranslationInFlight   = fmt.Errorf("chapter translation already in progress")
)

type Deps struct {
	Projects ports.ProjectRepository
	Chapters ports.ChapterRepository
	Glossary ports.GlossaryRepository
	Cache    ports.CacheRepository
	Configs  ports.ConfigRepository
	Costs    ports.CostRepository
	Log      *zap.Logger
	// BuildProvider returns the concrete backend for a stored configuration.
	BuildProvider func(ctx context.Context, cfg *domain.APIConfig, model string) (ports.Provider, error)

	// DefaultCacheMode applies when a request carries none; empty means
	// domain.CacheUse.
	DefaultCacheMode string
	// ContextTail caps the previous-chapter excerpt; zero means 500 runes.
	ContextTail int
}

// Engine drives the chapter translation pipeline: cache, chunking,
// provider calls, glossary growth and cost accounting.
type Engine struct {
	d Deps

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func New(d Deps) *Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Engine{d: d, inFlight: make(map[int64]struct{})}
}

type TranslateArgs struct {
	ChapterID    int64
	ExtractTerms bool
	// CacheMode defaults to domain.CacheUse.
	CacheMode string
	// ChunkSize overrides the default character budget when positive.
	ChunkSize int
}

// Stats is the per-chapter translation record stored alongside the result.
type Stats struct {
	OriginalLength   int            `json:"original_length"`
	TranslatedLength int            `json:"translated_length"`
	ChunksProcessed  int            `json:"chunks_processed"`
	FromCache        bool           `json:"from_cache"`
	NewTermsFound    int            `json:"new_terms_found"`
	GlossarySize     int            `json:"glossary_size"`
	TranslatedAt     string         `json:"translated_at"`
	Cost             *cost.Estimate `json:"cost"`
}

// Outcome is the structured pipeline result. Once a chapter has entered
// processing, failures land here rather than in a returned error.
type Outcome struct {
	Success        bool     `json:"success"`
	ChapterID      int64    `json:"chapter_id"`
	TranslatedText string   `json:"translated_text,omitempty"`
	Stats          *Stats   `json:"stats,omitempty"`
	NewTerms       []string `json:"new_terms,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func textHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// TranslateChapter runs the full pipeline for one chapter. Precondition
// failures (unknown chapter/project, unconfigured provider, concurrent
// run on the same chapter) return an error with the chapter untouched;
// later failures mark the chapter error and come back in the Outcome.
func (e *Engine) TranslateChapter(ctx context.Context, args TranslateArgs) (*Outcome, error) {
	chapter, err := e.d.Chapters.Get(ctx, args.ChapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, ErrChapterNotFound
	}
	project, err := e.d.Projects.Get(ctx, chapter.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	cfg, err := e.d.Configs.GetByProvider(ctx, project.Provider)
	if err != nil {
		return nil, err
	}
	if cfg == nil || !cfg.Enabled || cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, project.Provider)
	}

	if !e.acquire(chapter.ID) {
		return nil, fmt.Errorf("%w: chapter %d", ErrTranslationInFlight, chapter.ID)
	}
	defer e.release(chapter.ID)

	if err := e.d.Chapters.UpdateStatus(ctx, chapter.ID, domain.ChapterProcessing); err != nil {
		return nil, err
	}

	outcome := e.run(ctx, args, chapter, project, cfg)
	if !outcome.Success {
		errStats, _ := json.Marshal(map[string]string{
			"error":     outcome.Error,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		if serr := e.d.Chapters.SetResult(ctx, chapter.ID, chapter.TranslatedText, domain.ChapterError, string(errStats)); serr != nil {
			e.d.Log.Error("mark chapter error", zap.Int64("chapter_id", chapter.ID), zap.Error(serr))
		}
		e.d.Log.Warn("chapter translation failed",
			zap.Int64("chapter_id", chapter.ID),
			zap.String("provider", project.Provider),
			zap.String("error", outcome.Error))
	}
	return outcome, nil
}

func (e *Engine) acquire(chapterID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[chapterID]; busy {
		return false
	}
	e.inFlight[chapterID] = struct{}{}
	return true
}

func (e *Engine) release(chapterID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, chapterID)
}

func (e *Engine) run(ctx context.Context, args TranslateArgs, chapter *domain.Chapter, project *domain.Project, cfg *domain.APIConfig) *Outcome {
	fail := func(err error) *Outcome {
		return &Outcome{ChapterID: chapter.ID, Error: err.Error()}
	}

	glossary, err := e.d.Glossary.Mapping(ctx, project.ID)
	if err != nil {
		return fail(err)
	}
	glossarySize := len(glossary)

	context500, err := e.previousContext(ctx, project.ID, chapter.Number)
	if err != nil {
		return fail(err)
	}

	// Model precedence: config override, then the project's choice, then
	// the backend default.
	model := cfg.Model
	if model == "" {
		model = project.Model
	}
	provider, err := e.d.BuildProvider(ctx, cfg, model)
	if err != nil {
		return fail(err)
	}

	cacheMode := args.CacheMode
	if cacheMode == "" {
		cacheMode = e.d.DefaultCacheMode
	}
	if cacheMode == "" {
		cacheMode = domain.CacheUse
	}

	var (
		translatedText string
		fromCache      bool
		chunks         []string
	)
	if cacheMode == domain.CacheUse {
		hit, err := e.d.Cache.Get(ctx, textHash(chapter.OriginalText), project.ID, project.SourceLang, project.TargetLang)
		if err != nil {
			return fail(err)
		}
		if hit != nil {
			translatedText = hit.TranslatedText
			fromCache = true
			e.d.Log.Debug("cache hit", zap.Int64("chapter_id", chapter.ID))
		}
	}

	if !fromCache {
		chunks = SplitChunks(chapter.OriginalText, args.ChunkSize)
		translated := make([]string, 0, len(chunks))

		for i, chunk := range chunks {
			req := ports.TranslateRequest{
				Text:         chunk,
				SourceLang:   project.SourceLang,
				TargetLang:   project.TargetLang,
				Glossary:     glossary,
				ExtractTerms: args.ExtractTerms && i == 0,
				ProjectID:    project.ID,
			}
			if i == 0 {
				req.Context = context500
			}
			res, err := provider.Translate(ctx, req)
			if err != nil {
				return fail(err)
			}
			translated = append(translated, res.Translation)

			if req.ExtractTerms && !res.Terms.Empty() {
				added, err := e.addTerms(ctx, project.ID, res.Terms, glossary)
				if err != nil {
					return fail(err)
				}
				if added > 0 {
					e.d.Log.Info("auto-added glossary terms",
						zap.Int64("project_id", project.ID), zap.Int("count", added))
				}
			}
		}
		translatedText = strings.Join(translated, "\n\n")

		if err := e.d.Cache.Put(ctx, &domain.CacheEntry{
			ProjectID:      project.ID,
			SourceHash:     textHash(chapter.OriginalText),
			SourceText:     chapter.OriginalText,
			TranslatedText: translatedText,
			SourceLang:     project.SourceLang,
			TargetLang:     project.TargetLang,
			Provider:       cfg.ProviderName,
		}); err != nil {
			return fail(err)
		}
	}

	var newTerms []string
	if args.ExtractTerms && !fromCache {
		newTerms = potentialNames(chapter.OriginalText)
	}

	var costData *cost.Estimate
	if !fromCache {
		inputTokens := cost.CountTokens(chapter.OriginalText)
		outputTokens := cost.CountTokens(translatedText)
		est := cost.EstimateCost(cfg.ProviderName, model, inputTokens, outputTokens)
		costData = &est

		pid, cid := project.ID, chapter.ID
		if err := e.d.Costs.Add(ctx, &domain.CostRecord{
			ProjectID:     &pid,
			ChapterID:     &cid,
			Provider:      cfg.ProviderName,
			InputTokens:   inputTokens,
			OutputTokens:  outputTokens,
			TotalTokens:   inputTokens + outputTokens,
			EstimatedCost: est.TotalCost,
			Currency:      est.Currency,
		}); err != nil {
			return fail(err)
		}
	}

	chunksProcessed := len(chunks)
	if fromCache {
		chunksProcessed = 1
	}
	stats := &Stats{
		OriginalLength:   len(chapter.OriginalText),
		TranslatedLength: len(translatedText),
		ChunksProcessed:  chunksProcessed,
		FromCache:        fromCache,
		NewTermsFound:    len(newTerms),
		GlossarySize:     glossarySize,
		TranslatedAt:     time.Now().UTC().Format(time.RFC3339),
		Cost:             costData,
	}
	statsRaw, err := json.Marshal(stats)
	if err != nil {
		return fail(err)
	}
	if err := e.d.Chapters.SetResult(ctx, chapter.ID, &translatedText, domain.ChapterCompleted, string(statsRaw)); err != nil {
		return fail(err)
	}

	return &Outcome{
		Success:        true,
		ChapterID:      chapter.ID,
		TranslatedText: translatedText,
		Stats:          stats,
		NewTerms:       newTerms,
	}
}

// previousContext returns the trailing excerpt (last paragraph, capped at
// the configured tail size) of the closest earlier translated chapter.
func (e *Engine) previousContext(ctx context.Context, projectID int64, beforeNumber int) (string, error) {
	prev, err := e.d.Chapters.PrevTranslated(ctx, projectID, beforeNumber)
	if err != nil {
		return "", err
	}
	if prev == nil || prev.TranslatedText == nil || *prev.TranslatedText == "" {
		return "", nil
	}
	tail := e.d.ContextTail
	if tail <= 0 {
		tail = 500
	}
	paragraphs := strings.Split(*prev.TranslatedText, "\n\n")
	last := []rune(paragraphs[len(paragraphs)-1])
	if len(last) > tail {
		last = last[:tail]
	}
	return string(last), nil
}

// addTerms pushes freshly extracted terminology into the glossary right
// away and folds it into the in-memory snapshot, so later chunks of the
// same chapter translate with it. Reused terms bump usage_count; new ones
// are stored unconfirmed.
func (e *Engine) addTerms(ctx context.Context, projectID int64, terms domain.TermSet, snapshot map[string]string) (int, error) {
	added := 0
	for _, cat := range terms.Categories() {
		for _, pair := range cat.Pairs {
			original := strings.TrimSpace(pair.Original)
			translation := strings.TrimSpace(pair.Translation)
			if original == "" || translation == "" {
				continue
			}
			existing, err := e.d.Glossary.FindByTerm(ctx, projectID, original)
			if err != nil {
				return added, err
			}
			if existing != nil {
				if err := e.d.Glossary.IncrementUsage(ctx, existing.ID); err != nil {
					return added, err
				}
				continue
			}
			if err := e.d.Glossary.Create(ctx, &domain.GlossaryEntry{
				ProjectID:      projectID,
				OriginalTerm:   original,
				TranslatedTerm: translation,
				TermType:       cat.Type,
				UsageCount:     1,
				Confirmed:      false,
			}); err != nil {
				return added, err
			}
			snapshot[original] = translation
			added++
		}
	}
	return added, nil
}

var properNounRE = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// potentialNames collects distinct capitalized spans from the source
// text, reported to the caller as terminology candidates.
func potentialNames(text string) []string {
	matches := properNounRE.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// ProjectStatistics summarizes translation progress for one project.
type ProjectStatistics struct {
	ProjectName       string  `json:"project_name"`
	TotalChapters     int     `json:"total_chapters"`
	CompletedChapters int     `json:"completed_chapters"`
	PendingChapters   int     `json:"pending_chapters"`
	ErrorChapters     int     `json:"error_chapters"`
	GlossaryTerms     int     `json:"glossary_terms"`
	TotalWords        int     `json:"total_words"`
	TranslatedWords   int     `json:"translated_words"`
	CompletionRate    float64 `json:"completion_rate"`
}

func (e *Engine) GetStatistics(ctx context.Context, projectID int64) (*ProjectStatistics, error) {
	project, err := e.d.Projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	chapters, err := e.d.Chapters.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	glossaryCount, err := e.d.Glossary.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := &ProjectStatistics{
		ProjectName:   project.Name,
		TotalChapters: len(chapters),
		GlossaryTerms: glossaryCount,
	}
	for _, c := range chapters {
		switch c.Status {
		case domain.ChapterCompleted:
			stats.CompletedChapters++
		case domain.ChapterPending:
			stats.PendingChapters++
		case domain.ChapterError:
			stats.ErrorChapters++
		}
		stats.TotalWords += len(strings.Fields(c.OriginalText))
		if c.TranslatedText != nil {
			stats.TranslatedWords += len(strings.Fields(*c.TranslatedText))
		}
	}
	if stats.TotalChapters > 0 {
		stats.CompletionRate = float64(stats.CompletedChapters) / float64(stats.TotalChapters) * 100
	}
	return stats, nil
}
