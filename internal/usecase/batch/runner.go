package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
	"github.com/turanbagtur/novel-translator/internal/usecase/translator"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrChapterMismatch = errors.New("some chapters not found or don't belong to this project")
)

type Deps struct {
	Jobs     ports.JobRepository
	Chapters ports.ChapterRepository
	Log      *zap.Logger
}

// Runner processes batch jobs, one chapter at a time, delegating each
// chapter to the translation engine. The job row is the single source
// of truth for progress; the runner only holds cancel handles in
// memory, so a restarted process loses the ability to cancel but never
// loses progress.
type Runner struct {
	d      Deps
	engine *translator.Engine
	mu     sync.Mutex
	active map[int64]context.CancelFunc
}

func NewRunner(d Deps, engine *translator.Engine) *Runner {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Runner{d: d, engine: engine, active: map[int64]context.CancelFunc{}}
}

// Create validates the chapter set and persists a pending job.
func (r *Runner) Create(ctx context.Context, projectID int64, chapterIDs []int64) (int64, error) {
	if len(chapterIDs) == 0 {
		return 0, ErrChapterMismatch
	}
	for _, id := range chapterIDs {
		ch, err := r.d.Chapters.Get(ctx, id)
		if err != nil {
			return 0, err
		}
		if ch == nil || ch.ProjectID != projectID {
			return 0, ErrChapterMismatch
		}
	}
	idsJSON, _ := json.Marshal(chapterIDs)
	job := &domain.Job{
		ProjectID:     projectID,
		ChapterIDsRaw: string(idsJSON),
		Status:        domain.JobPending,
		TotalChapters: len(chapterIDs),
		FailedRaw:     "[]",
	}
	return r.d.Jobs.Create(ctx, job)
}

// Start kicks off processing of a pending job in the background.
func (r *Runner) Start(ctx context.Context, jobID int64) error {
	job, err := r.d.Jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	cctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.active[jobID] = cancel
	r.mu.Unlock()
	go func() {
		defer r.drop(jobID)
		if err := r.Run(cctx, jobID); err != nil {
			r.d.Log.Warn("batch job aborted", zap.Int64("job_id", jobID), zap.Error(err))
		}
	}()
	return nil
}

// Run processes the job synchronously. Chapters run strictly one after
// another; a chapter failure is recorded on the job and the loop moves
// on. Cancellation via ctx takes effect between chapters only: the
// chapter in flight always finishes, and the final job row write must
// survive the cancelled ctx, so everything except the cancel check runs
// on a detached context.
func (r *Runner) Run(ctx context.Context, jobID int64) error {
	work := context.WithoutCancel(ctx)
	job, err := r.d.Jobs.Get(work, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	var chapterIDs []int64
	if err := json.Unmarshal([]byte(job.ChapterIDsRaw), &chapterIDs); err != nil {
		_ = r.d.Jobs.Finish(work, jobID, domain.JobFailed, 0, failuresJSON([]domain.JobFailure{{Error: "corrupt chapter id list: " + err.Error()}}))
		return fmt.Errorf("job %d: decode chapter ids: %w", jobID, err)
	}
	if err := r.d.Jobs.MarkStarted(work, jobID); err != nil {
		return err
	}
	r.d.Log.Info("batch job started",
		zap.Int64("job_id", jobID),
		zap.Int64("project_id", job.ProjectID),
		zap.Int("chapters", len(chapterIDs)))

	completed := 0
	var failed []domain.JobFailure
	for _, chapterID := range chapterIDs {
		select {
		case <-ctx.Done():
			r.d.Log.Info("batch job cancelled", zap.Int64("job_id", jobID), zap.Int("completed", completed))
			return r.d.Jobs.Finish(work, jobID, domain.JobCancelled, completed, failuresJSON(failed))
		default:
		}
		out, err := r.engine.TranslateChapter(work, translator.TranslateArgs{
			ChapterID:    chapterID,
			ExtractTerms: true,
		})
		switch {
		case err != nil:
			failed = append(failed, domain.JobFailure{ChapterID: chapterID, Error: err.Error()})
		case !out.Success:
			failed = append(failed, domain.JobFailure{ChapterID: chapterID, Error: out.Error})
		default:
			completed++
		}
		progress := completed * 100 / job.TotalChapters
		if err := r.d.Jobs.UpdateProgress(work, jobID, progress, completed); err != nil {
			r.d.Log.Warn("progress update failed", zap.Int64("job_id", jobID), zap.Error(err))
		}
	}

	status := domain.JobCompleted
	if len(failed) > 0 {
		status = domain.JobFailed
	}
	r.d.Log.Info("batch job finished",
		zap.Int64("job_id", jobID),
		zap.String("status", status),
		zap.Int("completed", completed),
		zap.Int("failed", len(failed)))
	return r.d.Jobs.Finish(work, jobID, status, completed, failuresJSON(failed))
}

// Cancel stops a running job between chapters. A pending job that never
// started is flipped to cancelled directly on the row.
func (r *Runner) Cancel(ctx context.Context, jobID int64) (bool, error) {
	r.mu.Lock()
	cancel, running := r.active[jobID]
	r.mu.Unlock()
	if running {
		cancel()
		return true, nil
	}
	job, err := r.d.Jobs.Get(ctx, jobID)
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, ErrJobNotFound
	}
	if job.Status == domain.JobPending || job.Status == domain.JobProcessing {
		return true, r.d.Jobs.SetStatus(ctx, jobID, domain.JobCancelled)
	}
	return false, nil
}

// Status reads the persisted job row.
func (r *Runner) Status(ctx context.Context, jobID int64) (*domain.Job, error) {
	job, err := r.d.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (r *Runner) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	return r.d.Jobs.List(ctx, limit)
}

func (r *Runner) drop(jobID int64) {
	r.mu.Lock()
	if cancel, ok := r.active[jobID]; ok {
		cancel()
		delete(r.active, jobID)
	}
	r.mu.Unlock()
}

func failuresJSON(failed []domain.JobFailure) string {
	if len(failed) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(failed)
	return string(b)
}
