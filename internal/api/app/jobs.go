package app

import (
	"context"
	"encoding/json"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/usecase/batch"
)

type JobAPI struct {
	runner *batch.Runner
}

func NewJobAPI(runner *batch.Runner) *JobAPI { return &JobAPI{runner: runner} }

// Start creates a batch job for the chapters and begins processing it
// in the background.
func (a *JobAPI) Start(projectID int64, chapterIDs []int64) (int64, error) {
	ctx := context.Background()
	jobID, err := a.runner.Create(ctx, projectID, chapterIDs)
	if err != nil {
		return 0, err
	}
	if err := a.runner.Start(ctx, jobID); err != nil {
		return 0, err
	}
	return jobID, nil
}

type JobStatus struct {
	ID                int64               `json:"id"`
	Status            string              `json:"status"`
	Progress          int                 `json:"progress"`
	TotalChapters     int                 `json:"total_chapters"`
	CompletedChapters int                 `json:"completed_chapters"`
	Failed            []domain.JobFailure `json:"failed_chapters"`
}

func (a *JobAPI) Status(jobID int64) (*JobStatus, error) {
	ctx := context.Background()
	job, err := a.runner.Status(ctx, jobID)
	if err != nil {
		return nil, err
	}
	var failed []domain.JobFailure
	_ = json.Unmarshal([]byte(job.FailedRaw), &failed)
	return &JobStatus{
		ID:                job.ID,
		Status:            job.Status,
		Progress:          job.Progress,
		TotalChapters:     job.TotalChapters,
		CompletedChapters: job.CompletedChapters,
		Failed:            failed,
	}, nil
}

func (a *JobAPI) Cancel(jobID int64) (bool, error) {
	ctx := context.Background()
	return a.runner.Cancel(ctx, jobID)
}

func (a *JobAPI) List(limit int) ([]*domain.Job, error) {
	ctx := context.Background()
	return a.runner.List(ctx, limit)
}
