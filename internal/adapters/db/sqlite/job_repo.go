package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type JobRepo struct{ *Repo }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{NewRepo(db)} }

var jobCols = []string{"id", "project_id", "chapter_ids", "status", "progress", "total_chapters", "completed_chapters", "failed_chapters", "started_at", "completed_at", "created_at"}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) (int64, error) {
	now, ts := nowRFC()
	if j.Status == "" {
		j.Status = domain.JobPending
	}
	if j.FailedRaw == "" {
		j.FailedRaw = "[]"
	}
	q := r.SQ.Insert("translation_jobs").
		Columns("project_id", "chapter_ids", "status", "progress", "total_chapters", "completed_chapters", "failed_chapters", "created_at").
		Values(j.ProjectID, j.ChapterIDsRaw, j.Status, j.Progress, j.TotalChapters, j.CompletedChapters, j.FailedRaw, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	j.ID = id
	j.CreatedAt = now
	return id, nil
}

func scanJob(row interface{ Scan(...any) error }) (*domain.Job, error) {
	var j domain.Job
	var started, completed sql.NullString
	var created string
	if err := row.Scan(&j.ID, &j.ProjectID, &j.ChapterIDsRaw, &j.Status, &j.Progress, &j.TotalChapters, &j.CompletedChapters, &j.FailedRaw, &started, &completed, &created); err != nil {
		return nil, err
	}
	if started.Valid {
		t := parseRFC(started.String)
		j.StartedAt = &t
	}
	if completed.Valid {
		t := parseRFC(completed.String)
		j.CompletedAt = &t
	}
	j.CreatedAt = parseRFC(created)
	return &j, nil
}

func (r *JobRepo) Get(ctx context.Context, id int64) (*domain.Job, error) {
	q := r.SQ.Select(jobCols...).From("translation_jobs").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	j, err := scanJob(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

func (r *JobRepo) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	q := r.SQ.Select(jobCols...).From("translation_jobs").OrderBy("id DESC").Limit(uint64(limit))
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepo) MarkStarted(ctx context.Context, id int64) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("translation_jobs").
		Set("status", domain.JobProcessing).
		Set("started_at", ts).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *JobRepo) UpdateProgress(ctx context.Context, id int64, progress, completed int) error {
	q := r.SQ.Update("translation_jobs").
		Set("progress", progress).
		Set("completed_chapters", completed).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *JobRepo) Finish(ctx context.Context, id int64, status string, completed int, failedRaw string) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("translation_jobs").
		Set("status", status).
		Set("progress", 100).
		Set("completed_chapters", completed).
		Set("failed_chapters", failedRaw).
		Set("completed_at", ts).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *JobRepo) SetStatus(ctx context.Context, id int64, status string) error {
	q := r.SQ.Update("translation_jobs").Set("status", status).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
