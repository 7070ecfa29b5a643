package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type CostRepo struct{ *Repo }

func NewCostRepo(db *sql.DB) *CostRepo { return &CostRepo{NewRepo(db)} }

func (r *CostRepo) Add(ctx context.Context, rec *domain.CostRecord) error {
	now, ts := nowRFC()
	if rec.Currency == "" {
		rec.Currency = "USD"
	}
	q := r.SQ.Insert("cost_tracking").
		Columns("project_id", "chapter_id", "ai_provider", "input_tokens", "output_tokens", "total_tokens", "estimated_cost", "currency", "created_at").
		Values(rec.ProjectID, rec.ChapterID, rec.Provider, rec.InputTokens, rec.OutputTokens, rec.TotalTokens, rec.EstimatedCost, rec.Currency, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	rec.ID = id
	rec.CreatedAt = now
	return nil
}

func (r *CostRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.CostRecord, error) {
	q := r.SQ.Select("id", "project_id", "chapter_id", "ai_provider", "input_tokens", "output_tokens", "total_tokens", "estimated_cost", "currency", "created_at").
		From("cost_tracking").
		Where(sq.Eq{"project_id": projectID}).OrderBy("id DESC")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.CostRecord
	for rows.Next() {
		var rec domain.CostRecord
		var proj, chap sql.NullInt64
		var created string
		if err := rows.Scan(&rec.ID, &proj, &chap, &rec.Provider, &rec.InputTokens, &rec.OutputTokens, &rec.TotalTokens, &rec.EstimatedCost, &rec.Currency, &created); err != nil {
			return nil, err
		}
		if proj.Valid {
			v := proj.Int64
			rec.ProjectID = &v
		}
		if chap.Valid {
			v := chap.Int64
			rec.ChapterID = &v
		}
		rec.CreatedAt = parseRFC(created)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// SummaryByProvider aggregates the ledger, optionally scoped to one
// project.
func (r *CostRepo) SummaryByProvider(ctx context.Context, projectID *int64) ([]*domain.CostSummary, error) {
	q := r.SQ.Select(
		"ai_provider",
		"COUNT(*)",
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
		"COALESCE(SUM(total_tokens), 0)",
		"COALESCE(SUM(estimated_cost), 0)",
	).From("cost_tracking").GroupBy("ai_provider").OrderBy("ai_provider")
	if projectID != nil {
		q = q.Where(sq.Eq{"project_id": *projectID})
	}
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.CostSummary
	for rows.Next() {
		var s domain.CostSummary
		if err := rows.Scan(&s.Provider, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.TotalTokens, &s.TotalCost); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
