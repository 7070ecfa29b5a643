package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

type GlossaryRepo struct{ *Repo }

func NewGlossaryRepo(db *sql.DB) *GlossaryRepo { return &GlossaryRepo{NewRepo(db)} }

var glossaryCols = []string{"id", "project_id", "original_term", "translated_term", "term_type", "context", "usage_count", "confirmed", "created_at", "updated_at"}

func (r *GlossaryRepo) Create(ctx context.Context, e *domain.GlossaryEntry) error {
	now, ts := nowRFC()
	q := r.SQ.Insert("glossary_entries").
		Columns("project_id", "original_term", "translated_term", "term_type", "context", "usage_count", "confirmed", "created_at", "updated_at").
		Values(e.ProjectID, e.OriginalTerm, e.TranslatedTerm, e.TermType, e.Context, e.UsageCount, e.Confirmed, ts, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
	return nil
}

func (r *GlossaryRepo) Update(ctx context.Context, e *domain.GlossaryEntry) error {
	now, ts := nowRFC()
	q := r.SQ.Update("glossary_entries").
		Set("original_term", e.OriginalTerm).
		Set("translated_term", e.TranslatedTerm).
		Set("term_type", e.TermType).
		Set("context", e.Context).
		Set("usage_count", e.UsageCount).
		Set("confirmed", e.Confirmed).
		Set("updated_at", ts).
		Where(sq.Eq{"id": e.ID})
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	e.UpdatedAt = now
	return nil
}

func scanGlossary(row interface{ Scan(...any) error }) (*domain.GlossaryEntry, error) {
	var e domain.GlossaryEntry
	var created, updated string
	if err := row.Scan(&e.ID, &e.ProjectID, &e.OriginalTerm, &e.TranslatedTerm, &e.TermType, &e.Context, &e.UsageCount, &e.Confirmed, &created, &updated); err != nil {
		return nil, err
	}
	e.CreatedAt = parseRFC(created)
	e.UpdatedAt = parseRFC(updated)
	return &e, nil
}

func (r *GlossaryRepo) Get(ctx context.Context, id int64) (*domain.GlossaryEntry, error) {
	q := r.SQ.Select(glossaryCols...).From("glossary_entries").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	e, err := scanGlossary(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *GlossaryRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("glossary_entries").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *GlossaryRepo) queryAll(ctx context.Context, q sq.SelectBuilder) ([]*domain.GlossaryEntry, error) {
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.GlossaryEntry
	for rows.Next() {
		e, err := scanGlossary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *GlossaryRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.GlossaryEntry, error) {
	return r.queryAll(ctx, r.SQ.Select(glossaryCols...).From("glossary_entries").
		Where(sq.Eq{"project_id": projectID}).OrderBy("id"))
}

func (r *GlossaryRepo) FindByTerm(ctx context.Context, projectID int64, original string) (*domain.GlossaryEntry, error) {
	q := r.SQ.Select(glossaryCols...).From("glossary_entries").
		Where(sq.Eq{"project_id": projectID, "original_term": original}).
		OrderBy("id").Limit(1)
	sqlStr, args, _ := q.ToSql()
	e, err := scanGlossary(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *GlossaryRepo) Mapping(ctx context.Context, projectID int64) (map[string]string, error) {
	q := r.SQ.Select("original_term", "translated_term").From("glossary_entries").
		Where(sq.Eq{"project_id": projectID})
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var orig, trans string
		if err := rows.Scan(&orig, &trans); err != nil {
			return nil, err
		}
		out[orig] = trans
	}
	return out, rows.Err()
}

func (r *GlossaryRepo) Search(ctx context.Context, s ports.GlossarySearch) ([]*domain.GlossaryEntry, error) {
	q := r.SQ.Select(glossaryCols...).From("glossary_entries").
		Where(sq.Eq{"project_id": s.ProjectID})
	if s.Query != "" {
		like := "%" + s.Query + "%"
		q = q.Where(sq.Or{
			sq.Like{"original_term": like},
			sq.Like{"translated_term": like},
			sq.Like{"context": like},
		})
	}
	if s.TermType != "" {
		q = q.Where(sq.Eq{"term_type": s.TermType})
	}
	if s.ConfirmedOnly {
		q = q.Where(sq.Eq{"confirmed": true})
	}
	return r.queryAll(ctx, q.OrderBy("usage_count DESC"))
}

func (r *GlossaryRepo) IncrementUsage(ctx context.Context, id int64) error {
	_, ts := nowRFC()
	q := r.SQ.Update("glossary_entries").
		Set("usage_count", sq.Expr("usage_count + 1")).
		Set("updated_at", ts).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *GlossaryRepo) execCount(ctx context.Context, sqlStr string, args []any) (int64, error) {
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *GlossaryRepo) ConfirmByIDs(ctx context.Context, projectID int64, ids []int64) (int64, error) {
	_, ts := nowRFC()
	q := r.SQ.Update("glossary_entries").Set("confirmed", true).Set("updated_at", ts).
		Where(sq.Eq{"project_id": projectID, "id": ids})
	sqlStr, args, _ := q.ToSql()
	return r.execCount(ctx, sqlStr, args)
}

func (r *GlossaryRepo) DeleteByIDs(ctx context.Context, projectID int64, ids []int64) (int64, error) {
	q := r.SQ.Delete("glossary_entries").Where(sq.Eq{"project_id": projectID, "id": ids})
	sqlStr, args, _ := q.ToSql()
	return r.execCount(ctx, sqlStr, args)
}

func (r *GlossaryRepo) UpdateTypeByIDs(ctx context.Context, projectID int64, ids []int64, termType string) (int64, error) {
	_, ts := nowRFC()
	q := r.SQ.Update("glossary_entries").Set("term_type", termType).Set("updated_at", ts).
		Where(sq.Eq{"project_id": projectID, "id": ids})
	sqlStr, args, _ := q.ToSql()
	return r.execCount(ctx, sqlStr, args)
}

func (r *GlossaryRepo) CountByProject(ctx context.Context, projectID int64) (int, error) {
	q := r.SQ.Select("COUNT(*)").From("glossary_entries").Where(sq.Eq{"project_id": projectID})
	sqlStr, args, _ := q.ToSql()
	var n int
	err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&n)
	return n, err
}
