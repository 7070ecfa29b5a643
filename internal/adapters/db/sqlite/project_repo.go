package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type ProjectRepo struct{ *Repo }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{NewRepo(db)} }

var projectCols = []string{"id", "name", "description", "source_language", "target_language", "ai_provider", "ai_model", "settings_json", "created_at", "updated_at"}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	now, ts := nowRFC()
	if p.SettingsRaw == "" {
		p.SettingsRaw = "{}"
	}
	q := r.SQ.Insert("projects").
		Columns("name", "description", "source_language", "target_language", "ai_provider", "ai_model", "settings_json", "created_at", "updated_at").
		Values(p.Name, p.Description, p.SourceLang, p.TargetLang, p.Provider, p.Model, p.SettingsRaw, ts, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	var created, updated string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SourceLang, &p.TargetLang, &p.Provider, &p.Model, &p.SettingsRaw, &created, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = parseRFC(created)
	p.UpdatedAt = parseRFC(updated)
	return &p, nil
}

func (r *ProjectRepo) Get(ctx context.Context, id int64) (*domain.Project, error) {
	q := r.SQ.Select(projectCols...).From("projects").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	p, err := scanProject(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *ProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	q := r.SQ.Select(projectCols...).From("projects").OrderBy("id DESC")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	now, ts := nowRFC()
	q := r.SQ.Update("projects").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("source_language", p.SourceLang).
		Set("target_language", p.TargetLang).
		Set("ai_provider", p.Provider).
		Set("ai_model", p.Model).
		Set("settings_json", p.SettingsRaw).
		Set("updated_at", ts).
		Where(sq.Eq{"id": p.ID})
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// Delete removes the project; chapters, glossary entries and cache rows go
// with it via FK cascade.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("projects").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
