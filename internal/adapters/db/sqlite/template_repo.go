package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type TemplateRepo struct{ *Repo }

func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{NewRepo(db)} }

// GetEffective returns the template stored for exactly this scope, or nil.
// Callers chain provider -> project -> global themselves and fall back to
// the builtin when every scope comes back empty.
func (r *TemplateRepo) GetEffective(ctx context.Context, scope string, refID *int64, typ, role string) (*domain.Template, error) {
	b := r.SQ.Select("id", "scope", "ref_id", "type", "role", "body", "is_default", "updated_at").From("templates").
		Where(sq.Eq{"scope": scope, "type": typ, "role": role}).
		OrderBy("id DESC").Limit(1)
	if refID != nil {
		b = b.Where(sq.Eq{"ref_id": *refID})
	} else {
		b = b.Where("ref_id IS NULL")
	}
	sqlStr, args, _ := b.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var t domain.Template
	var ref sql.NullInt64
	var updated string
	if err := row.Scan(&t.ID, &t.Scope, &ref, &t.Type, &t.Role, &t.Body, &t.IsDefault, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if ref.Valid {
		v := ref.Int64
		t.RefID = &v
	}
	t.UpdatedAt = parseRFC(updated)
	return &t, nil
}

func (r *TemplateRepo) Upsert(ctx context.Context, t *domain.Template) error {
	_, ts := nowRFC()
	q := r.SQ.Insert("templates").Columns("scope", "ref_id", "type", "role", "body", "is_default", "updated_at").
		Values(t.Scope, t.RefID, t.Type, t.Role, t.Body, t.IsDefault, ts)
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
