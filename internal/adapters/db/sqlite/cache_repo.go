package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type CacheRepo struct{ *Repo }

func NewCacheRepo(db *sql.DB) *CacheRepo { return &CacheRepo{NewRepo(db)} }

func (r *CacheRepo) Get(ctx context.Context, hash string, projectID int64, sourceLang, targetLang string) (*domain.CacheEntry, error) {
	q := r.SQ.Select("id", "project_id", "source_text_hash", "source_text", "translated_text", "source_lang", "target_lang", "ai_provider", "created_at").
		From("translation_cache").
		Where(sq.Eq{
			"source_text_hash": hash,
			"project_id":       projectID,
			"source_lang":      sourceLang,
			"target_lang":      targetLang,
		}).
		Limit(1)
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var e domain.CacheEntry
	var created string
	if err := row.Scan(&e.ID, &e.ProjectID, &e.SourceHash, &e.SourceText, &e.TranslatedText, &e.SourceLang, &e.TargetLang, &e.Provider, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.CreatedAt = parseRFC(created)
	return &e, nil
}

func (r *CacheRepo) Put(ctx context.Context, e *domain.CacheEntry) error {
	_, ts := nowRFC()
	q := r.SQ.Insert("translation_cache").
		Columns("project_id", "source_text_hash", "source_text", "translated_text", "source_lang", "target_lang", "ai_provider", "created_at").
		Values(e.ProjectID, e.SourceHash, e.SourceText, e.TranslatedText, e.SourceLang, e.TargetLang, e.Provider, ts).
		Suffix("ON CONFLICT(source_text_hash, project_id, source_lang, target_lang) DO UPDATE SET translated_text=excluded.translated_text, ai_provider=excluded.ai_provider")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
