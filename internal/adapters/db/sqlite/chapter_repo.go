package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type ChapterRepo struct{ *Repo }

func NewChapterRepo(db *sql.DB) *ChapterRepo { return &ChapterRepo{NewRepo(db)} }

var chapterCols = []string{"id", "project_id", "chapter_number", "title", "original_text", "translated_text", "status", "translation_stats", "created_at", "updated_at"}

func (r *ChapterRepo) Create(ctx context.Context, c *domain.Chapter) error {
	now, ts := nowRFC()
	if c.Status == "" {
		c.Status = domain.ChapterPending
	}
	if c.StatsRaw == "" {
		c.StatsRaw = "{}"
	}
	q := r.SQ.Insert("chapters").
		Columns("project_id", "chapter_number", "title", "original_text", "translated_text", "status", "translation_stats", "created_at", "updated_at").
		Values(c.ProjectID, c.Number, c.Title, c.OriginalText, c.TranslatedText, c.Status, c.StatsRaw, ts, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func scanChapter(row interface{ Scan(...any) error }) (*domain.Chapter, error) {
	var c domain.Chapter
	var translated sql.NullString
	var created, updated string
	if err := row.Scan(&c.ID, &c.ProjectID, &c.Number, &c.Title, &c.OriginalText, &translated, &c.Status, &c.StatsRaw, &created, &updated); err != nil {
		return nil, err
	}
	if translated.Valid {
		v := translated.String
		c.TranslatedText = &v
	}
	c.CreatedAt = parseRFC(created)
	c.UpdatedAt = parseRFC(updated)
	return &c, nil
}

func (r *ChapterRepo) Get(ctx context.Context, id int64) (*domain.Chapter, error) {
	q := r.SQ.Select(chapterCols...).From("chapters").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	c, err := scanChapter(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ChapterRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Chapter, error) {
	q := r.SQ.Select(chapterCols...).From("chapters").
		Where(sq.Eq{"project_id": projectID}).OrderBy("chapter_number")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChapterRepo) Update(ctx context.Context, c *domain.Chapter) error {
	now, ts := nowRFC()
	q := r.SQ.Update("chapters").
		Set("chapter_number", c.Number).
		Set("title", c.Title).
		Set("original_text", c.OriginalText).
		Set("translated_text", c.TranslatedText).
		Set("status", c.Status).
		Set("translation_stats", c.StatsRaw).
		Set("updated_at", ts).
		Where(sq.Eq{"id": c.ID})
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func (r *ChapterRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, ts := nowRFC()
	q := r.SQ.Update("chapters").Set("status", status).Set("updated_at", ts).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ChapterRepo) SetResult(ctx context.Context, id int64, translated *string, status, statsRaw string) error {
	_, ts := nowRFC()
	q := r.SQ.Update("chapters").
		Set("translated_text", translated).
		Set("status", status).
		Set("translation_stats", statsRaw).
		Set("updated_at", ts).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ChapterRepo) PrevTranslated(ctx context.Context, projectID int64, beforeNumber int) (*domain.Chapter, error) {
	q := r.SQ.Select(chapterCols...).From("chapters").
		Where(sq.Eq{"project_id": projectID}).
		Where(sq.Lt{"chapter_number": beforeNumber}).
		OrderBy("chapter_number DESC").Limit(1)
	sqlStr, args, _ := q.ToSql()
	c, err := scanChapter(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ChapterRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("chapters").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
