package sqlite

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/turanbagtur/novel-translator/internal/domain"
)

type ConfigRepo struct{ *Repo }

func NewConfigRepo(db *sql.DB) *ConfigRepo { return &ConfigRepo{NewRepo(db)} }

var configCols = []string{"id", "provider_name", "api_key", "api_url", "model", "max_tokens", "temperature", "enabled", "extra_config", "created_at", "updated_at"}

func (r *ConfigRepo) Upsert(ctx context.Context, c *domain.APIConfig) error {
	_, ts := nowRFC()
	c.ProviderName = strings.ToLower(c.ProviderName)
	if c.ExtraRaw == "" {
		c.ExtraRaw = "{}"
	}
	q := r.SQ.Insert("api_configs").
		Columns("provider_name", "api_key", "api_url", "model", "max_tokens", "temperature", "enabled", "extra_config", "created_at", "updated_at").
		Values(c.ProviderName, c.APIKey, c.APIURL, c.Model, c.MaxTokens, c.Temperature, c.Enabled, c.ExtraRaw, ts, ts).
		Suffix(`ON CONFLICT(provider_name) DO UPDATE SET
            api_key=excluded.api_key,
            api_url=excluded.api_url,
            model=excluded.model,
            max_tokens=excluded.max_tokens,
            temperature=excluded.temperature,
            enabled=excluded.enabled,
            extra_config=excluded.extra_config,
            updated_at=excluded.updated_at`)
	sqlStr, args, _ := q.ToSql()
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}
	stored, err := r.GetByProvider(ctx, c.ProviderName)
	if err != nil {
		return err
	}
	if stored != nil {
		c.ID = stored.ID
	}
	return nil
}

func scanConfig(row interface{ Scan(...any) error }) (*domain.APIConfig, error) {
	var c domain.APIConfig
	var created, updated string
	if err := row.Scan(&c.ID, &c.ProviderName, &c.APIKey, &c.APIURL, &c.Model, &c.MaxTokens, &c.Temperature, &c.Enabled, &c.ExtraRaw, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt = parseRFC(created)
	c.UpdatedAt = parseRFC(updated)
	return &c, nil
}

func (r *ConfigRepo) GetByProvider(ctx context.Context, providerName string) (*domain.APIConfig, error) {
	q := r.SQ.Select(configCols...).From("api_configs").
		Where(sq.Eq{"provider_name": strings.ToLower(providerName)}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	c, err := scanConfig(r.DB.QueryRowContext(ctx, sqlStr, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *ConfigRepo) List(ctx context.Context) ([]*domain.APIConfig, error) {
	q := r.SQ.Select(configCols...).From("api_configs").OrderBy("provider_name")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.APIConfig
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ConfigRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("api_configs").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
