package app

import (
	"context"
	"errors"
	"strings"

	"github.com/turanbagtur/novel-translator/internal/adapters/provider"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

type ConfigAPI struct {
	repo ports.ConfigRepository
}

func NewConfigAPI(repo ports.ConfigRepository) *ConfigAPI { return &ConfigAPI{repo: repo} }

// Upsert stores credentials and call settings for one provider,
// replacing any existing row for the same provider name.
func (a *ConfigAPI) Upsert(c domain.APIConfig) (*domain.APIConfig, error) {
	ctx := context.Background()
	name := strings.ToLower(strings.TrimSpace(c.ProviderName))
	if !provider.Known(name) {
		return nil, &provider.UnknownProviderError{Name: c.ProviderName}
	}
	c.ProviderName = name
	// Keep the stored key when the UI round-trips a masked one.
	if c.APIKey == "" || strings.HasPrefix(c.APIKey, "****") {
		existing, err := a.repo.GetByProvider(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			c.APIKey = existing.APIKey
		}
	}
	if err := a.repo.Upsert(ctx, &c); err != nil {
		return nil, err
	}
	c.APIKey = mask(c.APIKey)
	return &c, nil
}

func (a *ConfigAPI) Get(providerName string) (*domain.APIConfig, error) {
	ctx := context.Background()
	c, err := a.repo.GetByProvider(ctx, strings.ToLower(providerName))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	c.APIKey = mask(c.APIKey)
	return c, nil
}

func (a *ConfigAPI) List() ([]*domain.APIConfig, error) {
	ctx := context.Background()
	list, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		c.APIKey = mask(c.APIKey)
	}
	return list, nil
}

func (a *ConfigAPI) Delete(id int64) (bool, error) {
	ctx := context.Background()
	if id == 0 {
		return false, errors.New("id is required")
	}
	return true, a.repo.Delete(ctx, id)
}

func mask(s string) string {
	if len(s) <= 4 {
		return s
	}
	return "****" + s[len(s)-4:]
}
