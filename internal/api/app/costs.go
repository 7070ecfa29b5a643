package app

import (
	"context"
	"math"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

type CostAPI struct {
	repo ports.CostRepository
}

func NewCostAPI(repo ports.CostRepository) *CostAPI { return &CostAPI{repo: repo} }

type ProviderCosts struct {
	TotalCost   float64 `json:"total_cost"`
	TotalTokens int     `json:"total_tokens"`
	Count       int     `json:"count"`
}

type CostReport struct {
	ProjectID    *int64                   `json:"project_id,omitempty"`
	TotalCost    float64                  `json:"total_cost"`
	TotalTokens  int                      `json:"total_tokens"`
	Currency     string                   `json:"currency"`
	Transactions int                      `json:"transactions"`
	ByProvider   map[string]ProviderCosts `json:"by_provider"`
}

// ProjectCosts aggregates the ledger for one project.
func (a *CostAPI) ProjectCosts(projectID int64) (*CostReport, error) {
	ctx := context.Background()
	summaries, err := a.repo.SummaryByProvider(ctx, &projectID)
	if err != nil {
		return nil, err
	}
	report := buildReport(summaries)
	report.ProjectID = &projectID
	return report, nil
}

// Summary aggregates the whole ledger across projects.
func (a *CostAPI) Summary() (*CostReport, error) {
	ctx := context.Background()
	summaries, err := a.repo.SummaryByProvider(ctx, nil)
	if err != nil {
		return nil, err
	}
	return buildReport(summaries), nil
}

func (a *CostAPI) ListByProject(projectID int64) ([]*domain.CostRecord, error) {
	ctx := context.Background()
	return a.repo.ListByProject(ctx, projectID)
}

func buildReport(summaries []*domain.CostSummary) *CostReport {
	report := &CostReport{Currency: "USD", ByProvider: map[string]ProviderCosts{}}
	for _, s := range summaries {
		report.TotalCost += s.TotalCost
		report.TotalTokens += s.TotalTokens
		report.Transactions += s.Calls
		report.ByProvider[s.Provider] = ProviderCosts{
			TotalCost:   round4(s.TotalCost),
			TotalTokens: s.TotalTokens,
			Count:       s.Calls,
		}
	}
	report.TotalCost = round4(report.TotalCost)
	return report
}

func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
