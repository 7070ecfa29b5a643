package app

import (
	"context"
	"os"

	"github.com/turanbagtur/novel-translator/internal/usecase/importer"
)

type ImportAPI struct {
	svc *importer.Service
}

func NewImportAPI(svc *importer.Service) *ImportAPI { return &ImportAPI{svc: svc} }

// ImportFile reads a plain-text manuscript from disk and splits it into
// chapters of the project.
func (a *ImportAPI) ImportFile(projectID int64, path string) (importer.Result, error) {
	ctx := context.Background()
	content, err := os.ReadFile(path)
	if err != nil {
		return importer.Result{}, err
	}
	return a.svc.Import(ctx, projectID, content)
}
