package app

import (
	"context"
	"os"
	"path/filepath"

	exreg "github.com/turanbagtur/novel-translator/internal/adapters/exporter/registry"
	mdexp "github.com/turanbagtur/novel-translator/internal/adapters/exporter/markdown"
	txtexp "github.com/turanbagtur/novel-translator/internal/adapters/exporter/txt"
	"github.com/turanbagtur/novel-translator/internal/usecase/exporter"
)

type ExportAPI struct {
	svc    *exporter.Service
	outDir string
}

func NewExportAPI(svc *exporter.Service, outDir string) *ExportAPI {
	return &ExportAPI{svc: svc, outDir: outDir}
}

// ExportProject writes the project's completed chapters to a file in
// the export directory and returns its path.
func (a *ExportAPI) ExportProject(projectID int64, format string) (string, error) {
	ctx := context.Background()
	res, err := a.svc.ExportProject(ctx, projectID, format)
	if err != nil {
		return "", err
	}
	return a.write(res)
}

func (a *ExportAPI) ExportChapter(chapterID int64) (string, error) {
	ctx := context.Background()
	res, err := a.svc.ExportChapter(ctx, chapterID)
	if err != nil {
		return "", err
	}
	return a.write(res)
}

func (a *ExportAPI) ExportGlossary(projectID int64) (string, error) {
	ctx := context.Background()
	res, err := a.svc.ExportGlossary(ctx, projectID)
	if err != nil {
		return "", err
	}
	return a.write(res)
}

func (a *ExportAPI) write(res exporter.Result) (string, error) {
	if err := os.MkdirAll(a.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.outDir, res.Filename)
	if err := os.WriteFile(path, res.Content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// NewDefaultExporterRegistry wires the built-in book formats.
func NewDefaultExporterRegistry() *exreg.Registry {
	reg := exreg.New()
	reg.Register(txtexp.New())
	reg.Register(mdexp.New())
	return reg
}
