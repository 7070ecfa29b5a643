package app

import (
	"context"

	"github.com/turanbagtur/novel-translator/internal/usecase/translator"
)

type TranslateAPI struct {
	engine *translator.Engine
}

func NewTranslateAPI(engine *translator.Engine) *TranslateAPI {
	return &TranslateAPI{engine: engine}
}

func (a *TranslateAPI) Translate(chapterID int64, extractTerms bool, cacheMode string, chunkSize int) (*translator.Outcome, error) {
	ctx := context.Background()
	return a.engine.TranslateChapter(ctx, translator.TranslateArgs{
		ChapterID:    chapterID,
		ExtractTerms: extractTerms,
		CacheMode:    cacheMode,
		ChunkSize:    chunkSize,
	})
}

func (a *TranslateAPI) Statistics(projectID int64) (*translator.ProjectStatistics, error) {
	ctx := context.Background()
	return a.engine.GetStatistics(ctx, projectID)
}
