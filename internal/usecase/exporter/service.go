package exporter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	exreg "github.com/turanbagtur/novel-translator/internal/adapters/exporter/registry"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrChapterNotTranslated = errors.New("chapter not yet translated")
	ErrNothingToExport      = errors.New("no completed chapters to export")
)

type Service struct {
	Projects ports.ProjectRepository
	Chapters ports.ChapterRepository
	Glossary ports.GlossaryRepository
	Books    *exreg.Registry
	Terms    ports.GlossaryExporter
}

func New(projects ports.ProjectRepository, chapters ports.ChapterRepository, glossary ports.GlossaryRepository, books *exreg.Registry, terms ports.GlossaryExporter) *Service {
	return &Service{Projects: projects, Chapters: chapters, Glossary: glossary, Books: books, Terms: terms}
}

type Result struct {
	Filename string
	Content  []byte
}

// ExportProject renders every completed chapter of the project, in
// chapter order, through the exporter registered for the format.
func (s *Service) ExportProject(ctx context.Context, projectID int64, format string) (Result, error) {
	exp, ok := s.Books.Get(format)
	if !ok {
		return Result{}, fmt.Errorf("no exporter for format: %s", format)
	}
	p, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return Result{}, ErrProjectNotFound
	}
	all, err := s.Chapters.ListByProject(ctx, projectID)
	if err != nil {
		return Result{}, err
	}
	var done []*domain.Chapter
	for _, c := range all {
		if c.Status == domain.ChapterCompleted {
			done = append(done, c)
		}
	}
	if len(done) == 0 {
		return Result{}, ErrNothingToExport
	}
	sort.Slice(done, func(i, j int) bool { return done[i].Number < done[j].Number })

	content, err := exp.Export(p, done)
	if err != nil {
		return Result{}, err
	}
	return Result{Filename: exportName(p.Name, format), Content: content}, nil
}

// ExportChapter renders one translated chapter as a standalone
// document.
func (s *Service) ExportChapter(ctx context.Context, chapterID int64) (Result, error) {
	c, err := s.Chapters.Get(ctx, chapterID)
	if err != nil {
		return Result{}, err
	}
	if c == nil {
		return Result{}, ErrChapterNotFound
	}
	if c.TranslatedText == nil || *c.TranslatedText == "" {
		return Result{}, ErrChapterNotTranslated
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Chapter %d", c.Number)
	if c.Title != "" {
		fmt.Fprintf(&b, ": %s", c.Title)
	}
	b.WriteString("\n\n")
	b.WriteString(*c.TranslatedText)
	name := fmt.Sprintf("chapter_%d.md", c.Number)
	return Result{Filename: name, Content: []byte(b.String())}, nil
}

// ExportGlossary renders the project glossary as CSV.
func (s *Service) ExportGlossary(ctx context.Context, projectID int64) (Result, error) {
	p, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return Result{}, err
	}
	if p == nil {
		return Result{}, ErrProjectNotFound
	}
	entries, err := s.Glossary.ListByProject(ctx, projectID)
	if err != nil {
		return Result{}, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].OriginalTerm < entries[j].OriginalTerm })
	content, err := s.Terms.Export(entries)
	if err != nil {
		return Result{}, err
	}
	return Result{Filename: exportName(p.Name+"_glossary", s.Terms.Format()), Content: content}, nil
}

func exportName(base, format string) string {
	ext := format
	if ext == "markdown" {
		ext = "md"
	}
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, base)
	return fmt.Sprintf("%s_%s.%s", safe, time.Now().Format("20060102_150405"), ext)
}
