package importer

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

var ErrEmptyFile = errors.New("file contains no text")

// headingRE matches chapter headings in uploaded manuscripts, both
// English and Turkish forms ("Chapter 12: Title", "Bölüm 3").
var headingRE = regexp.MustCompile(`(?mi)^\s*(?:chapter|bölüm)\s+(\d+)\s*[:.\-]?\s*(.*)$`)

type Service struct {
	Chapters ports.ChapterRepository
}

func New(chapters ports.ChapterRepository) *Service { return &Service{Chapters: chapters} }

type Result struct {
	Chapters int   `json:"chapters"`
	First    int   `json:"first_chapter"`
	Last     int   `json:"last_chapter"`
	IDs      []int64 `json:"chapter_ids"`
}

// Import splits a plain-text manuscript into chapters on heading lines
// and stores each as a pending chapter. Text without headings becomes a
// single chapter numbered after the project's current highest.
func (s *Service) Import(ctx context.Context, projectID int64, content []byte) (Result, error) {
	text := strings.TrimSpace(string(content))
	if text == "" {
		return Result{}, ErrEmptyFile
	}

	matches := headingRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		next, err := s.nextNumber(ctx, projectID)
		if err != nil {
			return Result{}, err
		}
		ch := &domain.Chapter{ProjectID: projectID, Number: next, OriginalText: text, Status: domain.ChapterPending}
		if err := s.Chapters.Create(ctx, ch); err != nil {
			return Result{}, err
		}
		return Result{Chapters: 1, First: next, Last: next, IDs: []int64{ch.ID}}, nil
	}

	var res Result
	for i, m := range matches {
		number, _ := strconv.Atoi(text[m[2]:m[3]])
		title := ""
		if m[4] >= 0 {
			title = strings.TrimSpace(text[m[4]:m[5]])
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if body == "" {
			continue
		}
		ch := &domain.Chapter{
			ProjectID:    projectID,
			Number:       number,
			Title:        title,
			OriginalText: body,
			Status:       domain.ChapterPending,
		}
		if err := s.Chapters.Create(ctx, ch); err != nil {
			return res, err
		}
		res.Chapters++
		res.IDs = append(res.IDs, ch.ID)
		if res.First == 0 || number < res.First {
			res.First = number
		}
		if number > res.Last {
			res.Last = number
		}
	}
	if res.Chapters == 0 {
		return Result{}, ErrEmptyFile
	}
	return res, nil
}

func (s *Service) nextNumber(ctx context.Context, projectID int64) (int, error) {
	existing, err := s.Chapters.ListByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, c := range existing {
		if c.Number > max {
			max = c.Number
		}
	}
	return max + 1, nil
}
