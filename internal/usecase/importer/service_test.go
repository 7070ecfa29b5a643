package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

type fakeChapters struct {
	all    []*domain.Chapter
	nextID int64
}

func (f *fakeChapters) Create(_ context.Context, c *domain.Chapter) error {
	f.nextID++
	c.ID = f.nextID
	f.all = append(f.all, c)
	return nil
}
func (f *fakeChapters) Get(context.Context, int64) (*domain.Chapter, error) { return nil, nil }
func (f *fakeChapters) ListByProject(context.Context, int64) ([]*domain.Chapter, error) {
	return f.all, nil
}
func (f *fakeChapters) Update(context.Context, *domain.Chapter) error     { return nil }
func (f *fakeChapters) UpdateStatus(context.Context, int64, string) error { return nil }
func (f *fakeChapters) SetResult(context.Context, int64, *string, string, string) error {
	return nil
}
func (f *fakeChapters) PrevTranslated(context.Context, int64, int) (*domain.Chapter, error) {
	return nil, nil
}
func (f *fakeChapters) Delete(context.Context, int64) error { return nil }

func TestImport_SplitsOnHeadings(t *testing.T) {
	text := `Chapter 1: The Awakening

He opened his eyes.

Chapter 2

The city was silent.

Bölüm 3 - Dönüş

Geri döndü.`
	repo := &fakeChapters{}
	res, err := New(repo).Import(context.Background(), 1, []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if res.Chapters != 3 || res.First != 1 || res.Last != 3 {
		t.Fatalf("result = %+v", res)
	}
	if len(repo.all) != 3 {
		t.Fatalf("stored chapters = %d", len(repo.all))
	}
	if repo.all[0].Title != "The Awakening" || repo.all[0].OriginalText != "He opened his eyes." {
		t.Errorf("chapter 1 = %+v", repo.all[0])
	}
	if repo.all[1].Number != 2 || repo.all[1].Title != "" {
		t.Errorf("chapter 2 = %+v", repo.all[1])
	}
	if repo.all[2].Number != 3 || repo.all[2].Title != "Dönüş" || repo.all[2].OriginalText != "Geri döndü." {
		t.Errorf("chapter 3 = %+v", repo.all[2])
	}
	for _, c := range repo.all {
		if c.Status != domain.ChapterPending {
			t.Errorf("chapter %d status = %q", c.Number, c.Status)
		}
	}
}

func TestImport_NoHeadingsBecomesSingleChapter(t *testing.T) {
	repo := &fakeChapters{all: []*domain.Chapter{{Number: 4}}}
	res, err := New(repo).Import(context.Background(), 1, []byte("Just some prose without headings."))
	if err != nil {
		t.Fatal(err)
	}
	if res.Chapters != 1 || res.First != 5 {
		t.Errorf("result = %+v", res)
	}
	last := repo.all[len(repo.all)-1]
	if last.Number != 5 || last.OriginalText != "Just some prose without headings." {
		t.Errorf("chapter = %+v", last)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	if _, err := New(&fakeChapters{}).Import(context.Background(), 1, []byte("  \n ")); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("got %v", err)
	}
}
