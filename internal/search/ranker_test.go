package search

import (
	"reflect"
	"testing"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

func mk(filename string, idx int, content string) domain.Chunk {
	return domain.Chunk{
		ID:         domain.ChunkID(filename, idx),
		Filename:   filename,
		ChunkIndex: idx,
		Content:    content,
	}
}

// ---------- Options + defaultConfig ----------

func TestOptionsAndDefaults(t *testing.T) {
	cfg := defaultConfig()
	if cfg.limit != DefaultLimit || DefaultLimit != 3 {
		t.Fatalf("defaultConfig unexpected: %#v", cfg)
	}
	WithLimit(5)(&cfg)
	if cfg.limit != 5 {
		t.Fatalf("WithLimit failed: %d", cfg.limit)
	}
	WithLimit(0)(&cfg) // no-op
	WithLimit(-2)(&cfg)
	if cfg.limit != 5 {
		t.Fatalf("non-positive limit should be ignored: %d", cfg.limit)
	}
}

// ---------- Rank ----------

func TestRank_CareerGrowthScenario(t *testing.T) {
	chunks := []domain.Chunk{
		mk("a.md", 0, "I want career growth this year"),
		mk("a.md", 1, "I enjoy hiking"),
		mk("b.md", 0, "career change is scary"),
	}
	got := Rank("career growth", chunks)
	if len(got) != 2 {
		t.Fatalf("want 2 results, got %d: %#v", len(got), got)
	}
	if got[0].ID != chunks[0].ID || got[0].Score != 2 {
		t.Fatalf("first = %#v; want chunk 1 with score 2", got[0])
	}
	if got[1].ID != chunks[2].ID || got[1].Score != 1 {
		t.Fatalf("second = %#v; want chunk 3 with score 1", got[1])
	}
}

func TestRank_SubstringContainment(t *testing.T) {
	chunks := []domain.Chunk{mk("h.md", 0, "Finished all my HOMEWORK before dinner")}
	got := Rank("work", chunks)
	if len(got) != 1 || got[0].Score != 1 {
		t.Fatalf("substring should match case-insensitively: %#v", got)
	}

	// "art" matches inside "start"; kept as a known quirk of substring scoring.
	got = Rank("art", []domain.Chunk{mk("s.md", 0, "a fresh start")})
	if len(got) != 1 {
		t.Fatalf("substring quirk changed: %#v", got)
	}
}

func TestRank_DuplicateQueryWordsCountEachTime(t *testing.T) {
	chunks := []domain.Chunk{
		mk("x.md", 0, "money matters"),
		mk("y.md", 0, "money and budget"),
	}
	got := Rank("money money budget", chunks)
	if got[0].Filename != "y.md" || got[0].Score != 3 {
		t.Fatalf("want y.md scored 3 first, got %#v", got)
	}
	if got[1].Score != 2 {
		t.Fatalf("want x.md scored 2, got %#v", got[1])
	}
}

func TestRank_StableTiesAndLimit(t *testing.T) {
	chunks := []domain.Chunk{
		mk("a", 0, "health one"),
		mk("b", 0, "health two"),
		mk("c", 0, "health three"),
		mk("d", 0, "health four"),
		mk("e", 0, "health sleep"),
	}
	got := Rank("health sleep", chunks)
	if len(got) != 3 {
		t.Fatalf("want 3 results, got %d", len(got))
	}
	want := []string{"e", "a", "b"}
	if !reflect.DeepEqual(Filenames(got), want) {
		t.Fatalf("order = %v; want %v (stable ties)", Filenames(got), want)
	}

	got = Rank("health", chunks, WithLimit(10))
	if !reflect.DeepEqual(Filenames(got), []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("ties must keep candidate order: %v", Filenames(got))
	}
}

func TestRank_ExcludesZeroScoresAndEmptyInputs(t *testing.T) {
	chunks := []domain.Chunk{mk("a", 0, "nothing relevant")}
	if got := Rank("finances", chunks); got != nil {
		t.Fatalf("zero-score chunks must be excluded: %#v", got)
	}
	if got := Rank("   ", chunks); got != nil {
		t.Fatalf("blank query must yield nil: %#v", got)
	}
	if got := Rank("anything", nil); got != nil {
		t.Fatalf("no candidates must yield nil: %#v", got)
	}
}

func TestRank_Properties(t *testing.T) {
	chunks := []domain.Chunk{
		mk("a", 0, "goals for the quarter include running"),
		mk("b", 0, "running shoes and running plans"),
		mk("c", 0, "quarterly goals review"),
		mk("d", 0, "unrelated text"),
		mk("e", 0, "plans plans plans"),
	}
	for _, q := range []string{"goals", "running plans", "quarter goals running plans", "x"} {
		got := Rank(q, chunks)
		if len(got) > 3 {
			t.Fatalf("%q: more than 3 results", q)
		}
		for i, r := range got {
			if r.Score <= 0 {
				t.Fatalf("%q: zero score returned", q)
			}
			if i > 0 && got[i-1].Score < r.Score {
				t.Fatalf("%q: not sorted by score desc", q)
			}
		}
	}
}

func TestTokenizeAndHelpers(t *testing.T) {
	if got := Tokenize("  Career\tGROWTH \n now "); !reflect.DeepEqual(got, []string{"career", "growth", "now"}) {
		t.Fatalf("Tokenize = %v", got)
	}
	rs := []Result{{Chunk: mk("a", 0, "x"), Score: 1}, {Chunk: mk("a", 1, "y"), Score: 1}}
	if got := Filenames(rs); !reflect.DeepEqual(got, []string{"a", "a"}) {
		t.Fatalf("Filenames must keep duplicates: %v", got)
	}
	if got := Chunks(rs); len(got) != 2 || got[1].Content != "y" {
		t.Fatalf("Chunks = %#v", got)
	}
}
