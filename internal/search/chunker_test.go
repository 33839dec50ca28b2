package search

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// ---------- helpers ----------

func para(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

// ---------- Chunk ----------

func TestChunk_SplitsOnBlankLinesAndFiltersShort(t *testing.T) {
	long1 := para("alpha", 12) // 71 runes
	long2 := para("beta", 15)  // 74 runes
	text := "# Title\n\n" + long1 + "\n\n---\n\n" + long2 + "\n"

	got := Chunk(text, "notes.md")
	if len(got) != 2 {
		t.Fatalf("want 2 chunks, got %d: %#v", len(got), got)
	}
	if got[0].Content != long1 || got[1].Content != long2 {
		t.Fatalf("unexpected contents: %#v", got)
	}
	for i, c := range got {
		if c.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, c.ChunkIndex)
		}
		if c.Filename != "notes.md" {
			t.Errorf("chunk %d filename = %q", i, c.Filename)
		}
		if c.ID != "notes.md-chunk-"+string(rune('0'+i)) {
			t.Errorf("chunk %d id = %q", i, c.ID)
		}
	}
}

func TestChunk_ThresholdIsInclusive(t *testing.T) {
	exactly50 := strings.Repeat("x", 50)
	fiftyOne := strings.Repeat("y", 51)

	got := Chunk(exactly50+"\n\n"+fiftyOne, "f.txt")
	if len(got) != 1 || got[0].Content != fiftyOne {
		t.Fatalf("50-rune fragment must be dropped, 51 kept: %#v", got)
	}

	// Surrounding whitespace does not count toward the length.
	padded := "   " + exactly50 + "   "
	if got := Chunk(padded, "f.txt"); len(got) != 0 {
		t.Fatalf("trimmed length decides: %#v", got)
	}
}

func TestChunk_CountsRunesNotBytes(t *testing.T) {
	// 30 two-byte runes = 60 bytes but only 30 runes.
	short := strings.Repeat("é", 30)
	if got := Chunk(short, "f.txt"); len(got) != 0 {
		t.Fatalf("rune length must be used: %#v", got)
	}
}

func TestChunk_NormalizesCRLFAndWhitespaceOnlyLines(t *testing.T) {
	a := para("gamma", 12)
	b := para("delta", 12)
	text := a + "\r\n\r\n" + b + "\n  \t\n" + a

	got := Chunk(text, "w.txt")
	if len(got) != 3 {
		t.Fatalf("want 3 chunks, got %d: %#v", len(got), got)
	}
	for _, c := range got {
		if strings.ContainsRune(c.Content, '\r') {
			t.Fatalf("CR left in chunk: %q", c.Content)
		}
	}
}

func TestChunk_SingleNewlinesStayInsideParagraph(t *testing.T) {
	text := "line one of a longer paragraph that keeps going\nline two continues the same paragraph"
	got := Chunk(text, "p.md")
	if len(got) != 1 || !strings.Contains(got[0].Content, "\n") {
		t.Fatalf("single newline must not split: %#v", got)
	}
}

func TestChunk_EmptyResultIsNonNil(t *testing.T) {
	for _, in := range []string{"", "   ", "short\n\nalso short"} {
		got := Chunk(in, "e.md")
		if got == nil || len(got) != 0 {
			t.Fatalf("Chunk(%q) = %#v; want empty non-nil", in, got)
		}
	}
}

func TestChunk_NoShortChunksEver(t *testing.T) {
	inputs := []string{
		"a\n\nb\n\n" + para("word", 20),
		strings.Repeat(para("lorem", 9)+"\n\n", 10),
		"x\r\n\r\n" + para("ipsum", 11) + "\n\n\n\n" + strings.Repeat("z", 50),
	}
	for _, in := range inputs {
		for _, c := range Chunk(in, "f") {
			if utf8.RuneCountInString(c.Content) <= MinChunkRunes {
				t.Fatalf("short chunk emitted: %q", c.Content)
			}
		}
	}
}

func TestChunk_IsIdempotent(t *testing.T) {
	inputs := []string{
		"# Header\n\n" + para("career", 12) + "\n\nshort\n\n" + para("health", 12),
		para("one", 20) + "\r\n\r\n" + para("two", 20) + "\n \n" + para("three", 15),
		"",
		"only short bits\n\nhere",
	}
	for _, in := range inputs {
		first := Chunk(in, "doc.md")
		again := Chunk(Join(first), "doc.md")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("re-chunking changed result:\nfirst=%#v\nagain=%#v", first, again)
		}
	}
}

func TestChunk_Deterministic(t *testing.T) {
	in := para("stable", 10) + "\n\n" + para("output", 10)
	if !reflect.DeepEqual(Chunk(in, "d"), Chunk(in, "d")) {
		t.Fatalf("Chunk must be deterministic")
	}
}
