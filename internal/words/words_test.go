package words

import (
	"sort"
	"strings"
	"testing"
)

func TestEnglish(t *testing.T) {
	l := English()
	if l.Len() != 2048 {
		t.Fatalf("Len() = %d, want 2048", l.Len())
	}
	if got := l.At(0); got != "abandon" {
		t.Errorf("At(0) = %q, want %q", got, "abandon")
	}
	if got := l.At(2047); got != "zoo" {
		t.Errorf("At(2047) = %q, want %q", got, "zoo")
	}
	if !sort.StringsAreSorted(l.words) {
		t.Error("English list should be sorted")
	}
}

func TestEnglishLookup(t *testing.T) {
	l := English()
	tests := []struct {
		word string
		want int
	}{
		{"abandon", 0},
		{"about", 3},
		{"zoo", 2047},
		{"notaword", -1},
		{"Abandon", -1}, // case-sensitive
		{"", -1},
	}
	for _, tt := range tests {
		if got := l.Lookup(tt.word); got != tt.want {
			t.Errorf("Lookup(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestEnglishLookupRoundTrip(t *testing.T) {
	l := English()
	for i := 0; i < l.Len(); i++ {
		if got := l.Lookup(l.At(i)); got != i {
			t.Fatalf("Lookup(At(%d)) = %d", i, got)
		}
	}
}

func TestLegacy(t *testing.T) {
	l := Legacy()
	if l.Len() != 4096 {
		t.Fatalf("Len() = %d, want 4096", l.Len())
	}

	seen := make(map[string]int, l.Len())
	for i := 0; i < l.Len(); i++ {
		w := l.At(i)
		if w == "" || w != strings.ToLower(w) {
			t.Fatalf("word %d = %q, want non-empty lowercase", i, w)
		}
		if prev, dup := seen[w]; dup {
			t.Fatalf("duplicate word %q at %d and %d", w, prev, i)
		}
		seen[w] = i
	}
}

func TestLegacyLookup(t *testing.T) {
	l := Legacy()
	// Linear lookup must agree with At across the whole table.
	for i := 0; i < l.Len(); i += 97 {
		if got := l.Lookup(l.At(i)); got != i {
			t.Fatalf("Lookup(At(%d)) = %d", i, got)
		}
	}
	if got := l.Lookup("notaword"); got != -1 {
		t.Errorf("Lookup(notaword) = %d, want -1", got)
	}
}
