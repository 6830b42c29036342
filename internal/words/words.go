// Package words holds the embedded word tables backing mnemonic phrases.
package words

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

//go:embed legacy-english.txt
var legacyRaw string

// List is an immutable, ordered word table.
type List struct {
	words  []string
	sorted bool
}

var (
	englishOnce sync.Once
	english     *List

	legacyOnce sync.Once
	legacy     *List
)

// English returns the BIP-39 English table: 2048 words in sorted order,
// taken from go-bip39's embedded list. A malformed table panics at first
// use.
func English() *List {
	englishOnce.Do(func() {
		w := wordlists.English
		if len(w) != 2048 {
			panic(fmt.Sprintf("words: BIP-39 English list has %d words, want 2048", len(w)))
		}
		if !sort.StringsAreSorted(w) {
			panic("words: BIP-39 English list is not sorted")
		}
		english = &List{words: w, sorted: true}
	})
	return english
}

// Legacy returns the legacy table (4096 words, unsorted).
func Legacy() *List {
	legacyOnce.Do(func() {
		w := strings.Fields(legacyRaw)
		if len(w) != 4096 {
			panic(fmt.Sprintf("words: legacy list has %d words, want 4096", len(w)))
		}
		legacy = &List{words: w}
	})
	return legacy
}

// Len returns the number of words in the list.
func (l *List) Len() int {
	return len(l.words)
}

// At returns the word at index i.
func (l *List) At(i int) string {
	return l.words[i]
}

// Lookup returns the index of word, or -1 when absent. Sorted tables use
// binary search; the legacy table has no ordering invariant and is scanned.
func (l *List) Lookup(word string) int {
	if l.sorted {
		i := sort.SearchStrings(l.words, word)
		if i < len(l.words) && l.words[i] == word {
			return i
		}
		return -1
	}
	for i, w := range l.words {
		if w == word {
			return i
		}
	}
	return -1
}
