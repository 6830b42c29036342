// Package mnemonic implements the word-phrase encoding of key entropy:
// standard BIP-39 phrases of 12 or 24 words and the legacy 22-word format
// used by early wallets.
package mnemonic

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"

	"github.com/meridian-ledger/meridian-sdk-go/internal/words"
	"github.com/tyler-smith/go-bip39"
)

const legacyWordCount = 22

// legacyModulus is 2^264, the range of the 33-byte integer a legacy phrase
// encodes.
var legacyModulus = new(big.Int).Lsh(big.NewInt(1), 264)

// Mnemonic is an immutable, ordered word phrase. The zero value is not a
// valid phrase; construct one with Parse, FromWords, or Generate.
type Mnemonic struct {
	words  []string
	legacy bool
}

// Parse splits s on any run of whitespace, lowercases the words, and
// validates the phrase. 12- and 24-word phrases must pass the BIP-39
// checksum; 22-word phrases are the legacy format and are accepted here
// unconditionally, with their checksum verified on entropy extraction.
func Parse(s string) (Mnemonic, error) {
	return FromWords(strings.Fields(strings.ToLower(s)))
}

// FromWords validates a phrase already split into words.
func FromWords(ws []string) (Mnemonic, error) {
	w := make([]string, len(ws))
	for i, word := range ws {
		w[i] = strings.ToLower(word)
	}
	switch len(w) {
	case legacyWordCount:
		return Mnemonic{words: w, legacy: true}, nil
	case 12, 24:
		m := Mnemonic{words: w}
		if _, err := m.entropy(); err != nil {
			return Mnemonic{}, err
		}
		return m, nil
	default:
		return Mnemonic{}, &BadLengthError{Expected: []int{12, 22, 24}, Actual: len(w)}
	}
}

// Generate draws fresh entropy from crypto/rand and encodes it as a phrase
// of wordCount words. Only 12 and 24 are supported.
func Generate(wordCount int) (Mnemonic, error) {
	var entLen int
	switch wordCount {
	case 12:
		entLen = 16
	case 24:
		entLen = 32
	default:
		return Mnemonic{}, &BadLengthError{Expected: []int{12, 24}, Actual: wordCount}
	}

	ent := make([]byte, entLen)
	if _, err := rand.Read(ent); err != nil {
		return Mnemonic{}, fmt.Errorf("draw entropy: %w", err)
	}
	return fromEntropy(ent), nil
}

// Generate12 returns a fresh 12-word phrase.
func Generate12() (Mnemonic, error) { return Generate(12) }

// Generate24 returns a fresh 24-word phrase.
func Generate24() (Mnemonic, error) { return Generate(24) }

// fromEntropy encodes entropy (16 or 32 bytes) plus its SHA-256 checksum
// byte as consecutive 11-bit word indices, most significant bit first.
func fromEntropy(ent []byte) Mnemonic {
	sum := sha256.Sum256(ent)
	data := append(append([]byte{}, ent...), sum[0])

	list := words.English()
	count := len(ent) * 3 / 4
	ws := make([]string, count)
	for i := 0; i < count; i++ {
		idx := 0
		for b := 0; b < 11; b++ {
			pos := i*11 + b
			idx <<= 1
			if data[pos/8]&(0x80>>(pos%8)) != 0 {
				idx |= 1
			}
		}
		ws[i] = list.At(idx)
	}
	return Mnemonic{words: ws}
}

// Words returns a copy of the phrase's words.
func (m Mnemonic) Words() []string {
	w := make([]string, len(m.words))
	copy(w, m.words)
	return w
}

// String renders the phrase with single spaces between words.
func (m Mnemonic) String() string {
	return strings.Join(m.words, " ")
}

// IsLegacy reports whether the phrase has the 22-word legacy shape.
func (m Mnemonic) IsLegacy() bool {
	return m.legacy
}

// Entropy returns the raw BIP-39 entropy of a standard phrase: 16 bytes for
// 12 words, 32 for 24. Legacy phrases carry no BIP-39 entropy; use
// LegacyEntropy for those.
func (m Mnemonic) Entropy() ([]byte, error) {
	if m.legacy {
		return nil, &BadLengthError{Expected: []int{12, 24}, Actual: len(m.words)}
	}
	return m.entropy()
}

// entropy re-derives the entropy of a 12- or 24-word phrase and checks the
// embedded checksum. For 12 words only the top four checksum bits exist, so
// only those are compared.
func (m Mnemonic) entropy() ([]byte, error) {
	list := words.English()

	var unknown []int
	indices := make([]int, len(m.words))
	for i, w := range m.words {
		idx := list.Lookup(w)
		if idx < 0 {
			unknown = append(unknown, i)
			continue
		}
		indices[i] = idx
	}
	if len(unknown) > 0 {
		return nil, &UnknownWordsError{Indices: unknown}
	}

	bits := len(indices) * 11
	data := make([]byte, (bits+7)/8)
	for i, idx := range indices {
		for b := 0; b < 11; b++ {
			if idx&(1<<(10-b)) != 0 {
				pos := i*11 + b
				data[pos/8] |= 0x80 >> (pos % 8)
			}
		}
	}

	entLen := 32
	mask := byte(0xFF)
	if len(indices) == 12 {
		entLen = 16
		mask = 0xF0
	}
	ent := data[:entLen]

	sum := sha256.Sum256(ent)
	expected := sum[0] & mask
	actual := data[entLen] & mask
	if expected != actual {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return ent, nil
}

// LegacyEntropy extracts the 32-byte key material used by legacy recovery.
// A 22-word phrase is read as base-4096 digits (first word most
// significant) of a 33-byte integer; the final byte is a CRC-8 over the
// other 32 and also XOR-masks each of them. Words missing from the legacy
// table contribute digit -1, which wraps and then fails the checksum.
// Standard phrases are accepted only at 24 words and yield their BIP-39
// entropy unchanged.
func (m Mnemonic) LegacyEntropy() ([]byte, error) {
	if !m.legacy {
		if len(m.words) != 24 {
			return nil, &BadLengthError{Expected: []int{24}, Actual: len(m.words)}
		}
		return m.entropy()
	}

	list := words.Legacy()
	n := new(big.Int)
	base := big.NewInt(4096)
	digit := new(big.Int)
	for _, w := range m.words {
		n.Mul(n, base)
		n.Add(n, digit.SetInt64(int64(list.Lookup(w))))
	}
	n.Mod(n, legacyModulus)

	data := n.FillBytes(make([]byte, 33))
	chk := data[32]
	ent := make([]byte, 32)
	for i, b := range data[:32] {
		ent[i] = b ^ chk
	}
	if expected := crc8(ent); expected != chk {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: chk}
	}
	return ent, nil
}

// ToSeed stretches the phrase into the 64-byte seed used by hierarchical
// key derivation: PBKDF2-HMAC-SHA512 over the space-joined words with salt
// "mnemonic"+passphrase and 2048 rounds. It is defined for every phrase
// shape, including legacy ones; callers that treat legacy phrases
// differently must check IsLegacy first.
func (m Mnemonic) ToSeed(passphrase string) []byte {
	return bip39.NewSeed(m.String(), passphrase)
}

// crc8 is the legacy phrase checksum: initial value 0xFF, LSB-first shift
// with feedback byte 0xB2, final XOR 0xFF.
func crc8(data []byte) byte {
	crc := byte(0xFF)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ 0xB2
			} else {
				crc >>= 1
			}
		}
	}
	return crc ^ 0xFF
}
