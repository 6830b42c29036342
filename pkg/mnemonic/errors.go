package mnemonic

import (
	"errors"
	"fmt"
)

// ErrLegacyWithPassphrase is returned when a passphrase is supplied together
// with a legacy 22-word phrase, which predates passphrase support.
var ErrLegacyWithPassphrase = errors.New("legacy mnemonics do not support passphrases")

// BadLengthError reports a phrase, or a requested phrase, with an
// unsupported word count.
type BadLengthError struct {
	Expected []int
	Actual   int
}

func (e *BadLengthError) Error() string {
	return fmt.Sprintf("bad mnemonic word count: got %d, want one of %v", e.Actual, e.Expected)
}

// UnknownWordsError lists every word position (0-based) not found in the
// BIP-39 table.
type UnknownWordsError struct {
	Indices []int
}

func (e *UnknownWordsError) Error() string {
	return fmt.Sprintf("mnemonic contains unknown words at indices %v", e.Indices)
}

// ChecksumMismatchError reports a well-formed phrase whose embedded checksum
// does not match the one recomputed from its entropy.
type ChecksumMismatchError struct {
	Expected byte // recomputed from the entropy
	Actual   byte // embedded in the phrase
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("mnemonic checksum mismatch: computed %#02x, phrase has %#02x", e.Expected, e.Actual)
}
