// Package types holds the small value types shared across the SDK: ledger
// identifiers and the 5-letter entity checksum.
package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LedgerID identifies the target network in checksum calculations. The
// well-known networks use a single byte; any other byte string is allowed
// and renders as hex.
type LedgerID []byte

// LedgerIDMainnet returns the mainnet ledger ID, 0x00.
func LedgerIDMainnet() LedgerID { return LedgerID{0x00} }

// LedgerIDTestnet returns the testnet ledger ID, 0x01.
func LedgerIDTestnet() LedgerID { return LedgerID{0x01} }

// LedgerIDPreviewnet returns the previewnet ledger ID, 0x02.
func LedgerIDPreviewnet() LedgerID { return LedgerID{0x02} }

// LedgerIDFromString parses a well-known network name ("mainnet",
// "testnet", "previewnet") or a hex-encoded ledger ID.
func LedgerIDFromString(s string) (LedgerID, error) {
	switch s {
	case "mainnet":
		return LedgerIDMainnet(), nil
	case "testnet":
		return LedgerIDTestnet(), nil
	case "previewnet":
		return LedgerIDPreviewnet(), nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger id %q: %w", s, err)
	}
	return LedgerID(b), nil
}

// IsMainnet reports whether this is the mainnet ledger ID.
func (l LedgerID) IsMainnet() bool { return bytes.Equal(l, LedgerIDMainnet()) }

// IsTestnet reports whether this is the testnet ledger ID.
func (l LedgerID) IsTestnet() bool { return bytes.Equal(l, LedgerIDTestnet()) }

// IsPreviewnet reports whether this is the previewnet ledger ID.
func (l LedgerID) IsPreviewnet() bool { return bytes.Equal(l, LedgerIDPreviewnet()) }

// Bytes returns a copy of the raw ledger ID.
func (l LedgerID) Bytes() []byte {
	b := make([]byte, len(l))
	copy(b, l)
	return b
}

// String returns the network name for the well-known IDs, hex otherwise.
func (l LedgerID) String() string {
	switch {
	case l.IsMainnet():
		return "mainnet"
	case l.IsTestnet():
		return "testnet"
	case l.IsPreviewnet():
		return "previewnet"
	}
	return hex.EncodeToString(l)
}

// MarshalJSON encodes the ledger ID as its String form.
func (l LedgerID) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a network name or hex string into a ledger ID.
func (l *LedgerID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := LedgerIDFromString(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
