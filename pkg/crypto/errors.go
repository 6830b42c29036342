package crypto

import (
	"encoding/asn1"
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedDerivation is returned when derivation is requested on
	// a key whose algorithm does not support it.
	ErrUnsupportedDerivation = errors.New("derivation is not supported for this key's algorithm")

	// ErrKeyNotDerivable is returned when an Ed25519 key carries no chain
	// code. Keys parsed from raw, DER, or PEM bytes are never derivable.
	ErrKeyNotDerivable = errors.New("key has no chain code and is not derivable")

	// ErrUnsupportedOperation is returned when an operation is undefined
	// for the key's algorithm.
	ErrUnsupportedOperation = errors.New("operation is not defined for this key's algorithm")
)

// UnknownAlgorithmError reports a key envelope this SDK does not
// understand: a DER algorithm identifier with an unrecognized OID, or a
// PEM block with an unrecognized label.
type UnknownAlgorithmError struct {
	OID      asn1.ObjectIdentifier
	PEMLabel string
}

func (e *UnknownAlgorithmError) Error() string {
	if e.PEMLabel != "" {
		return fmt.Sprintf("unknown key envelope %q", e.PEMLabel)
	}
	return fmt.Sprintf("unknown key algorithm oid %v", e.OID)
}
