// Package crypto implements the key material of the SDK: Ed25519 and
// ECDSA/secp256k1 private keys, their public halves, DER and PEM codecs,
// signing, and the two derivation schemes used for mnemonic recovery.
package crypto

import (
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the legacy Keccak-256 digest (pre-NIST padding) of
// the concatenated inputs. ECDSA operations in this SDK sign and verify
// this digest, never the raw message.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
