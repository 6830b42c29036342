package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PublicKey is the public half of a PrivateKey, carrying the same
// algorithm tag.
type PublicKey struct {
	algorithm Algorithm
	ed        ed25519.PublicKey
	ec        *secp256k1.PublicKey
}

// PublicKeyFromBytes parses a public key from raw or DER bytes: 32 bytes
// is a raw Ed25519 key, 33 or 65 bytes a compressed or uncompressed
// secp256k1 point, anything else must be SPKI DER.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	switch len(b) {
	case ed25519.PublicKeySize:
		return PublicKeyFromBytesEd25519(b)
	case 33, 65:
		return PublicKeyFromBytesEcdsa(b)
	}
	return PublicKeyFromBytesDER(b)
}

// PublicKeyFromBytesEd25519 parses a raw 32-byte Ed25519 public key or a
// DER-encoded one.
func PublicKeyFromBytesEd25519(b []byte) (*PublicKey, error) {
	if len(b) == ed25519.PublicKeySize {
		pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
		copy(pub, b)
		return &PublicKey{algorithm: Ed25519, ed: pub}, nil
	}
	p, err := PublicKeyFromBytesDER(b)
	if err != nil {
		return nil, err
	}
	if p.algorithm != Ed25519 {
		return nil, fmt.Errorf("key is %s, want ed25519", p.algorithm)
	}
	return p, nil
}

// PublicKeyFromBytesEcdsa parses a compressed (33-byte) or uncompressed
// (65-byte) secp256k1 point, or a DER-encoded ECDSA public key.
func PublicKeyFromBytesEcdsa(b []byte) (*PublicKey, error) {
	if len(b) == 33 || len(b) == 65 {
		key, err := secp256k1.ParsePubKey(b)
		if err != nil {
			return nil, fmt.Errorf("parse ecdsa public key: %w", err)
		}
		return &PublicKey{algorithm: EcdsaSecp256k1, ec: key}, nil
	}
	p, err := PublicKeyFromBytesDER(b)
	if err != nil {
		return nil, err
	}
	if p.algorithm != EcdsaSecp256k1 {
		return nil, fmt.Errorf("key is %s, want ecdsa-secp256k1", p.algorithm)
	}
	return p, nil
}

// PublicKeyFromString parses a hex string, optionally 0x-prefixed, of raw
// or DER public key bytes.
func PublicKeyFromString(s string) (*PublicKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return PublicKeyFromBytes(b)
}

// Algorithm returns the key's algorithm tag.
func (p *PublicKey) Algorithm() Algorithm {
	return p.algorithm
}

// Bytes returns the bare key material: the raw 32 bytes for Ed25519, the
// 33-byte compressed point for ECDSA.
func (p *PublicKey) Bytes() []byte {
	return p.BytesRaw()
}

// BytesRaw returns the bare key material, like Bytes.
func (p *PublicKey) BytesRaw() []byte {
	if p.algorithm == Ed25519 {
		out := make([]byte, ed25519.PublicKeySize)
		copy(out, p.ed)
		return out
	}
	return p.ec.SerializeCompressed()
}

// BytesDER returns the SPKI DER encoding: RFC 8410 for Ed25519,
// ecPublicKey with the secp256k1 named curve and a compressed point for
// ECDSA.
func (p *PublicKey) BytesDER() []byte {
	if p.algorithm == Ed25519 {
		return marshalPublicKeyDER(p.algorithm, p.ed)
	}
	return marshalPublicKeyDER(p.algorithm, p.ec.SerializeCompressed())
}

// String returns the hex of the DER encoding, the SDK's default textual
// key form.
func (p *PublicKey) String() string {
	return p.StringDER()
}

// StringRaw returns the hex of the bare key material.
func (p *PublicKey) StringRaw() string {
	return hex.EncodeToString(p.BytesRaw())
}

// StringDER returns the hex of the DER encoding.
func (p *PublicKey) StringDER() string {
	return hex.EncodeToString(p.BytesDER())
}

// EVMAddress returns the hex of the 20-byte EVM address of an ECDSA key:
// the last 20 bytes of the Keccak-256 digest of the uncompressed point
// without its 0x04 prefix. Ed25519 keys have no EVM address.
func (p *PublicKey) EVMAddress() (string, error) {
	if p.algorithm != EcdsaSecp256k1 {
		return "", ErrUnsupportedOperation
	}
	digest := Keccak256(p.ec.SerializeUncompressed()[1:])
	return hex.EncodeToString(digest[12:]), nil
}
