package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Algorithm tags the two key algorithms the SDK supports. The set is
// closed; every operation switches exhaustively on it.
type Algorithm uint8

const (
	// Ed25519 keys sign raw messages with EdDSA.
	Ed25519 Algorithm = iota
	// EcdsaSecp256k1 keys sign Keccak-256 digests with low-S ECDSA.
	EcdsaSecp256k1
)

// String returns the conventional lowercase algorithm name.
func (a Algorithm) String() string {
	switch a {
	case Ed25519:
		return "ed25519"
	case EcdsaSecp256k1:
		return "ecdsa-secp256k1"
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// chainCodeSize is the length of a derivation chain code in bytes.
const chainCodeSize = 32

// PrivateKey is an algorithm-tagged private key. Values are immutable
// after construction; derivation returns a new independent key. The chain
// code is present only on freshly generated Ed25519 keys, keys recovered
// through the mnemonic seed path, and their derived children. Keys parsed
// from raw, DER, or PEM bytes never carry one.
type PrivateKey struct {
	algorithm Algorithm
	ed        ed25519.PrivateKey    // set when algorithm == Ed25519
	ec        *secp256k1.PrivateKey // set when algorithm == EcdsaSecp256k1
	chainCode []byte
	public    *PublicKey
}

func newEd25519(priv ed25519.PrivateKey, chainCode []byte) *PrivateKey {
	return &PrivateKey{
		algorithm: Ed25519,
		ed:        priv,
		chainCode: chainCode,
		public:    &PublicKey{algorithm: Ed25519, ed: priv.Public().(ed25519.PublicKey)},
	}
}

func newEcdsa(key *secp256k1.PrivateKey, chainCode []byte) *PrivateKey {
	return &PrivateKey{
		algorithm: EcdsaSecp256k1,
		ec:        key,
		chainCode: chainCode,
		public:    &PublicKey{algorithm: EcdsaSecp256k1, ec: key.PubKey()},
	}
}

// GenerateEd25519 creates a random Ed25519 key. Generated keys carry a
// fresh random chain code, so they are derivable from birth.
func GenerateEd25519() (*PrivateKey, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	chainCode := make([]byte, chainCodeSize)
	if _, err := rand.Read(chainCode); err != nil {
		return nil, fmt.Errorf("generate chain code: %w", err)
	}
	return newEd25519(ed25519.NewKeyFromSeed(seed), chainCode), nil
}

// GenerateEcdsa creates a random ECDSA secp256k1 key. ECDSA keys never
// carry a chain code.
func GenerateEcdsa() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate ecdsa key: %w", err)
	}
	return newEcdsa(key, nil), nil
}

// PrivateKeyFromBytes parses a private key from raw or DER bytes. Inputs
// of 32 or 64 bytes are read as a raw Ed25519 seed (first 32 bytes used);
// anything else must be DER PKCS#8, dispatched on its algorithm OID.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	switch len(b) {
	case 32, 64:
		return newEd25519(ed25519.NewKeyFromSeed(b[:32]), nil), nil
	}
	return PrivateKeyFromBytesDER(b)
}

// PrivateKeyFromBytesEd25519 parses a raw Ed25519 seed (32 or 64 bytes,
// first 32 used) or a DER-encoded Ed25519 key.
func PrivateKeyFromBytesEd25519(b []byte) (*PrivateKey, error) {
	switch len(b) {
	case 32, 64:
		return newEd25519(ed25519.NewKeyFromSeed(b[:32]), nil), nil
	}
	k, err := PrivateKeyFromBytesDER(b)
	if err != nil {
		return nil, err
	}
	if k.algorithm != Ed25519 {
		return nil, fmt.Errorf("key is %s, want ed25519", k.algorithm)
	}
	return k, nil
}

// PrivateKeyFromBytesEcdsa parses a raw 32-byte secp256k1 scalar or a
// DER-encoded ECDSA key.
func PrivateKeyFromBytesEcdsa(b []byte) (*PrivateKey, error) {
	if len(b) == 32 {
		return newEcdsa(secp256k1.PrivKeyFromBytes(b), nil), nil
	}
	k, err := PrivateKeyFromBytesDER(b)
	if err != nil {
		return nil, err
	}
	if k.algorithm != EcdsaSecp256k1 {
		return nil, fmt.Errorf("key is %s, want ecdsa-secp256k1", k.algorithm)
	}
	return k, nil
}

// PrivateKeyFromString parses a hex string, optionally 0x-prefixed, of raw
// or DER private key bytes.
func PrivateKeyFromString(s string) (*PrivateKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return PrivateKeyFromBytes(b)
}

// PrivateKeyFromStringEd25519 parses a hex string of raw or DER Ed25519
// key bytes.
func PrivateKeyFromStringEd25519(s string) (*PrivateKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return PrivateKeyFromBytesEd25519(b)
}

// PrivateKeyFromStringEcdsa parses a hex string of raw or DER ECDSA key
// bytes.
func PrivateKeyFromStringEcdsa(s string) (*PrivateKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return PrivateKeyFromBytesEcdsa(b)
}

// PrivateKeyFromStringDER parses a hex string of DER private key bytes.
func PrivateKeyFromStringDER(s string) (*PrivateKey, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return PrivateKeyFromBytesDER(b)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	return b, nil
}

// Algorithm returns the key's algorithm tag.
func (k *PrivateKey) Algorithm() Algorithm {
	return k.algorithm
}

// PublicKey returns the key's public half. The value is computed at
// construction, so this never fails.
func (k *PrivateKey) PublicKey() *PublicKey {
	return k.public
}

// ChainCode returns a copy of the derivation chain code, or nil when the
// key has none.
func (k *PrivateKey) ChainCode() []byte {
	if k.chainCode == nil {
		return nil
	}
	cc := make([]byte, len(k.chainCode))
	copy(cc, k.chainCode)
	return cc
}

// Bytes serializes the key in its historical default form: the raw 32-byte
// seed for Ed25519 and DER for ECDSA. The asymmetry is a compatibility
// contract with keys already stored by existing wallets; use BytesRaw or
// BytesDER to pick one form explicitly.
func (k *PrivateKey) Bytes() []byte {
	if k.algorithm == Ed25519 {
		return k.BytesRaw()
	}
	return k.BytesDER()
}

// BytesRaw returns the bare key material: the 32-byte Ed25519 seed or the
// 32-byte secp256k1 scalar.
func (k *PrivateKey) BytesRaw() []byte {
	if k.algorithm == Ed25519 {
		return k.ed.Seed()
	}
	return k.ec.Serialize()
}

// BytesDER returns the PKCS#8 DER encoding. Ed25519 follows RFC 8410;
// ECDSA uses the SDK's compact form with the secp256k1 OID as the
// algorithm and the bare scalar as the curve private key.
func (k *PrivateKey) BytesDER() []byte {
	if k.algorithm == Ed25519 {
		return marshalPrivateKeyDER(oidEd25519, k.ed.Seed())
	}
	return marshalPrivateKeyDER(oidSecp256k1, k.ec.Serialize())
}

// String returns the hex of the DER encoding, the SDK's default textual
// key form.
func (k *PrivateKey) String() string {
	return k.StringDER()
}

// StringRaw returns the hex of the bare key material.
func (k *PrivateKey) StringRaw() string {
	return hex.EncodeToString(k.BytesRaw())
}

// StringDER returns the hex of the DER encoding.
func (k *PrivateKey) StringDER() string {
	return hex.EncodeToString(k.BytesDER())
}
