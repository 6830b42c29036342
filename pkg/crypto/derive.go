package crypto

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/meridian-ledger/meridian-sdk-go/pkg/mnemonic"
	"golang.org/x/crypto/pbkdf2"
)

// Mnemonic recovery path constants.
// Full path: m/44'/3030'/0'/0', every step hardened.
const (
	// PathPurpose is the BIP-43 purpose field.
	PathPurpose uint32 = 44

	// PathCoinType is the coin type registered for this ledger.
	PathCoinType uint32 = 3030

	// PathAccount is the account field; recovery always uses account 0.
	PathAccount uint32 = 0

	// PathKey is the key index; recovery always uses index 0.
	PathKey uint32 = 0
)

// hardenedBit is forced onto every derivation index; non-hardened child
// keys are undefined for Ed25519.
const hardenedBit = 0x80000000

// legacyDeriveSentinel is the historical magic index that selects the
// 0xFF marker bytes in LegacyDerive just like a negative index does.
const legacyDeriveSentinel int64 = 0x00FFFFFFFFFF

// seedMasterKey keys the HMAC that turns a mnemonic seed into the root
// secret and chain code.
var seedMasterKey = []byte("ed25519 seed")

// Derive returns the hardened child key at index. Only Ed25519 keys
// holding a chain code are derivable: ECDSA keys fail with
// ErrUnsupportedDerivation, chain-code-less Ed25519 keys with
// ErrKeyNotDerivable. The hardened bit is forced regardless of input.
func (k *PrivateKey) Derive(index uint32) (*PrivateKey, error) {
	if k.algorithm != Ed25519 {
		return nil, ErrUnsupportedDerivation
	}
	if k.chainCode == nil {
		return nil, ErrKeyNotDerivable
	}
	secret, chainCode := deriveChild(k.ed.Seed(), k.chainCode, index)
	return newEd25519(ed25519.NewKeyFromSeed(secret), chainCode), nil
}

// deriveChild is one hardened derivation step: HMAC-SHA512 keyed by the
// chain code over 0x00 || secret || be32(index with the hardened bit set),
// the left half becoming the child secret and the right half its chain
// code.
func deriveChild(secret, chainCode []byte, index uint32) (childSecret, childChain []byte) {
	index |= hardenedBit

	var be [4]byte
	binary.BigEndian.PutUint32(be[:], index)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write([]byte{0x00})
	mac.Write(secret)
	mac.Write(be[:])
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// LegacyDerive returns the child key at index under the scheme that
// predates chain codes; it is defined for any Ed25519 key. Only the low
// byte of the index is mixed into the buffer directly, with marker bytes
// of 0xFF for negative indexes and for the sentinel 0x00FFFFFFFFFF.
func (k *PrivateKey) LegacyDerive(index int64) (*PrivateKey, error) {
	if k.algorithm != Ed25519 {
		return nil, ErrUnsupportedDerivation
	}

	buf := make([]byte, 40)
	copy(buf, k.ed.Seed())

	marker := byte(0x00)
	if index == legacyDeriveSentinel || index < 0 {
		marker = 0xFF
	}
	low := byte(index)
	for i := 32; i < 36; i++ {
		buf[i] = marker
	}
	for i := 36; i < 40; i++ {
		buf[i] = low
	}

	seed := pbkdf2.Key(buf, []byte{0xFF}, 2048, 32, sha512.New)
	return newEd25519(ed25519.NewKeyFromSeed(seed), nil), nil
}

// PrivateKeyFromSeed builds the recovery key for a mnemonic seed: the
// root is HMAC-SHA512 keyed by "ed25519 seed" over the seed, split into
// secret and chain code, then walked down the fixed hardened path
// 44'/3030'/0'/0'. The returned key carries the final chain code.
func PrivateKeyFromSeed(seed []byte) *PrivateKey {
	mac := hmac.New(sha512.New, seedMasterKey)
	mac.Write(seed)
	sum := mac.Sum(nil)

	secret, chainCode := sum[:32], sum[32:]
	for _, index := range []uint32{PathPurpose, PathCoinType, PathAccount, PathKey} {
		secret, chainCode = deriveChild(secret, chainCode, index)
	}
	return newEd25519(ed25519.NewKeyFromSeed(secret), chainCode)
}

// PrivateKeyFromMnemonic recovers a private key from a phrase. Legacy
// 22-word phrases reject any passphrase and yield the chain-code-less raw
// key their entropy encodes; standard phrases are stretched to a seed and
// walked down the derivation path. Callers that want the seed treatment
// for a legacy-shaped phrase can call ToSeed and PrivateKeyFromSeed
// directly.
func PrivateKeyFromMnemonic(m mnemonic.Mnemonic, passphrase string) (*PrivateKey, error) {
	if m.IsLegacy() {
		if passphrase != "" {
			return nil, mnemonic.ErrLegacyWithPassphrase
		}
		return LegacyPrivateKeyFromMnemonic(m)
	}
	return PrivateKeyFromSeed(m.ToSeed(passphrase)), nil
}

// LegacyPrivateKeyFromMnemonic recovers the raw Ed25519 key a legacy
// phrase encodes. Standard 24-word phrases are accepted too and read as
// their 32-byte entropy; 12-word phrases are rejected. The key never
// carries a chain code.
func LegacyPrivateKeyFromMnemonic(m mnemonic.Mnemonic) (*PrivateKey, error) {
	entropy, err := m.LegacyEntropy()
	if err != nil {
		return nil, err
	}
	return newEd25519(ed25519.NewKeyFromSeed(entropy), nil), nil
}
