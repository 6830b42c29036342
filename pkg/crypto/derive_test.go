package crypto

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/meridian-ledger/meridian-sdk-go/pkg/mnemonic"
)

const (
	zero12 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	zero24 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"

	phrase24   = "inmate flip alley wear offer often piece magnet surge toddler submit right radio absent pear floor belt raven price stove replace reduce plate home"
	seed24Hex  = "7af098ea2d0a8a024cd3c1d1fa9956af798952956f5b91f32da56e21c2c79112a876dbe0fbd8bfcc830f2253a32c47b768d9fdb7612b982db4d7fed37ffdaba5"
	key24Hex   = "853f15aecd22706b105da1d709b4ac05b4906170c2b9c7495dff9af49e1391da"
	chain24Hex = "eb001273d3d54073c42a32c17178d00677e8420631716cd57814cad9db0e64fc"
	pub24Hex   = "b63b3815f453cf697b53b290b1d78e88c725d39bde52c34c79fb5b4c93894673"

	legacyPhrase       = "jolly kidnap tom lawn drunk chick optic lust mutter mole bride galley dense member sage neural widow decide curb aboard margin manure"
	legacyKeyHex       = "00c2f59212cb3417f0ee0d38e7bd876810d04f2dd2cb5c2d8f26ff406573f2bd"
	legacyChild0Hex    = "fae0002d2716ea3a60c9cd05ee3c4bb88723b196341b68a02d20975f9d049dc6"
	legacyChild0PubHex = "f40f9fdb1f161c31ed656794ada7af8025e8b5c70e538f38a4dfb46a0a6b0392"
	legacyChildEndHex  = "882a565ad8cb45643892b5366c1ee1c1ef4a730c5ce821a219ff49b6bf173ddf"
)

func TestPrivateKeyFromSeed(t *testing.T) {
	k := PrivateKeyFromSeed(mustHex(t, seed24Hex))

	if k.Algorithm() != Ed25519 {
		t.Errorf("Algorithm() = %v, want ed25519", k.Algorithm())
	}
	if got := k.StringRaw(); got != key24Hex {
		t.Errorf("StringRaw() = %s, want %s", got, key24Hex)
	}
	if got := hex.EncodeToString(k.ChainCode()); got != chain24Hex {
		t.Errorf("ChainCode() = %s, want %s", got, chain24Hex)
	}
	if got := k.PublicKey().StringRaw(); got != pub24Hex {
		t.Errorf("PublicKey().StringRaw() = %s, want %s", got, pub24Hex)
	}
}

func TestPrivateKeyFromMnemonic(t *testing.T) {
	m, err := mnemonic.Parse(phrase24)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	k, err := PrivateKeyFromMnemonic(m, "")
	if err != nil {
		t.Fatalf("PrivateKeyFromMnemonic() error: %v", err)
	}
	if got := k.StringRaw(); got != key24Hex {
		t.Errorf("StringRaw() = %s, want %s", got, key24Hex)
	}
	if got := hex.EncodeToString(k.ChainCode()); got != chain24Hex {
		t.Errorf("ChainCode() = %s, want %s", got, chain24Hex)
	}
}

func TestPrivateKeyFromMnemonic_Passphrase(t *testing.T) {
	m, err := mnemonic.Parse(phrase24)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	plain, err := PrivateKeyFromMnemonic(m, "")
	if err != nil {
		t.Fatalf("PrivateKeyFromMnemonic() error: %v", err)
	}
	locked, err := PrivateKeyFromMnemonic(m, "some pass")
	if err != nil {
		t.Fatalf("PrivateKeyFromMnemonic() error: %v", err)
	}
	if plain.StringRaw() == locked.StringRaw() {
		t.Error("passphrase did not change the derived key")
	}
}

func TestPrivateKeyFromMnemonic_Legacy(t *testing.T) {
	m, err := mnemonic.Parse(legacyPhrase)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	k, err := PrivateKeyFromMnemonic(m, "")
	if err != nil {
		t.Fatalf("PrivateKeyFromMnemonic() error: %v", err)
	}
	if got := k.StringRaw(); got != legacyKeyHex {
		t.Errorf("StringRaw() = %s, want %s", got, legacyKeyHex)
	}
	if cc := k.ChainCode(); cc != nil {
		t.Errorf("ChainCode() = %x, want nil", cc)
	}
}

func TestPrivateKeyFromMnemonic_LegacyWithPassphrase(t *testing.T) {
	m, err := mnemonic.Parse(legacyPhrase)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	if _, err := PrivateKeyFromMnemonic(m, "x"); !errors.Is(err, mnemonic.ErrLegacyWithPassphrase) {
		t.Fatalf("PrivateKeyFromMnemonic() error = %v, want ErrLegacyWithPassphrase", err)
	}
}

func TestLegacyPrivateKeyFromMnemonic(t *testing.T) {
	m, err := mnemonic.Parse(legacyPhrase)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	k, err := LegacyPrivateKeyFromMnemonic(m)
	if err != nil {
		t.Fatalf("LegacyPrivateKeyFromMnemonic() error: %v", err)
	}
	if got := k.StringRaw(); got != legacyKeyHex {
		t.Errorf("StringRaw() = %s, want %s", got, legacyKeyHex)
	}
	if cc := k.ChainCode(); cc != nil {
		t.Errorf("ChainCode() = %x, want nil", cc)
	}
}

func TestLegacyPrivateKeyFromMnemonic_Standard24(t *testing.T) {
	// A 24-word phrase is accepted here too: its entropy is used as
	// the seed directly, without the PBKDF2 stretch.
	m, err := mnemonic.Parse(zero24)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	k, err := LegacyPrivateKeyFromMnemonic(m)
	if err != nil {
		t.Fatalf("LegacyPrivateKeyFromMnemonic() error: %v", err)
	}
	const want = "0000000000000000000000000000000000000000000000000000000000000000"
	if got := k.StringRaw(); got != want {
		t.Errorf("StringRaw() = %s, want %s", got, want)
	}
}

func TestLegacyPrivateKeyFromMnemonic_Standard12(t *testing.T) {
	m, err := mnemonic.Parse(zero12)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}

	_, err = LegacyPrivateKeyFromMnemonic(m)
	var badLen *mnemonic.BadLengthError
	if !errors.As(err, &badLen) {
		t.Fatalf("LegacyPrivateKeyFromMnemonic() error = %v, want BadLengthError", err)
	}
	if badLen.Actual != 12 {
		t.Errorf("BadLengthError.Actual = %d, want 12", badLen.Actual)
	}
}

func TestDerive(t *testing.T) {
	k, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519() error: %v", err)
	}

	child, err := k.Derive(0)
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	if child.Algorithm() != Ed25519 {
		t.Errorf("child Algorithm() = %v, want ed25519", child.Algorithm())
	}
	if got := len(child.ChainCode()); got != chainCodeSize {
		t.Errorf("child chain code length = %d, want %d", got, chainCodeSize)
	}
	if child.StringRaw() == k.StringRaw() {
		t.Error("child key equals its parent")
	}

	again, err := k.Derive(0)
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	if again.StringRaw() != child.StringRaw() {
		t.Error("Derive() is not deterministic")
	}

	sibling, err := k.Derive(1)
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	if sibling.StringRaw() == child.StringRaw() {
		t.Error("distinct indexes produced the same child")
	}
}

func TestDerive_HardenedBitForced(t *testing.T) {
	k := PrivateKeyFromSeed(mustHex(t, seed24Hex))

	soft, err := k.Derive(5)
	if err != nil {
		t.Fatalf("Derive(5) error: %v", err)
	}
	hard, err := k.Derive(5 | 0x80000000)
	if err != nil {
		t.Fatalf("Derive(5|hardened) error: %v", err)
	}
	if soft.StringRaw() != hard.StringRaw() {
		t.Errorf("Derive(5) = %s, Derive(5|hardened) = %s; both must hit the hardened slot", soft.StringRaw(), hard.StringRaw())
	}
}

func TestDerive_Ecdsa(t *testing.T) {
	k, err := GenerateEcdsa()
	if err != nil {
		t.Fatalf("GenerateEcdsa() error: %v", err)
	}
	if _, err := k.Derive(0); !errors.Is(err, ErrUnsupportedDerivation) {
		t.Fatalf("Derive() error = %v, want ErrUnsupportedDerivation", err)
	}
}

func TestDerive_NoChainCode(t *testing.T) {
	k, err := PrivateKeyFromStringEd25519(rfcSeedHex)
	if err != nil {
		t.Fatalf("PrivateKeyFromStringEd25519() error: %v", err)
	}
	if _, err := k.Derive(0); !errors.Is(err, ErrKeyNotDerivable) {
		t.Fatalf("Derive() error = %v, want ErrKeyNotDerivable", err)
	}
}

func TestLegacyDerive(t *testing.T) {
	m, err := mnemonic.Parse(legacyPhrase)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}
	root, err := LegacyPrivateKeyFromMnemonic(m)
	if err != nil {
		t.Fatalf("LegacyPrivateKeyFromMnemonic() error: %v", err)
	}

	child, err := root.LegacyDerive(0)
	if err != nil {
		t.Fatalf("LegacyDerive(0) error: %v", err)
	}
	if got := child.StringRaw(); got != legacyChild0Hex {
		t.Errorf("LegacyDerive(0) = %s, want %s", got, legacyChild0Hex)
	}
	if got := child.PublicKey().StringRaw(); got != legacyChild0PubHex {
		t.Errorf("child public key = %s, want %s", got, legacyChild0PubHex)
	}
	if cc := child.ChainCode(); cc != nil {
		t.Errorf("child ChainCode() = %x, want nil", cc)
	}
}

func TestLegacyDerive_SentinelIndex(t *testing.T) {
	m, err := mnemonic.Parse(legacyPhrase)
	if err != nil {
		t.Fatalf("mnemonic.Parse() error: %v", err)
	}
	root, err := LegacyPrivateKeyFromMnemonic(m)
	if err != nil {
		t.Fatalf("LegacyPrivateKeyFromMnemonic() error: %v", err)
	}

	// Negative indexes and the 0x00FFFFFFFFFF sentinel share one marker
	// byte, so they land on the same child.
	neg, err := root.LegacyDerive(-1)
	if err != nil {
		t.Fatalf("LegacyDerive(-1) error: %v", err)
	}
	sentinel, err := root.LegacyDerive(0x00FFFFFFFFFF)
	if err != nil {
		t.Fatalf("LegacyDerive(sentinel) error: %v", err)
	}
	if got := neg.StringRaw(); got != legacyChildEndHex {
		t.Errorf("LegacyDerive(-1) = %s, want %s", got, legacyChildEndHex)
	}
	if got := sentinel.StringRaw(); got != legacyChildEndHex {
		t.Errorf("LegacyDerive(sentinel) = %s, want %s", got, legacyChildEndHex)
	}
}

func TestLegacyDerive_Ecdsa(t *testing.T) {
	k, err := GenerateEcdsa()
	if err != nil {
		t.Fatalf("GenerateEcdsa() error: %v", err)
	}
	if _, err := k.LegacyDerive(0); !errors.Is(err, ErrUnsupportedDerivation) {
		t.Fatalf("LegacyDerive() error = %v, want ErrUnsupportedDerivation", err)
	}
}
