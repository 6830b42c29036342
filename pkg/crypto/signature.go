package crypto

import (
	"crypto/ed25519"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignaturePair couples a signature with the public key that produced it,
// so a payload carrying several signatures can be checked without trial
// verification against every known signer.
type SignaturePair struct {
	PublicKey *PublicKey
	Signature []byte
}

// Signer is the narrow signing capability external consumers hold. Both
// key algorithms satisfy it through *PrivateKey.
type Signer interface {
	// Sign signs an arbitrary message and returns the signature with the
	// signer's public key.
	Sign(message []byte) SignaturePair
	// PublicKey returns the signer's public key.
	PublicKey() *PublicKey
}

// Sign signs a message. Ed25519 signs the raw message with EdDSA; ECDSA
// signs the Keccak-256 digest with a deterministic nonce and always emits
// the low-S form. Both algorithms produce 64-byte signatures.
func (k *PrivateKey) Sign(message []byte) SignaturePair {
	var sig []byte
	if k.algorithm == Ed25519 {
		sig = ed25519.Sign(k.ed, message)
	} else {
		sig = signEcdsa(k.ec, Keccak256(message))
	}
	return SignaturePair{PublicKey: k.public, Signature: sig}
}

// signEcdsa produces a 64-byte r||s signature over digest. S is negated
// when it falls in the upper half of the curve order, so rendered
// signatures are always the low-S form.
func signEcdsa(key *secp256k1.PrivateKey, digest []byte) []byte {
	sig := ecdsa.Sign(key, digest)
	r := sig.R()
	s := sig.S()
	if s.IsOverHalfOrder() {
		s.Negate()
	}

	out := make([]byte, 64)
	r.PutBytesUnchecked(out[:32])
	s.PutBytesUnchecked(out[32:])
	return out
}

// Verify reports whether signature is valid for message under this key.
// ECDSA messages are digested with Keccak-256 first; high-S encodings are
// accepted here even though Sign never produces them.
func (p *PublicKey) Verify(message, signature []byte) bool {
	if p.algorithm == Ed25519 {
		return ed25519.Verify(p.ed, message, signature)
	}

	if len(signature) != 64 {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:32]) {
		return false
	}
	if s.SetByteSlice(signature[32:]) {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(Keccak256(message), p.ec)
}
