package crypto

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/youmark/pkcs8"
)

// PEM block labels accepted by PrivateKeyFromPem.
const (
	pemTypePrivateKey          = "PRIVATE KEY"
	pemTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	pemTypeECPrivateKey        = "EC PRIVATE KEY"
)

// PrivateKeyFromPem parses a PEM private key. The block label selects the
// format: "PRIVATE KEY" is PKCS#8 DER, "ENCRYPTED PRIVATE KEY" is
// PBES2-encrypted PKCS#8 (Ed25519 payloads only), and "EC PRIVATE KEY" is
// the legacy SEC1 form, decrypted first when Proc-Type/DEK-Info headers
// are present. Any other label fails with UnknownAlgorithmError.
func PrivateKeyFromPem(b []byte, passphrase string) (*PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, fmt.Errorf("no pem block found")
	}

	switch block.Type {
	case pemTypePrivateKey:
		return PrivateKeyFromBytesDER(block.Bytes)

	case pemTypeEncryptedPrivateKey:
		if passphrase == "" {
			return nil, fmt.Errorf("private key is encrypted, passphrase required")
		}
		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("decrypt private key: %w", err)
		}
		ed, ok := key.(ed25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("unsupported encrypted key type %T", key)
		}
		return newEd25519(ed, nil), nil

	case pemTypeECPrivateKey:
		der := block.Bytes
		// x509's PEM encryption helpers are deprecated upstream but are
		// the only implementation of the DEK-Info header scheme this
		// legacy envelope uses.
		if x509.IsEncryptedPEMBlock(block) {
			if passphrase == "" {
				return nil, fmt.Errorf("ec private key is encrypted, passphrase required")
			}
			dec, err := x509.DecryptPEMBlock(block, []byte(passphrase))
			if err != nil {
				return nil, fmt.Errorf("decrypt ec private key: %w", err)
			}
			der = dec
		}
		return parseSEC1(der)
	}

	return nil, &UnknownAlgorithmError{PEMLabel: block.Type}
}

// Pem renders the key as PKCS#8 PEM. A non-empty passphrase wraps the key
// in a PBES2 "ENCRYPTED PRIVATE KEY" block; only Ed25519 keys support
// that, matching what PrivateKeyFromPem can read back.
func (k *PrivateKey) Pem(passphrase string) ([]byte, error) {
	if passphrase == "" {
		return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: k.BytesDER()}), nil
	}
	if k.algorithm != Ed25519 {
		return nil, fmt.Errorf("pem encryption is only supported for ed25519 keys")
	}
	der, err := pkcs8.MarshalPrivateKey(k.ed, []byte(passphrase), nil)
	if err != nil {
		return nil, fmt.Errorf("encrypt private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypeEncryptedPrivateKey, Bytes: der}), nil
}
