package crypto

import (
	"crypto/ed25519"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Algorithm identifiers recognized inside DER envelopes.
var (
	oidEd25519     = asn1.ObjectIdentifier{1, 3, 101, 112}
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
)

// pkcs8Info is the PKCS#8 PrivateKeyInfo envelope. For both algorithms the
// PrivateKey payload is an inner OCTET STRING holding the bare 32-byte
// key, except in the OpenSSL EC form where it is a SEC1 ECPrivateKey.
type pkcs8Info struct {
	Version    int
	Algorithm  pkix.AlgorithmIdentifier
	PrivateKey []byte
}

// sec1ECPrivateKey is the SEC1 ECPrivateKey structure used by the legacy
// "EC PRIVATE KEY" envelope and as the OpenSSL PKCS#8 payload.
type sec1ECPrivateKey struct {
	Version       int
	PrivateKey    []byte
	NamedCurveOID asn1.ObjectIdentifier `asn1:"optional,explicit,tag:0"`
	PublicKey     asn1.BitString        `asn1:"optional,explicit,tag:1"`
}

// spkiInfo is the X.509 SubjectPublicKeyInfo envelope.
type spkiInfo struct {
	Algorithm pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

// mustMarshalASN1 marshals a fixed-shape value; the shapes used in this
// file cannot fail to encode.
func mustMarshalASN1(v any) []byte {
	b, err := asn1.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("asn1 marshal: %v", err))
	}
	return b
}

func marshalPrivateKeyDER(alg asn1.ObjectIdentifier, raw []byte) []byte {
	return mustMarshalASN1(pkcs8Info{
		Algorithm:  pkix.AlgorithmIdentifier{Algorithm: alg},
		PrivateKey: mustMarshalASN1(raw),
	})
}

func marshalPublicKeyDER(alg Algorithm, raw []byte) []byte {
	info := spkiInfo{
		PublicKey: asn1.BitString{Bytes: raw, BitLength: 8 * len(raw)},
	}
	if alg == Ed25519 {
		info.Algorithm = pkix.AlgorithmIdentifier{Algorithm: oidEd25519}
	} else {
		info.Algorithm = pkix.AlgorithmIdentifier{
			Algorithm:  oidECPublicKey,
			Parameters: asn1.RawValue{FullBytes: mustMarshalASN1(oidSecp256k1)},
		}
	}
	return mustMarshalASN1(info)
}

// PrivateKeyFromBytesDER parses a DER PKCS#8 private key, dispatching on
// the algorithm OID: 1.3.101.112 is Ed25519, 1.3.132.0.10 is the SDK's
// compact secp256k1 form, and 1.2.840.10045.2.1 (id-ecPublicKey) is the
// OpenSSL secp256k1 form. Any other OID fails with UnknownAlgorithmError.
func PrivateKeyFromBytesDER(der []byte) (*PrivateKey, error) {
	var info pkcs8Info
	rest, err := asn1.Unmarshal(der, &info)
	if err != nil {
		return nil, fmt.Errorf("parse private key der: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("parse private key der: %d trailing bytes", len(rest))
	}

	switch {
	case info.Algorithm.Algorithm.Equal(oidEd25519):
		var seed []byte
		if _, err := asn1.Unmarshal(info.PrivateKey, &seed); err != nil {
			return nil, fmt.Errorf("parse ed25519 private key: %w", err)
		}
		switch len(seed) {
		case 32, 64:
			return newEd25519(ed25519.NewKeyFromSeed(seed[:32]), nil), nil
		}
		return nil, fmt.Errorf("ed25519 seed must be 32 bytes, got %d", len(seed))

	case info.Algorithm.Algorithm.Equal(oidSecp256k1):
		// Compact form carries the bare scalar as an inner OCTET STRING;
		// fall back to a SEC1 payload for foreign encoders.
		var scalar []byte
		if _, err := asn1.Unmarshal(info.PrivateKey, &scalar); err == nil {
			if len(scalar) != 32 {
				return nil, fmt.Errorf("ecdsa private key must be 32 bytes, got %d", len(scalar))
			}
			return newEcdsa(secp256k1.PrivKeyFromBytes(scalar), nil), nil
		}
		return parseSEC1(info.PrivateKey)

	case info.Algorithm.Algorithm.Equal(oidECPublicKey):
		if ps := info.Algorithm.Parameters.FullBytes; len(ps) > 0 {
			var curve asn1.ObjectIdentifier
			if _, err := asn1.Unmarshal(ps, &curve); err != nil {
				return nil, fmt.Errorf("parse ec curve parameter: %w", err)
			}
			if !curve.Equal(oidSecp256k1) {
				return nil, &UnknownAlgorithmError{OID: curve}
			}
		}
		return parseSEC1(info.PrivateKey)
	}

	return nil, &UnknownAlgorithmError{OID: info.Algorithm.Algorithm}
}

// parseSEC1 parses a SEC1 ECPrivateKey. The embedded curve OID, when
// present, must name secp256k1.
func parseSEC1(der []byte) (*PrivateKey, error) {
	var ec sec1ECPrivateKey
	rest, err := asn1.Unmarshal(der, &ec)
	if err != nil {
		return nil, fmt.Errorf("parse ec private key: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("parse ec private key: %d trailing bytes", len(rest))
	}
	if len(ec.NamedCurveOID) > 0 && !ec.NamedCurveOID.Equal(oidSecp256k1) {
		return nil, &UnknownAlgorithmError{OID: ec.NamedCurveOID}
	}
	if len(ec.PrivateKey) != 32 {
		return nil, fmt.Errorf("ecdsa private key must be 32 bytes, got %d", len(ec.PrivateKey))
	}
	return newEcdsa(secp256k1.PrivKeyFromBytes(ec.PrivateKey), nil), nil
}

// PublicKeyFromBytesDER parses a DER SubjectPublicKeyInfo public key,
// dispatching on the algorithm OID the same way as the private key parser.
func PublicKeyFromBytesDER(der []byte) (*PublicKey, error) {
	var info spkiInfo
	rest, err := asn1.Unmarshal(der, &info)
	if err != nil {
		return nil, fmt.Errorf("parse public key der: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("parse public key der: %d trailing bytes", len(rest))
	}

	switch {
	case info.Algorithm.Algorithm.Equal(oidEd25519):
		if len(info.PublicKey.Bytes) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("ed25519 public key must be %d bytes, got %d",
				ed25519.PublicKeySize, len(info.PublicKey.Bytes))
		}
		pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
		copy(pub, info.PublicKey.Bytes)
		return &PublicKey{algorithm: Ed25519, ed: pub}, nil

	case info.Algorithm.Algorithm.Equal(oidSecp256k1):
		return parseSPKIPoint(info.PublicKey.Bytes)

	case info.Algorithm.Algorithm.Equal(oidECPublicKey):
		if ps := info.Algorithm.Parameters.FullBytes; len(ps) > 0 {
			var curve asn1.ObjectIdentifier
			if _, err := asn1.Unmarshal(ps, &curve); err != nil {
				return nil, fmt.Errorf("parse ec curve parameter: %w", err)
			}
			if !curve.Equal(oidSecp256k1) {
				return nil, &UnknownAlgorithmError{OID: curve}
			}
		}
		return parseSPKIPoint(info.PublicKey.Bytes)
	}

	return nil, &UnknownAlgorithmError{OID: info.Algorithm.Algorithm}
}

func parseSPKIPoint(b []byte) (*PublicKey, error) {
	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("parse ecdsa public key: %w", err)
	}
	return &PublicKey{algorithm: EcdsaSecp256k1, ec: key}, nil
}
