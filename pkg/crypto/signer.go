package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// KeyPair is an Ed25519 secret/public key pair with hex accessors.
type KeyPair struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

// GenerateKeyPair generates a fresh Ed25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, &CryptoError{Reason: "key generation failed: " + err.Error()}
	}
	return &KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}

// PrivateKeyHex returns the private key seed as lowercase hex.
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.PrivateKey.Seed())
}

// PublicKeyHex returns the public key as lowercase hex.
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// Sign signs message with secret and returns the 64-byte signature.
func Sign(message []byte, secret ed25519.PrivateKey) ([]byte, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return nil, &CryptoError{Reason: "invalid private key length", Field: "secret"}
	}
	return ed25519.Sign(secret, message), nil
}

// SignHex signs message with the hex-encoded private key seed and returns
// the signature as lowercase hex.
func SignHex(message []byte, secretHex string) (string, error) {
	seed, err := DecodeHex(secretHex, ed25519.SeedSize)
	if err != nil {
		return "", &CryptoError{Reason: "invalid private key hex: " + err.Error(), Field: "secret"}
	}
	priv := ed25519.NewKeyFromSeed(seed)
	sig, err := Sign(message, priv)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}

// Verify reports whether signature is a valid Ed25519 signature of message
// under public.
func Verify(message, signature []byte, public ed25519.PublicKey) bool {
	if len(public) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(public, message, signature)
}

// VerifyHex verifies a hex-encoded signature against a hex-encoded public
// key. Malformed hex or wrong-length keys/signatures are rejected rather
// than causing a panic.
func VerifyHex(message []byte, sigHex, pubHex string) (bool, error) {
	pub, err := DecodeHex(pubHex, ed25519.PublicKeySize)
	if err != nil {
		return false, &CryptoError{Reason: "invalid public key hex: " + err.Error(), Field: "publicKey"}
	}
	sig, err := DecodeHex(sigHex, ed25519.SignatureSize)
	if err != nil {
		return false, &CryptoError{Reason: "invalid signature hex: " + err.Error(), Field: "signature"}
	}
	return Verify(message, sig, ed25519.PublicKey(pub)), nil
}

// DecodeHex decodes s as lowercase hex and requires it to be exactly
// wantBytes long. Malformed, mixed-case, or wrong-length hex is rejected.
func DecodeHex(s string, wantBytes int) ([]byte, error) {
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			continue
		}
		return nil, fmt.Errorf("not lowercase hex")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if wantBytes > 0 && len(b) != wantBytes {
		return nil, fmt.Errorf("expected %d bytes, got %d", wantBytes, len(b))
	}
	return b, nil
}

// IsValidHex reports whether s is lowercase hex of exactly wantBytes bytes.
func IsValidHex(s string, wantBytes int) bool {
	_, err := DecodeHex(s, wantBytes)
	return err == nil
}
