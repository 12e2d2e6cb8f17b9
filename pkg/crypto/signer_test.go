package crypto

import (
	"testing"
)

func TestKeyPair_HexRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	payload, err := CanonicalizeJSON(map[string]string{"action": "read", "resource": "/data/x"})
	if err != nil {
		t.Fatalf("CanonicalizeJSON failed: %v", err)
	}

	sigHex, err := SignHex([]byte(payload), kp.PrivateKeyHex())
	if err != nil {
		t.Fatalf("SignHex failed: %v", err)
	}

	valid, err := VerifyHex([]byte(payload), sigHex, kp.PublicKeyHex())
	if err != nil {
		t.Fatalf("VerifyHex failed: %v", err)
	}
	if !valid {
		t.Error("valid signature rejected")
	}

	tampered, err := CanonicalizeJSON(map[string]string{"action": "write", "resource": "/data/x"})
	if err != nil {
		t.Fatalf("CanonicalizeJSON failed: %v", err)
	}
	valid, _ = VerifyHex([]byte(tampered), sigHex, kp.PublicKeyHex())
	if valid {
		t.Error("tampered payload should not verify")
	}
}
