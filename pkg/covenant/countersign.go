package covenant

import (
	"crypto/ed25519"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// Countersign appends a countersignature by signerKey acting as role to
// doc, without altering doc's own ID or main signature. It returns a new
// Document value; doc is not mutated in place.
func Countersign(doc *Document, signerKey ed25519.PrivateKey, role string) (*Document, error) {
	if len(signerKey) != ed25519.PrivateKeySize {
		return nil, &BuildError{Reason: ReasonKeyLength, Field: "signerKey", Message: "signer secret key must be 64 bytes"}
	}

	signerPub := signerKey.Public().(ed25519.PublicKey)
	cs := Countersignature{
		SignerPublicKey: hexEncode(signerPub),
		SignerRole:      role,
		Timestamp:       crypto.NowISO8601(),
	}

	payload := struct {
		CovenantID      string `json:"covenantId"`
		SignerPublicKey string `json:"signerPublicKey"`
		SignerRole      string `json:"signerRole"`
		Timestamp       string `json:"timestamp"`
	}{doc.ID, cs.SignerPublicKey, cs.SignerRole, cs.Timestamp}

	canonical, err := crypto.CanonicalizeJSONBytes(payload)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(canonical, signerKey)
	if err != nil {
		return nil, err
	}
	cs.Signature = hexEncode(sig)

	out := *doc
	out.Countersignatures = append(append([]Countersignature{}, doc.Countersignatures...), cs)
	return &out, nil
}
