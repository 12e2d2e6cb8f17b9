package breach

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/covenantproto/covenant/pkg/ccl"
	"github.com/covenantproto/covenant/pkg/crypto"
)

// CreateParams carries everything CreateBreachAttestation needs.
type CreateParams struct {
	CovenantID         string
	AffectedAgent      string
	ViolatedConstraint string
	Severity           ccl.Severity
	DeniedAction       string
	DeniedResource     string
	EvidenceHash       string
	RelatedCovenants   []string
	ReporterPublicKey  string
	ReporterSecretKey  ed25519.PrivateKey
}

// CreateBreachAttestation canonicalizes the attestation payload, signs it
// with the reporter key, and computes the content-hash ID over the
// finalized payload.
func CreateBreachAttestation(params CreateParams) (*Attestation, error) {
	switch params.Severity {
	case ccl.SeverityLow, ccl.SeverityMedium, ccl.SeverityHigh, ccl.SeverityCritical:
	default:
		return nil, &BuildError{Field: "severity", Message: "must be one of low, medium, high, critical"}
	}

	a := &Attestation{
		CovenantID:         params.CovenantID,
		AffectedAgent:      params.AffectedAgent,
		ViolatedConstraint: params.ViolatedConstraint,
		Severity:           params.Severity,
		DeniedAction:       params.DeniedAction,
		DeniedResource:     params.DeniedResource,
		EvidenceHash:       params.EvidenceHash,
		RelatedCovenants:   params.RelatedCovenants,
		ReporterPublicKey:  params.ReporterPublicKey,
		RecommendedAction:  recommendedActionFor(params.Severity),
		Timestamp:          crypto.NowISO8601(),
	}

	canonical, err := crypto.CanonicalizeJSONBytes(a)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(canonical, params.ReporterSecretKey)
	if err != nil {
		return nil, err
	}
	a.Signature = hex.EncodeToString(sig)

	signed, err := crypto.CanonicalizeJSONBytes(a)
	if err != nil {
		return nil, err
	}
	a.ID = crypto.SHA256Hex(signed)

	return a, nil
}

// VerifyBreachAttestation recomputes the content hash and signature;
// tampering any field fails verification.
func VerifyBreachAttestation(a *Attestation) bool {
	withoutID := *a
	withoutID.ID = ""
	canonical, err := crypto.CanonicalizeJSONBytes(&withoutID)
	if err != nil {
		return false
	}
	if crypto.SHA256Hex(canonical) != a.ID {
		return false
	}

	signed := withoutID
	signed.Signature = ""
	unsigned, err := crypto.CanonicalizeJSONBytes(&signed)
	if err != nil {
		return false
	}
	ok, err := crypto.VerifyHex(unsigned, a.Signature, a.ReporterPublicKey)
	if err != nil {
		return false
	}
	return ok
}
