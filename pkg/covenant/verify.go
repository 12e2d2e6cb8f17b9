package covenant

import (
	"crypto/ed25519"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/covenantproto/covenant/pkg/ccl"
	"github.com/covenantproto/covenant/pkg/crypto"
)

// AcceptedProtocolVersionConstraint is the semver range of protocol
// versions Verify and Deserialize will treat as valid. It accepts any
// 1.x release: a covenant built by an older 1.x issuer still verifies
// against a newer 1.x monitor, but a future 2.x breaking revision does
// not silently parse under 1.x semantics. Tests and embedders may
// override it.
var AcceptedProtocolVersionConstraint = mustConstraint(">=1.0.0, <2.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic("covenant: invalid protocol version constraint: " + err.Error())
	}
	return c
}

// acceptedProtocolVersion reports whether version satisfies
// AcceptedProtocolVersionConstraint. Versions are coerced to full semver
// (e.g. "1.0" -> "1.0.0") before comparison.
func acceptedProtocolVersion(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return AcceptedProtocolVersionConstraint.Check(v)
}

// Verify runs the fixed battery of independent checks against doc and
// reports a full VerifyResult. Checks run in the fixed order documented in
// spec §4.3 so callers can assert on check names.
func Verify(doc *Document) VerifyResult {
	checks := []Check{
		checkIDMatch(doc),
		checkSignatureValid(doc),
		checkVersionAccepted(doc),
		checkCCLParses(doc),
		checkNotExpired(doc),
		checkActive(doc),
		checkEnforcementValid(doc),
		checkProofValid(doc),
		checkChainDepth(doc),
		checkDocumentSize(doc),
		checkCountersignatures(doc),
		checkNoncePresent(doc),
	}

	valid := true
	for _, c := range checks {
		if !c.Passed {
			valid = false
			break
		}
	}
	return VerifyResult{Valid: valid, Checks: checks}
}

func checkIDMatch(doc *Document) Check {
	form := canonicalForm(doc)
	canonical, err := crypto.CanonicalizeJSONBytes(&form)
	if err != nil {
		return Check{Name: "id_match", Passed: false, Message: "failed to canonicalize document: " + err.Error()}
	}
	recomputed := crypto.SHA256Hex(canonical)
	if recomputed != doc.ID {
		return Check{Name: "id_match", Passed: false, Message: "recomputed id does not match doc.id"}
	}
	return Check{Name: "id_match", Passed: true, Message: "id matches canonical content hash"}
}

func checkSignatureValid(doc *Document) Check {
	pub, err := crypto.DecodeHex(doc.Issuer.PublicKey, ed25519.PublicKeySize)
	if err != nil {
		return Check{Name: "signature_valid", Passed: false, Message: "invalid issuer public key: " + err.Error()}
	}
	sig, err := crypto.DecodeHex(doc.Signature, ed25519.SignatureSize)
	if err != nil {
		return Check{Name: "signature_valid", Passed: false, Message: "invalid signature hex: " + err.Error()}
	}
	form := canonicalForm(doc)
	canonical, err := crypto.CanonicalizeJSONBytes(&form)
	if err != nil {
		return Check{Name: "signature_valid", Passed: false, Message: "failed to canonicalize document: " + err.Error()}
	}
	if !crypto.Verify(canonical, sig, ed25519.PublicKey(pub)) {
		return Check{Name: "signature_valid", Passed: false, Message: "ed25519 signature does not verify"}
	}
	return Check{Name: "signature_valid", Passed: true, Message: "signature verifies under issuer public key"}
}

func checkVersionAccepted(doc *Document) Check {
	if !acceptedProtocolVersion(doc.Version) {
		return Check{Name: "version_accepted", Passed: false, Message: "unsupported protocol version " + doc.Version}
	}
	return Check{Name: "version_accepted", Passed: true, Message: "protocol version within accepted range"}
}

func checkCCLParses(doc *Document) Check {
	if _, err := ccl.Parse(doc.Constraints); err != nil {
		return Check{Name: "ccl_parses", Passed: false, Message: "constraints do not parse: " + err.Error()}
	}
	return Check{Name: "ccl_parses", Passed: true, Message: "constraints parse cleanly"}
}

func checkNotExpired(doc *Document) Check {
	if doc.ExpiresAt == "" {
		return Check{Name: "not_expired", Passed: true, Message: "no expiry declared"}
	}
	expires, err := crypto.ParseISO8601(doc.ExpiresAt)
	if err != nil {
		return Check{Name: "not_expired", Passed: false, Message: "invalid expiresAt: " + err.Error()}
	}
	now, err := crypto.ParseISO8601(crypto.NowISO8601())
	if err != nil {
		return Check{Name: "not_expired", Passed: false, Message: "failed to resolve current time"}
	}
	if now.After(expires) {
		return Check{Name: "not_expired", Passed: false, Message: "covenant has expired"}
	}
	return Check{Name: "not_expired", Passed: true, Message: "covenant has not expired"}
}

func checkActive(doc *Document) Check {
	if doc.ActivatesAt == "" {
		return Check{Name: "active", Passed: true, Message: "no activation time declared"}
	}
	activates, err := crypto.ParseISO8601(doc.ActivatesAt)
	if err != nil {
		return Check{Name: "active", Passed: false, Message: "invalid activatesAt: " + err.Error()}
	}
	now, err := crypto.ParseISO8601(crypto.NowISO8601())
	if err != nil {
		return Check{Name: "active", Passed: false, Message: "failed to resolve current time"}
	}
	if now.Before(activates) {
		return Check{Name: "active", Passed: false, Message: "covenant is not yet active"}
	}
	return Check{Name: "active", Passed: true, Message: "covenant is active"}
}

func checkEnforcementValid(doc *Document) Check {
	if doc.Enforcement == nil {
		return Check{Name: "enforcement_valid", Passed: true, Message: "no enforcement declared"}
	}
	if !doc.Enforcement.Kind.valid() {
		return Check{Name: "enforcement_valid", Passed: false, Message: "unknown enforcement kind " + string(doc.Enforcement.Kind)}
	}
	return Check{Name: "enforcement_valid", Passed: true, Message: "enforcement kind recognized"}
}

func checkProofValid(doc *Document) Check {
	if doc.Proof == nil {
		return Check{Name: "proof_valid", Passed: true, Message: "no proof declared"}
	}
	if !doc.Proof.Kind.valid() {
		return Check{Name: "proof_valid", Passed: false, Message: "unknown proof kind " + string(doc.Proof.Kind)}
	}
	return Check{Name: "proof_valid", Passed: true, Message: "proof kind recognized"}
}

func checkChainDepth(doc *Document) Check {
	if doc.Chain == nil {
		return Check{Name: "chain_depth", Passed: true, Message: "no chain declared"}
	}
	if doc.Chain.Depth < 1 || doc.Chain.Depth > MaxChainDepth {
		return Check{Name: "chain_depth", Passed: false, Message: "chain depth out of range [1, 16]"}
	}
	return Check{Name: "chain_depth", Passed: true, Message: "chain depth within bounds"}
}

func checkDocumentSize(doc *Document) Check {
	canonical, err := crypto.CanonicalizeJSONBytes(doc)
	if err != nil {
		return Check{Name: "document_size", Passed: false, Message: "failed to canonicalize document: " + err.Error()}
	}
	if len(canonical) > MaxDocumentSize {
		return Check{Name: "document_size", Passed: false, Message: "canonical document exceeds MAX_DOCUMENT_SIZE"}
	}
	return Check{Name: "document_size", Passed: true, Message: "canonical document within size bound"}
}

func checkCountersignatures(doc *Document) Check {
	for i, cs := range doc.Countersignatures {
		payload := struct {
			CovenantID      string `json:"covenantId"`
			SignerPublicKey string `json:"signerPublicKey"`
			SignerRole      string `json:"signerRole"`
			Timestamp       string `json:"timestamp"`
		}{doc.ID, cs.SignerPublicKey, cs.SignerRole, cs.Timestamp}

		canonical, err := crypto.CanonicalizeJSONBytes(payload)
		if err != nil {
			return Check{Name: "countersignatures", Passed: false, Message: "failed to canonicalize countersignature payload"}
		}
		valid, err := crypto.VerifyHex(canonical, cs.Signature, cs.SignerPublicKey)
		if err != nil || !valid {
			return Check{Name: "countersignatures", Passed: false, Message: "countersignature " + strconv.Itoa(i) + " does not verify"}
		}
	}
	return Check{Name: "countersignatures", Passed: true, Message: "all countersignatures verify"}
}

func checkNoncePresent(doc *Document) Check {
	if !crypto.IsValidHex(doc.Nonce, 16) {
		return Check{Name: "nonce_present", Passed: false, Message: "nonce is not a 32-character hex string"}
	}
	return Check{Name: "nonce_present", Passed: true, Message: "nonce present and well-formed"}
}

