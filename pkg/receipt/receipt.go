package receipt

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// CreateParams carries everything CreateReceipt needs to mint one receipt.
type CreateParams struct {
	CovenantID          string
	AgentIdentityHash   string
	PrincipalPublicKey  string
	Outcome             Outcome
	BreachSeverity      Severity
	ProofHash           string
	DurationMs          int64
	PreviousReceiptHash *string
	AgentSecretKey      ed25519.PrivateKey
}

// CreateReceipt binds params into a canonical payload, computes its content
// hash as ReceiptHash, signs it with the agent key, and returns the
// finished Receipt. A breached outcome requires a non-empty BreachSeverity.
func CreateReceipt(params CreateParams) (*Receipt, error) {
	if !params.Outcome.valid() {
		return nil, &BuildError{Field: "outcome", Message: "unknown outcome " + string(params.Outcome)}
	}
	if params.Outcome == OutcomeBreached && params.BreachSeverity == "" {
		return nil, &BuildError{Field: "breachSeverity", Message: "required when outcome is breached"}
	}
	if len(params.AgentSecretKey) != ed25519.PrivateKeySize {
		return nil, &BuildError{Field: "agentSecretKey", Message: "must be 64 bytes"}
	}

	id, err := crypto.GenerateID()
	if err != nil {
		return nil, err
	}

	r := &Receipt{
		ID:                  id,
		CovenantID:          params.CovenantID,
		AgentIdentityHash:   params.AgentIdentityHash,
		PrincipalPublicKey:  params.PrincipalPublicKey,
		Outcome:             params.Outcome,
		BreachSeverity:      params.BreachSeverity,
		ProofHash:           params.ProofHash,
		DurationMs:          params.DurationMs,
		CompletedAt:         crypto.NowISO8601(),
		PreviousReceiptHash: params.PreviousReceiptHash,
	}

	hash, err := contentHash(r)
	if err != nil {
		return nil, err
	}
	r.ReceiptHash = hash

	canonical, err := crypto.CanonicalizeJSONBytes(r)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(canonical, params.AgentSecretKey)
	if err != nil {
		return nil, err
	}
	r.AgentSignature = hex.EncodeToString(sig)

	return r, nil
}

// contentHash computes the receipt hash over every field except
// ReceiptHash and AgentSignature themselves.
func contentHash(r *Receipt) (string, error) {
	payload := struct {
		ID                  string   `json:"id"`
		CovenantID          string   `json:"covenantId"`
		AgentIdentityHash   string   `json:"agentIdentityHash"`
		PrincipalPublicKey  string   `json:"principalPublicKey"`
		Outcome             Outcome  `json:"outcome"`
		BreachSeverity      Severity `json:"breachSeverity,omitempty"`
		ProofHash           string   `json:"proofHash"`
		DurationMs          int64    `json:"durationMs"`
		CompletedAt         string   `json:"completedAt"`
		PreviousReceiptHash *string  `json:"previousReceiptHash"`
	}{r.ID, r.CovenantID, r.AgentIdentityHash, r.PrincipalPublicKey, r.Outcome, r.BreachSeverity, r.ProofHash, r.DurationMs, r.CompletedAt, r.PreviousReceiptHash}

	canonical, err := crypto.CanonicalizeJSONBytes(payload)
	if err != nil {
		return "", err
	}
	return crypto.SHA256Hex(canonical), nil
}
