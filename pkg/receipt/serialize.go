package receipt

import (
	"encoding/json"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// Serialize returns the receipt's canonical JSON wire form.
func Serialize(r *Receipt) (string, error) {
	return crypto.CanonicalizeJSON(r)
}

// Deserialize parses a receipt wire document.
func Deserialize(data []byte) (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &BuildError{Field: "<root>", Message: "shape mismatch: " + err.Error()}
	}
	if r.ID == "" {
		return nil, &BuildError{Field: "id", Message: "missing required field"}
	}
	if r.ReceiptHash == "" {
		return nil, &BuildError{Field: "receiptHash", Message: "missing required field"}
	}
	if r.AgentSignature == "" {
		return nil, &BuildError{Field: "agentSignature", Message: "missing required field"}
	}
	return &r, nil
}
