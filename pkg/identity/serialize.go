package identity

import (
	"encoding/json"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// Serialize returns identity's canonical JSON wire form.
func Serialize(identity *Identity) (string, error) {
	return crypto.CanonicalizeJSON(identity)
}

// Deserialize parses an identity wire document.
func Deserialize(data []byte) (*Identity, error) {
	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, &BuildError{Field: "<root>", Message: "shape mismatch: " + err.Error()}
	}
	if identity.ID == "" {
		return nil, &BuildError{Field: "id", Message: "missing required field"}
	}
	if identity.OperatorPublicKey == "" {
		return nil, &BuildError{Field: "operatorPublicKey", Message: "missing required field"}
	}
	return &identity, nil
}
