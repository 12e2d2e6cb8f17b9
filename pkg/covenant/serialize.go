package covenant

import (
	"encoding/json"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// Serialize returns doc's canonical JSON wire form.
func Serialize(doc *Document) (string, error) {
	return crypto.CanonicalizeJSON(doc)
}

// Deserialize parses a covenant wire document, validating its shape before
// returning a typed Document. It fails with a DeserializeError naming the
// first missing or invalid field rather than a generic JSON error.
func Deserialize(data []byte) (*Document, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DeserializeError{Field: "<root>", Message: "not a JSON object: " + err.Error()}
	}

	for _, field := range []string{"version", "id", "issuer", "beneficiary", "constraints", "nonce", "createdAt", "signature"} {
		if _, ok := raw[field]; !ok {
			return nil, &DeserializeError{Field: field, Message: "missing required field"}
		}
	}

	version, _ := raw["version"].(string)
	if !acceptedProtocolVersion(version) {
		return nil, &DeserializeError{Field: "version", Message: "unsupported protocol version " + version}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DeserializeError{Field: "<root>", Message: "shape mismatch: " + err.Error()}
	}

	if doc.Issuer.Role == "" {
		return nil, &DeserializeError{Field: "issuer.role", Message: "missing required field"}
	}
	if doc.Issuer.PublicKey == "" {
		return nil, &DeserializeError{Field: "issuer.publicKey", Message: "missing required field"}
	}
	if doc.Beneficiary.Role == "" {
		return nil, &DeserializeError{Field: "beneficiary.role", Message: "missing required field"}
	}
	if doc.Beneficiary.PublicKey == "" {
		return nil, &DeserializeError{Field: "beneficiary.publicKey", Message: "missing required field"}
	}
	if doc.Chain != nil && !doc.Chain.Relation.valid() {
		return nil, &DeserializeError{Field: "chain.relation", Message: "unsupported relation " + string(doc.Chain.Relation)}
	}
	if doc.Enforcement != nil && !doc.Enforcement.Kind.valid() {
		return nil, &DeserializeError{Field: "enforcement.kind", Message: "unsupported kind " + string(doc.Enforcement.Kind)}
	}
	if doc.Proof != nil && !doc.Proof.Kind.valid() {
		return nil, &DeserializeError{Field: "proof.kind", Message: "unsupported kind " + string(doc.Proof.Kind)}
	}

	return &doc, nil
}
