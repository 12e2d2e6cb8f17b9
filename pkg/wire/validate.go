package wire

import "encoding/json"

// ValidateBytes unmarshals raw JSON into a generic document and validates
// it against kind's schema, without requiring the caller to import the
// owning package's concrete type.
func ValidateBytes(kind DocumentKind, raw []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return Validate(kind, doc)
}
