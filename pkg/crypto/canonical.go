package crypto

import "github.com/covenantproto/covenant/pkg/canonicalize"

// CanonicalizeJSON produces the deterministic text form of v used for hashing
// and signing: object keys sorted lexicographically at every level, arrays
// in source order, minimal numeric representation, UTF-8 without a BOM.
func CanonicalizeJSON(v interface{}) (string, error) {
	return canonicalize.JCSString(v)
}

// CanonicalizeJSONBytes is CanonicalizeJSON without the string conversion,
// for callers about to hash or sign the bytes directly.
func CanonicalizeJSONBytes(v interface{}) ([]byte, error) {
	return canonicalize.JCS(v)
}
