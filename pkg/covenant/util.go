package covenant

import "encoding/hex"

func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

// canonicalForm returns a shallow copy of doc with id, signature, and
// countersignatures cleared — the preimage signed by the issuer and hashed
// into the content-addressed id per invariants I1/I2. Countersignatures are
// appended after both are computed, so they must never affect either.
func canonicalForm(doc *Document) Document {
	cp := *doc
	cp.ID = ""
	cp.Signature = ""
	cp.Countersignatures = nil
	return cp
}
