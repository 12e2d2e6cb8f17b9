package receipt

import (
	"github.com/covenantproto/covenant/pkg/crypto"
)

// Check is one named pass/fail verification step.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// VerifyResult is the outcome of VerifyReceipt.
type VerifyResult struct {
	Valid  bool    `json:"valid"`
	Checks []Check `json:"checks"`
}

func (r *VerifyResult) add(name string, passed bool, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: passed, Detail: detail})
	if !passed {
		r.Valid = false
	}
}

// VerifyReceipt checks that the recomputed content hash matches ReceiptHash
// and that AgentSignature verifies against principalPublicKey.
func VerifyReceipt(r *Receipt, principalPublicKeyHex string) VerifyResult {
	result := VerifyResult{Valid: true}

	hash, err := contentHash(r)
	if err != nil {
		result.add("hash_computable", false, err.Error())
		return result
	}
	result.add("hash_matches", hash == r.ReceiptHash, "recomputed content hash must equal receiptHash")

	unsigned := *r
	unsigned.AgentSignature = ""
	canonical, err := crypto.CanonicalizeJSONBytes(&unsigned)
	if err != nil {
		result.add("canonicalizable", false, err.Error())
		return result
	}
	sigValid, err := crypto.VerifyHex(canonical, r.AgentSignature, principalPublicKeyHex)
	if err != nil {
		result.add("signature_valid", false, err.Error())
	} else {
		result.add("signature_valid", sigValid, "agentSignature must verify against the agent's public key")
	}

	return result
}

// VerifyReceiptChain checks linear linkage across a sequence of receipts for
// one agent: the first entry has a nil PreviousReceiptHash, and every
// subsequent entry's PreviousReceiptHash equals the prior entry's
// ReceiptHash. Reordering any two entries falsifies this check.
func VerifyReceiptChain(chain []*Receipt) error {
	if len(chain) == 0 {
		return nil
	}
	if chain[0].PreviousReceiptHash != nil {
		return &ChainError{Index: 0, Message: "first receipt must have a nil previousReceiptHash"}
	}
	for i := 1; i < len(chain); i++ {
		prev := chain[i-1]
		cur := chain[i]
		if cur.PreviousReceiptHash == nil {
			return &ChainError{Index: i, Message: "missing previousReceiptHash"}
		}
		if *cur.PreviousReceiptHash != prev.ReceiptHash {
			return &ChainError{Index: i, Message: "previousReceiptHash does not match the prior entry's receiptHash"}
		}
	}
	return nil
}
