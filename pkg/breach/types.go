// Package breach implements signed breach attestations and the trust graph
// that propagates status degradation across dependents (spec §4.7).
package breach

import "github.com/covenantproto/covenant/pkg/ccl"

// RecommendedAction is the remediation tag derived from severity.
type RecommendedAction string

const (
	ActionNote     RecommendedAction = "note"
	ActionDegrade  RecommendedAction = "degrade"
	ActionRestrict RecommendedAction = "restrict"
	ActionRevoke   RecommendedAction = "revoke"
)

func recommendedActionFor(s ccl.Severity) RecommendedAction {
	switch s {
	case ccl.SeverityCritical:
		return ActionRevoke
	case ccl.SeverityHigh:
		return ActionRestrict
	case ccl.SeverityMedium:
		return ActionDegrade
	default:
		return ActionNote
	}
}

// Attestation is a signed report that a covenant's constraints were
// violated.
type Attestation struct {
	ID                  string            `json:"id"`
	CovenantID          string            `json:"covenantId"`
	AffectedAgent       string            `json:"affectedAgent"`
	ViolatedConstraint  string            `json:"violatedConstraint"`
	Severity            ccl.Severity      `json:"severity"`
	DeniedAction        string            `json:"deniedAction"`
	DeniedResource      string            `json:"deniedResource"`
	EvidenceHash        string            `json:"evidenceHash"`
	RelatedCovenants    []string          `json:"relatedCovenants"`
	ReporterPublicKey   string            `json:"reporterPublicKey"`
	RecommendedAction   RecommendedAction `json:"recommendedAction"`
	Timestamp           string            `json:"timestamp"`
	Signature           string            `json:"signature"`
}

// TrustStatus is the closed, monotonically degrading set of trust states.
type TrustStatus string

const (
	StatusTrusted    TrustStatus = "trusted"
	StatusDegraded   TrustStatus = "degraded"
	StatusRestricted TrustStatus = "restricted"
	StatusRevoked    TrustStatus = "revoked"
)

var statusRank = map[TrustStatus]int{
	StatusTrusted:    0,
	StatusDegraded:   1,
	StatusRestricted: 2,
	StatusRevoked:    3,
}

func worseOf(a, b TrustStatus) TrustStatus {
	if statusRank[b] > statusRank[a] {
		return b
	}
	return a
}

// degradeOneLevel returns the status one level below s (one step closer to
// trusted), clamped at trusted. A dependent inherits this as its candidate
// status: one level weaker than its provider's new status.
func degradeOneLevel(s TrustStatus) TrustStatus {
	next := statusRank[s] - 1
	if next < statusRank[StatusTrusted] {
		next = statusRank[StatusTrusted]
	}
	for status, rank := range statusRank {
		if rank == next {
			return status
		}
	}
	return StatusTrusted
}

// BreachEvent records one node's status change during processBreach.
type BreachEvent struct {
	AffectedAgent    string      `json:"affectedAgent"`
	PreviousStatus   TrustStatus `json:"previousStatus"`
	NewStatus        TrustStatus `json:"newStatus"`
	PropagationDepth int         `json:"propagationDepth"`
	AttestationID    string      `json:"attestationId"`
}
