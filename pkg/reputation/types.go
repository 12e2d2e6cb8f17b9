// Package reputation aggregates an agent's receipts and endorsements into a
// single confidence-scaled score (spec §4.5).
package reputation

// MinimumExecutions is the confidence threshold below which a score is
// down-weighted proportionally.
const MinimumExecutions = 10

// Score is the result of ComputeReputationScore.
type Score struct {
	AgentHash          string  `json:"agentHash"`
	TotalExecutions    int     `json:"totalExecutions"`
	Fulfilled          int     `json:"fulfilled"`
	Partial            int     `json:"partial"`
	Failed             int     `json:"failed"`
	Breached           int     `json:"breached"`
	SuccessRate        float64 `json:"successRate"`
	WeightedScore      float64 `json:"weightedScore"`
	ReceiptsMerkleRoot string  `json:"receiptsMerkleRoot"`
	LastUpdatedAt      string  `json:"lastUpdatedAt"`
}

// Endorsement is a signed vouch by one identity for another.
type Endorsement struct {
	ID           string   `json:"id"`
	EndorserHash string   `json:"endorserHash"`
	EndorsedHash string   `json:"endorsedHash"`
	Scopes       []string `json:"scopes"`
	Weight       float64  `json:"weight"`
	Basis        Basis    `json:"basis"`
	Timestamp    string   `json:"timestamp"`
	Signature    string   `json:"signature"`
}

// Basis summarizes the prior interactions an endorsement is based on.
type Basis struct {
	PriorInteractions int    `json:"priorInteractions"`
	Context           string `json:"context,omitempty"`
}
