// Package stake implements the one-way active→released|burned lifecycle
// of a numeric commitment bound to an agent-covenant pair (spec §4.5).
package stake

// Status is the closed set of stake lifecycle states.
type Status string

const (
	StatusActive   Status = "active"
	StatusReleased Status = "released"
	StatusBurned   Status = "burned"
)

// Stake is a numeric commitment, amount bounded to [0, 1], bound to one
// agent-covenant pair.
type Stake struct {
	ID         string  `json:"id"`
	CovenantID string  `json:"covenantId"`
	AgentHash  string  `json:"agentHash"`
	Amount     float64 `json:"amount"`
	Status     Status  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	ResolvedAt *string `json:"resolvedAt"`
}
