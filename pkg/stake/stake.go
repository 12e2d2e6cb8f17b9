package stake

import (
	"github.com/covenantproto/covenant/pkg/crypto"
)

// CreateParams carries everything CreateStake needs.
type CreateParams struct {
	CovenantID string
	AgentHash  string
	Amount     float64
}

// CreateStake produces a new active stake bound to one agent-covenant pair.
func CreateStake(params CreateParams) (*Stake, error) {
	if params.Amount < 0 || params.Amount > 1 {
		return nil, &BuildError{Field: "amount", Message: "must be in [0, 1]"}
	}
	if params.CovenantID == "" || params.AgentHash == "" {
		return nil, &BuildError{Field: "covenantId/agentHash", Message: "required"}
	}

	id, err := crypto.GenerateID()
	if err != nil {
		return nil, err
	}

	return &Stake{
		ID:         id,
		CovenantID: params.CovenantID,
		AgentHash:  params.AgentHash,
		Amount:     params.Amount,
		Status:     StatusActive,
		CreatedAt:  crypto.NowISO8601(),
	}, nil
}

// ReleaseStake transitions an active stake to released. It fails with a
// StateError if the stake has already been resolved.
func ReleaseStake(s *Stake) error {
	return resolve(s, StatusReleased)
}

// BurnStake transitions an active stake to burned. It fails with a
// StateError if the stake has already been resolved.
func BurnStake(s *Stake) error {
	return resolve(s, StatusBurned)
}

func resolve(s *Stake, to Status) error {
	if s.Status != StatusActive {
		return &StateError{StakeID: s.ID, From: s.Status, To: to}
	}
	now := crypto.NowISO8601()
	s.Status = to
	s.ResolvedAt = &now
	return nil
}
