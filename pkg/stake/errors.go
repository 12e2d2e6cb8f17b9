package stake

import "fmt"

// BuildError reports why CreateStake refused to construct a stake.
type BuildError struct {
	Field   string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("stake build: %s: %s", e.Field, e.Message)
}

// StateError reports an illegal transition attempt on an already-resolved
// stake.
type StateError struct {
	StakeID string
	From    Status
	To      Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("stake %s: cannot transition from %s to %s: already resolved", e.StakeID, e.From, e.To)
}
