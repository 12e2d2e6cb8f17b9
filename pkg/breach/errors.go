package breach

import "fmt"

// BuildError reports why CreateBreachAttestation refused to construct an
// attestation.
type BuildError struct {
	Field   string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("breach build: %s: %s", e.Field, e.Message)
}
