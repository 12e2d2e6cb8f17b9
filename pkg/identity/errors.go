package identity

import "fmt"

// BuildError reports why CreateIdentity or EvolveIdentity refused to
// construct an identity.
type BuildError struct {
	Field   string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("identity build: %s: %s", e.Field, e.Message)
}
