package reputation

import "fmt"

// BuildError reports why an endorsement or score computation was refused.
type BuildError struct {
	Field   string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("reputation build: %s: %s", e.Field, e.Message)
}
