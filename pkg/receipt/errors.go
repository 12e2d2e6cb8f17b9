package receipt

import "fmt"

// BuildError reports why CreateReceipt refused to construct a receipt.
type BuildError struct {
	Field   string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("receipt build: %s: %s", e.Field, e.Message)
}

// ChainError reports a broken link in a receipt chain.
type ChainError struct {
	Index   int
	Message string
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("receipt chain: entry %d: %s", e.Index, e.Message)
}
