package compiler

import "fmt"

// DeveloperError signals an invariant violation in the compiler itself
// (e.g. a parse rule table gap that should have been caught by tests),
// as distinct from a CompileError in the user's source.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
