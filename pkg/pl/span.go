package pl

import "fmt"

// Span marks a byte range in the original source. Earlier stages attach
// spans when building the tree; diagnostics carry them back to the user.
type Span struct {
	Start int
	End   int
}

// String returns the span in start..end form.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
