package recompute

import "fmt"

// ParseError reports a factor cell whose value is not a number.
// It is only returned in strict mode.
type ParseError struct {
	Sheet string
	Cell  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sheet %q cell %s: %q is not a number", e.Sheet, e.Cell, e.Value)
}
