package systems

import "fmt"

// InvariantError reports a broken internal invariant. It is raised with
// panic and never recovered.
type InvariantError struct {
	Where  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Where, e.Detail)
}

func violate(where, format string, args ...any) {
	panic(&InvariantError{Where: where, Detail: fmt.Sprintf(format, args...)})
}
