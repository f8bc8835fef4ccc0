package eucatalog

import "strings"

// ExecutionMode selects how batches of independent work are scheduled.
// It is passed explicitly through every call that fans out work.
type ExecutionMode int

const (
	// Parallel runs a batch on a task group bounded by available parallelism.
	Parallel ExecutionMode = iota
	// Serial runs a batch one item at a time in input order.
	Serial
)

// String implements fmt.Stringer.
func (m ExecutionMode) String() string {
	if m == Serial {
		return "serial"
	}
	return "parallel"
}

// ParseExecutionMode parses "serial" or "parallel" (case-insensitive).
// An empty string selects Parallel.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "parallel":
		return Parallel, nil
	case "serial":
		return Serial, nil
	default:
		return Parallel, Errorf(EINVALID, "unknown execution mode %q", s)
	}
}
