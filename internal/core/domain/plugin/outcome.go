package plugin

// Outcome is the tri-state result of invoking a hook on one plugin or on a
// whole loaded set. Values are ordered by severity.
type Outcome int

const (
	// OutcomeOK means every invoked hook completed or was absent
	OutcomeOK Outcome = iota
	// OutcomeRecoverable means at least one hook failed with an ordinary error
	OutcomeRecoverable
	// OutcomeFatal means at least one hook failed with the fatal kind
	OutcomeFatal
)

// String returns the outcome label used in logs and metrics
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRecoverable:
		return "recoverable"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Merge returns the more severe of the two outcomes. Fatal takes precedence
// over recoverable, which takes precedence over ok.
func (o Outcome) Merge(other Outcome) Outcome {
	if other > o {
		return other
	}
	return o
}

// Failed reports whether any failure, recoverable or fatal, occurred
func (o Outcome) Failed() bool {
	return o != OutcomeOK
}

// IsFatal reports whether a fatal failure occurred
func (o Outcome) IsFatal() bool {
	return o == OutcomeFatal
}
