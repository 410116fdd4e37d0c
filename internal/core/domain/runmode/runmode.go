// Package runmode holds process-level switches that are read at the moment an
// operation happens rather than captured at construction time.
package runmode

import "sync/atomic"

// DryRun reports whether mutating operations should only be simulated.
// The zero value is disabled and ready to use.
type DryRun struct {
	enabled atomic.Bool
}

// NewDryRun creates a flag with the given initial state
func NewDryRun(enabled bool) *DryRun {
	d := &DryRun{}
	d.enabled.Store(enabled)
	return d
}

// Enabled returns the current state. A nil flag is treated as disabled.
func (d *DryRun) Enabled() bool {
	if d == nil {
		return false
	}
	return d.enabled.Load()
}

// Set changes the state for every subsequent call to Enabled
func (d *DryRun) Set(enabled bool) {
	d.enabled.Store(enabled)
}
