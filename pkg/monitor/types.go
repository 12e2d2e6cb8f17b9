// Package monitor implements the enforcement monitor: per-covenant CCL
// evaluation, an append-only hash-chained audit log with a Merkle
// commitment, and log-only/enforce/canary mode policy (spec §4.4).
package monitor

import "github.com/covenantproto/covenant/pkg/ccl"

// Mode controls what an evaluated denial does to the caller.
type Mode string

const (
	// ModeEnforce raises MonitorDeniedError on denial instead of letting
	// the caller proceed.
	ModeEnforce Mode = "enforce"
	// ModeLogOnly records the decision and always lets the caller proceed.
	ModeLogOnly Mode = "log_only"
	// ModeCanary behaves like ModeLogOnly but marks audit entries so
	// observers can analyze what would have been denied.
	ModeCanary Mode = "canary"
)

func (m Mode) valid() bool {
	switch m {
	case ModeEnforce, ModeLogOnly, ModeCanary:
		return true
	}
	return false
}

// FailureMode controls how the monitor behaves when evaluation itself
// cannot complete (a CCL parse error).
type FailureMode string

const (
	// FailClosed treats an internal evaluation failure as a denial. This
	// is the default.
	FailClosed FailureMode = "fail_closed"
	// FailOpen treats an internal evaluation failure as a permit.
	FailOpen FailureMode = "fail_open"
)

func (f FailureMode) valid() bool {
	switch f {
	case "", FailClosed, FailOpen:
		return true
	}
	return false
}

// Outcome is the closed set of audit-log entry outcomes.
type Outcome string

const (
	OutcomeExecuted   Outcome = "EXECUTED"
	OutcomeDenied     Outcome = "DENIED"
	OutcomeImpossible Outcome = "IMPOSSIBLE"
)

// EvalResult is what monitor.Evaluate returns to the caller.
type EvalResult struct {
	Permitted bool
	Reason    string
	Severity  ccl.Severity
	Canary    bool
	// CorrelationID identifies this single Evaluate call for tracing
	// across process boundaries. It is generated fresh per call and is
	// deliberately not part of the audit log's hash chain: the chain
	// commits to what was decided, not to an incidental trace id.
	CorrelationID string
}

// ViolationCallback is invoked synchronously, before any enforce-mode error
// is raised, whenever an evaluation is denied.
type ViolationCallback func(entry Entry)
