package monitor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/covenantproto/covenant/pkg/ccl"
	"github.com/covenantproto/covenant/pkg/crypto"
	"github.com/covenantproto/covenant/pkg/store"
)

// Config constructs a Monitor. Constraints is the raw CCL source the
// monitor evaluates every action against; it is parsed lazily, once, on
// first use.
type Config struct {
	CovenantID  string
	Constraints string
	Mode        Mode
	FailureMode FailureMode
	OnViolation ViolationCallback
	// Unreachable, if set, reports that a given action is physically
	// impossible under the covenant's declared enforcement type (for
	// example, a capability-enforced covenant whose capability set never
	// grants the action). Entries for such actions are recorded as
	// IMPOSSIBLE rather than DENIED.
	Unreachable func(action, resource string) bool
	// Cache, if set, shares this covenant's CCL source across monitor
	// instances (for example several replicas enforcing the same
	// covenant) so only the first of them pays to fetch/parse it.
	Cache PolicyCache
	// Store, if set, persists every audit-log entry to a backend (SQL or
	// in-memory) in addition to the log's own in-process copy.
	Store store.AuditStore
}

// Monitor evaluates actions against a single covenant's constraints and
// records every decision to a hash-chained AuditLog.
type Monitor struct {
	covenantID  string
	source      string
	mode        Mode
	failureMode FailureMode
	onViolation ViolationCallback
	unreachable func(action, resource string) bool
	cache       PolicyCache

	// instanceID identifies this in-process Monitor for tracing; it has
	// no bearing on covenant identity or the audit log's hash chain.
	instanceID string

	log *AuditLog

	parseOnce   sync.Once
	policy      *ccl.Policy
	parseErr    error
	rateLimiter *ccl.LiveRateLimiter
}

// New constructs a Monitor from cfg. Mode defaults to ModeEnforce and
// FailureMode to FailClosed when left unset.
func New(cfg Config) (*Monitor, error) {
	if cfg.CovenantID == "" {
		return nil, &ConfigError{Field: "covenantId", Message: "covenantId is required"}
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeEnforce
	}
	if !mode.valid() {
		return nil, &ConfigError{Field: "mode", Message: "unknown monitor mode " + string(mode)}
	}
	failureMode := cfg.FailureMode
	if failureMode == "" {
		failureMode = FailClosed
	}
	if !failureMode.valid() {
		return nil, &ConfigError{Field: "failureMode", Message: "unknown monitor failure mode " + string(failureMode)}
	}

	return &Monitor{
		covenantID:  cfg.CovenantID,
		source:      cfg.Constraints,
		mode:        mode,
		failureMode: failureMode,
		onViolation: cfg.OnViolation,
		unreachable: cfg.Unreachable,
		cache:       cfg.Cache,
		instanceID:  uuid.NewString(),
		log:         NewAuditLog(cfg.CovenantID, cfg.Store),
	}, nil
}

func (m *Monitor) parsedPolicy() (*ccl.Policy, error) {
	m.parseOnce.Do(func() {
		if m.cache != nil {
			m.policy, m.parseErr = cachedPolicy(context.Background(), m.cache, m.covenantID, m.source)
		} else {
			m.policy, m.parseErr = ccl.Parse(m.source)
		}
		if m.parseErr == nil {
			m.rateLimiter = ccl.NewLiveRateLimiter(m.policy)
		}
	})
	return m.policy, m.parseErr
}

// AuditLog returns the monitor's audit log.
func (m *Monitor) AuditLog() *AuditLog {
	return m.log
}

// InstanceID identifies this in-process Monitor for distributed tracing.
// It is generated once per Monitor and carries no cryptographic meaning.
func (m *Monitor) InstanceID() string {
	return m.instanceID
}

// Evaluate evaluates action against resource/ctx under the monitor's
// covenant constraints, appends an audit-log entry for the decision, and —
// in ModeEnforce — raises a MonitorDeniedError when the action is denied.
func (m *Monitor) Evaluate(action, resource string, ctx map[string]interface{}) (EvalResult, error) {
	correlationID := uuid.NewString()

	if m.unreachable != nil && m.unreachable(action, resource) {
		if _, err := m.log.Append(action, resource, fingerprint(ctx), OutcomeImpossible, crypto.NowISO8601(), false); err != nil {
			return EvalResult{}, err
		}
		return EvalResult{
			Permitted:     false,
			Reason:        "action is not physically reachable under this covenant's enforcement",
			CorrelationID: correlationID,
		}, nil
	}

	policy, err := m.parsedPolicy()
	if err != nil {
		result, err := m.handleInternalFailure(action, resource, ctx, "parse_error: "+err.Error())
		result.CorrelationID = correlationID
		return result, err
	}

	evalResult := ccl.Evaluate(policy, action, resource, ctx)
	if evalResult.Permitted && m.rateLimiter != nil && !m.rateLimiter.Allow(action) {
		evalResult.Permitted = false
		evalResult.Reason = "rate limit exceeded for action " + action
	}

	outcome := OutcomeExecuted
	canary := false
	if !evalResult.Permitted {
		outcome = OutcomeDenied
		if m.mode == ModeCanary {
			canary = true
		}
	}

	entry, err := m.log.Append(action, resource, fingerprint(ctx), outcome, crypto.NowISO8601(), canary)
	if err != nil {
		return EvalResult{}, err
	}

	var severity ccl.Severity
	if evalResult.MatchedRule != nil {
		severity = evalResult.MatchedRule.Severity
	}

	result := EvalResult{
		Permitted:     evalResult.Permitted,
		Reason:        evalResult.Reason,
		Severity:      severity,
		Canary:        canary,
		CorrelationID: correlationID,
	}

	if !evalResult.Permitted {
		if m.onViolation != nil {
			m.onViolation(entry)
		}
		if m.mode == ModeEnforce {
			ruleText := ""
			if evalResult.MatchedRule != nil {
				ruleText = evalResult.MatchedRule.String()
			}
			return result, &MonitorDeniedError{Action: action, Resource: resource, MatchedRule: ruleText, Severity: string(severity)}
		}
	}
	return result, nil
}

// handleInternalFailure implements the monitor's fail-open/fail-closed
// policy for errors that prevent evaluation itself from completing (not
// just a permit/deny verdict).
func (m *Monitor) handleInternalFailure(action, resource string, ctx map[string]interface{}, reason string) (EvalResult, error) {
	permitted := m.failureMode == FailOpen

	outcome := OutcomeExecuted
	if !permitted {
		outcome = OutcomeDenied
	}
	entry, err := m.log.Append(action, resource, fingerprint(ctx), outcome, crypto.NowISO8601(), false)
	if err != nil {
		return EvalResult{}, err
	}

	result := EvalResult{Permitted: permitted, Reason: reason}
	if !permitted {
		if m.onViolation != nil {
			m.onViolation(entry)
		}
		if m.mode == ModeEnforce {
			return result, &MonitorDeniedError{Action: action, Resource: resource, MatchedRule: "", Severity: ""}
		}
	}
	return result, nil
}

// fingerprint produces a stable, order-independent digest of a context map
// for the audit log, without retaining the (potentially sensitive) raw
// values.
func fingerprint(ctx map[string]interface{}) string {
	if len(ctx) == 0 {
		return ""
	}
	digest, err := crypto.SHA256Object(ctx)
	if err != nil {
		return ""
	}
	return digest
}
