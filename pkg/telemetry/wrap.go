package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/covenantproto/covenant/pkg/breach"
	"github.com/covenantproto/covenant/pkg/covenant"
	"github.com/covenantproto/covenant/pkg/monitor"
)

// BuildCovenant traces covenant.Build.
func (p *Provider) BuildCovenant(ctx context.Context, params covenant.BuildParams) (*covenant.Document, error) {
	_, done := p.TrackOperation(ctx, "covenant.build", attribute.String("covenant.issuer", params.Issuer.ID))
	doc, err := covenant.Build(params)
	done(err)
	return doc, err
}

// VerifyCovenant traces covenant.Verify.
func (p *Provider) VerifyCovenant(ctx context.Context, doc *covenant.Document) covenant.VerifyResult {
	_, done := p.TrackOperation(ctx, "covenant.verify", attribute.String("covenant.id", doc.ID))
	result := covenant.Verify(doc)
	var err error
	if !result.Valid {
		err = errVerifyFailed
	}
	done(err)
	return result
}

// EvaluateMonitor traces monitor.Evaluate.
func (p *Provider) EvaluateMonitor(ctx context.Context, m *monitor.Monitor, action, resource string, evalCtx map[string]interface{}) (monitor.EvalResult, error) {
	_, done := p.TrackOperation(ctx, "monitor.evaluate",
		attribute.String("monitor.action", action), attribute.String("monitor.resource", resource))
	result, err := m.Evaluate(action, resource, evalCtx)
	done(err)
	return result, err
}

// ProcessBreach traces breach.TrustGraph.ProcessBreach.
func (p *Provider) ProcessBreach(ctx context.Context, g *breach.TrustGraph, a *breach.Attestation) []breach.BreachEvent {
	_, done := p.TrackOperation(ctx, "breach.processBreach", attribute.String("breach.affectedAgent", a.AffectedAgent))
	events := g.ProcessBreach(a)
	var err error
	if len(events) == 0 {
		err = errBreachNotApplied
	}
	done(err)
	return events
}

var (
	errVerifyFailed     = verifyFailedError{}
	errBreachNotApplied = breachNotAppliedError{}
)

type verifyFailedError struct{}

func (verifyFailedError) Error() string { return "covenant verification failed" }

type breachNotAppliedError struct{}

func (breachNotAppliedError) Error() string { return "breach attestation did not change graph state" }
