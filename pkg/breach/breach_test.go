package breach_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/breach"
	"github.com/covenantproto/covenant/pkg/ccl"
	"github.com/covenantproto/covenant/pkg/crypto"
)

func mustAttestation(t *testing.T, kp *crypto.KeyPair, agent string, severity ccl.Severity) *breach.Attestation {
	a, err := breach.CreateBreachAttestation(breach.CreateParams{
		CovenantID:         "cov-1",
		AffectedAgent:      agent,
		ViolatedConstraint: "deny write on '/system/**'",
		Severity:           severity,
		DeniedAction:       "write",
		DeniedResource:     "/system/y",
		EvidenceHash:       "evidence-1",
		ReporterPublicKey:  kp.PublicKeyHex(),
		ReporterSecretKey:  kp.PrivateKey,
	})
	require.NoError(t, err)
	return a
}

func TestCreateAndVerifyBreachAttestation(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	a := mustAttestation(t, kp, "agent-a", ccl.SeverityCritical)
	require.Equal(t, breach.ActionRevoke, a.RecommendedAction)
	require.True(t, breach.VerifyBreachAttestation(a))

	a.Severity = ccl.SeverityLow
	require.False(t, breach.VerifyBreachAttestation(a))
}

func TestCreateBreachAttestation_InvalidSeverityFails(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	_, err = breach.CreateBreachAttestation(breach.CreateParams{
		CovenantID:        "cov-1",
		AffectedAgent:     "agent-a",
		Severity:          "extreme",
		ReporterPublicKey: kp.PublicKeyHex(),
		ReporterSecretKey: kp.PrivateKey,
	})
	require.Error(t, err)
}

func TestProcessBreach_PropagatesThroughDependencyChain(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	g := breach.NewTrustGraph()
	g.RegisterDependency("agent-a", "agent-b")
	g.RegisterDependency("agent-b", "agent-c")

	a := mustAttestation(t, kp, "agent-a", ccl.SeverityCritical)
	events := g.ProcessBreach(a)

	require.Len(t, events, 3)
	require.Equal(t, "agent-a", events[0].AffectedAgent)
	require.Equal(t, breach.StatusRevoked, events[0].NewStatus)
	require.Equal(t, "agent-b", events[1].AffectedAgent)
	require.Equal(t, breach.StatusRestricted, events[1].NewStatus)
	require.Equal(t, "agent-c", events[2].AffectedAgent)
	require.Equal(t, breach.StatusDegraded, events[2].NewStatus)

	require.Equal(t, breach.StatusRevoked, g.GetStatus("agent-a"))
	require.False(t, g.IsTrusted("agent-b"))
}

func TestProcessBreach_UnverifiableAttestationLeavesGraphUntouched(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	g := breach.NewTrustGraph()
	a := mustAttestation(t, kp, "agent-a", ccl.SeverityCritical)
	a.DeniedResource = "/tampered"

	events := g.ProcessBreach(a)
	require.Empty(t, events)
	require.True(t, g.IsTrusted("agent-a"))
}

func TestProcessBreach_WeakerAttestationDoesNotWeakenStatus(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	g := breach.NewTrustGraph()
	first := mustAttestation(t, kp, "agent-a", ccl.SeverityCritical)
	g.ProcessBreach(first)

	weaker := mustAttestation(t, kp, "agent-a", ccl.SeverityLow)
	events := g.ProcessBreach(weaker)
	require.Empty(t, events)
	require.Equal(t, breach.StatusRevoked, g.GetStatus("agent-a"))
}

func TestOnBreach_ListenerFiresAndCanBeRemoved(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	g := breach.NewTrustGraph()
	var fired []breach.BreachEvent
	handle := g.OnBreach(func(e breach.BreachEvent) { fired = append(fired, e) })

	a := mustAttestation(t, kp, "agent-a", ccl.SeverityHigh)
	g.ProcessBreach(a)
	require.Len(t, fired, 1)

	g.RemoveListener(handle)
	b := mustAttestation(t, kp, "agent-z", ccl.SeverityHigh)
	g.ProcessBreach(b)
	require.Len(t, fired, 1)
}
