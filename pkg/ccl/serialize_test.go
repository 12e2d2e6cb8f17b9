package ccl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSerialize_RoundTripsThroughParse(t *testing.T) {
	src := "permit read on '/data/**'\ndeny write on '/system/**' severity critical\nlimit call.api 10 per 1 minutes"
	policy, err := Parse(src)
	require.NoError(t, err)

	out := Serialize(policy)
	reparsed, err := Parse(out)
	require.NoError(t, err)

	require.Equal(t, policy.Permits, reparsed.Permits)
	require.Equal(t, policy.Denies, reparsed.Denies)
	require.Equal(t, policy.Limits, reparsed.Limits)
}

// TestSerializeParseRoundTripProperty checks the round-trip law across
// randomly generated well-formed permit/deny statements: Parse(Serialize(p))
// must reproduce the same rule set as p.
func TestSerializeParseRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	actions := []string{"read", "write", "call.api", "delete.all"}
	resources := []string{"/data/x", "/data/**", "/system/y", "account/*"}
	severities := []Severity{"", SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

	properties.Property("serialize-then-parse preserves permit rules", prop.ForAll(
		func(a, r string, sev Severity) bool {
			policy := &Policy{Permits: []Rule{{Action: a, Resource: r, Severity: sev}}}
			policy.Statements = []Statement{{Kind: StatementPermit, Rule: policy.Permits[0]}}

			reparsed, err := Parse(Serialize(policy))
			if err != nil {
				return false
			}
			if len(reparsed.Permits) != 1 {
				return false
			}
			got := reparsed.Permits[0]
			return got.Action == a && got.Resource == r && got.Severity == sev
		},
		gen.OneConstOf(toInterfaces(actions)...).Map(func(v interface{}) string { return v.(string) }),
		gen.OneConstOf(toInterfaces(resources)...).Map(func(v interface{}) string { return v.(string) }),
		gen.OneConstOf(toInterfaces(severities)...).Map(func(v interface{}) Severity { return v.(Severity) }),
	))

	properties.TestingRun(t)
}

func toInterfaces[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}
