package ccl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEvaluate_ScenarioOne reproduces the protocol's canonical example: a
// policy permitting reads under /data and denying writes under /system.
func TestEvaluate_ScenarioOne(t *testing.T) {
	policy, err := Parse("permit read on '/data/**'\ndeny write on '/system/**' severity critical")
	require.NoError(t, err)

	readResult := Evaluate(policy, "read", "/data/x", nil)
	require.True(t, readResult.Permitted)

	writeResult := Evaluate(policy, "write", "/system/y", nil)
	require.False(t, writeResult.Permitted)
	require.NotNil(t, writeResult.MatchedRule)
	require.Equal(t, SeverityCritical, writeResult.MatchedRule.Severity)
}

func TestEvaluate_DefaultDenyWhenNoRuleMatches(t *testing.T) {
	policy, err := Parse("permit read on '/data/**'")
	require.NoError(t, err)

	result := Evaluate(policy, "delete", "/data/x", nil)
	require.False(t, result.Permitted)
	require.Nil(t, result.MatchedRule)
}

func TestEvaluate_DenyWinsTieAtEqualSpecificity(t *testing.T) {
	policy, err := Parse("permit read on '/data/x'\ndeny read on '/data/x'")
	require.NoError(t, err)

	result := Evaluate(policy, "read", "/data/x", nil)
	require.False(t, result.Permitted, "deny must win a tie against a permit of equal specificity")
}

func TestEvaluate_MoreSpecificPermitBeatsLessSpecificDeny(t *testing.T) {
	policy, err := Parse("deny read on '/data/**'\npermit read on '/data/public/**'")
	require.NoError(t, err)

	result := Evaluate(policy, "read", "/data/public/file", nil)
	require.True(t, result.Permitted)

	other := Evaluate(policy, "read", "/data/private/file", nil)
	require.False(t, other.Permitted)
}

func TestEvaluate_WhenConditionGatesMatch(t *testing.T) {
	policy, err := Parse("permit transfer on 'account/*' when amount < 1000")
	require.NoError(t, err)

	ctx := map[string]interface{}{"amount": int64(500)}
	require.True(t, Evaluate(policy, "transfer", "account/1", ctx).Permitted)

	ctxOver := map[string]interface{}{"amount": int64(5000)}
	require.False(t, Evaluate(policy, "transfer", "account/1", ctxOver).Permitted)
}

func TestEvaluate_MissingContextValueMakesConditionFalse(t *testing.T) {
	policy, err := Parse("permit transfer on 'account/*' when amount < 1000")
	require.NoError(t, err)

	require.False(t, Evaluate(policy, "transfer", "account/1", nil).Permitted)
}

func TestEvaluate_NestedContextPath(t *testing.T) {
	policy, err := Parse("permit act on 'x' when request.region = 'us'")
	require.NoError(t, err)

	ctx := map[string]interface{}{"request": map[string]interface{}{"region": "us"}}
	require.True(t, Evaluate(policy, "act", "x", ctx).Permitted)

	ctxWrong := map[string]interface{}{"request": map[string]interface{}{"region": "eu"}}
	require.False(t, Evaluate(policy, "act", "x", ctxWrong).Permitted)
}

func TestCheckRateLimit(t *testing.T) {
	policy, err := Parse("limit call.api 10 per 1 minutes")
	require.NoError(t, err)

	require.False(t, CheckRateLimit(policy, "call.api", 5).Exceeded)
	require.True(t, CheckRateLimit(policy, "call.api", 11).Exceeded)
	require.False(t, CheckRateLimit(policy, "other.action", 1000).Exceeded)
}
