package ccl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PermitDeny(t *testing.T) {
	src := "permit read on '/data/**'\ndeny write on '/system/**' severity critical"
	policy, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, policy.Permits, 1)
	require.Len(t, policy.Denies, 1)
	require.Equal(t, "read", policy.Permits[0].Action)
	require.Equal(t, "/data/**", policy.Permits[0].Resource)
	require.Equal(t, SeverityCritical, policy.Denies[0].Severity)
}

func TestParse_SkipsBlankLinesAndComments(t *testing.T) {
	src := "# a comment\n\npermit read on '/data/**'\n  \n# trailing"
	policy, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, policy.Statements, 1)
}

func TestParse_LimitStatement(t *testing.T) {
	policy, err := Parse("limit call.api 100 per 1 hours")
	require.NoError(t, err)
	require.Len(t, policy.Limits, 1)
	l := policy.Limits[0]
	require.Equal(t, "call.api", l.Action)
	require.Equal(t, 100, l.Count)
	require.Equal(t, 3600, l.PeriodSeconds)
}

func TestParse_WhenCondition(t *testing.T) {
	policy, err := Parse("permit transfer on 'account/*' when amount < 1000")
	require.NoError(t, err)
	cond := policy.Permits[0].Condition
	require.NotNil(t, cond)
	require.Equal(t, "amount", cond.Variable)
	require.Equal(t, OpLt, cond.Op)
	require.Equal(t, int64(1000), cond.Literal)
}

func TestParse_ReservedSeverityConditionNameRejected(t *testing.T) {
	_, err := Parse("permit read on '/data/**' when severity = 'high'")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)
}

func TestParse_UnknownKeywordReportsLineAndReason(t *testing.T) {
	_, err := Parse("permit read on '/data/**'\nfrobnicate everything")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 2, pe.Line)
}

func TestParse_UnterminatedQuoteIsParseError(t *testing.T) {
	_, err := Parse("permit read on '/data/**")
	require.Error(t, err)
}

func TestParse_ListLiteralCondition(t *testing.T) {
	policy, err := Parse("permit read on 'x' when region in ['us', 'eu']")
	require.NoError(t, err)
	cond := policy.Permits[0].Condition
	require.Equal(t, OpIn, cond.Op)
	list, ok := cond.Literal.([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"us", "eu"}, list)
}
