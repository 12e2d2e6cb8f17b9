package stake_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/stake"
)

func TestCreateStake(t *testing.T) {
	s, err := stake.CreateStake(stake.CreateParams{CovenantID: "cov-1", AgentHash: "agent-1", Amount: 0.5})
	require.NoError(t, err)
	require.Equal(t, stake.StatusActive, s.Status)
	require.Nil(t, s.ResolvedAt)
}

func TestCreateStake_AmountOutOfRangeFails(t *testing.T) {
	_, err := stake.CreateStake(stake.CreateParams{CovenantID: "cov-1", AgentHash: "agent-1", Amount: 1.5})
	require.Error(t, err)

	_, err = stake.CreateStake(stake.CreateParams{CovenantID: "cov-1", AgentHash: "agent-1", Amount: -0.1})
	require.Error(t, err)
}

func TestReleaseStake(t *testing.T) {
	s, err := stake.CreateStake(stake.CreateParams{CovenantID: "cov-1", AgentHash: "agent-1", Amount: 0.5})
	require.NoError(t, err)

	require.NoError(t, stake.ReleaseStake(s))
	require.Equal(t, stake.StatusReleased, s.Status)
	require.NotNil(t, s.ResolvedAt)
}

func TestBurnStake(t *testing.T) {
	s, err := stake.CreateStake(stake.CreateParams{CovenantID: "cov-1", AgentHash: "agent-1", Amount: 0.5})
	require.NoError(t, err)

	require.NoError(t, stake.BurnStake(s))
	require.Equal(t, stake.StatusBurned, s.Status)
}

func TestStake_CannotTransitionTwice(t *testing.T) {
	s, err := stake.CreateStake(stake.CreateParams{CovenantID: "cov-1", AgentHash: "agent-1", Amount: 0.5})
	require.NoError(t, err)
	require.NoError(t, stake.ReleaseStake(s))

	err = stake.BurnStake(s)
	require.Error(t, err)
	var stateErr *stake.StateError
	require.ErrorAs(t, err, &stateErr)
}
