package reputation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/crypto"
	"github.com/covenantproto/covenant/pkg/receipt"
	"github.com/covenantproto/covenant/pkg/reputation"
)

func mustReceipt(t *testing.T, kp *crypto.KeyPair, outcome receipt.Outcome, severity receipt.Severity, prev *string) *receipt.Receipt {
	r, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:          "cov-1",
		AgentIdentityHash:   "agent-1",
		PrincipalPublicKey:  kp.PublicKeyHex(),
		Outcome:             outcome,
		BreachSeverity:      severity,
		ProofHash:           "proof",
		PreviousReceiptHash: prev,
		AgentSecretKey:      kp.PrivateKey,
	})
	require.NoError(t, err)
	return r
}

func TestComputeReputationScore_BelowMinimumExecutionsIsDownweighted(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	receipts := []*receipt.Receipt{
		mustReceipt(t, kp, receipt.OutcomeFulfilled, "", nil),
		mustReceipt(t, kp, receipt.OutcomeFulfilled, "", nil),
	}

	score := reputation.ComputeReputationScore("agent-1", receipts, nil)
	require.Equal(t, 2, score.TotalExecutions)
	require.Equal(t, 1.0, score.SuccessRate)
	require.Less(t, score.WeightedScore, 1.0)
	require.NotEmpty(t, score.ReceiptsMerkleRoot)
}

func TestComputeReputationScore_BreachesLowerScore(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	clean := make([]*receipt.Receipt, 0, 10)
	for i := 0; i < 10; i++ {
		clean = append(clean, mustReceipt(t, kp, receipt.OutcomeFulfilled, "", nil))
	}
	withBreach := append(append([]*receipt.Receipt{}, clean[:9]...), mustReceipt(t, kp, receipt.OutcomeBreached, receipt.SeverityCritical, nil))

	cleanScore := reputation.ComputeReputationScore("agent-1", clean, nil)
	breachedScore := reputation.ComputeReputationScore("agent-1", withBreach, nil)
	require.Greater(t, cleanScore.WeightedScore, breachedScore.WeightedScore)
}

func TestCreateAndVerifyEndorsement(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	e, err := reputation.CreateEndorsement(reputation.CreateEndorsementParams{
		EndorserHash:      "endorser-1",
		EndorsedHash:      "agent-1",
		Scopes:            []string{"fs.read"},
		Weight:            0.8,
		Basis:             reputation.Basis{PriorInteractions: 5},
		EndorserSecretKey: kp.PrivateKey,
	})
	require.NoError(t, err)

	ok, err := reputation.VerifyEndorsement(e, kp.PublicKeyHex())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCreateEndorsement_WeightOutOfRangeFails(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	_, err = reputation.CreateEndorsement(reputation.CreateEndorsementParams{
		EndorserHash:      "endorser-1",
		EndorsedHash:      "agent-1",
		Weight:            0,
		EndorserSecretKey: kp.PrivateKey,
	})
	require.Error(t, err)

	_, err = reputation.CreateEndorsement(reputation.CreateEndorsementParams{
		EndorserHash:      "endorser-1",
		EndorsedHash:      "agent-1",
		Weight:            1.5,
		EndorserSecretKey: kp.PrivateKey,
	})
	require.Error(t, err)
}
