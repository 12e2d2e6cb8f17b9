package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/crypto"
	"github.com/covenantproto/covenant/pkg/receipt"
)

func mustKeyPair(t *testing.T) *crypto.KeyPair {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return kp
}

func TestCreateAndVerifyReceipt(t *testing.T) {
	kp := mustKeyPair(t)

	r, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-hash-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeFulfilled,
		ProofHash:          "proof-1",
		DurationMs:         1200,
		AgentSecretKey:     kp.PrivateKey,
	})
	require.NoError(t, err)
	require.Nil(t, r.PreviousReceiptHash)
	require.NotEmpty(t, r.ReceiptHash)

	result := receipt.VerifyReceipt(r, kp.PublicKeyHex())
	require.True(t, result.Valid, "%+v", result.Checks)
}

func TestCreateReceipt_BreachedWithoutSeverityFails(t *testing.T) {
	kp := mustKeyPair(t)

	_, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-hash-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeBreached,
		ProofHash:          "proof-1",
		AgentSecretKey:     kp.PrivateKey,
	})
	require.Error(t, err)
	var buildErr *receipt.BuildError
	require.ErrorAs(t, err, &buildErr)
	require.Equal(t, "breachSeverity", buildErr.Field)
}

func TestCreateReceipt_BreachedWithSeveritySucceeds(t *testing.T) {
	kp := mustKeyPair(t)

	r, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-hash-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeBreached,
		BreachSeverity:     receipt.SeverityHigh,
		ProofHash:          "proof-1",
		AgentSecretKey:     kp.PrivateKey,
	})
	require.NoError(t, err)
	require.Equal(t, receipt.SeverityHigh, r.BreachSeverity)
}

func TestVerifyReceipt_TamperedOutcomeFailsHashCheck(t *testing.T) {
	kp := mustKeyPair(t)

	r, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-hash-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeFulfilled,
		ProofHash:          "proof-1",
		AgentSecretKey:     kp.PrivateKey,
	})
	require.NoError(t, err)

	r.Outcome = receipt.OutcomeFailed
	result := receipt.VerifyReceipt(r, kp.PublicKeyHex())
	require.False(t, result.Valid)
}

func TestVerifyReceiptChain(t *testing.T) {
	kp := mustKeyPair(t)

	first, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-hash-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeFulfilled,
		ProofHash:          "proof-1",
		AgentSecretKey:     kp.PrivateKey,
	})
	require.NoError(t, err)

	prevHash := first.ReceiptHash
	second, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:          "cov-1",
		AgentIdentityHash:   "agent-hash-1",
		PrincipalPublicKey:  kp.PublicKeyHex(),
		Outcome:             receipt.OutcomePartial,
		ProofHash:           "proof-2",
		PreviousReceiptHash: &prevHash,
		AgentSecretKey:      kp.PrivateKey,
	})
	require.NoError(t, err)

	chain := []*receipt.Receipt{first, second}
	require.NoError(t, receipt.VerifyReceiptChain(chain))

	reordered := []*receipt.Receipt{second, first}
	err = receipt.VerifyReceiptChain(reordered)
	require.Error(t, err)
	var chainErr *receipt.ChainError
	require.ErrorAs(t, err, &chainErr)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	kp := mustKeyPair(t)

	r, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-hash-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeFulfilled,
		ProofHash:          "proof-1",
		AgentSecretKey:     kp.PrivateKey,
	})
	require.NoError(t, err)

	wire, err := receipt.Serialize(r)
	require.NoError(t, err)

	roundTripped, err := receipt.Deserialize([]byte(wire))
	require.NoError(t, err)
	require.Equal(t, r.ReceiptHash, roundTripped.ReceiptHash)
}

func TestDeserialize_MissingFieldFails(t *testing.T) {
	_, err := receipt.Deserialize([]byte(`{"id":"r1"}`))
	require.Error(t, err)
	var buildErr *receipt.BuildError
	require.ErrorAs(t, err, &buildErr)
}
