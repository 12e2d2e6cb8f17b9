package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/covenant"
	"github.com/covenantproto/covenant/pkg/crypto"
	"github.com/covenantproto/covenant/pkg/identity"
	"github.com/covenantproto/covenant/pkg/receipt"
	"github.com/covenantproto/covenant/pkg/wire"
)

func TestValidateCovenantWireFormat(t *testing.T) {
	issuerKP, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	beneficiaryKP, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	doc, err := covenant.Build(covenant.BuildParams{
		Issuer:          covenant.Party{ID: "issuer-1", Role: "issuer", PublicKey: issuerKP.PublicKeyHex()},
		Beneficiary:     covenant.Party{ID: "beneficiary-1", Role: "beneficiary", PublicKey: beneficiaryKP.PublicKeyHex()},
		Constraints:     "permit read on '/data/**'",
		IssuerSecretKey: issuerKP.PrivateKey,
	})
	require.NoError(t, err)

	serialized, err := covenant.Serialize(doc)
	require.NoError(t, err)

	require.NoError(t, wire.ValidateBytes(wire.KindCovenant, []byte(serialized)))
}

func TestValidateReceiptWireFormat(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	r, err := receipt.CreateReceipt(receipt.CreateParams{
		CovenantID:         "cov-1",
		AgentIdentityHash:  "agent-1",
		PrincipalPublicKey: kp.PublicKeyHex(),
		Outcome:            receipt.OutcomeFulfilled,
		ProofHash:          "proof-1",
		AgentSecretKey:     kp.PrivateKey,
	})
	require.NoError(t, err)

	serialized, err := receipt.Serialize(r)
	require.NoError(t, err)

	require.NoError(t, wire.ValidateBytes(wire.KindReceipt, []byte(serialized)))
}

func TestValidateIdentityWireFormat(t *testing.T) {
	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	id, err := identity.CreateIdentity(identity.CreateParams{
		OperatorPublicKey: kp.PublicKeyHex(),
		Model:             identity.ModelAttestation{Provider: "acme", ModelID: "agent-7b", Version: "2026.1"},
		Capabilities:      []string{"fs.read"},
		Deployment:        identity.Deployment{Environment: "prod"},
		OperatorSecretKey: kp.PrivateKey,
	})
	require.NoError(t, err)

	serialized, err := identity.Serialize(id)
	require.NoError(t, err)

	require.NoError(t, wire.ValidateBytes(wire.KindIdentity, []byte(serialized)))
}

func TestValidateBytes_RejectsMissingRequiredField(t *testing.T) {
	err := wire.ValidateBytes(wire.KindReceipt, []byte(`{"id":"r1"}`))
	require.Error(t, err)
}
