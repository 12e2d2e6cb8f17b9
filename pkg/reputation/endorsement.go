package reputation

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// CreateEndorsementParams carries everything CreateEndorsement needs.
type CreateEndorsementParams struct {
	EndorserHash      string
	EndorsedHash      string
	Scopes            []string
	Weight            float64
	Basis             Basis
	EndorserSecretKey ed25519.PrivateKey
}

// CreateEndorsement packs the endorsement fields into a canonical payload
// and signs it with the endorser's key. Weight must be in (0,1].
func CreateEndorsement(params CreateEndorsementParams) (*Endorsement, error) {
	if params.Weight <= 0 || params.Weight > 1 {
		return nil, &BuildError{Field: "weight", Message: "must be in (0, 1]"}
	}
	if params.EndorserHash == "" || params.EndorsedHash == "" {
		return nil, &BuildError{Field: "endorserHash/endorsedHash", Message: "required"}
	}

	id, err := crypto.GenerateID()
	if err != nil {
		return nil, err
	}

	e := &Endorsement{
		ID:           id,
		EndorserHash: params.EndorserHash,
		EndorsedHash: params.EndorsedHash,
		Scopes:       params.Scopes,
		Weight:       params.Weight,
		Basis:        params.Basis,
		Timestamp:    crypto.NowISO8601(),
	}

	canonical, err := crypto.CanonicalizeJSONBytes(e)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(canonical, params.EndorserSecretKey)
	if err != nil {
		return nil, err
	}
	e.Signature = hex.EncodeToString(sig)

	return e, nil
}

// VerifyEndorsement recomputes and verifies the endorsement's signature.
func VerifyEndorsement(e *Endorsement, endorserPublicKeyHex string) (bool, error) {
	if e.Weight <= 0 || e.Weight > 1 {
		return false, nil
	}
	signed := *e
	signed.Signature = ""
	canonical, err := crypto.CanonicalizeJSONBytes(&signed)
	if err != nil {
		return false, err
	}
	return crypto.VerifyHex(canonical, e.Signature, endorserPublicKeyHex)
}
