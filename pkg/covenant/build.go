package covenant

import (
	"crypto/ed25519"

	"github.com/covenantproto/covenant/pkg/ccl"
	"github.com/covenantproto/covenant/pkg/crypto"
)

// BuildParams carries everything Build needs to construct a
// Document. IssuerSecretKey signs the finished canonical form.
type BuildParams struct {
	Version         string
	Issuer          Party
	Beneficiary     Party
	Constraints     string
	ActivatesAt     string
	ExpiresAt       string
	Enforcement     *Enforcement
	Proof           *Proof
	Chain           *Chain
	Metadata        *Metadata
	IssuerSecretKey ed25519.PrivateKey
}

// Build validates params, parses the constraint body, generates a nonce,
// canonicalizes and signs the document, then computes and fills in its
// content-addressed ID.
func Build(params BuildParams) (*Document, error) {
	if params.Issuer.ID == "" || params.Issuer.PublicKey == "" {
		return nil, &BuildError{Reason: ReasonMissingParty, Field: "issuer", Message: "issuer id and publicKey are required"}
	}
	if params.Beneficiary.ID == "" || params.Beneficiary.PublicKey == "" {
		return nil, &BuildError{Reason: ReasonMissingParty, Field: "beneficiary", Message: "beneficiary id and publicKey are required"}
	}
	if params.Issuer.Role == "" {
		return nil, &BuildError{Reason: ReasonWrongRole, Field: "issuer.role", Message: "issuer role is required"}
	}
	if params.Beneficiary.Role == "" {
		return nil, &BuildError{Reason: ReasonWrongRole, Field: "beneficiary.role", Message: "beneficiary role is required"}
	}
	if len(params.IssuerSecretKey) != ed25519.PrivateKeySize {
		return nil, &BuildError{Reason: ReasonKeyLength, Field: "issuerSecretKey", Message: "issuer secret key must be 64 bytes"}
	}
	if params.Enforcement != nil && !params.Enforcement.Kind.valid() {
		return nil, &BuildError{Reason: ReasonInvalidEnforcementType, Field: "enforcement.kind", Message: string(params.Enforcement.Kind)}
	}
	if params.Proof != nil && !params.Proof.Kind.valid() {
		return nil, &BuildError{Reason: ReasonInvalidProofType, Field: "proof.kind", Message: string(params.Proof.Kind)}
	}
	if params.Chain != nil {
		if !params.Chain.Relation.valid() {
			return nil, &BuildError{Reason: ReasonWrongRole, Field: "chain.relation", Message: string(params.Chain.Relation)}
		}
		if params.Chain.Depth < 1 || params.Chain.Depth > MaxChainDepth {
			return nil, &BuildError{Reason: ReasonChainDepthOutOfRange, Field: "chain.depth", Message: "depth must be in [1, 16]"}
		}
	}

	if _, err := ccl.Parse(params.Constraints); err != nil {
		return nil, &BuildError{Reason: ReasonCCLParse, Field: "constraints", Message: err.Error()}
	}

	nonce, err := crypto.GenerateNonce()
	if err != nil {
		return nil, err
	}

	version := params.Version
	if version == "" {
		version = DefaultProtocolVersion
	}

	doc := &Document{
		Version:           version,
		Issuer:            params.Issuer,
		Beneficiary:       params.Beneficiary,
		Constraints:       params.Constraints,
		Nonce:             nonce,
		CreatedAt:         crypto.NowISO8601(),
		ActivatesAt:       params.ActivatesAt,
		ExpiresAt:         params.ExpiresAt,
		Enforcement:       params.Enforcement,
		Proof:             params.Proof,
		Chain:             params.Chain,
		Metadata:          params.Metadata,
		Countersignatures: nil,
		ID:                "",
		Signature:         "",
	}

	canonical, err := crypto.CanonicalizeJSONBytes(doc)
	if err != nil {
		return nil, err
	}
	if len(canonical) > MaxDocumentSize {
		return nil, &BuildError{Reason: ReasonDocumentTooLarge, Message: "canonical document exceeds MAX_DOCUMENT_SIZE"}
	}

	sig, err := crypto.Sign(canonical, params.IssuerSecretKey)
	if err != nil {
		return nil, err
	}
	doc.Signature = hexEncode(sig)

	idForm := canonicalForm(doc)
	idCanonical, err := crypto.CanonicalizeJSONBytes(&idForm)
	if err != nil {
		return nil, err
	}
	doc.ID = crypto.SHA256Hex(idCanonical)

	finalCanonical, err := crypto.CanonicalizeJSONBytes(doc)
	if err != nil {
		return nil, err
	}
	if len(finalCanonical) > MaxDocumentSize {
		return nil, &BuildError{Reason: ReasonDocumentTooLarge, Message: "canonical document exceeds MAX_DOCUMENT_SIZE"}
	}

	return doc, nil
}
