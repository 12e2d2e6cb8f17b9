package identity

import (
	"crypto/ed25519"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// CreateParams carries everything CreateIdentity needs to mint the root
// identity for an agent.
type CreateParams struct {
	OperatorPublicKey  string
	OperatorIdentifier string
	Model              ModelAttestation
	Capabilities       []string
	Deployment         Deployment
	OperatorSecretKey  ed25519.PrivateKey
	Description        string
}

// CreateIdentity canonicalizes the model attestation and deployment, hashes
// the sorted capability list into a capability manifest hash, and sets the
// identity's ID to SHA-256 of operator public key || model canonical ||
// capability manifest hash || deployment canonical. It appends the first
// lineage entry (changeType=created, parentHash=nil) signed by the
// operator key.
func CreateIdentity(params CreateParams) (*Identity, error) {
	if params.OperatorPublicKey == "" {
		return nil, &BuildError{Field: "operatorPublicKey", Message: "required"}
	}
	if len(params.OperatorSecretKey) != ed25519.PrivateKeySize {
		return nil, &BuildError{Field: "operatorSecretKey", Message: "must be 64 bytes"}
	}

	capHash, err := capabilityManifestHash(params.Capabilities)
	if err != nil {
		return nil, err
	}

	id, err := compositeHash(params.OperatorPublicKey, params.Model, capHash, params.Deployment)
	if err != nil {
		return nil, err
	}

	now := crypto.NowISO8601()
	identity := &Identity{
		ID:                     id,
		OperatorPublicKey:      params.OperatorPublicKey,
		OperatorIdentifier:     params.OperatorIdentifier,
		Model:                  params.Model,
		Capabilities:           append([]string{}, params.Capabilities...),
		CapabilityManifestHash: capHash,
		Deployment:             params.Deployment,
		Version:                1,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	entry, err := signLineageEntry(ChangeCreated, params.Description, now, id, nil, true, params.OperatorSecretKey)
	if err != nil {
		return nil, err
	}
	identity.Lineage = []LineageEntry{entry}

	return identity, nil
}

// Update is the subset of an identity's fields EvolveIdentity may change in
// one step.
type Update struct {
	ChangeType  ChangeType
	Description string
	Model       *ModelAttestation
	Capability  []string
	Deployment  *Deployment
}

// EvolveIdentity applies update to existing, recomputes the identity's
// content-addressed ID, and appends a new lineage entry with
// parentHash=existing.ID. ReputationCarryForward is true for every change
// type except ChangeReputationReset.
func EvolveIdentity(existing *Identity, update Update, operatorSecretKey ed25519.PrivateKey) (*Identity, error) {
	if !update.ChangeType.valid() || update.ChangeType == ChangeCreated {
		return nil, &BuildError{Field: "changeType", Message: "must be a valid non-root change type"}
	}

	next := *existing
	if update.Model != nil {
		next.Model = *update.Model
	}
	if update.Capability != nil {
		next.Capabilities = append([]string{}, update.Capability...)
	}
	if update.Deployment != nil {
		next.Deployment = *update.Deployment
	}

	capHash, err := capabilityManifestHash(next.Capabilities)
	if err != nil {
		return nil, err
	}
	next.CapabilityManifestHash = capHash

	newID, err := compositeHash(next.OperatorPublicKey, next.Model, capHash, next.Deployment)
	if err != nil {
		return nil, err
	}
	next.ID = newID

	now := crypto.NowISO8601()
	next.UpdatedAt = now
	next.Version = existing.Version + 1

	carryForward := update.ChangeType != ChangeReputationReset
	parent := existing.ID
	entry, err := signLineageEntry(update.ChangeType, update.Description, now, newID, &parent, carryForward, operatorSecretKey)
	if err != nil {
		return nil, err
	}
	next.Lineage = append(append([]LineageEntry{}, existing.Lineage...), entry)

	return &next, nil
}

func capabilityManifestHash(capabilities []string) (string, error) {
	sorted := append([]string{}, capabilities...)
	sort.Strings(sorted)
	return crypto.SHA256Object(sorted)
}

func compositeHash(operatorPublicKey string, model ModelAttestation, capabilityManifestHash string, deployment Deployment) (string, error) {
	modelCanonical, err := crypto.CanonicalizeJSON(model)
	if err != nil {
		return "", err
	}
	deploymentCanonical, err := crypto.CanonicalizeJSON(deployment)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(operatorPublicKey)
	b.WriteString(modelCanonical)
	b.WriteString(capabilityManifestHash)
	b.WriteString(deploymentCanonical)
	return crypto.SHA256String(b.String()), nil
}

func signLineageEntry(changeType ChangeType, description, timestamp, identityHash string, parentHash *string, carryForward bool, operatorSecretKey ed25519.PrivateKey) (LineageEntry, error) {
	payload := struct {
		ChangeType             ChangeType `json:"changeType"`
		Description            string     `json:"description"`
		Timestamp              string     `json:"timestamp"`
		IdentityHash           string     `json:"identityHash"`
		ParentHash             *string    `json:"parentHash"`
		ReputationCarryForward bool       `json:"reputationCarryForward"`
	}{changeType, description, timestamp, identityHash, parentHash, carryForward}

	canonical, err := crypto.CanonicalizeJSONBytes(payload)
	if err != nil {
		return LineageEntry{}, err
	}
	sig, err := crypto.Sign(canonical, operatorSecretKey)
	if err != nil {
		return LineageEntry{}, err
	}

	return LineageEntry{
		ChangeType:             changeType,
		Description:            description,
		Timestamp:              timestamp,
		IdentityHash:           identityHash,
		ParentHash:             parentHash,
		ReputationCarryForward: carryForward,
		Signature:              hex.EncodeToString(sig),
	}, nil
}
