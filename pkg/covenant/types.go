// Package covenant implements the covenant document: a content-addressed,
// Ed25519-signed commitment binding an issuer to a beneficiary under a CCL
// constraint body, with chained delegation and constraint narrowing.
package covenant

// EnforcementKind is the closed set of declared enforcement mechanisms a
// covenant may cite.
type EnforcementKind string

const (
	EnforcementCapability EnforcementKind = "capability"
	EnforcementMonitor    EnforcementKind = "monitor"
	EnforcementAudit      EnforcementKind = "audit"
	EnforcementBond       EnforcementKind = "bond"
)

func (k EnforcementKind) valid() bool {
	switch k {
	case EnforcementCapability, EnforcementMonitor, EnforcementAudit, EnforcementBond:
		return true
	}
	return false
}

// ProofKind is the closed set of declared proof mechanisms a covenant may
// cite.
type ProofKind string

const (
	ProofCapabilityManifest ProofKind = "capability_manifest"
	ProofAuditLog           ProofKind = "audit_log"
	ProofZKP                ProofKind = "zkp"
	ProofTEE                ProofKind = "tee"
)

func (k ProofKind) valid() bool {
	switch k {
	case ProofCapabilityManifest, ProofAuditLog, ProofZKP, ProofTEE:
		return true
	}
	return false
}

// ChainRelation is the closed set of relations a covenant may cite its
// parent under.
type ChainRelation string

const (
	RelationDelegates ChainRelation = "delegates"
	RelationRestricts ChainRelation = "restricts"
	RelationAmends    ChainRelation = "amends"
)

func (r ChainRelation) valid() bool {
	switch r {
	case RelationDelegates, RelationRestricts, RelationAmends:
		return true
	}
	return false
}

// MaxChainDepth is the protocol's hard ceiling on delegation chain depth.
const MaxChainDepth = 16

// MaxDocumentSize is the recommended ceiling, in bytes, on a covenant's
// canonical serialization.
const MaxDocumentSize = 131072

// DefaultProtocolVersion is the version stamped on newly built covenants.
const DefaultProtocolVersion = "1.0"

// SignatureScheme is the only signature scheme the protocol supports.
const SignatureScheme = "ed25519"

// HashAlgorithm is the only hash algorithm the protocol supports.
const HashAlgorithm = "sha256"

// Party identifies one side of a covenant: issuer or beneficiary.
type Party struct {
	ID          string `json:"id"`
	PublicKey   string `json:"publicKey"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
}

// Enforcement is a covenant's optional declared enforcement mechanism.
type Enforcement struct {
	Kind   EnforcementKind        `json:"kind"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// Proof is a covenant's optional declared proof mechanism.
type Proof struct {
	Kind   ProofKind              `json:"kind"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// Chain is a covenant's optional reference to a parent covenant.
type Chain struct {
	ParentID string        `json:"parentId"`
	Relation ChainRelation `json:"relation"`
	Depth    int           `json:"depth"`
}

// Metadata is free-form descriptive information about a covenant.
type Metadata struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Countersignature is an additional signer's endorsement of a covenant,
// appended without altering the covenant's own id or signature.
type Countersignature struct {
	SignerPublicKey string `json:"signerPublicKey"`
	SignerRole      string `json:"signerRole"`
	Timestamp       string `json:"timestamp"`
	Signature       string `json:"signature"`
}

// Document is a covenant: an immutable-once-signed, content-addressed
// commitment binding Issuer and Beneficiary to Constraints.
type Document struct {
	Version           string             `json:"version"`
	ID                string             `json:"id"`
	Issuer            Party              `json:"issuer"`
	Beneficiary       Party              `json:"beneficiary"`
	Constraints       string             `json:"constraints"`
	Nonce             string             `json:"nonce"`
	CreatedAt         string             `json:"createdAt"`
	ActivatesAt       string             `json:"activatesAt,omitempty"`
	ExpiresAt         string             `json:"expiresAt,omitempty"`
	Enforcement       *Enforcement       `json:"enforcement,omitempty"`
	Proof             *Proof             `json:"proof,omitempty"`
	Chain             *Chain             `json:"chain,omitempty"`
	Metadata          *Metadata          `json:"metadata,omitempty"`
	Countersignatures []Countersignature `json:"countersignatures,omitempty"`
	Signature         string             `json:"signature"`
}

// Check is the outcome of one named verification check.
type Check struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// VerifyResult is the full report produced by Verify.
type VerifyResult struct {
	Valid  bool    `json:"valid"`
	Checks []Check `json:"checks"`
}
