package identity

import (
	"crypto/ed25519"
	"sort"
	"strconv"

	"github.com/covenantproto/covenant/pkg/crypto"
)

// Verify validates identity against the invariants in spec §4.6: the
// composite hash matches ID, every lineage signature verifies under the
// operator key, lineage is non-empty with a nil-parent first entry and
// non-decreasing timestamps, the capability manifest hash matches, and
// version equals lineage length.
func Verify(identity *Identity) VerifyResult {
	checks := []Check{
		checkCompositeHash(identity),
		checkCapabilityManifestHash(identity),
		checkLineageNonEmpty(identity),
		checkLineageRootParentNil(identity),
		checkLineageTimestampsOrdered(identity),
		checkLineageSignatures(identity),
		checkVersionMatchesLineage(identity),
	}

	valid := true
	for _, c := range checks {
		if !c.Passed {
			valid = false
			break
		}
	}
	return VerifyResult{Valid: valid, Checks: checks}
}

func checkCompositeHash(identity *Identity) Check {
	recomputed, err := compositeHash(identity.OperatorPublicKey, identity.Model, identity.CapabilityManifestHash, identity.Deployment)
	if err != nil {
		return Check{Name: "composite_hash", Passed: false, Message: "failed to recompute composite hash: " + err.Error()}
	}
	if recomputed != identity.ID {
		return Check{Name: "composite_hash", Passed: false, Message: "recomputed id does not match identity.id"}
	}
	return Check{Name: "composite_hash", Passed: true, Message: "composite hash matches id"}
}

func checkCapabilityManifestHash(identity *Identity) Check {
	sorted := append([]string{}, identity.Capabilities...)
	sort.Strings(sorted)
	recomputed, err := crypto.SHA256Object(sorted)
	if err != nil {
		return Check{Name: "capability_manifest_hash", Passed: false, Message: err.Error()}
	}
	if recomputed != identity.CapabilityManifestHash {
		return Check{Name: "capability_manifest_hash", Passed: false, Message: "recomputed manifest hash does not match"}
	}
	return Check{Name: "capability_manifest_hash", Passed: true, Message: "capability manifest hash matches sorted capabilities"}
}

func checkLineageNonEmpty(identity *Identity) Check {
	if len(identity.Lineage) == 0 {
		return Check{Name: "lineage_non_empty", Passed: false, Message: "lineage must contain at least one entry"}
	}
	return Check{Name: "lineage_non_empty", Passed: true, Message: "lineage is non-empty"}
}

func checkLineageRootParentNil(identity *Identity) Check {
	if len(identity.Lineage) == 0 {
		return Check{Name: "lineage_root_parent_nil", Passed: false, Message: "no lineage to check"}
	}
	if identity.Lineage[0].ParentHash != nil {
		return Check{Name: "lineage_root_parent_nil", Passed: false, Message: "first lineage entry must have a nil parentHash"}
	}
	return Check{Name: "lineage_root_parent_nil", Passed: true, Message: "first lineage entry has nil parentHash"}
}

func checkLineageTimestampsOrdered(identity *Identity) Check {
	var prev string
	for i, entry := range identity.Lineage {
		if i > 0 && entry.Timestamp < prev {
			return Check{Name: "lineage_timestamps_ordered", Passed: false, Message: "lineage timestamps are not non-decreasing"}
		}
		prev = entry.Timestamp
	}
	return Check{Name: "lineage_timestamps_ordered", Passed: true, Message: "lineage timestamps are non-decreasing"}
}

func checkLineageSignatures(identity *Identity) Check {
	pub, err := crypto.DecodeHex(identity.OperatorPublicKey, ed25519.PublicKeySize)
	if err != nil {
		return Check{Name: "lineage_signatures", Passed: false, Message: "invalid operator public key: " + err.Error()}
	}
	for i, entry := range identity.Lineage {
		payload := struct {
			ChangeType             ChangeType `json:"changeType"`
			Description            string     `json:"description"`
			Timestamp              string     `json:"timestamp"`
			IdentityHash           string     `json:"identityHash"`
			ParentHash             *string    `json:"parentHash"`
			ReputationCarryForward bool       `json:"reputationCarryForward"`
		}{entry.ChangeType, entry.Description, entry.Timestamp, entry.IdentityHash, entry.ParentHash, entry.ReputationCarryForward}

		canonical, err := crypto.CanonicalizeJSONBytes(payload)
		if err != nil {
			return Check{Name: "lineage_signatures", Passed: false, Message: err.Error()}
		}
		sig, err := crypto.DecodeHex(entry.Signature, ed25519.SignatureSize)
		if err != nil {
			return Check{Name: "lineage_signatures", Passed: false, Message: "lineage entry signature malformed"}
		}
		if !crypto.Verify(canonical, sig, ed25519.PublicKey(pub)) {
			return Check{Name: "lineage_signatures", Passed: false, Message: "lineage entry at index " + strconv.Itoa(i) + " does not verify"}
		}
	}
	return Check{Name: "lineage_signatures", Passed: true, Message: "every lineage entry verifies under the operator key"}
}

func checkVersionMatchesLineage(identity *Identity) Check {
	if identity.Version != len(identity.Lineage) {
		return Check{Name: "version_matches_lineage", Passed: false, Message: "version does not equal lineage length"}
	}
	return Check{Name: "version_matches_lineage", Passed: true, Message: "version equals lineage length"}
}
