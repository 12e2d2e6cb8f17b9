package wire

var rawSchemas = map[DocumentKind]string{
	KindCovenant: `{
		"type": "object",
		"required": ["version", "id", "issuer", "beneficiary", "constraints", "nonce", "createdAt", "signature"],
		"properties": {
			"version": {"type": "string"},
			"id": {"type": "string"},
			"issuer": {"type": "object"},
			"beneficiary": {"type": "object"},
			"constraints": {"type": "string"},
			"nonce": {"type": "string"},
			"createdAt": {"type": "string"},
			"activatesAt": {"type": ["string", "null"]},
			"expiresAt": {"type": ["string", "null"]},
			"enforcement": {"type": ["object", "null"]},
			"proof": {"type": ["object", "null"]},
			"chain": {"type": ["object", "null"]},
			"metadata": {"type": ["object", "null"]},
			"countersignatures": {"type": ["array", "null"]},
			"signature": {"type": "string"}
		}
	}`,
	KindReceipt: `{
		"type": "object",
		"required": ["id", "covenantId", "agentIdentityHash", "principalPublicKey", "outcome", "proofHash", "durationMs", "completedAt", "receiptHash", "agentSignature"],
		"properties": {
			"id": {"type": "string"},
			"covenantId": {"type": "string"},
			"agentIdentityHash": {"type": "string"},
			"principalPublicKey": {"type": "string"},
			"outcome": {"enum": ["fulfilled", "partial", "failed", "breached"]},
			"breachSeverity": {"enum": ["low", "medium", "high", "critical", ""]},
			"proofHash": {"type": "string"},
			"durationMs": {"type": "integer"},
			"completedAt": {"type": "string"},
			"previousReceiptHash": {"type": ["string", "null"]},
			"receiptHash": {"type": "string"},
			"agentSignature": {"type": "string"}
		}
	}`,
	KindBreach: `{
		"type": "object",
		"required": ["id", "covenantId", "affectedAgent", "violatedConstraint", "severity", "deniedAction", "deniedResource", "evidenceHash", "reporterPublicKey", "recommendedAction", "timestamp", "signature"],
		"properties": {
			"id": {"type": "string"},
			"covenantId": {"type": "string"},
			"affectedAgent": {"type": "string"},
			"violatedConstraint": {"type": "string"},
			"severity": {"enum": ["low", "medium", "high", "critical"]},
			"deniedAction": {"type": "string"},
			"deniedResource": {"type": "string"},
			"evidenceHash": {"type": "string"},
			"relatedCovenants": {"type": ["array", "null"]},
			"reporterPublicKey": {"type": "string"},
			"recommendedAction": {"enum": ["note", "degrade", "restrict", "revoke"]},
			"timestamp": {"type": "string"},
			"signature": {"type": "string"}
		}
	}`,
	KindIdentity: `{
		"type": "object",
		"required": ["id", "operatorPublicKey", "model", "capabilities", "capabilityManifestHash", "deployment", "version", "lineage"],
		"properties": {
			"id": {"type": "string"},
			"operatorPublicKey": {"type": "string"},
			"operatorIdentifier": {"type": "string"},
			"model": {"type": "object"},
			"capabilities": {"type": "array", "items": {"type": "string"}},
			"capabilityManifestHash": {"type": "string"},
			"deployment": {"type": "object"},
			"version": {"type": "integer", "minimum": 1},
			"createdAt": {"type": "string"},
			"updatedAt": {"type": "string"},
			"lineage": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["changeType", "description", "timestamp", "identityHash", "reputationCarryForward", "signature"],
					"properties": {
						"changeType": {"enum": ["created", "capability_change", "model_update", "deployment_change", "operator_rotation", "reputation_reset"]},
						"description": {"type": "string"},
						"timestamp": {"type": "string"},
						"identityHash": {"type": "string"},
						"parentHash": {"type": ["string", "null"]},
						"reputationCarryForward": {"type": "boolean"},
						"signature": {"type": "string"}
					}
				}
			}
		}
	}`,
}
