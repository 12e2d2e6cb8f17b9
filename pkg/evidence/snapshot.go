package evidence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/covenantproto/covenant/pkg/monitor"
	"github.com/covenantproto/covenant/pkg/reputation"
)

// ExportAuditLog marshals a monitor's current entries and Merkle root to
// JSON and ships them through exp under a covenant-scoped key.
func ExportAuditLog(ctx context.Context, exp Exporter, log *monitor.AuditLog) (string, error) {
	snapshot := struct {
		CovenantID string          `json:"covenantId"`
		MerkleRoot string          `json:"merkleRoot"`
		Entries    []monitor.Entry `json:"entries"`
	}{
		CovenantID: log.CovenantID(),
		MerkleRoot: log.MerkleRoot(),
		Entries:    log.Entries(),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return exp.Export(ctx, fmt.Sprintf("audit-log/%s.json", log.CovenantID()), data)
}

// ExportReputationSnapshot ships a reputation.Score through exp under an
// agent-scoped key.
func ExportReputationSnapshot(ctx context.Context, exp Exporter, score reputation.Score) (string, error) {
	data, err := json.Marshal(score)
	if err != nil {
		return "", err
	}
	return exp.Export(ctx, fmt.Sprintf("reputation/%s.json", score.AgentHash), data)
}
