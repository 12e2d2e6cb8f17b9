package reputation

import (
	"github.com/covenantproto/covenant/pkg/crypto"
	"github.com/covenantproto/covenant/pkg/merkle"
	"github.com/covenantproto/covenant/pkg/receipt"
)

var severityPenaltyWeight = map[receipt.Severity]float64{
	receipt.SeverityLow:      0.15,
	receipt.SeverityMedium:   0.40,
	receipt.SeverityHigh:     0.70,
	receipt.SeverityCritical: 1.0,
}

// ComputeReputationScore aggregates receipts (and optionally endorsements)
// for one agent into a bounded reputation score. Agents with fewer than
// MinimumExecutions receipts have their weightedScore scaled down by
// total/MinimumExecutions so a thin history can't buy full confidence.
func ComputeReputationScore(agentHash string, receipts []*receipt.Receipt, endorsements []Endorsement) Score {
	s := Score{AgentHash: agentHash, LastUpdatedAt: crypto.NowISO8601()}

	var severitySum float64
	leafHashes := make([]string, 0, len(receipts))
	for _, r := range receipts {
		switch r.Outcome {
		case receipt.OutcomeFulfilled:
			s.Fulfilled++
		case receipt.OutcomePartial:
			s.Partial++
		case receipt.OutcomeFailed:
			s.Failed++
		case receipt.OutcomeBreached:
			s.Breached++
			severitySum += severityPenaltyWeight[r.BreachSeverity]
		}
		leafHashes = append(leafHashes, r.ReceiptHash)
	}
	s.TotalExecutions = len(receipts)

	denom := s.TotalExecutions
	if denom == 0 {
		denom = 1
	}
	s.SuccessRate = (float64(s.Fulfilled) + float64(s.Partial)*0.5) / float64(denom)

	var avgSeverityPenalty float64
	if s.Breached > 0 {
		avgSeverityPenalty = severitySum / float64(s.Breached)
	}
	breachFraction := float64(s.Breached) / float64(denom)

	endorsementBlend := s.SuccessRate
	if len(endorsements) > 0 {
		var weightSum, weightTotal float64
		for _, e := range endorsements {
			if e.EndorsedHash != agentHash {
				continue
			}
			weightSum += e.Weight
			weightTotal++
		}
		if weightTotal > 0 {
			endorsementBlend = weightSum / weightTotal
		}
	}

	raw := s.SuccessRate*0.55 + endorsementBlend*0.25 + (1-avgSeverityPenalty*breachFraction)*0.20
	raw = clamp01(raw)

	confidenceScale := 1.0
	if s.TotalExecutions < MinimumExecutions {
		confidenceScale = float64(s.TotalExecutions) / float64(MinimumExecutions)
	}
	s.WeightedScore = clamp01(raw * confidenceScale)

	s.ReceiptsMerkleRoot = merkle.Build(leafHashes).Root()
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
