package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/covenantproto/covenant/pkg/crypto"
	"github.com/covenantproto/covenant/pkg/merkle"
	"github.com/covenantproto/covenant/pkg/store"
)

// Entry is one append-only audit-log record.
type Entry struct {
	CovenantID         string  `json:"covenantId"`
	Action             string  `json:"action"`
	Resource           string  `json:"resource"`
	ContextFingerprint string  `json:"contextFingerprint"`
	Outcome            Outcome `json:"outcome"`
	Timestamp          string  `json:"timestamp"`
	Canary             bool    `json:"canary,omitempty"`
	PreviousHash       string  `json:"previousHash"`
	Hash               string  `json:"hash"`
}

// zeroHash is 32 zero bytes in hex, the previousHash of the log's first
// entry.
var zeroHash = strings.Repeat("0", 64)

// AuditLog is a per-monitor, append-only, hash-chained log of Entries. It
// always keeps its own in-memory copy of every entry (VerifyIntegrity,
// MerkleRoot, and GenerateMerkleProof all work against it); backing, when
// non-nil, additionally persists each entry to a store.AuditStore.
type AuditLog struct {
	mu         sync.Mutex
	covenantID string
	entries    []Entry
	backing    store.AuditStore
}

// NewAuditLog returns an empty audit log for the given covenant. backing may
// be nil, in which case the log is purely in-memory.
func NewAuditLog(covenantID string, backing store.AuditStore) *AuditLog {
	return &AuditLog{covenantID: covenantID, backing: backing}
}

// Append computes the entry's hash (committing to the prior entry's hash)
// and appends it. It returns the finalized entry.
func (l *AuditLog) Append(action, resource, contextFingerprint string, outcome Outcome, timestamp string, canary bool) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := zeroHash
	if n := len(l.entries); n > 0 {
		prev = l.entries[n-1].Hash
	}

	entry := Entry{
		CovenantID:         l.covenantID,
		Action:             action,
		Resource:           resource,
		ContextFingerprint: contextFingerprint,
		Outcome:            outcome,
		Timestamp:          timestamp,
		Canary:             canary,
		PreviousHash:       prev,
	}

	hash, err := hashEntry(entry)
	if err != nil {
		return Entry{}, err
	}
	entry.Hash = hash

	if l.backing != nil {
		record := store.AuditEntryRecord{
			CovenantID:   entry.CovenantID,
			Sequence:     len(l.entries),
			Action:       entry.Action,
			Resource:     entry.Resource,
			ContextHash:  entry.ContextFingerprint,
			Outcome:      string(entry.Outcome),
			Timestamp:    entry.Timestamp,
			PreviousHash: entry.PreviousHash,
			Hash:         entry.Hash,
			CanaryTagged: entry.Canary,
		}
		if err := l.backing.AppendAuditEntry(context.Background(), record); err != nil {
			return Entry{}, fmt.Errorf("monitor: persisting audit entry: %w", err)
		}
	}

	l.entries = append(l.entries, entry)
	return entry, nil
}

func hashEntry(e Entry) (string, error) {
	payload := struct {
		CovenantID         string  `json:"covenantId"`
		Action             string  `json:"action"`
		Resource           string  `json:"resource"`
		ContextFingerprint string  `json:"contextFingerprint"`
		Outcome            Outcome `json:"outcome"`
		Timestamp          string  `json:"timestamp"`
		Canary             bool    `json:"canary,omitempty"`
		PreviousHash       string  `json:"previousHash"`
	}{e.CovenantID, e.Action, e.Resource, e.ContextFingerprint, e.Outcome, e.Timestamp, e.Canary, e.PreviousHash}

	canonical, err := crypto.CanonicalizeJSONBytes(payload)
	if err != nil {
		return "", err
	}
	return crypto.SHA256Hex(canonical), nil
}

// Entries returns a copy of the log's current entries.
func (l *AuditLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Count returns the number of entries currently in the log.
func (l *AuditLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CovenantID returns the covenant this log is attached to.
func (l *AuditLog) CovenantID() string {
	return l.covenantID
}

// MerkleRoot computes the Merkle root over the log's current entry hashes,
// in append order.
func (l *AuditLog) MerkleRoot() string {
	l.mu.Lock()
	leaves := make([]string, len(l.entries))
	for i, e := range l.entries {
		leaves[i] = e.Hash
	}
	l.mu.Unlock()
	return merkle.Build(leaves).Root()
}

// VerifyIntegrity recomputes every entry's hash and checks each
// previousHash equals the prior entry's hash.
func (l *AuditLog) VerifyIntegrity() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := zeroHash
	for _, e := range l.entries {
		if e.PreviousHash != prev {
			return false
		}
		recomputed, err := hashEntry(Entry{
			CovenantID: e.CovenantID, Action: e.Action, Resource: e.Resource,
			ContextFingerprint: e.ContextFingerprint, Outcome: e.Outcome,
			Timestamp: e.Timestamp, Canary: e.Canary, PreviousHash: e.PreviousHash,
		})
		if err != nil || recomputed != e.Hash {
			return false
		}
		prev = e.Hash
	}
	return true
}

// GenerateMerkleProof returns an inclusion proof for the entry at index.
func (l *AuditLog) GenerateMerkleProof(index int) (*merkle.Proof, error) {
	l.mu.Lock()
	leaves := make([]string, len(l.entries))
	for i, e := range l.entries {
		leaves[i] = e.Hash
	}
	l.mu.Unlock()
	return merkle.Build(leaves).Proof(index)
}
