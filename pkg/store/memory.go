package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory AuditStore/ReceiptStore. No package in this
// module selects it by default; it is used only where a caller passes it in.
type MemoryStore struct {
	mu       sync.Mutex
	audit    map[string][]AuditEntryRecord
	receipts map[string][]ReceiptRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		audit:    make(map[string][]AuditEntryRecord),
		receipts: make(map[string][]ReceiptRecord),
	}
}

func (s *MemoryStore) AppendAuditEntry(_ context.Context, entry AuditEntryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit[entry.CovenantID] = append(s.audit[entry.CovenantID], entry)
	return nil
}

func (s *MemoryStore) ListAuditEntries(_ context.Context, covenantID string) ([]AuditEntryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AuditEntryRecord, len(s.audit[covenantID]))
	copy(out, s.audit[covenantID])
	return out, nil
}

func (s *MemoryStore) AppendReceipt(_ context.Context, record ReceiptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[record.AgentIdentityHash] = append(s.receipts[record.AgentIdentityHash], record)
	return nil
}

func (s *MemoryStore) ListReceiptChain(_ context.Context, agentIdentityHash string) ([]ReceiptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReceiptRecord, len(s.receipts[agentIdentityHash]))
	copy(out, s.receipts[agentIdentityHash])
	return out, nil
}
