package store_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/covenantproto/covenant/pkg/store"
)

func TestMemoryStore_AuditRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, s.AppendAuditEntry(ctx, store.AuditEntryRecord{CovenantID: "cov-1", Sequence: 0, Hash: "h0"}))
	require.NoError(t, s.AppendAuditEntry(ctx, store.AuditEntryRecord{CovenantID: "cov-1", Sequence: 1, Hash: "h1"}))

	entries, err := s.ListAuditEntries(ctx, "cov-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "h1", entries[1].Hash)
}

func TestMemoryStore_ReceiptChainRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	require.NoError(t, s.AppendReceipt(ctx, store.ReceiptRecord{ID: "r1", AgentIdentityHash: "agent-1"}))
	require.NoError(t, s.AppendReceipt(ctx, store.ReceiptRecord{ID: "r2", AgentIdentityHash: "agent-1"}))

	chain, err := s.ListReceiptChain(ctx, "agent-1")
	require.NoError(t, err)
	require.Len(t, chain, 2)
}

func TestSQLStore_AppendAuditEntryUsesExpectedQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO audit_entries").
		WithArgs("cov-1", 0, "read", "/data/x", "ctxhash", "EXECUTED", "2026-01-01T00:00:00Z", "00", "h0", false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s := store.NewSQLStoreWithDB(db, false)
	err = s.AppendAuditEntry(context.Background(), store.AuditEntryRecord{
		CovenantID: "cov-1", Sequence: 0, Action: "read", Resource: "/data/x",
		ContextHash: "ctxhash", Outcome: "EXECUTED", Timestamp: "2026-01-01T00:00:00Z",
		PreviousHash: "00", Hash: "h0",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
