package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLStore implements AuditStore and ReceiptStore over a database/sql
// connection. It works against any driver that speaks standard SQL
// placeholders for its dialect; NewPostgresStore and NewSQLiteStore wire
// the two drivers this module imports.
type SQLStore struct {
	db          *sql.DB
	placeholder func(n int) string
}

// NewPostgresStore opens a postgres-backed SQLStore via lib/pq.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}
	s := &SQLStore{db: db, placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore opens an embedded sqlite-backed SQLStore via
// modernc.org/sqlite, suitable for single-node/dev deployments.
func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	s := &SQLStore{db: db, placeholder: func(int) string { return "?" }}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSQLStoreWithDB wraps an already-open *sql.DB, used by tests against
// go-sqlmock.
func NewSQLStoreWithDB(db *sql.DB, postgresPlaceholders bool) *SQLStore {
	ph := func(int) string { return "?" }
	if postgresPlaceholders {
		ph = func(n int) string { return fmt.Sprintf("$%d", n) }
	}
	return &SQLStore{db: db, placeholder: ph}
}

func (s *SQLStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_entries (
			covenant_id TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			action TEXT NOT NULL,
			resource TEXT NOT NULL,
			context_hash TEXT NOT NULL,
			outcome TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			previous_hash TEXT NOT NULL,
			hash TEXT NOT NULL,
			canary_tagged BOOLEAN NOT NULL,
			PRIMARY KEY (covenant_id, sequence)
		);
		CREATE TABLE IF NOT EXISTS receipts (
			id TEXT PRIMARY KEY,
			covenant_id TEXT NOT NULL,
			agent_identity_hash TEXT NOT NULL,
			receipt_hash TEXT NOT NULL,
			previous_receipt_hash TEXT,
			outcome TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			raw BLOB NOT NULL
		);
	`)
	return err
}

func (s *SQLStore) AppendAuditEntry(ctx context.Context, e AuditEntryRecord) error {
	q := fmt.Sprintf(`INSERT INTO audit_entries
		(covenant_id, sequence, action, resource, context_hash, outcome, timestamp, previous_hash, hash, canary_tagged)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4), s.placeholder(5),
		s.placeholder(6), s.placeholder(7), s.placeholder(8), s.placeholder(9), s.placeholder(10))
	_, err := s.db.ExecContext(ctx, q,
		e.CovenantID, e.Sequence, e.Action, e.Resource, e.ContextHash,
		e.Outcome, e.Timestamp, e.PreviousHash, e.Hash, e.CanaryTagged)
	return err
}

func (s *SQLStore) ListAuditEntries(ctx context.Context, covenantID string) ([]AuditEntryRecord, error) {
	q := fmt.Sprintf(`SELECT covenant_id, sequence, action, resource, context_hash, outcome, timestamp, previous_hash, hash, canary_tagged
		FROM audit_entries WHERE covenant_id = %s ORDER BY sequence ASC`, s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, q, covenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntryRecord
	for rows.Next() {
		var e AuditEntryRecord
		if err := rows.Scan(&e.CovenantID, &e.Sequence, &e.Action, &e.Resource, &e.ContextHash,
			&e.Outcome, &e.Timestamp, &e.PreviousHash, &e.Hash, &e.CanaryTagged); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) AppendReceipt(ctx context.Context, r ReceiptRecord) error {
	q := fmt.Sprintf(`INSERT INTO receipts
		(id, covenant_id, agent_identity_hash, receipt_hash, previous_receipt_hash, outcome, completed_at, raw)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)`,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4),
		s.placeholder(5), s.placeholder(6), s.placeholder(7), s.placeholder(8))
	_, err := s.db.ExecContext(ctx, q,
		r.ID, r.CovenantID, r.AgentIdentityHash, r.ReceiptHash, r.PreviousReceiptHash, r.Outcome, r.CompletedAt, r.Raw)
	return err
}

func (s *SQLStore) ListReceiptChain(ctx context.Context, agentIdentityHash string) ([]ReceiptRecord, error) {
	q := fmt.Sprintf(`SELECT id, covenant_id, agent_identity_hash, receipt_hash, previous_receipt_hash, outcome, completed_at, raw
		FROM receipts WHERE agent_identity_hash = %s ORDER BY completed_at ASC`, s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, q, agentIdentityHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReceiptRecord
	for rows.Next() {
		var r ReceiptRecord
		var prev sql.NullString
		if err := rows.Scan(&r.ID, &r.CovenantID, &r.AgentIdentityHash, &r.ReceiptHash, &prev, &r.Outcome, &r.CompletedAt, &r.Raw); err != nil {
			return nil, err
		}
		r.PreviousReceiptHash = prev.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
