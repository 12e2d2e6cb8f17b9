// Package evidence ships a monitor's Merkle-committed audit log or a
// reputation snapshot to object storage, the way the teacher's governance
// layer externalizes decision evidence. Export is a convenience layer
// outside the core invariants: nothing in pkg/monitor, pkg/receipt, or
// pkg/reputation depends on it.
package evidence

import "context"

// Exporter ships a named blob of evidence (audit log export, reputation
// snapshot) to an external store and returns a locator the caller can use
// to retrieve it later.
type Exporter interface {
	Export(ctx context.Context, key string, data []byte) (location string, err error)
}
