package breach

import (
	"sync"

	"github.com/covenantproto/covenant/pkg/ccl"
)

type node struct {
	status     TrustStatus
	dependents []string // ordered, de-duplicated
}

// TrustGraph is a directed dependency graph of identity hashes with
// monotone status degradation under breach propagation. Nodes are created
// lazily as trusted on first reference.
type TrustGraph struct {
	mu        sync.Mutex
	nodes     map[string]*node
	listeners []onBreachListener
}

// NewTrustGraph returns an empty trust graph.
func NewTrustGraph() *TrustGraph {
	return &TrustGraph{nodes: make(map[string]*node)}
}

func (g *TrustGraph) ensure(hash string) *node {
	n, ok := g.nodes[hash]
	if !ok {
		n = &node{status: StatusTrusted}
		g.nodes[hash] = n
	}
	return n
}

// RegisterDependency records that dependent relies on provider: a breach of
// provider can propagate a status degradation to dependent.
func (g *TrustGraph) RegisterDependency(provider, dependent string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.ensure(provider)
	g.ensure(dependent)
	for _, d := range p.dependents {
		if d == dependent {
			return
		}
	}
	p.dependents = append(p.dependents, dependent)
}

// GetStatus returns hash's current status, or trusted if the hash is not a
// known node.
func (g *TrustGraph) GetStatus(hash string) TrustStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[hash]
	if !ok {
		return StatusTrusted
	}
	return n.status
}

// IsTrusted reports whether hash's status is trusted.
func (g *TrustGraph) IsTrusted(hash string) bool {
	return g.GetStatus(hash) == StatusTrusted
}

// onBreachListener is a registered callback and the handle used to remove
// it.
type onBreachListener struct {
	id int
	cb func(BreachEvent)
}

// ListenerHandle lets a caller remove a listener registered with OnBreach.
type ListenerHandle int

var listenerSeq int

// OnBreach registers cb to be called once per BreachEvent, before
// ProcessBreach returns. Returns a handle for RemoveListener.
func (g *TrustGraph) OnBreach(cb func(BreachEvent)) ListenerHandle {
	g.mu.Lock()
	defer g.mu.Unlock()

	listenerSeq++
	id := listenerSeq
	g.listeners = append(g.listeners, onBreachListener{id: id, cb: cb})
	return ListenerHandle(id)
}

// RemoveListener unregisters a listener previously returned by OnBreach.
func (g *TrustGraph) RemoveListener(h ListenerHandle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	filtered := g.listeners[:0]
	for _, l := range g.listeners {
		if l.id != int(h) {
			filtered = append(filtered, l)
		}
	}
	g.listeners = filtered
}

// ProcessBreach verifies the attestation, degrades the affected agent's
// status by severity, and propagates a one-level-weaker degradation to its
// dependents via breadth-first traversal. Returns the BreachEvents in BFS
// visit order; an unverifiable attestation returns an empty list and
// leaves the graph untouched.
func (g *TrustGraph) ProcessBreach(a *Attestation) []BreachEvent {
	if !VerifyBreachAttestation(a) {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var events []BreachEvent

	root := g.ensure(a.AffectedAgent)
	rootNew := rootStatusFor(a.Severity)
	if statusRank[rootNew] <= statusRank[root.status] {
		g.fireLocked(events)
		return events
	}
	prev := root.status
	root.status = rootNew
	events = append(events, BreachEvent{
		AffectedAgent:    a.AffectedAgent,
		PreviousStatus:   prev,
		NewStatus:        rootNew,
		PropagationDepth: 0,
		AttestationID:    a.ID,
	})

	visited := map[string]bool{a.AffectedAgent: true}
	queue := []string{a.AffectedAgent}
	depth := 0
	for len(queue) > 0 {
		depth++
		var next []string
		for _, providerHash := range queue {
			provider := g.nodes[providerHash]
			if provider == nil {
				continue
			}
			for _, depHash := range provider.dependents {
				if visited[depHash] {
					continue
				}
				visited[depHash] = true
				next = append(next, depHash)

				dep := g.ensure(depHash)
				candidate := degradeOneLevel(provider.status)
				newStatus := worseOf(dep.status, candidate)
				if newStatus != dep.status {
					prevStatus := dep.status
					dep.status = newStatus
					events = append(events, BreachEvent{
						AffectedAgent:    depHash,
						PreviousStatus:   prevStatus,
						NewStatus:        newStatus,
						PropagationDepth: depth,
						AttestationID:    a.ID,
					})
				}
			}
		}
		queue = next
	}

	g.fireLocked(events)
	return events
}

func (g *TrustGraph) fireLocked(events []BreachEvent) {
	for _, e := range events {
		for _, l := range g.listeners {
			l.cb(e)
		}
	}
}

func rootStatusFor(s ccl.Severity) TrustStatus {
	switch s {
	case ccl.SeverityCritical:
		return StatusRevoked
	case ccl.SeverityHigh:
		return StatusRestricted
	case ccl.SeverityMedium, ccl.SeverityLow:
		return StatusDegraded
	default:
		return StatusDegraded
	}
}
