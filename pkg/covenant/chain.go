package covenant

import (
	"github.com/covenantproto/covenant/pkg/ccl"
)

// Resolver looks up a covenant document by its content-addressed ID. An
// implementation might consult an in-memory map, a store, or a discovery
// client; the core protocol only depends on this narrow contract.
type Resolver interface {
	Resolve(id string) (*Document, error)
}

// ResolveChain walks doc's chain.parentId upward through resolver, yielding
// ancestors ordered immediate-parent-first, root-last. A parent id that
// reappears (a cycle) or a chain longer than MaxChainDepth fails with a
// ChainError; a parent id the resolver cannot find also fails.
func ResolveChain(doc *Document, resolver Resolver) ([]*Document, error) {
	if doc.Chain == nil {
		return nil, nil
	}

	var ancestors []*Document
	visited := map[string]bool{doc.ID: true}
	currentID := doc.Chain.ParentID

	for depth := 0; currentID != ""; depth++ {
		if depth >= MaxChainDepth {
			return nil, &ChainError{Reason: "depth exceeded", ID: currentID}
		}
		if visited[currentID] {
			return nil, &ChainError{Reason: "cycle detected", ID: currentID}
		}
		visited[currentID] = true

		parent, err := resolver.Resolve(currentID)
		if err != nil {
			return nil, &ChainError{Reason: "ancestor not found: " + err.Error(), ID: currentID}
		}
		ancestors = append(ancestors, parent)

		if parent.Chain == nil {
			break
		}
		currentID = parent.Chain.ParentID
	}
	return ancestors, nil
}

// ComputeEffectiveConstraints folds doc's own policy with every ancestor's
// policy (doc first, ancestors in parent-to-root order) via ccl.Merge,
// preserving deny-wins semantics throughout.
func ComputeEffectiveConstraints(doc *Document, ancestors []*Document) (*ccl.Policy, error) {
	merged, err := ccl.Parse(doc.Constraints)
	if err != nil {
		return nil, err
	}
	for _, ancestor := range ancestors {
		ancestorPolicy, err := ccl.Parse(ancestor.Constraints)
		if err != nil {
			return nil, err
		}
		merged = ccl.Merge(merged, ancestorPolicy)
	}
	return merged, nil
}

// ValidateChainNarrowing wraps ccl.ValidateNarrowing over the parsed
// constraint bodies of child and parent. Transitive narrowing across a
// multi-hop chain is the caller's responsibility: compose this pairwise
// check along each (child, parent) link.
func ValidateChainNarrowing(child, parent *Document) (ccl.NarrowingResult, error) {
	childPolicy, err := ccl.Parse(child.Constraints)
	if err != nil {
		return ccl.NarrowingResult{}, err
	}
	parentPolicy, err := ccl.Parse(parent.Constraints)
	if err != nil {
		return ccl.NarrowingResult{}, err
	}
	return ccl.ValidateNarrowing(parentPolicy, childPolicy), nil
}
