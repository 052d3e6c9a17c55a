package decision

import (
	"github.com/matzehuels/treeflow/pkg/errors"
)

// Validate checks that t is a well-formed decision tree:
//   - node and edge ids are valid and unique
//   - every node type is a known [Kind] matching its data
//   - component nodes name a known [ComponentType]
//   - edges reference existing nodes
//
// All problems are reported together as an INVALID_DOCUMENT error.
func Validate(t Tree) error {
	p := errors.Problems{Code: errors.ErrCodeInvalidDocument}

	nodes := make(map[string]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		if err := errors.ValidateID("node", n.ID); err != nil {
			p.Addf("%s", errors.UserMessage(err))
			continue
		}
		if nodes[n.ID] {
			p.Addf("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = true

		if err := errors.ValidateNodeType(n.Type, KnownKinds()...); err != nil {
			p.Addf("node %q: %s", n.ID, errors.UserMessage(err))
			continue
		}
		if string(n.Data.NodeType) != n.Type {
			p.Addf("node %q: data.nodeType %q does not match type %q", n.ID, n.Data.NodeType, n.Type)
		}
		if n.Data.NodeType == KindComponent && !n.Data.ComponentType.Valid() {
			p.Addf("node %q: unknown component type %q", n.ID, n.Data.ComponentType)
		}
	}

	edges := make(map[string]bool, len(t.Edges))
	for _, e := range t.Edges {
		if err := errors.ValidateID("edge", e.ID); err != nil {
			p.Addf("%s", errors.UserMessage(err))
			continue
		}
		if edges[e.ID] {
			p.Addf("duplicate edge id %q", e.ID)
		}
		edges[e.ID] = true
		if !nodes[e.Source] {
			p.Addf("edge %q: unknown source %q", e.ID, e.Source)
		}
		if !nodes[e.Target] {
			p.Addf("edge %q: unknown target %q", e.ID, e.Target)
		}
	}

	return p.Err("invalid tree")
}
