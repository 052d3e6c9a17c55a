package flow

// defaultHandleToken stands in for an absent source handle in edge ids.
const defaultHandleToken = "handle"

// EdgeID returns the id AddEdge assigns to the edge created from c.
func EdgeID(c Connection) string {
	sh := c.SourceHandle
	if sh == "" {
		sh = defaultHandleToken
	}
	return c.Source + "-" + c.Target + "-" + sh
}

// AddEdge appends an edge for c with a closed arrow marker. If c is not
// complete, edges is returned as is.
//
// AddEdge does not deduplicate: connecting the same handles twice yields
// two edges sharing one id.
func AddEdge(c Connection, edges []Edge) []Edge {
	if !c.Complete() {
		return edges
	}
	out := make([]Edge, len(edges), len(edges)+1)
	copy(out, edges)
	return append(out, Edge{
		ID:           EdgeID(c),
		Source:       c.Source,
		Target:       c.Target,
		SourceHandle: c.SourceHandle,
		TargetHandle: c.TargetHandle,
		MarkerEnd:    &Marker{Type: MarkerArrowClosed},
	})
}

// ApplyNodeChanges returns nodes with every position change applied. When
// several changes target one node the first wins. Nodes without a change
// are copied over untouched.
func ApplyNodeChanges[T any](changes []NodeChange, nodes []Node[T]) []Node[T] {
	out := make([]Node[T], len(nodes))
	for i, n := range nodes {
		out[i] = n
		for _, ch := range changes {
			if ch.ID != n.ID {
				continue
			}
			if ch.Type == ChangePosition {
				out[i].Position = ch.Position
			}
			break
		}
	}
	return out
}

// ApplyEdgeChanges returns edges without those named by a change. The order
// of the remaining edges is preserved.
func ApplyEdgeChanges(changes []EdgeChange, edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if !removed(changes, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

func removed(changes []EdgeChange, id string) bool {
	for _, ch := range changes {
		if ch.ID == id {
			return true
		}
	}
	return false
}
