package decision

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/flow"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used to report edits at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIDGenerator replaces the generator of ids for dropped nodes.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// Editor owns a decision tree and applies the changes a canvas proposes.
// It is not safe for concurrent use.
type Editor struct {
	nodes    []Node
	edges    []flow.Edge
	selected string
	newID    func() string
	logger   *log.Logger
}

// NewEditor returns an editor for t. The tree's slices are copied.
func NewEditor(t Tree, opts ...Option) *Editor {
	e := &Editor{
		nodes:  slices.Clone(t.Nodes),
		edges:  slices.Clone(t.Edges),
		newID:  func() string { return "node_" + uuid.NewString() },
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Nodes returns the current nodes.
func (e *Editor) Nodes() []Node { return e.nodes }

// Edges returns the current edges.
func (e *Editor) Edges() []flow.Edge { return e.edges }

// Tree returns a copy of the current tree.
func (e *Editor) Tree() Tree {
	return Tree{Nodes: slices.Clone(e.nodes), Edges: slices.Clone(e.edges)}
}

// Node returns the node with the given id.
func (e *Editor) Node(id string) (Node, bool) {
	i := e.index(id)
	if i < 0 {
		return Node{}, false
	}
	return e.nodes[i], true
}

func (e *Editor) index(id string) int {
	return slices.IndexFunc(e.nodes, func(n Node) bool { return n.ID == id })
}

// Props returns canvas props bound to this editor. Call it again after
// every edit so the canvas sees the latest collections.
func (e *Editor) Props() flow.Props[TreeNodeData] {
	return flow.Props[TreeNodeData]{
		Nodes:         e.nodes,
		Edges:         e.edges,
		NodeTypes:     NodeTypes(),
		OnNodesChange: e.NodesChange,
		OnEdgesChange: e.EdgesChange,
		OnConnect:     e.Connect,
		OnNodeClick:   func(_ flow.PointerEvent, n Node) { e.Select(n.ID) },
		OnPaneClick:   e.PaneClick,
	}
}

// =============================================================================
// Canvas callbacks
// =============================================================================

// NodesChange applies position changes.
func (e *Editor) NodesChange(changes []flow.NodeChange) {
	e.nodes = flow.ApplyNodeChanges(changes, e.nodes)
}

// EdgesChange removes edges. A removed branch edge also clears the Left or
// Right reference of its source condition when that reference still points
// at the edge's target.
func (e *Editor) EdgesChange(changes []flow.EdgeChange) {
	if len(changes) == 0 {
		return
	}
	before := e.edges
	e.edges = flow.ApplyEdgeChanges(changes, before)

	for _, ch := range changes {
		if ch.Type != flow.ChangeRemove {
			continue
		}
		i := slices.IndexFunc(before, func(ed flow.Edge) bool { return ed.ID == ch.ID })
		if i < 0 {
			continue
		}
		e.clearBranch(before[i])
	}
}

func (e *Editor) clearBranch(ed flow.Edge) {
	i := e.index(ed.Source)
	if i < 0 || !e.nodes[i].Data.IsCondition() {
		return
	}
	d := &e.nodes[i].Data
	switch {
	case ed.SourceHandle == HandleLeft && d.Left == ed.Target:
		d.Left = ""
	case ed.SourceHandle == HandleRight && d.Right == ed.Target:
		d.Right = ""
	}
}

// Connect adds an edge for c and records the branch on a condition source.
// Incomplete connections are ignored.
func (e *Editor) Connect(c flow.Connection) {
	if !c.Complete() {
		return
	}
	e.edges = flow.AddEdge(c, e.edges)
	e.edges[len(e.edges)-1].Type = EdgeType
	e.logger.Debug("connected", "source", c.Source, "handle", c.SourceHandle, "target", c.Target)

	i := e.index(c.Source)
	if i < 0 || !e.nodes[i].Data.IsCondition() {
		return
	}
	switch c.SourceHandle {
	case HandleLeft:
		e.nodes[i].Data.Left = c.Target
	case HandleRight:
		e.nodes[i].Data.Right = c.Target
	}
}

// Select marks id as the node being edited.
func (e *Editor) Select(id string) { e.selected = id }

// PaneClick clears the selection.
func (e *Editor) PaneClick() { e.selected = "" }

// Selected returns the node being edited.
func (e *Editor) Selected() (Node, bool) {
	if e.selected == "" {
		return Node{}, false
	}
	return e.Node(e.selected)
}

// =============================================================================
// Editing
// =============================================================================

// Drop creates a node from a palette item at pos, given in diagram
// coordinates. It returns false when the item cannot produce a node.
func (e *Editor) Drop(it PaletteItem, pos flow.XYPosition) (Node, bool) {
	data, ok := it.data()
	if !ok {
		e.logger.Debug("drop ignored", "item", it.ID)
		return Node{}, false
	}
	n := Node{ID: e.newID(), Type: string(it.NodeType), Position: pos, Data: data}
	e.nodes = append(slices.Clone(e.nodes), n)
	e.logger.Debug("node created", "id", n.ID, "type", n.Type)
	return n, true
}

// Delete removes a node, every edge touching it, and any branch reference
// to it. Deleting the selected node clears the selection.
func (e *Editor) Delete(id string) bool {
	if e.index(id) < 0 {
		return false
	}
	e.edges = slices.DeleteFunc(slices.Clone(e.edges), func(ed flow.Edge) bool {
		return ed.Source == id || ed.Target == id
	})
	nodes := make([]Node, 0, len(e.nodes)-1)
	for _, n := range e.nodes {
		if n.ID == id {
			continue
		}
		if n.Data.IsCondition() {
			if n.Data.Left == id {
				n.Data.Left = ""
			}
			if n.Data.Right == id {
				n.Data.Right = ""
			}
		}
		nodes = append(nodes, n)
	}
	e.nodes = nodes
	if e.selected == id {
		e.selected = ""
	}
	e.logger.Debug("node deleted", "id", id)
	return true
}

// Patch is an edit of a node's details. Nil fields are left unchanged.
type Patch struct {
	Label         *string
	Condition     *string
	ComponentType *ComponentType
	Description   *string
}

// Update applies p to the node id.
//
// Condition nodes take Label and Condition. Component nodes take Label and
// Description; switching ComponentType also replaces a blank Label or
// Description with the new type's defaults.
func (e *Editor) Update(id string, p Patch) error {
	i := e.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", id)
	}
	d := e.nodes[i].Data

	if d.IsCondition() {
		if p.Label != nil {
			d.Label = *p.Label
		}
		if p.Condition != nil {
			d.Condition = *p.Condition
		}
		e.nodes[i].Data = d
		return nil
	}

	if p.ComponentType != nil && *p.ComponentType != d.ComponentType {
		meta, ok := MetaOf(*p.ComponentType)
		if !ok {
			return errors.New(errors.ErrCodeInvalidNodeType, "unknown component type %q", *p.ComponentType)
		}
		d.ComponentType = *p.ComponentType
		d.Label = meta.Label
		if p.Label != nil && !blank(*p.Label) {
			d.Label = *p.Label
		}
		d.Description = meta.Description
		if p.Description != nil && !blank(*p.Description) {
			d.Description = *p.Description
		}
	} else {
		if p.Label != nil {
			d.Label = *p.Label
		}
		if p.Description != nil {
			d.Description = *p.Description
		}
	}
	e.nodes[i].Data = d
	return nil
}
