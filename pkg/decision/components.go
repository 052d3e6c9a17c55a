package decision

import "github.com/matzehuels/treeflow/pkg/flow"

// Condition node colors. ConditionAccent also stands in for unknown
// component types.
const (
	ConditionAccent = "#2f54eb"
	branchNoColor   = "#fa541c"
	branchYesColor  = "#52c41a"
)

// ConditionTag is the caption drawn above a condition's expression.
const ConditionTag = "条件表达式"

// NodeTypes returns the node components of a decision tree, keyed by
// [Kind].
func NodeTypes() map[string]flow.NodeComponent[TreeNodeData] {
	return map[string]flow.NodeComponent[TreeNodeData]{
		string(KindCondition): flow.NodeComponentFunc[TreeNodeData](renderCondition),
		string(KindComponent): flow.NodeComponentFunc[TreeNodeData](renderComponent),
	}
}

// KnownKinds lists the node types NodeTypes can render.
func KnownKinds() []string {
	return []string{string(KindCondition), string(KindComponent)}
}

func renderCondition(p flow.NodeProps[TreeNodeData]) flow.NodeContent {
	return flow.NodeContent{
		Title:  p.Data.Label,
		Lines:  []string{ConditionTag, p.Data.Condition},
		Accent: ConditionAccent,
		Handles: []flow.HandleSpec{
			{ID: HandleIn, Type: flow.HandleTarget, Side: flow.Top, Color: ConditionAccent},
			{ID: HandleLeft, Type: flow.HandleSource, Side: flow.Left, Color: branchNoColor},
			{ID: HandleRight, Type: flow.HandleSource, Side: flow.Right, Color: branchYesColor},
		},
	}
}

func renderComponent(p flow.NodeProps[TreeNodeData]) flow.NodeContent {
	meta, ok := MetaOf(p.Data.ComponentType)
	if !ok {
		meta = Meta{Label: string(p.Data.ComponentType), Accent: ConditionAccent}
	}
	c := flow.NodeContent{
		Title:  p.Data.Label,
		Accent: meta.Accent,
		Handles: []flow.HandleSpec{
			{ID: HandleIn, Type: flow.HandleTarget, Side: flow.Top, Color: meta.Accent},
			{ID: HandleNext, Type: flow.HandleSource, Side: flow.Bottom, Color: meta.Accent},
		},
	}
	if p.Data.Description != "" {
		c.Lines = []string{p.Data.Description}
	}
	return c
}
