package decision

import (
	"strings"

	"github.com/matzehuels/treeflow/pkg/flow"
)

// Kind is the node type of a tree node, and the key of its component in
// [NodeTypes].
type Kind string

// Node kinds.
const (
	KindCondition Kind = "condition"
	KindComponent Kind = "component"
)

// ComponentType is the action a component node performs.
type ComponentType string

// Component types.
const (
	ComponentMessage  ComponentType = "message"
	ComponentForm     ComponentType = "form"
	ComponentAPI      ComponentType = "api"
	ComponentApproval ComponentType = "approval"
	ComponentDelay    ComponentType = "delay"
)

// Meta is the display metadata of a component type.
type Meta struct {
	Label       string
	Description string
	Accent      string
}

var componentMeta = map[ComponentType]Meta{
	ComponentMessage:  {Label: "消息提醒", Description: "向用户发送消息、提示或通知内容。", Accent: "#1677ff"},
	ComponentForm:     {Label: "表单收集", Description: "展示数据采集表单并等待用户提交。", Accent: "#fa8c16"},
	ComponentAPI:      {Label: "API 请求", Description: "调用外部 API 同步或异步获取数据。", Accent: "#13c2c2"},
	ComponentApproval: {Label: "审批节点", Description: "提交审批任务并等待负责人处理。", Accent: "#722ed1"},
	ComponentDelay:    {Label: "延时节点", Description: "等待一段时间后再继续执行流程。", Accent: "#52c41a"},
}

// ComponentTypes lists every component type in palette order.
func ComponentTypes() []ComponentType {
	return []ComponentType{ComponentMessage, ComponentForm, ComponentAPI, ComponentApproval, ComponentDelay}
}

// MetaOf returns the metadata of t.
func MetaOf(t ComponentType) (Meta, bool) {
	m, ok := componentMeta[t]
	return m, ok
}

// Valid reports whether t is a known component type.
func (t ComponentType) Valid() bool {
	_, ok := componentMeta[t]
	return ok
}

// TreeNodeData is the payload of every tree node. Condition nodes use
// Condition, Left and Right; component nodes use ComponentType and
// Description. Empty strings mean absent.
type TreeNodeData struct {
	NodeType      Kind          `json:"nodeType" toml:"node_type" yaml:"nodeType"`
	Label         string        `json:"label" toml:"label" yaml:"label"`
	Condition     string        `json:"condition,omitempty" toml:"condition,omitempty" yaml:"condition,omitempty"`
	Left          string        `json:"left,omitempty" toml:"left,omitempty" yaml:"left,omitempty"`
	Right         string        `json:"right,omitempty" toml:"right,omitempty" yaml:"right,omitempty"`
	ComponentType ComponentType `json:"componentType,omitempty" toml:"component_type,omitempty" yaml:"componentType,omitempty"`
	Description   string        `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

// IsCondition reports whether d belongs to a condition node.
func (d TreeNodeData) IsCondition() bool { return d.NodeType == KindCondition }

// Node is a decision-tree node.
type Node = flow.Node[TreeNodeData]

// Tree is a complete decision tree.
type Tree struct {
	Nodes []Node      `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []flow.Edge `json:"edges" toml:"edges" yaml:"edges"`
}

// Branch handles of a condition node, and the continuation handle of a
// component node.
const (
	HandleIn    = "target"
	HandleLeft  = "left"
	HandleRight = "right"
	HandleNext  = "next"
)

// EdgeType is the edge type the editor assigns to new connections.
const EdgeType = "smoothstep"

// Branch labels drawn on condition edges.
const (
	LabelNo  = "否"
	LabelYes = "是"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }
