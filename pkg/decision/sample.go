package decision

import "github.com/matzehuels/treeflow/pkg/flow"

// SampleTree returns the starter tree: a login check that either invites a
// guest to sign up or checks for pending tasks.
func SampleTree() Tree {
	return Tree{Nodes: InitialNodes(), Edges: InitialEdges()}
}

// InitialNodes returns the nodes of [SampleTree].
func InitialNodes() []Node {
	return []Node{
		{
			ID: "root-condition", Type: string(KindCondition),
			Position: flow.XYPosition{X: 240, Y: 20},
			Data: TreeNodeData{
				NodeType:  KindCondition,
				Label:     "用户是否已登录？",
				Condition: "context.user !== null",
				Left:      "guest-message",
				Right:     "task-check",
			},
		},
		{
			ID: "guest-message", Type: string(KindComponent),
			Position: flow.XYPosition{X: 20, Y: 180},
			Data: TreeNodeData{
				NodeType:      KindComponent,
				Label:         componentMeta[ComponentMessage].Label,
				ComponentType: ComponentMessage,
				Description:   "展示登录邀请并提示快速注册。",
			},
		},
		{
			ID: "task-check", Type: string(KindCondition),
			Position: flow.XYPosition{X: 460, Y: 180},
			Data: TreeNodeData{
				NodeType:  KindCondition,
				Label:     "是否存在待办任务？",
				Condition: "context.todos.length > 0",
				Left:      "empty-state",
				Right:     "task-reminder",
			},
		},
		{
			ID: "empty-state", Type: string(KindComponent),
			Position: flow.XYPosition{X: 300, Y: 340},
			Data: TreeNodeData{
				NodeType:      KindComponent,
				Label:         componentMeta[ComponentForm].Label,
				ComponentType: ComponentForm,
				Description:   "展示任务创建表单引导用户添加事项。",
			},
		},
		{
			ID: "task-reminder", Type: string(KindComponent),
			Position: flow.XYPosition{X: 620, Y: 340},
			Data: TreeNodeData{
				NodeType:      KindComponent,
				Label:         componentMeta[ComponentAPI].Label,
				ComponentType: ComponentAPI,
				Description:   "触发提醒服务并展示待办列表。",
			},
		},
	}
}

// InitialEdges returns the edges of [SampleTree].
func InitialEdges() []flow.Edge {
	branch := func(id, source, target, handle, label string) flow.Edge {
		return flow.Edge{
			ID:           id,
			Source:       source,
			Target:       target,
			SourceHandle: handle,
			TargetHandle: HandleIn,
			Label:        label,
			Type:         EdgeType,
			MarkerEnd:    &flow.Marker{Type: flow.MarkerArrowClosed},
		}
	}
	return []flow.Edge{
		branch("edge-root-left", "root-condition", "guest-message", HandleLeft, LabelNo),
		branch("edge-root-right", "root-condition", "task-check", HandleRight, LabelYes),
		branch("edge-task-left", "task-check", "empty-state", HandleLeft, LabelNo),
		branch("edge-task-right", "task-check", "task-reminder", HandleRight, LabelYes),
	}
}
