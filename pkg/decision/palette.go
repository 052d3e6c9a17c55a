package decision

// PaletteItem is an entry of the node palette. Dropping it on the canvas
// creates a node of NodeType; component items also name a ComponentType.
type PaletteItem struct {
	ID            string        `json:"id"`
	NodeType      Kind          `json:"nodeType"`
	Label         string        `json:"label"`
	Description   string        `json:"description"`
	ComponentType ComponentType `json:"componentType,omitempty"`
}

// Defaults for conditions created from the palette.
const (
	NewConditionLabel = "新的条件判断"
	NewConditionExpr  = "context.flag === true"
)

// PaletteItems returns the palette: one condition followed by one item per
// component type.
func PaletteItems() []PaletteItem {
	items := []PaletteItem{{
		ID:          "condition",
		NodeType:    KindCondition,
		Label:       "条件判断",
		Description: "根据条件表达式分支到左右子树。",
	}}
	for _, t := range ComponentTypes() {
		m := componentMeta[t]
		items = append(items, PaletteItem{
			ID:            "component-" + string(t),
			NodeType:      KindComponent,
			Label:         m.Label,
			Description:   m.Description,
			ComponentType: t,
		})
	}
	return items
}

// FindPaletteItem looks an item up by id.
func FindPaletteItem(id string) (PaletteItem, bool) {
	for _, it := range PaletteItems() {
		if it.ID == id {
			return it, true
		}
	}
	return PaletteItem{}, false
}

// data returns the payload of a node created from the item, or false when
// the item cannot produce a node.
func (it PaletteItem) data() (TreeNodeData, bool) {
	switch it.NodeType {
	case KindCondition:
		return TreeNodeData{NodeType: KindCondition, Label: NewConditionLabel, Condition: NewConditionExpr}, true
	case KindComponent:
		m, ok := MetaOf(it.ComponentType)
		if !ok {
			return TreeNodeData{}, false
		}
		return TreeNodeData{
			NodeType:      KindComponent,
			Label:         m.Label,
			ComponentType: it.ComponentType,
			Description:   m.Description,
		}, true
	}
	return TreeNodeData{}, false
}
