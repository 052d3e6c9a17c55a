// Package decision is the decision-tree editor built on top of package
// flow.
//
// A decision tree has two kinds of node. Condition nodes evaluate an
// expression and branch through their "left" (false) and "right" (true)
// handles; component nodes perform one action (send a message, collect a
// form, call an API, ask for approval, wait) and continue through "next".
//
// [Editor] is the caller side of a [flow.Canvas]: it owns the node and
// edge collections, applies the changes the canvas proposes, and keeps
// each condition's Left and Right references in step with its branch
// edges.
//
//	ed := decision.NewEditor(decision.SampleTree())
//	canvas := flow.NewCanvas[decision.TreeNodeData](screen, observer)
//	canvas.SetProps(ed.Props())
package decision
