package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/matzehuels/treeflow/pkg/decision"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/flow"
	treeio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/observability"
	"github.com/matzehuels/treeflow/pkg/term"
)

// chromeRows is the number of terminal rows below the canvas: the status
// line and the key help.
const chromeRows = 2

// Initial screen size, used until the terminal reports its size.
const (
	initialCols = 100
	initialRows = 30
)

// stdinIsTerminal reports whether the editor can read keys and mouse input.
var stdinIsTerminal = func() bool { return xterm.IsTerminal(int(os.Stdin.Fd())) }

const editHelp = "tab palette · enter drop · d delete · u unlink · t type · esc deselect · q quit"

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var printFormat string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a decision tree in the terminal",
		Long: `Open a decision tree in an interactive terminal canvas.

Drag node bodies with the mouse to move them. Drag from a source handle (●)
to a target handle (○) to connect two nodes; releasing anywhere else
cancels the connection.

Edits are not written back to the file. Use --print to write the final tree
to stdout when the editor exits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			var out treeio.Format
			if printFormat != "" {
				f, err := treeio.FormatFromPath("tree." + printFormat)
				if err != nil {
					return err
				}
				out = f
			}
			if !stdinIsTerminal() {
				return errors.New(errors.ErrCodeInvalidInput, "edit needs an interactive terminal, use render for headless output")
			}

			t, err := c.loadTree(cmd.Context(), input)
			if err != nil {
				return err
			}

			// Log lines would tear the alternate screen.
			observability.Reset()

			cv := c.settings().Canvas
			m := newEditModel(t, c.metrics(), cv.Background(), cv.ControlsOverlay())
			popts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context())}
			if printFormat != "" && !xterm.IsTerminal(int(os.Stdout.Fd())) {
				// stdout carries the printed tree; draw on the terminal instead.
				popts = append(popts, tea.WithOutput(os.Stderr))
			}
			p := tea.NewProgram(m, popts...)
			if _, err := p.Run(); err != nil {
				return err
			}

			final := m.editor.Tree()
			c.Logger.Infof("Closed editor: %d nodes, %d edges", len(final.Nodes), len(final.Edges))
			if printFormat != "" {
				return treeio.WriteTree(final, cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&printFormat, "print", "", "write the final tree to stdout as json, toml or yaml")
	cmd.ValidArgsFunction = completeDocuments
	_ = cmd.RegisterFlagCompletionFunc("print", cobra.FixedCompletions([]string{"json", "toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// =============================================================================
// editModel - bubbletea model around the canvas
// =============================================================================

// editModel connects terminal input to a canvas. Mouse events are hit
// tested against the card layout and forwarded as pointer events; the
// editor owns the tree and answers the canvas callbacks.
type editModel struct {
	editor   *decision.Editor
	canvas   *flow.Canvas[decision.TreeNodeData]
	screen   *term.Screen
	layout   *term.Layout[decision.TreeNodeData]
	bg       flow.Background
	controls flow.Controls

	palette    []decision.PaletteItem
	paletteIdx int

	cursor   flow.XYPosition // last pointer position, where drops land
	pressed  flow.Target
	pressing bool
	status   string
}

func newEditModel(t decision.Tree, metrics term.Metrics, bg flow.Background, ctl flow.Controls) *editModel {
	screen := term.NewScreen(metrics, initialCols, initialRows-chromeRows)
	obs := term.NewObserver()
	canvas := flow.NewCanvas[decision.TreeNodeData](screen, obs)

	m := &editModel{
		editor:   decision.NewEditor(t),
		canvas:   canvas,
		screen:   screen,
		layout:   term.NewLayout(canvas, screen, obs),
		bg:       bg,
		controls: ctl,
		palette:  decision.PaletteItems(),
		cursor:   metrics.Center(2, 2),
	}
	m.refresh()
	return m
}

// refresh hands the editor's current tree to the canvas and lays it out.
// Edges are resolved later, when View asks for a fresh scene.
func (m *editModel) refresh() {
	m.canvas.SetProps(m.editor.Props())
	m.layout.Sync(m.canvas.NodeViews())
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-chromeRows))
		m.refresh()
	case tea.MouseMsg:
		m.handleMouse(msg)
		m.refresh()
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
		m.refresh()
	}
	return m, nil
}

// =============================================================================
// Input
// =============================================================================

func pointerButton(b tea.MouseButton) flow.PointerButton {
	switch b {
	case tea.MouseButtonRight:
		return flow.ButtonSecondary
	case tea.MouseButtonMiddle:
		return flow.ButtonMiddle
	}
	return flow.ButtonPrimary
}

func (m *editModel) handleMouse(msg tea.MouseMsg) {
	if tea.MouseEvent(msg).IsWheel() {
		return
	}
	_, rows := m.screen.Size()
	inside := msg.Y >= 0 && msg.Y < rows && msg.X >= 0
	ev := m.screen.Pointer(msg.X, msg.Y, pointerButton(msg.Button))

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		t := m.layout.HitTest(msg.X, msg.Y)
		m.canvas.PointerDown(ev, t)
		m.pressed, m.pressing = t, true
		m.cursor = flow.XYPosition{X: ev.X, Y: ev.Y}

	case tea.MouseActionMotion:
		if !inside {
			m.canvas.PointerLeave()
			m.pressing = false
			return
		}
		m.canvas.PointerMove(ev)
		m.cursor = flow.XYPosition{X: ev.X, Y: ev.Y}

	case tea.MouseActionRelease:
		if !inside {
			m.canvas.PointerLeave()
			m.pressing = false
			return
		}
		t := m.layout.HitTest(msg.X, msg.Y)
		m.canvas.PointerUp(ev, t)
		if m.pressing && t.Kind == flow.TargetPane && m.pressed.Kind == flow.TargetPane {
			m.canvas.Click(t)
		}
		m.pressing = false
	}
}

func (m *editModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "tab":
		m.paletteIdx = (m.paletteIdx + 1) % len(m.palette)
	case "shift+tab":
		m.paletteIdx = (m.paletteIdx + len(m.palette) - 1) % len(m.palette)
	case "enter", "a":
		m.drop()
	case "d", "delete", "backspace":
		if n, ok := m.editor.Selected(); ok {
			m.editor.Delete(n.ID)
			m.status = "deleted " + n.ID
		}
	case "u":
		m.unlink()
	case "t":
		m.cycleType()
	case "esc":
		m.canvas.Click(flow.PaneTarget)
	}
	return nil
}

// drop creates a node from the current palette item at the last pointer
// position and selects it in both the editor and the canvas.
func (m *editModel) drop() {
	it := m.palette[m.paletteIdx]
	n, ok := m.editor.Drop(it, m.canvas.Instance().Project(m.cursor))
	if !ok {
		m.status = "cannot create " + it.Label
		return
	}
	m.editor.Select(n.ID)
	m.refresh()
	m.canvas.Select(n.ID)
	m.status = "created " + n.ID
}

// unlink removes every edge touching the selected node.
func (m *editModel) unlink() {
	n, ok := m.editor.Selected()
	if !ok {
		return
	}
	var ids []string
	for _, e := range m.editor.Edges() {
		if e.Source == n.ID || e.Target == n.ID {
			ids = append(ids, e.ID)
		}
	}
	m.canvas.RemoveEdges(ids...)
	m.status = fmt.Sprintf("removed %d edges", len(ids))
}

// cycleType switches the selected component node to the next component type.
func (m *editModel) cycleType() {
	n, ok := m.editor.Selected()
	if !ok || n.Data.IsCondition() {
		return
	}
	types := decision.ComponentTypes()
	next := types[(slices.Index(types, n.Data.ComponentType)+1)%len(types)]
	if err := m.editor.Update(n.ID, decision.Patch{ComponentType: &next}); err != nil {
		m.status = err.Error()
	}
}

// =============================================================================
// View
// =============================================================================

func (m *editModel) View() string {
	var b strings.Builder
	b.WriteString(m.layout.Draw(m.canvas.Present(), m.bg, m.controls))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(styleFaint.Render(editHelp))
	return b.String()
}

func (m *editModel) statusLine() string {
	it := m.palette[m.paletteIdx]
	parts := []string{swatch(accentOf(it)) + " " + styleMuted.Render("palette ") + styleLive.Render(it.Label)}
	if n, ok := m.editor.Selected(); ok {
		parts = append(parts, styleMuted.Render("selected ")+styleLive.Render(n.Data.Label)+styleFaint.Render(" ("+n.ID+")"))
	}
	if m.status != "" {
		parts = append(parts, styleWarn.Render(m.status))
	}
	return strings.Join(parts, styleFaint.Render(" · "))
}
