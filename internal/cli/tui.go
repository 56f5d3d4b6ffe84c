package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
	"github.com/trig29/Flowchart-Json-Editor/pkg/editor"
)

// List styles
var (
	nodeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	nodeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	nodeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// editMode is the interaction mode of the editor model.
type editMode int

const (
	modeNormal  editMode = iota // browse and mutate nodes
	modeMove                    // drag gesture: arrow keys reposition, enter commits
	modeConnect                 // pick a target node for a new edge
	modeText                    // line-edit the selected node's text
)

// moveStep is how far one arrow keypress moves a node, in canvas units.
const moveStep = 10

// =============================================================================
// EditModel - Interactive document editing
// =============================================================================

// EditModel is the bubbletea model for the interactive editor. All document
// mutations go through the embedded editor so that undo/redo and gesture
// framing behave exactly like the rest of the package.
type EditModel struct {
	ed     *editor.Editor
	path   string
	mode   editMode
	cursor int // selected node index
	target int // connect mode: candidate target index
	input  string
	status string
	dirty  bool
}

// NewEditModel creates an editor model over a loaded document.
func NewEditModel(path string, d doc.Document, historyLimit int) EditModel {
	ed := editor.New(historyLimit)
	ed.Load(d)
	return EditModel{ed: ed, path: path}
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeMove:
		return m.updateMove(key)
	case modeConnect:
		return m.updateConnect(key)
	case modeText:
		return m.updateText(key)
	default:
		return m.updateNormal(key)
	}
}

func (m EditModel) updateNormal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.ed.Current()

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(d.Nodes)-1 {
			m.cursor++
		}

	case "a":
		base := doc.Point{X: 100, Y: 100}
		if n, ok := m.selected(); ok {
			base = doc.Point{X: n.Position.X + 200, Y: n.Position.Y}
		}
		added := m.ed.AddNode(base)
		m.cursor = m.indexOf(added.ID)
		m.dirty = true
		m.status = fmt.Sprintf("added %s", added.ID)

	case "d":
		n, ok := m.selected()
		if !ok {
			break
		}
		m.ed.RemoveNode(n.ID)
		m.dirty = true
		if next := len(m.ed.Current().Nodes); m.cursor >= next {
			m.cursor = next - 1
		}
		m.status = fmt.Sprintf("removed %s", n.ID)

	case "c":
		if _, ok := m.selected(); ok && len(d.Nodes) > 1 {
			m.mode = modeConnect
			m.target = 0
			m.status = "pick target, enter connects"
		}

	case "m":
		if _, ok := m.selected(); ok {
			m.ed.BeginGesture()
			m.mode = modeMove
			m.status = "moving: arrows, enter commits, esc cancels"
		}

	case "t":
		n, ok := m.selected()
		if !ok || n.IsRoot() {
			break
		}
		m.mode = modeText
		m.input = n.Text
		m.status = "editing text, enter applies"

	case "v":
		n, ok := m.selected()
		if !ok || n.IsRoot() {
			break
		}
		next := nextVariant(n.Variant)
		m.ed.Apply(n.ID, doc.NodeUpdate{Variant: &next})
		m.dirty = true
		m.status = fmt.Sprintf("%s is now %s", n.ID, next)

	case "u":
		if m.ed.Undo() {
			m.dirty = true
			m.status = "undo"
			m.clampCursor()
		} else {
			m.status = "nothing to undo"
		}
	case "r":
		if m.ed.Redo() {
			m.dirty = true
			m.status = "redo"
			m.clampCursor()
		} else {
			m.status = "nothing to redo"
		}

	case "s":
		if err := doc.WriteDocumentFile(m.ed.Current(), m.path); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.dirty = false
			m.status = fmt.Sprintf("saved %s", m.path)
		}
	}
	return m, nil
}

func (m EditModel) updateMove(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	n, ok := m.selected()
	if !ok {
		m.ed.CancelGesture()
		m.mode = modeNormal
		return m, nil
	}

	move := func(dx, dy float64) {
		p := doc.Point{X: n.Position.X + dx, Y: n.Position.Y + dy}
		m.ed.Apply(n.ID, doc.NodeUpdate{Position: &p})
	}

	switch key.String() {
	case "up":
		move(0, -moveStep)
	case "down":
		move(0, moveStep)
	case "left":
		move(-moveStep, 0)
	case "right":
		move(moveStep, 0)
	case "enter":
		m.ed.EndGesture()
		m.mode = modeNormal
		m.dirty = true
		m.status = fmt.Sprintf("moved %s", n.ID)
	case "esc":
		m.ed.CancelGesture()
		m.mode = modeNormal
		m.status = "move cancelled"
	}
	return m, nil
}

func (m EditModel) updateConnect(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.ed.Current()

	switch key.String() {
	case "up", "k":
		if m.target > 0 {
			m.target--
		}
	case "down", "j":
		if m.target < len(d.Nodes)-1 {
			m.target++
		}
	case "enter":
		src, _ := m.selected()
		dst := d.Nodes[m.target]
		m.mode = modeNormal
		if dst.ID == src.ID {
			m.status = "cannot connect a node to itself"
			break
		}
		before := len(d.Edges)
		if _, err := m.ed.Connect(src.ID, "out", dst.ID, "in"); err != nil {
			m.status = fmt.Sprintf("connect failed: %v", err)
			break
		}
		if len(m.ed.Current().Edges) == before {
			m.status = "edge already exists"
			break
		}
		m.dirty = true
		m.status = fmt.Sprintf("connected %s -> %s", src.ID, dst.ID)
	case "esc":
		m.mode = modeNormal
		m.status = "connect cancelled"
	}
	return m, nil
}

func (m EditModel) updateText(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		if n, ok := m.selected(); ok {
			text := m.input
			m.ed.Apply(n.ID, doc.NodeUpdate{Text: &text})
			m.dirty = true
			m.status = fmt.Sprintf("text set on %s", n.ID)
		}
		m.mode = modeNormal
	case tea.KeyEsc:
		m.mode = modeNormal
		m.status = "edit cancelled"
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			r := []rune(m.input)
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.input += string(key.Runes)
	case tea.KeySpace:
		m.input += " "
	}
	return m, nil
}

func (m EditModel) View() string {
	d := m.ed.Current()
	var b strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(nodeDimStyle.Render(fmt.Sprintf("  %d nodes, %d edges", len(d.Nodes), len(d.Edges))))
	b.WriteString("\n\n")

	for i, n := range d.Nodes {
		line := fmt.Sprintf("%-10s %-24s (%.0f, %.0f)", n.Variant, truncate(n.Text, 24), n.Position.X, n.Position.Y)

		switch {
		case m.mode == modeConnect && i == m.target:
			b.WriteString(StyleWarning.Render("→ " + line))
		case i == m.cursor:
			b.WriteString(nodeSelectedStyle.Render("▸ " + line))
		default:
			b.WriteString(nodeNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeText {
		b.WriteString(StyleHighlight.Render("text: ") + m.input + "▏\n")
	}
	if m.status != "" {
		b.WriteString(nodeDimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(nodeDimStyle.Render(m.helpLine()))
	return b.String()
}

func (m EditModel) helpLine() string {
	switch m.mode {
	case modeMove:
		return "arrows move  ⏎ commit  esc cancel"
	case modeConnect:
		return "↑/↓ pick target  ⏎ connect  esc cancel"
	case modeText:
		return "type text  ⏎ apply  esc cancel"
	default:
		undo := "u undo"
		if !m.ed.CanUndo() {
			undo = nodeDimStyle.Render(undo)
		}
		return "↑/↓ select  a add  d delete  c connect  m move  t text  v variant  " +
			undo + "  r redo  s save  q quit"
	}
}

// selected returns the node under the cursor.
func (m EditModel) selected() (doc.Node, bool) {
	d := m.ed.Current()
	if m.cursor < 0 || m.cursor >= len(d.Nodes) {
		return doc.Node{}, false
	}
	return d.Nodes[m.cursor], true
}

// indexOf finds the position of a node id in the current node list.
func (m EditModel) indexOf(id string) int {
	for i, n := range m.ed.Current().Nodes {
		if n.ID == id {
			return i
		}
	}
	return 0
}

// clampCursor keeps the cursor valid after undo/redo changed the node list.
func (m *EditModel) clampCursor() {
	if n := len(m.ed.Current().Nodes); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextVariant cycles through the variants assignable from the editor.
// Root is excluded: it is never assigned by hand.
func nextVariant(v doc.Variant) doc.Variant {
	switch v {
	case doc.Dialogue:
		return doc.Option
	case doc.Option:
		return doc.ChoiceFlag
	case doc.ChoiceFlag:
		return doc.Comment
	default:
		return doc.Dialogue
	}
}
