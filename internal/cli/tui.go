package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindmap/pkg/hierarchy"
)

// Tree styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeRootStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	treeCategoryStyle = lipgloss.NewStyle().Foreground(colorBlue)
	treeLeafStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	markerOpen   = "▾ "
	markerClosed = "▸ "
	markerLeaf   = "  "
)

// =============================================================================
// TreeModel - Interactive hierarchy browser
// =============================================================================

// treeRow is one visible line of the tree.
type treeRow struct {
	label    string
	relation string
	depth    int
	kind     hierarchy.Kind
	children int
}

// TreeModel is the bubbletea model for browsing a mind-map hierarchy.
// Nodes with children can be collapsed and expanded.
type TreeModel struct {
	h         hierarchy.Hierarchy
	collapsed map[string]bool
	rows      []treeRow

	Cursor int
	Offset int
	Height int
}

// NewTreeModel creates a browser with every node expanded.
func NewTreeModel(h hierarchy.Hierarchy) TreeModel {
	m := TreeModel{
		h:         h,
		collapsed: make(map[string]bool),
		Height:    20,
	}
	m.rows = m.visibleRows()
	return m
}

// visibleRows walks the tree depth-first in edge order, skipping the
// descendants of collapsed nodes.
func (m TreeModel) visibleRows() []treeRow {
	if m.h.Root == "" {
		return nil
	}
	rows := []treeRow{}
	var walk func(label, relation string, depth int)
	walk = func(label, relation string, depth int) {
		children := m.h.Children(label)
		rows = append(rows, treeRow{
			label:    label,
			relation: relation,
			depth:    depth,
			kind:     m.h.Kind(label),
			children: len(children),
		})
		if m.collapsed[label] {
			return
		}
		for _, e := range children {
			walk(e.Target, e.Relation, depth+1)
		}
	}
	walk(m.h.Root, "", 0)
	return rows
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			if row, ok := m.current(); ok && row.children > 0 {
				m.setCollapsed(row.label, !m.collapsed[row.label])
			}
		case "right", "l":
			if row, ok := m.current(); ok && m.collapsed[row.label] {
				m.setCollapsed(row.label, false)
			}
		case "left", "h":
			m.collapseOrParent()
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.move(len(m.rows))
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m *TreeModel) current() (treeRow, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return treeRow{}, false
	}
	return m.rows[m.Cursor], true
}

func (m *TreeModel) move(delta int) {
	m.Cursor += delta
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.scroll()
}

func (m *TreeModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// setCollapsed toggles a node and keeps the cursor on it.
func (m *TreeModel) setCollapsed(label string, collapsed bool) {
	if collapsed {
		m.collapsed[label] = true
	} else {
		delete(m.collapsed, label)
	}
	m.rows = m.visibleRows()
	m.moveTo(label)
}

// collapseOrParent collapses an open node, or jumps to the parent of a
// closed node or leaf.
func (m *TreeModel) collapseOrParent() {
	row, ok := m.current()
	if !ok {
		return
	}
	if row.children > 0 && !m.collapsed[row.label] {
		m.setCollapsed(row.label, true)
		return
	}
	if parent, _, ok := m.h.Parent(row.label); ok {
		m.moveTo(parent)
	}
}

func (m *TreeModel) moveTo(label string) {
	for i, r := range m.rows {
		if r.label == label {
			m.Cursor = i
			break
		}
	}
	m.scroll()
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.h.Root))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  ⏎ toggle  ←/→ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.Cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render(fmt.Sprintf("  [%d/%d] %d nodes", m.Cursor+1, len(m.rows), m.h.NodeCount())))

	return b.String()
}

func (m TreeModel) renderRow(r treeRow, selected bool) string {
	marker := markerLeaf
	if r.children > 0 {
		marker = markerOpen
		if m.collapsed[r.label] {
			marker = markerClosed
		}
	}

	style := treeLeafStyle
	switch r.kind {
	case hierarchy.KindRoot:
		style = treeRootStyle
	case hierarchy.KindCategory:
		style = treeCategoryStyle
	}
	if selected {
		style = treeSelectedStyle
	}

	line := strings.Repeat("  ", r.depth) + treeDimStyle.Render(marker) + style.Render(r.label)
	if r.relation != "" {
		line += " " + treeDimStyle.Render("("+r.relation+")")
	}
	if r.children > 0 && m.collapsed[r.label] {
		line += " " + treeDimStyle.Render(fmt.Sprintf("+%d", r.children))
	}
	if selected {
		return "▸ " + line
	}
	return "  " + line
}
