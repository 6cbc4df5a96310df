package app

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/dtmux/internal/layout"
	"github.com/Gaurav-Gosain/dtmux/internal/pager"
	"github.com/Gaurav-Gosain/dtmux/internal/session"
	"github.com/Gaurav-Gosain/dtmux/internal/theme"
)

// View implements tea.Model.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	// Release events keep mux mode armed across modifier releases.
	view.KeyboardEnhancements.ReportEventTypes = true
	return view
}

// Render draws the layout tree above the help line.
func (m *Model) Render() string {
	helpView := m.helpView()
	root := m.win.Tree().Root()
	if root == nil {
		return helpView
	}
	w, h := m.treeSize()
	return lipgloss.JoinVertical(lipgloss.Left, m.renderNode(root, w, h), helpView)
}

func (m *Model) helpView() string {
	lines := strings.Split(m.help.View(m.keys), "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, m.width, "…")
	}
	return strings.Join(lines, "\n")
}

// treeSize is the screen area left for panes.
func (m *Model) treeSize() (int, int) {
	return m.width, max(m.height-lipgloss.Height(m.helpView()), 0)
}

// splitSizes divides total cells among n children, handing the remainder
// to the first ones.
func splitSizes(total, n int) []int {
	sizes := make([]int, n)
	if n == 0 {
		return sizes
	}
	base, extra := total/n, total%n
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

// resize fits the sessions under n into a w x h box. It walks the tree the
// same way renderNode does.
func (m *Model) resize(n *layout.Node, w, h int) {
	switch n.Kind() {
	case layout.Leaf:
		if s := m.win.Session(n.Pane()); s != nil {
			s.Resize(max(w-2, 1), max(h-2, 1))
		}
	case layout.Stack:
		for _, c := range n.Children() {
			if s := m.win.Session(c.Pane()); s != nil {
				s.Resize(max(w-2, 1), max(h-3, 1))
			}
		}
	case layout.Row:
		for i, cw := range splitSizes(w, len(n.Children())) {
			m.resize(n.Children()[i], cw, h)
		}
	case layout.Column:
		for i, ch := range splitSizes(h, len(n.Children())) {
			m.resize(n.Children()[i], w, ch)
		}
	}
}

func (m *Model) renderNode(n *layout.Node, w, h int) string {
	switch n.Kind() {
	case layout.Row:
		parts := make([]string, 0, len(n.Children()))
		for i, cw := range splitSizes(w, len(n.Children())) {
			parts = append(parts, m.renderNode(n.Children()[i], cw, h))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	case layout.Column:
		parts := make([]string, 0, len(n.Children()))
		for i, ch := range splitSizes(h, len(n.Children())) {
			parts = append(parts, m.renderNode(n.Children()[i], w, ch))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if w < 3 || h < 3 {
		return blank(w, h)
	}
	cols, rows := w-2, h-2
	var lines []string
	active := n
	if n.Kind() == layout.Stack {
		if rows < 2 {
			return blank(w, h)
		}
		lines = append(lines, m.tabBar(n, cols))
		active = n.ActiveChild()
		rows--
	}
	lines = append(lines, m.paneLines(active.Pane(), cols, rows)...)

	return lipgloss.NewStyle().
		Border(m.border).
		BorderForeground(m.borderColor(n)).
		Render(strings.Join(lines, "\n"))
}

// borderColor highlights the focused group and shows its mode.
func (m *Model) borderColor(group *layout.Node) color.Color {
	if m.win.Tree().Focus().Group != group {
		return theme.BorderInactive()
	}
	s := m.win.Focused()
	switch {
	case s == nil:
		return theme.BorderActive()
	case s.MuxArmed():
		return theme.BorderMux()
	case s.Pager().Active():
		return theme.BorderPaging()
	default:
		return theme.BorderActive()
	}
}

func (m *Model) tabBar(stack *layout.Node, cols int) string {
	active := lipgloss.NewStyle().Foreground(theme.TabActive()).Bold(true).Reverse(true)
	inactive := lipgloss.NewStyle().Foreground(theme.TabInactive())

	var sb strings.Builder
	for i, c := range stack.Children() {
		label := fmt.Sprintf(" %d:%s ", i+1, shortID(c.Pane()))
		if i == stack.ActiveIndex() {
			sb.WriteString(active.Render(label))
		} else {
			sb.WriteString(inactive.Render(label))
		}
	}
	return fit(sb.String(), cols)
}

// paneLines renders the visible rows of a pane starting at the scroll offset.
// Rows past the end of content (padding) are blank, and the status line, when
// set, covers the last row.
func (m *Model) paneLines(id layout.PaneID, cols, rows int) []string {
	out := make([]string, rows)
	p, s := m.panes[id], m.win.Session(id)
	if p == nil || s == nil {
		for i := range out {
			out[i] = strings.Repeat(" ", cols)
		}
		return out
	}

	content := p.Rows()
	sc := s.Scroll()
	lh := sc.LineHeight()
	start := sc.Offset() / lh
	for i := range out {
		line := ""
		if idx := start + i; idx < len(content) {
			line = content[idx]
		}
		out[i] = fit(line, cols)
	}

	if st := s.Status(); st != "" && rows > 0 {
		out[rows-1] = lipgloss.NewStyle().
			Foreground(theme.StatusFg()).
			Background(statusColor(s)).
			Render(fit(st, cols))
	}
	return out
}

func statusColor(s *session.Session) color.Color {
	switch {
	case s.MuxArmed():
		return theme.StatusMux()
	case s.Pager().Mode() == pager.Paused:
		return theme.StatusPaused()
	case s.Pager().Mode() == pager.Paging:
		return theme.StatusPaging()
	default:
		return theme.StatusIdle()
	}
}

// fit truncates or pads s to exactly cols cells.
func fit(s string, cols int) string {
	s = ansi.Truncate(s, cols, "")
	if pad := cols - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func blank(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func shortID(id layout.PaneID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
