package app

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Gaurav-Gosain/dtmux/internal/keys"
	"github.com/Gaurav-Gosain/dtmux/internal/layout"
	"github.com/Gaurav-Gosain/dtmux/internal/pager"
)

// Prompt starts the input line of the demo shell.
const Prompt = "$ "

// maxSeq caps the seq command so a typo cannot allocate without bound.
const maxSeq = 100000

var banner = []string{
	"dtmux demo shell",
	"commands: seq N, echo TEXT, clear, help",
}

// Gate is the output side of a pane's session.
type Gate interface {
	PauseNeeded(cur pager.Cursor) bool
	OutputBlocked()
	SetContentHeight(h int)
	Scroll() *pager.ScrollModel
	Size() (cols, rows int)
}

// Pane runs the demo program: a line-echo shell whose output goes through
// the pause gate one line at a time. Lines the gate holds back wait in
// pending until the pager lets them through.
type Pane struct {
	ID      layout.PaneID
	lines   []string
	input   []rune
	pending []string
}

// NewPane returns a pane showing the shell banner.
func NewPane(id layout.PaneID) *Pane {
	p := &Pane{ID: id}
	p.pending = append(p.pending, banner...)
	return p
}

// Lines returns the program output written so far.
func (p *Pane) Lines() []string { return p.lines }

// Pending returns the number of lines waiting for the gate.
func (p *Pane) Pending() int { return len(p.pending) }

// Input returns the line being typed.
func (p *Pane) Input() string { return string(p.input) }

// Rows returns the pane content: the output followed by the prompt line.
func (p *Pane) Rows() []string {
	rows := make([]string, 0, len(p.lines)+1)
	rows = append(rows, p.lines...)
	return append(rows, Prompt+string(p.input))
}

// HandleKey feeds a key the multiplexer did not consume to the program.
func (p *Pane) HandleKey(ev keys.Event) {
	if !ev.Down || ev.IsModifier() {
		return
	}
	switch {
	case ev.Ctrl() && ev.Is('c'):
		p.pending = p.pending[:0]
		p.pending = append(p.pending, Prompt+string(p.input)+"^C")
		p.input = p.input[:0]
	case ev.Ctrl() && ev.Is('u'):
		p.input = p.input[:0]
	case ev.Code == keys.KeyEnter:
		line := string(p.input)
		p.input = p.input[:0]
		p.pending = append(p.pending, Prompt+line)
		p.run(line)
	case ev.Code == keys.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case !ev.Ctrl() && !ev.Alt() && unicode.IsPrint(ev.Code):
		p.input = append(p.input, ev.Code)
	}
}

func (p *Pane) run(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "echo":
		p.pending = append(p.pending, strings.Join(fields[1:], " "))
	case "seq":
		n, err := seqCount(fields[1:])
		if err != nil {
			p.pending = append(p.pending, "seq: "+err.Error())
			return
		}
		for i := 1; i <= n; i++ {
			p.pending = append(p.pending, strconv.Itoa(i))
		}
	case "clear":
		p.lines = p.lines[:0]
	case "help":
		p.pending = append(p.pending, banner[1])
	default:
		p.pending = append(p.pending, fields[0]+": command not found")
	}
}

func seqCount(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: seq N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return min(n, maxSeq), nil
}

// Flush writes pending lines until the gate closes or nothing is left.
// The view follows the output while it is at the bottom.
func (p *Pane) Flush(g Gate) {
	_, rows := g.Size()
	scroll := g.Scroll()
	for len(p.pending) > 0 {
		if g.PauseNeeded(p.cursor(rows)) {
			g.OutputBlocked()
			break
		}
		follow := scroll.AtBottom()
		p.lines = append(p.lines, p.pending[0])
		p.pending = p.pending[1:]
		g.SetContentHeight(p.height(scroll.LineHeight()))
		if follow {
			scroll.Bottom()
		}
	}
	g.SetContentHeight(p.height(scroll.LineHeight()))
}

// cursor is where the program's cursor sits: on the prompt line, pinned to
// the last row once the output fills the screen.
func (p *Pane) cursor(rows int) pager.Cursor {
	return pager.Cursor{
		Line:         min(len(p.lines)+1, rows) - 1,
		RegionBottom: rows,
		Rows:         rows,
	}
}

func (p *Pane) height(lineHeight int) int {
	return (len(p.lines) + 1) * lineHeight
}
