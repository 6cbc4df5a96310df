package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrPaneNotFound is returned when an operation names a pane that is not
	// in the tree. Callers treat it as a no-op: it happens when a command
	// races with a close.
	ErrPaneNotFound = errors.New("pane not found")
	// ErrLastPane is returned by Close for the only pane in the tree. The
	// host should close the whole window instead.
	ErrLastPane = errors.New("last pane")
)

// PaneFactory creates and destroys the host's panes.
type PaneFactory interface {
	CreatePane() (PaneID, error)
	DestroyPane(id PaneID)
}

// FocusListener is told when the focused pane changes. id is "" when the
// tree becomes empty.
type FocusListener interface {
	ActivePaneChanged(id PaneID)
}

// FocusState is the focused pane and the node carrying the active highlight.
type FocusState struct {
	Pane  PaneID
	Group *Node
}

// Tree is the layout of one top-level window. It is not safe for concurrent
// use; all calls must come from the window's event loop.
type Tree struct {
	root     *Node
	index    map[PaneID]*Node
	focus    FocusState
	factory  PaneFactory
	listener FocusListener
}

// NewTree returns an empty tree. listener may be nil.
func NewTree(factory PaneFactory, listener FocusListener) *Tree {
	return &Tree{
		index:    make(map[PaneID]*Node),
		factory:  factory,
		listener: listener,
	}
}

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// Focus returns the current focus state.
func (t *Tree) Focus() FocusState { return t.focus }

// Len returns the number of panes.
func (t *Tree) Len() int { return len(t.index) }

// Open creates the first pane of an empty tree and focuses it.
func (t *Tree) Open() (PaneID, error) {
	if t.root != nil {
		return "", errors.New("layout already has panes")
	}
	id, err := t.factory.CreatePane()
	if err != nil {
		return "", fmt.Errorf("create pane: %w", err)
	}
	leaf := newLeaf(id)
	t.root = leaf
	t.index[id] = leaf
	t.SetActive(id)
	return id, nil
}

// FindNode returns the leaf holding pane, or nil.
func (t *Tree) FindNode(pane PaneID) *Node {
	return t.index[pane]
}

// AddSibling creates a pane next to at, splitting in a Column (asColumn) or a
// Row. When at is tabbed the whole stack is the unit that gets split. If the
// unit's parent already has the requested orientation the new pane joins it;
// otherwise a new Row/Column takes the unit's place and holds both. The new
// pane goes right after (or before) the unit and receives focus.
func (t *Tree) AddSibling(at PaneID, asColumn, after bool) (PaneID, error) {
	n := t.index[at]
	if n == nil {
		return "", ErrPaneNotFound
	}
	id, err := t.factory.CreatePane()
	if err != nil {
		return "", fmt.Errorf("create pane: %w", err)
	}

	want := Row
	if asColumn {
		want = Column
	}
	unit := n.Group()
	p := unit.parent
	if p == nil || p.kind != want {
		c := newContainer(want)
		t.replace(unit, c)
		c.insert(0, unit)
		p = c
	}

	i := unit.Index()
	if after {
		i++
	}
	leaf := newLeaf(id)
	p.insert(i, leaf)
	t.index[id] = leaf
	t.SetActive(id)
	return id, nil
}

// AddTab creates a pane in the stack holding at, right after it. A pane that
// is not tabbed yet gets a stack created around it.
func (t *Tree) AddTab(at PaneID) (PaneID, error) {
	n := t.index[at]
	if n == nil {
		return "", ErrPaneNotFound
	}
	id, err := t.factory.CreatePane()
	if err != nil {
		return "", fmt.Errorf("create pane: %w", err)
	}

	stack := n.parent
	if stack == nil || stack.kind != Stack {
		stack = newContainer(Stack)
		t.replace(n, stack)
		stack.insert(0, n)
	}
	leaf := newLeaf(id)
	stack.insert(n.Index()+1, leaf)
	t.index[id] = leaf
	t.SetActive(id)
	return id, nil
}

// Close removes at and destroys its pane. Containers left empty are removed
// and containers left with one child collapse into it. Closing the focused
// pane moves focus to the next pane. Closing the only pane returns
// ErrLastPane and leaves the tree untouched.
func (t *Tree) Close(at PaneID) error {
	n := t.index[at]
	if n == nil {
		return ErrPaneNotFound
	}
	if n == t.root {
		return ErrLastPane
	}

	var next PaneID
	if t.focus.Pane == at {
		next, _ = t.NextPane(at, true)
	}

	p := n.parent
	p.removeAt(n.Index())
	delete(t.index, at)
	t.collapse(p)
	t.factory.DestroyPane(at)

	if next != "" {
		t.SetActive(next)
	} else if t.focus.Group != nil && t.focus.Group.parent == nil && t.focus.Group != t.root {
		// the focused pane's stack was collapsed away
		t.SetActive(t.focus.Pane)
	}
	return nil
}

// NextPane returns the pane after (or before) from in depth-first order,
// wrapping around at the root. It returns false for a single-pane tree or an
// unknown pane.
func (t *Tree) NextPane(from PaneID, forward bool) (PaneID, bool) {
	start := t.index[from]
	if start == nil || start == t.root {
		return "", false
	}
	r := start
	for {
		p := r.parent
		i := r.Index()
		if forward {
			i++
		} else {
			i--
		}
		var next *Node
		switch {
		case i >= 0 && i < len(p.children):
			next = p.children[i]
		case p == t.root:
			next = p
		}
		if next != nil {
			leaf := next.firstLeaf(forward)
			if leaf == start {
				return "", false
			}
			return leaf.pane, true
		}
		r = p
	}
}

// SetActive focuses pane: every stack on the path from the root makes the
// branch leading to pane its active tab.
func (t *Tree) SetActive(pane PaneID) {
	n := t.index[pane]
	if n == nil {
		return
	}
	for c := n; c.parent != nil; c = c.parent {
		if c.parent.kind == Stack {
			c.parent.active = c.Index()
		}
	}
	changed := t.focus.Pane != pane
	t.focus = FocusState{Pane: pane, Group: n.Group()}
	if changed && t.listener != nil {
		t.listener.ActivePaneChanged(pane)
	}
}

// Leaves returns all panes in depth-first order.
func (t *Tree) Leaves() []PaneID {
	var out []PaneID
	t.Walk(func(n *Node) bool {
		if n.kind == Leaf {
			out = append(out, n.pane)
		}
		return true
	})
	return out
}

// Walk visits nodes depth-first, parents before children. Returning false
// from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node) bool) {
	if t.root == nil {
		return
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
}

// Validate checks the tree invariants: no empty or single-child containers,
// valid stack indexes, consistent parent links and index, and a focus that
// names a pane in the tree.
func (t *Tree) Validate() error {
	if t.root == nil {
		if len(t.index) != 0 {
			return fmt.Errorf("empty tree indexes %d panes", len(t.index))
		}
		if t.focus.Pane != "" {
			return fmt.Errorf("empty tree focuses %s", t.focus.Pane)
		}
		return nil
	}
	if t.root.parent != nil {
		return errors.New("root has a parent")
	}
	if err := t.root.validate(); err != nil {
		return err
	}
	leaves := t.Leaves()
	if len(leaves) != len(t.index) {
		return fmt.Errorf("tree has %d leaves, index has %d", len(leaves), len(t.index))
	}
	for _, id := range leaves {
		n := t.index[id]
		if n == nil || n.pane != id {
			return fmt.Errorf("index out of date for %s", id)
		}
	}
	if t.focus.Pane != "" {
		n := t.index[t.focus.Pane]
		if n == nil {
			return fmt.Errorf("focused pane %s not in tree", t.focus.Pane)
		}
		if t.focus.Group != n.Group() {
			return fmt.Errorf("focus group out of date for %s", t.focus.Pane)
		}
		for c := n; c.parent != nil; c = c.parent {
			if c.parent.kind == Stack && c.parent.active != c.Index() {
				return fmt.Errorf("stack above %s shows another tab", t.focus.Pane)
			}
		}
	}
	return nil
}

func (t *Tree) String() string {
	if t.root == nil {
		return "<empty>"
	}
	return t.root.String()
}

// replace puts repl where old was; old is detached.
func (t *Tree) replace(old, repl *Node) {
	p := old.parent
	if p == nil {
		t.root = repl
		repl.parent = nil
		return
	}
	i := old.Index()
	p.children[i] = repl
	repl.parent = p
	old.parent = nil
}

// collapse restores the invariants of c after a child was removed.
func (t *Tree) collapse(c *Node) {
	switch len(c.children) {
	case 0:
		p := c.parent
		if p == nil {
			t.root = nil
			return
		}
		p.removeAt(c.Index())
		t.collapse(p)
	case 1:
		only := c.children[0]
		p := c.parent
		c.removeAt(0)
		t.replace(c, only)
		if p == nil {
			t.root = only
			only.parent = nil
			return
		}
		if only.kind == p.kind {
			// splice e.g. a Row that ended up directly inside a Row
			i := only.Index()
			p.removeAt(i)
			for j, gc := range only.children {
				p.insert(i+j, gc)
			}
		}
	}
}
