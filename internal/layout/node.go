// Package layout implements the split/tab tree that arranges panes in a
// window.
//
// The tree is made of Row and Column splits, Stacks of tabbed panes and Leaf
// panes. It keeps an index from pane id to leaf, so lookups never walk the
// tree, and tracks which pane (and which stack) is focused.
package layout

import (
	"fmt"
	"strings"
)

// PaneID identifies a hosted terminal pane. Ids are minted by the host's
// pane factory; the tree never interprets them.
type PaneID string

// Kind is the type of a layout node.
type Kind int

const (
	// Leaf holds a single pane.
	Leaf Kind = iota
	// Row lays its children out left to right.
	Row
	// Column lays its children out top to bottom.
	Column
	// Stack shows one of its children at a time, as tabs.
	Stack
)

func (k Kind) String() string {
	switch k {
	case Row:
		return "Row"
	case Column:
		return "Column"
	case Stack:
		return "Stack"
	default:
		return "Leaf"
	}
}

// Node is an element of the layout tree.
type Node struct {
	kind     Kind
	pane     PaneID
	children []*Node
	active   int
	parent   *Node
}

func newLeaf(id PaneID) *Node {
	return &Node{kind: Leaf, pane: id}
}

func newContainer(kind Kind) *Node {
	return &Node{kind: kind}
}

// Kind returns the node type.
func (n *Node) Kind() Kind { return n.kind }

// Pane returns the pane of a Leaf, or "" for containers.
func (n *Node) Pane() PaneID { return n.pane }

// Parent returns the containing node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// ActiveIndex is the visible child of a Stack.
func (n *Node) ActiveIndex() int { return n.active }

// ActiveChild returns the visible child of a Stack, or nil.
func (n *Node) ActiveChild() *Node {
	if n.kind != Stack || len(n.children) == 0 {
		return nil
	}
	return n.children[n.active]
}

// IsContainer reports whether n can have children.
func (n *Node) IsContainer() bool { return n.kind != Leaf }

// Index returns n's position among its parent's children, -1 for the root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Group returns the node that is shown or hidden as a unit with n: the
// enclosing Stack of a tabbed pane, or the pane's leaf itself.
func (n *Node) Group() *Node {
	if n.kind == Leaf && n.parent != nil && n.parent.kind == Stack {
		return n.parent
	}
	return n
}

func (n *Node) insert(i int, child *Node) {
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	if n.kind == Stack && i <= n.active && len(n.children) > 1 {
		n.active++
	}
}

func (n *Node) removeAt(i int) *Node {
	child := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	if n.kind == Stack {
		if i < n.active {
			n.active--
		}
		if n.active >= len(n.children) {
			n.active = max(0, len(n.children)-1)
		}
	}
	return child
}

// firstLeaf descends to the first (or last) leaf under n.
func (n *Node) firstLeaf(forward bool) *Node {
	for len(n.children) > 0 {
		if forward {
			n = n.children[0]
		} else {
			n = n.children[len(n.children)-1]
		}
	}
	return n
}

// String renders the subtree in a compact form such as
// "Row[A, Stack[B*, C]]"; the active tab of a stack is starred.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.kind == Leaf {
		sb.WriteString(string(n.pane))
		return
	}
	sb.WriteString(n.kind.String())
	sb.WriteByte('[')
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.write(sb)
		if n.kind == Stack && i == n.active {
			sb.WriteByte('*')
		}
	}
	sb.WriteByte(']')
}

// validate checks the structural invariants of the subtree.
func (n *Node) validate() error {
	switch n.kind {
	case Leaf:
		if len(n.children) != 0 {
			return fmt.Errorf("leaf %s has children", n.pane)
		}
		return nil
	case Row, Column:
		if len(n.children) < 2 {
			return fmt.Errorf("%s with %d children", n.kind, len(n.children))
		}
	case Stack:
		if len(n.children) < 2 {
			return fmt.Errorf("stack with %d children", len(n.children))
		}
		if n.active < 0 || n.active >= len(n.children) {
			return fmt.Errorf("stack active index %d out of range [0,%d)", n.active, len(n.children))
		}
	}
	for _, c := range n.children {
		if c.parent != n {
			return fmt.Errorf("child %s of %s has wrong parent", c, n.kind)
		}
		if c.kind == n.kind {
			return fmt.Errorf("%s nested directly in %s", c.kind, n.kind)
		}
		if n.kind == Stack && c.kind != Leaf {
			return fmt.Errorf("stack holds a %s", c.kind)
		}
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}
