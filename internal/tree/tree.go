package tree

import (
	"errors"
	"fmt"
)

// ErrNotInTree is returned by Prune when no live clade carries the name.
var ErrNotInTree = errors.New("taxon not found in tree")

// NodeID indexes a node inside its Tree.
type NodeID int

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Label is a clade name that may be absent.
type Label struct {
	Name  string
	Named bool
}

// Named returns a present label.
func Named(name string) Label {
	return Label{Name: name, Named: true}
}

// Unnamed returns an absent label.
func Unnamed() Label {
	return Label{}
}

// String returns the name, or "" for unnamed labels.
func (l Label) String() string {
	return l.Name
}

type node struct {
	label      Label
	confidence float64
	hasConf    bool
	length     float64
	hasLength  bool
	parent     NodeID
	children   []NodeID
	detached   bool
}

// Tree is a rooted tree of clades.
type Tree struct {
	nodes  []node
	root   NodeID
	byName map[string][]NodeID
}

// New returns a tree holding a single unnamed root clade.
func New() *Tree {
	t := &Tree{byName: make(map[string][]NodeID)}
	t.root = t.alloc(Unnamed(), NoNode)
	return t
}

func (t *Tree) alloc(label Label, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{label: label, parent: parent})
	if label.Named {
		t.byName[label.Name] = append(t.byName[label.Name], id)
	}
	return id
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && !t.nodes[id].detached
}

func (t *Tree) mustLive(id NodeID) *node {
	if !t.valid(id) {
		panic(fmt.Sprintf("tree: node %d is not part of the tree", id))
	}
	return &t.nodes[id]
}

// Root returns the current root clade.
func (t *Tree) Root() NodeID {
	return t.root
}

// AddChild appends a new clade under parent and returns its id.
func (t *Tree) AddChild(parent NodeID, label Label) NodeID {
	t.mustLive(parent)
	id := t.alloc(label, parent)
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// Label returns the label of id.
func (t *Tree) Label(id NodeID) Label {
	return t.mustLive(id).label
}

// SetLabel replaces the label of id.
func (t *Tree) SetLabel(id NodeID, label Label) {
	n := t.mustLive(id)
	if n.label.Named {
		t.unindex(n.label.Name, id)
	}
	n.label = label
	if label.Named {
		t.byName[label.Name] = append(t.byName[label.Name], id)
	}
}

func (t *Tree) unindex(name string, id NodeID) {
	ids := t.byName[name]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(t.byName, name)
		return
	}
	t.byName[name] = ids
}

// Confidence returns the support value of id, if set.
func (t *Tree) Confidence(id NodeID) (float64, bool) {
	n := t.mustLive(id)
	return n.confidence, n.hasConf
}

// SetConfidence sets the support value of id.
func (t *Tree) SetConfidence(id NodeID, v float64) {
	n := t.mustLive(id)
	n.confidence, n.hasConf = v, true
}

// ClearConfidence removes the support value of id.
func (t *Tree) ClearConfidence(id NodeID) {
	n := t.mustLive(id)
	n.confidence, n.hasConf = 0, false
}

// Length returns the branch length leading to id, if set.
func (t *Tree) Length(id NodeID) (float64, bool) {
	n := t.mustLive(id)
	return n.length, n.hasLength
}

// SetLength sets the branch length leading to id.
func (t *Tree) SetLength(id NodeID, v float64) {
	n := t.mustLive(id)
	n.length, n.hasLength = v, true
}

// ClearLength removes the branch length leading to id.
func (t *Tree) ClearLength(id NodeID) {
	n := t.mustLive(id)
	n.length, n.hasLength = 0, false
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.mustLive(id).parent
}

// Children returns a copy of the ordered children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.mustLive(id)
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// IsTerminal reports whether id has no children.
func (t *Tree) IsTerminal(id NodeID) bool {
	return len(t.mustLive(id).children) == 0
}

// Walk visits every live clade in preorder (parent before children,
// children left to right). Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(id NodeID) bool) {
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id) {
			return
		}
		children := t.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Clades returns every live clade in preorder.
func (t *Tree) Clades() []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID) bool {
		out = append(out, id)
		return true
	})
	return out
}

// Terminals returns the leaves in preorder.
func (t *Tree) Terminals() []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID) bool {
		if len(t.nodes[id].children) == 0 {
			out = append(out, id)
		}
		return true
	})
	return out
}

// Taxa returns the names of every named clade, terminal or internal, in
// preorder.
func (t *Tree) Taxa() []string {
	var out []string
	t.Walk(func(id NodeID) bool {
		if l := t.nodes[id].label; l.Named && l.Name != "" {
			out = append(out, l.Name)
		}
		return true
	})
	return out
}

// Len returns the number of live clades.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(NodeID) bool {
		n++
		return true
	})
	return n
}

// Find returns the first live clade named name in preorder.
func (t *Tree) Find(name string) (NodeID, bool) {
	return t.find(name, false)
}

func (t *Tree) find(name string, skipRoot bool) (NodeID, bool) {
	var live []NodeID
	for _, id := range t.byName[name] {
		if t.valid(id) && !(skipRoot && id == t.root) {
			live = append(live, id)
		}
	}
	switch len(live) {
	case 0:
		return NoNode, false
	case 1:
		return live[0], true
	}

	// Several clades share the name; the first in preorder wins.
	found := NoNode
	t.Walk(func(id NodeID) bool {
		l := t.nodes[id].label
		if l.Named && l.Name == name && !(skipRoot && id == t.root) {
			found = id
			return false
		}
		return true
	})
	return found, found != NoNode
}

// Prune detaches the first clade named name, together with its subtree.
//
// If an unnamed parent is left with exactly one child it is collapsed: the
// child takes the parent's place and inherits its branch length (added to
// its own, when it has one). When that parent is the root, the child
// becomes the new root and loses its branch length. Named parents are never
// collapsed, so a name that was findable before a prune stays findable
// unless it was inside the pruned subtree; this makes the final tree
// independent of the order in which a set of names is pruned. A parent
// left with no children stays in place as a terminal.
//
// The root cannot be pruned. If no other live clade carries the name,
// Prune returns an error wrapping ErrNotInTree and leaves the tree as is.
func (t *Tree) Prune(name string) error {
	target, ok := t.find(name, true)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotInTree, name)
	}

	parent := t.nodes[target].parent
	t.removeChild(parent, target)
	t.detach(target)

	if len(t.nodes[parent].children) != 1 || t.nodes[parent].label.Named {
		return nil
	}

	child := t.nodes[parent].children[0]
	if parent == t.root {
		t.nodes[child].parent = NoNode
		t.nodes[child].length, t.nodes[child].hasLength = 0, false
		t.root = child
		t.nodes[parent].children = nil
		t.detachNode(parent)
		return nil
	}

	p := &t.nodes[parent]
	c := &t.nodes[child]
	if c.hasLength {
		c.length += p.length
	}
	grand := p.parent
	siblings := t.nodes[grand].children
	for i, id := range siblings {
		if id == parent {
			siblings[i] = child
			break
		}
	}
	c.parent = grand
	p.children = nil
	t.detachNode(parent)
	return nil
}

func (t *Tree) removeChild(parent, child NodeID) {
	children := t.nodes[parent].children
	for i, id := range children {
		if id == child {
			t.nodes[parent].children = append(children[:i], children[i+1:]...)
			return
		}
	}
}

// detach marks id and its whole subtree as no longer part of the tree.
func (t *Tree) detach(id NodeID) {
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.nodes[cur].children...)
		t.detachNode(cur)
	}
}

func (t *Tree) detachNode(id NodeID) {
	n := &t.nodes[id]
	n.detached = true
	n.parent = NoNode
	if n.label.Named {
		t.unindex(n.label.Name, id)
	}
}
