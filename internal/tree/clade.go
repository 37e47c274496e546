package tree

// Clade is a self-contained value copy of a subtree. It is the shape used
// to build trees by hand and to compare them in tests; all mutation goes
// through Tree.
type Clade struct {
	Label      Label
	Confidence *float64
	Length     *float64
	Children   []*Clade
}

// FromClade builds a Tree whose root is a copy of c.
func FromClade(c *Clade) *Tree {
	t := New()
	if c == nil {
		return t
	}
	t.fill(t.root, c)
	return t
}

func (t *Tree) fill(id NodeID, c *Clade) {
	t.SetLabel(id, c.Label)
	if c.Confidence != nil {
		t.SetConfidence(id, *c.Confidence)
	}
	if c.Length != nil {
		t.SetLength(id, *c.Length)
	}
	for _, child := range c.Children {
		t.fill(t.AddChild(id, child.Label), child)
	}
}

// ToClade copies the live tree into a Clade value.
func (t *Tree) ToClade() *Clade {
	return t.cladeAt(t.root)
}

func (t *Tree) cladeAt(id NodeID) *Clade {
	n := &t.nodes[id]
	c := &Clade{Label: n.label}
	if n.hasConf {
		v := n.confidence
		c.Confidence = &v
	}
	if n.hasLength {
		v := n.length
		c.Length = &v
	}
	for _, child := range n.children {
		c.Children = append(c.Children, t.cladeAt(child))
	}
	return c
}

// Leaf returns a named terminal clade, for building trees by hand.
func Leaf(name string) *Clade {
	return &Clade{Label: Named(name)}
}

// Node returns an internal clade with the given label and children.
func Node(label Label, children ...*Clade) *Clade {
	return &Clade{Label: label, Children: children}
}

// Float returns a pointer to v, for Clade literals.
func Float(v float64) *float64 {
	return &v
}
