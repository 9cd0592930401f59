package blame

import "strings"

// Chain is an immutable linked list of frames ending in a root.
// A node with a nil Frame is the root node. The nil *Chain means "no chain".
type Chain struct {
	frame  Frame
	parent *Chain
	root   Root
}

// Of returns the chain consisting of the root only.
func Of(root Root) *Chain {
	if root == nil {
		root = UnknownOperation{}
	}
	return &Chain{root: root}
}

// Build makes a chain from frames listed root to leaf.
func Build(root Root, frames ...Frame) *Chain {
	c := Of(root)
	for _, f := range frames {
		c = c.Push(f)
	}
	return c
}

// Push returns a new chain with f as the new leaf; c is not modified.
func (c *Chain) Push(f Frame) *Chain {
	if c == nil {
		c = Of(UnknownOperation{})
	}
	return &Chain{frame: f, parent: c, root: c.root}
}

// Root returns the chain's root, or UnknownOperation for the nil chain.
func (c *Chain) Root() Root {
	if c == nil {
		return UnknownOperation{}
	}
	return c.root
}

// Leaf returns the leaf-most frame.
func (c *Chain) Leaf() (Frame, bool) {
	if c == nil || c.frame == nil {
		return nil, false
	}
	return c.frame, true
}

// Parent is the chain with the leaf frame removed.
func (c *Chain) Parent() *Chain {
	if c == nil {
		return nil
	}
	return c.parent
}

// IsRoot reports whether c holds no frames.
func (c *Chain) IsRoot() bool {
	return c == nil || c.frame == nil
}

// Depth is the number of frames.
func (c *Chain) Depth() int {
	n := 0
	for cur := c; cur != nil && cur.frame != nil; cur = cur.parent {
		n++
	}
	return n
}

// Frames lists frames leaf first.
func (c *Chain) Frames() []Frame {
	out := make([]Frame, 0, c.Depth())
	for cur := c; cur != nil && cur.frame != nil; cur = cur.parent {
		out = append(out, cur.frame)
	}
	return out
}

// RootToLeaf lists frames root first.
func (c *Chain) RootToLeaf() []Frame {
	out := c.Frames()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (c *Chain) String() string {
	if c == nil {
		return "<no chain>"
	}
	var sb strings.Builder
	sb.WriteString(RootName(c.root))
	for _, f := range c.RootToLeaf() {
		sb.WriteString(" > ")
		sb.WriteString(FrameName(f))
	}
	return sb.String()
}
