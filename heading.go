package pith

// HeadingNode is one node of a document's heading hierarchy.
type HeadingNode struct {
	Level    int            `json:"level"`
	Text     string         `json:"text"`
	ID       string         `json:"id"`
	Children []*HeadingNode `json:"children,omitempty"`
}

// BuildHeadingTree arranges the heading blocks into a hierarchy, in block
// order, and returns the top-level nodes.
//
// The algorithm keeps a stack of open headings: each incoming heading pops
// entries whose level is greater than or equal to its own, then attaches
// itself to the remaining stack top (or the top level if the stack is
// empty). A heading that skips levels (H1 followed by H3) therefore
// becomes a child of the nearest enclosing lower-level heading, not a
// sibling with a placeholder between them.
func BuildHeadingTree(blocks []ContentBlock) []*HeadingNode {
	var top []*HeadingNode
	var stack []*HeadingNode

	for _, b := range blocks {
		if b.Type != BlockHeading {
			continue
		}

		node := &HeadingNode{
			Level: b.Metadata.Level,
			Text:  b.Text,
			ID:    b.ID,
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			top = append(top, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)
	}

	return top
}
