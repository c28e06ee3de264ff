package kestrel

// Comments partitions source comments by the node they belong to. It is
// built once after parsing and only read during formatting.
//
// Placement rules:
//   - a comment on its own line attaches as a leading comment of the
//     outermost node starting at the next code position;
//   - a comment after code on the same line attaches as a trailing comment
//     of the innermost node ending before it;
//   - a comment between a binary operator and its right operand attaches as
//     a dangling comment of that binary operation, keeping it next to the
//     operator when the chain wraps.
type Comments struct {
	leading  map[Node][]*Comment
	trailing map[Node][]*Comment
	dangling map[Node][]*Comment
}

// Leading returns the comments directly above the node.
func (c *Comments) Leading(n Node) []*Comment {
	return c.leading[n]
}

// HasLeading reports whether the node has any leading comments.
func (c *Comments) HasLeading(n Node) bool {
	return len(c.leading[n]) > 0
}

// Trailing returns the comments after the node on the same line.
func (c *Comments) Trailing(n Node) []*Comment {
	return c.trailing[n]
}

// Dangling returns the comments attached to the node's operator.
func (c *Comments) Dangling(n Node) []*Comment {
	return c.dangling[n]
}

// AssociateComments attaches every comment to a node in the tree.
func AssociateComments(root Node, comments []*Comment) *Comments {
	c := &Comments{
		leading:  map[Node][]*Comment{},
		trailing: map[Node][]*Comment{},
		dangling: map[Node][]*Comment{},
	}

	var nodes []Node
	root.Walk(func(n Node) bool {
		if _, isModule := n.(*Module); !isModule {
			nodes = append(nodes, n)
		}
		return true
	})

	for _, com := range comments {
		if bin := danglingTarget(nodes, com); bin != nil {
			c.dangling[bin] = append(c.dangling[bin], com)
			continue
		}
		if !com.OwnLine {
			if n := trailingTarget(nodes, com, true); n != nil {
				c.trailing[n] = append(c.trailing[n], com)
				continue
			}
		}
		if n := leadingTarget(nodes, com); n != nil {
			c.leading[n] = append(c.leading[n], com)
			continue
		}
		if !com.OwnLine {
			if n := trailingTarget(nodes, com, false); n != nil {
				c.trailing[n] = append(c.trailing[n], com)
				continue
			}
		}
		// Nothing follows the comment; it belongs to the file itself.
		c.trailing[root] = append(c.trailing[root], com)
	}

	return c
}

// danglingTarget finds the innermost binary operation whose operator sits
// directly before the comment on the same line, with the right operand
// following later.
func danglingTarget(nodes []Node, com *Comment) *BinaryOp {
	var best *BinaryOp
	for _, n := range nodes {
		bin, ok := n.(*BinaryOp)
		if !ok {
			continue
		}
		if bin.OpLoc.Start.Line != com.Loc.Start.Line {
			continue
		}
		if bin.OpLoc.End.Offset > com.Loc.Start.Offset {
			continue
		}
		if com.Loc.End.Offset > bin.Right.Span().Start.Offset {
			continue
		}
		if best == nil || bin.Span().width() < best.Span().width() {
			best = bin
		}
	}
	return best
}

// trailingTarget finds the innermost node ending before the comment. With
// sameLine set, the node must end on the comment's line.
func trailingTarget(nodes []Node, com *Comment, sameLine bool) Node {
	var best Node
	for _, n := range nodes {
		end := n.Span().End
		if end.Offset > com.Loc.Start.Offset {
			continue
		}
		if sameLine && end.Line != com.Loc.Start.Line {
			continue
		}
		if best == nil {
			best = n
			continue
		}
		bestEnd := best.Span().End.Offset
		if end.Offset > bestEnd ||
			(end.Offset == bestEnd && n.Span().width() < best.Span().width()) {
			best = n
		}
	}
	return best
}

// leadingTarget finds the outermost node starting after the comment.
func leadingTarget(nodes []Node, com *Comment) Node {
	var best Node
	for _, n := range nodes {
		start := n.Span().Start
		if start.Offset < com.Loc.End.Offset {
			continue
		}
		if best == nil {
			best = n
			continue
		}
		bestStart := best.Span().Start.Offset
		if start.Offset < bestStart ||
			(start.Offset == bestStart && n.Span().width() > best.Span().width()) {
			best = n
		}
	}
	return best
}
