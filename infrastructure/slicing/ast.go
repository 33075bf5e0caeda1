package slicing

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Walker provides AST traversal utilities over a parsed tree-sitter tree.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() Walker {
	return Walker{}
}

// WalkFunc is called for each node during traversal.
// Return false to stop traversal.
type WalkFunc func(node *sitter.Node) bool

// Walk performs a breadth-first traversal of the AST.
func (w Walker) Walk(root *sitter.Node, fn WalkFunc) {
	if root == nil {
		return
	}

	queue := []*sitter.Node{root}
	visited := make(map[uintptr]struct{})

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		nodeID := current.ID()
		if _, ok := visited[nodeID]; ok {
			continue
		}
		visited[nodeID] = struct{}{}

		if !fn(current) {
			return
		}

		for i := uint32(0); i < current.ChildCount(); i++ {
			child := current.Child(int(i))
			if child != nil {
				queue = append(queue, child)
			}
		}
	}
}

// CollectChunkNodes returns every node whose kind the language maps to a
// chunk type. Nested declarations are collected too; deduplication by line
// span happens later in the extractor.
func (w Walker) CollectChunkNodes(root *sitter.Node, lang Language) []*sitter.Node {
	var nodes []*sitter.Node
	w.Walk(root, func(node *sitter.Node) bool {
		if _, ok := lang.ChunkType(node.Type()); ok {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// CollectMiddleNodes returns every node whose kind the language maps to a
// middle chunk type. Called on the re-parsed tree of a single large chunk,
// not on the file tree.
func (w Walker) CollectMiddleNodes(root *sitter.Node, lang Language) []*sitter.Node {
	var nodes []*sitter.Node
	w.Walk(root, func(node *sitter.Node) bool {
		if _, ok := lang.MiddleChunkType(node.Type()); ok {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// CollectCommentNodes returns every comment node in the tree.
func (w Walker) CollectCommentNodes(root *sitter.Node, lang Language) []*sitter.Node {
	var nodes []*sitter.Node
	w.Walk(root, func(node *sitter.Node) bool {
		if lang.IsCommentNode(node.Type()) {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// NodeText extracts the text content of a node.
func (w Walker) NodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	start := node.StartByte()
	end := node.EndByte()

	if start >= uint32(len(source)) || end > uint32(len(source)) || start >= end {
		return ""
	}

	return string(source[start:end])
}

// NodeName resolves the declared name of a chunk node. It tries the "name"
// field first, then falls back to the first identifier-like child. Returns
// "" when the grammar exposes neither.
func (w Walker) NodeName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	if named := node.ChildByFieldName("name"); named != nil {
		return w.NodeText(named, source)
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child != nil && w.isIdentifier(child) {
			return w.NodeText(child, source)
		}
	}

	return ""
}

func (w Walker) isIdentifier(node *sitter.Node) bool {
	switch node.Type() {
	case "identifier", "type_identifier", "field_identifier",
		"property_identifier", "constant":
		return true
	}
	return false
}
