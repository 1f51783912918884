package exec

import "github.com/go-librarian/librarian/internal/query"

// Translate turns a parsed AST into the corresponding execution tree.
func Translate(node *query.Node) Cursor {
	switch node.Type {
	case query.NodeTerm:
		return NewTermCursor(node.Term)
	case query.NodeNot:
		return NewNotCursor(Translate(node.Child))
	case query.NodeAnd:
		children := make([]Cursor, len(node.Children))
		for i, ch := range node.Children {
			children[i] = Translate(ch)
		}
		return NewAndCursor(children)
	case query.NodeOr:
		children := make([]Cursor, len(node.Children))
		for i, ch := range node.Children {
			children[i] = Translate(ch)
		}
		return NewOrCursor(children)
	default:
		panic("exec: unknown AST node type")
	}
}
