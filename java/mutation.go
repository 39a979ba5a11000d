package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
)

// countWriteAccesses counts the assignments and increments targeting decl within container
func countWriteAccesses(decl javaast.Declaration, container javaast.Node) int {
	count := 0
	javaast.Inspect(container, func(n javaast.Node) bool {
		switch n := n.(type) {
		case *javaast.Assignment:
			if refersTo(n.Left, decl) {
				count++
			}
		case *javaast.Unary:
			if n.IsIncrement() && refersTo(n.Operand, decl) {
				count++
			}
		}
		return true
	})
	return count
}

// isReadOnly reports whether decl is never written within container
func isReadOnly(decl javaast.Declaration, container javaast.Node) bool {
	return countWriteAccesses(decl, container) == 0
}

func refersTo(e javaast.Expression, decl javaast.Declaration) bool {
	ref, ok := javaast.Unparen(e).(*javaast.Reference)
	return ok && ref.Target != nil && ref.Target == decl
}
