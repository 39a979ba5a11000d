package java

import (
	"github.com/heshanpadmasiri/javaKt/javaast"
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// convertModifiers maps Java modifiers to their Kotlin counterparts. Package private access
// has no member level equivalent and maps to nothing.
func convertModifiers(modifiers javaast.Modifiers) ktsrc.Modifiers {
	var result ktsrc.Modifiers
	for _, each := range modifierTable {
		if modifiers.Has(each.java) {
			result = result.With(each.kotlin)
		}
	}
	return result
}

func comments(docs []*javaast.Comment) []ktsrc.SourceElement {
	result := make([]ktsrc.SourceElement, 0, len(docs))
	for _, doc := range docs {
		result = append(result, &ktsrc.Comment{Text: doc.Text})
	}
	return result
}
