package java

import (
	"github.com/heshanpadmasiri/javaKt/ktsrc"
)

// classToTrait turns a converted interface into a Kotlin interface. Interfaces have no
// constructors and extend their super interfaces without constructor calls.
func (ctx *MigrationContext) classToTrait(class ktsrc.Class) *ktsrc.Trait {
	members := make([]ktsrc.SourceElement, 0, len(class.Members))
	for _, member := range class.Members {
		if _, isConstructor := member.(*ktsrc.Constructor); isConstructor {
			continue
		}
		members = append(members, member)
	}
	class.Members = members
	class.BaseArgs = nil
	class.Modifiers = class.Modifiers.Without(ktsrc.ABSTRACT)
	return &ktsrc.Trait{Class: class}
}
