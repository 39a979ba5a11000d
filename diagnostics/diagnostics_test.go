package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	var nilCollector *Collector
	assert.Empty(t, nilCollector.Errors())

	c := &Collector{}
	first := MigrationError{Location: "A.java:1:1 class A", Message: "unsupported x", NodeKind: "x"}
	second := MigrationError{Location: "A.java:2:1 class A", Message: "unsupported y", NodeKind: "y"}
	c.Add(first)
	c.Add(second)

	assert.Equal(t, []MigrationError{first, second}, c.Errors())
	assert.Equal(t, "A.java:1:1 class A: unsupported x", first.Error())
}
