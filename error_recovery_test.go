package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/javaKt/java"
)

func TestErrorRecovery(t *testing.T) {
	// Java source with unsupported annotation_type_declaration
	javaSource := []byte(`
class TestAnnotation {
    int validField1 = 5;

    public int getField1() {
        return validField1;
    }

    // Annotation declarations are not supported
    @interface MyAnnotation {
    }

    int validField2 = 10;

    public int getField2() {
        return validField2;
    }
}
`)

	t.Run("non-strict mode continues on error", func(t *testing.T) {
		ctx := java.NewMigrationContext(java.DefaultSettings(), "test.java", false)
		result, err := java.Migrate(ctx, javaSource)
		require.NoError(t, err)

		errors := ctx.Errors.Errors()
		require.Len(t, errors, 1)
		assert.Equal(t, "annotation_type_declaration", errors[0].NodeKind)
		assert.Contains(t, errors[0].Message, "annotation_type_declaration")
		assert.Contains(t, errors[0].Location, "test.java:10:5")
		assert.Contains(t, errors[0].Location, "TestAnnotation")
		assert.Contains(t, errors[0].JavaSource, "@interface MyAnnotation")

		// the annotation is kept as Java text and every other member is converted
		assert.Contains(t, result, "/* FIXME: unsupported annotation_type_declaration */ @interface MyAnnotation")
		assert.Contains(t, result, "internal open class TestAnnotation {")
		assert.Contains(t, result, "var validField1: Int = 5")
		assert.Contains(t, result, "var validField2: Int = 10")
		assert.Contains(t, result, "public open fun getField1(): Int {")
		assert.Contains(t, result, "public open fun getField2(): Int {")
	})

	t.Run("strict mode fails the migration", func(t *testing.T) {
		ctx := java.NewMigrationContext(java.DefaultSettings(), "test.java", true)
		_, err := java.Migrate(ctx, javaSource)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "test.java")
		assert.True(t, ctx.Failed())
	})

	t.Run("syntax errors are recorded", func(t *testing.T) {
		ctx := java.NewMigrationContext(java.DefaultSettings(), "broken.java", false)
		_, err := java.Migrate(ctx, []byte("class Broken { int x = ; }"))
		require.NoError(t, err)
		require.NotEmpty(t, ctx.Errors.Errors())
		assert.Equal(t, "ERROR", ctx.Errors.Errors()[0].NodeKind)
	})
}
