package java

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from a fresh working directory holding the given Config.toml
func inTempDir(t *testing.T, configContent string) {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	if configContent != "" {
		if err := os.WriteFile(ConfigFileName, []byte(configContent), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadConfigWithTypeMappings(t *testing.T) {
	inTempDir(t, `package_name = "testpkg"
license_header = "// Test License"

[type_mappings]
DiagnosticCode = "diagnostics.DiagnosticCode"
SyntaxKind = "diagnostics.SyntaxKind"
CustomType = "pkg.CustomType"
`)

	config := LoadConfig()

	assert.Equal(t, "testpkg", config.PackageName)
	assert.Equal(t, "// Test License", config.LicenseHeader)
	assert.Equal(t, map[string]string{
		"DiagnosticCode": "diagnostics.DiagnosticCode",
		"SyntaxKind":     "diagnostics.SyntaxKind",
		"CustomType":     "pkg.CustomType",
	}, config.TypeMappings)
}

func TestLoadConfigWithoutTypeMappings(t *testing.T) {
	inTempDir(t, `package_name = "testpkg"
license_header = "// Test License"
`)

	config := LoadConfig()

	assert.Equal(t, "testpkg", config.PackageName)
	assert.Empty(t, config.TypeMappings)
	assert.NotNil(t, config.TypeMappings)
}

func TestLoadConfigNonNullSettings(t *testing.T) {
	inTempDir(t, `force_not_null_types = true
specify_local_variable_types = true
not_null_annotations = ["lombok.NonNull"]
`)

	config := LoadConfig()

	assert.True(t, config.ForceNotNullTypes)
	assert.True(t, config.SpecifyLocalVariableTypes)
	assert.Equal(t, []string{"lombok.NonNull"}, config.NotNullAnnotations)
}

func TestLoadConfigNonexistent(t *testing.T) {
	inTempDir(t, "")

	config := LoadConfig()

	assert.Equal(t, DefaultSettings(), config)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	inTempDir(t, `package_name = "unterminated`)

	config := LoadConfig()

	assert.Equal(t, DefaultSettings(), config)
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`package_name = "custom"`), 0o644))

	assert.Equal(t, "custom", LoadConfigFrom(path).PackageName)
}

func TestNewMigrationContextWithNilTypeMappings(t *testing.T) {
	ctx := NewMigrationContext(Settings{}, "Test.java", false)

	assert.NotNil(t, ctx.Settings.TypeMappings)
	assert.NotNil(t, ctx.Errors)
	assert.False(t, ctx.Failed())
}

func TestConfigIntegration(t *testing.T) {
	inTempDir(t, `package_name = "converted"
license_header = """// Copyright 2024 Test Company
// Licensed under Apache 2.0
"""

[type_mappings]
CustomString = "kotlin.text.StringBuilder"
`)

	ctx := NewMigrationContext(LoadConfig(), "Example.java", false)
	result, err := Migrate(ctx, []byte(`package original;

class Example {
    CustomString name;
}
`))
	require.NoError(t, err)

	assert.Contains(t, result, "// Copyright 2024 Test Company\n// Licensed under Apache 2.0\n\npackage converted\n")
	assert.NotContains(t, result, "package original")
	assert.Contains(t, result, "var name: kotlin.text.StringBuilder? = null")
}
