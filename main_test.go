package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heshanpadmasiri/javaKt/java"
)

var update = flag.Bool("update", false, "update expected Kotlin files")

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

func getKotlinFilePath(javaFile string) string {
	baseName := strings.TrimSuffix(filepath.Base(javaFile), ".java")
	return filepath.Join("testdata", "kotlin", baseName+".kt")
}

func updateExpectedFile(ktFile string, content string) error {
	dir := filepath.Dir(ktFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(ktFile, []byte(content), 0o644)
}

func migrate(t *testing.T, path string, source []byte) string {
	t.Helper()
	ctx := java.NewMigrationContext(java.DefaultSettings(), path, false)
	result, err := java.Migrate(ctx, source)
	require.NoError(t, err)
	return result
}

func TestMigration(t *testing.T) {
	javaDir := filepath.Join("testdata", "java")
	entries, err := os.ReadDir(javaDir)
	require.NoError(t, err)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".java") {
			continue
		}
		javaFile := filepath.Join(javaDir, entry.Name())
		testName := strings.TrimSuffix(entry.Name(), ".java")

		t.Run(testName, func(t *testing.T) {
			javaContent, err := os.ReadFile(javaFile)
			require.NoError(t, err)
			ktFile := getKotlinFilePath(javaFile)
			result := migrate(t, javaFile, javaContent)

			expected, err := os.ReadFile(ktFile)
			if err != nil {
				if *update {
					require.NoError(t, updateExpectedFile(ktFile, result))
					t.Logf("Created expected file: %s", ktFile)
					return
				}
				t.Fatalf("Failed to read expected Kotlin file %s: %v", ktFile, err)
			}
			if diff := cmp.Diff(string(expected), result); diff != "" {
				if *update {
					require.NoError(t, updateExpectedFile(ktFile, result))
					t.Logf("Updated expected file: %s", ktFile)
					return
				}
				t.Errorf("Output does not match %s (-expected +got):\n%s", ktFile, diff)
			}
		})
	}
}

func TestConcurrentConversionMatchesSequential(t *testing.T) {
	files, err := collectJavaFiles([]string{filepath.Join("testdata", "java")})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	convert := func(jobs int) map[string]string {
		out := t.TempDir()
		results, err := convertFiles(context.Background(), files, java.DefaultSettings(), convertOptions{outputDir: out, jobs: jobs})
		require.NoError(t, err)
		outputs := map[string]string{}
		for _, result := range results {
			require.NoError(t, result.Err)
			content, err := os.ReadFile(result.Output)
			require.NoError(t, err)
			outputs[filepath.Base(result.Output)] = string(content)
		}
		return outputs
	}

	sequential := convert(1)
	concurrent := convert(4)
	if diff := cmp.Diff(sequential, concurrent); diff != "" {
		t.Errorf("concurrent conversion differs (-sequential +concurrent):\n%s", diff)
	}
	assert.Len(t, sequential, len(files))
}

func TestCollectJavaFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	for _, name := range []string{
		filepath.Join(dir, "A.java"),
		filepath.Join(nested, "B.java"),
		filepath.Join(nested, "notes.txt"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("class X {}"), 0o644))
	}

	t.Run("directory is walked", func(t *testing.T) {
		files, err := collectJavaFiles([]string{dir})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "A.java"), filepath.Join(nested, "B.java")}, files)
	})

	t.Run("glob", func(t *testing.T) {
		files, err := collectJavaFiles([]string{filepath.Join(dir, "**", "B.java")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(nested, "B.java")}, files)
	})

	t.Run("duplicates are dropped", func(t *testing.T) {
		single := filepath.Join(dir, "A.java")
		files, err := collectJavaFiles([]string{single, single})
		require.NoError(t, err)
		assert.Equal(t, []string{single}, files)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := collectJavaFiles([]string{filepath.Join(dir, "Missing.java")})
		assert.Error(t, err)
	})
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "Foo.kt"), outputPath(filepath.Join("src", "Foo.java"), ""))
	assert.Equal(t, filepath.Join("out", "Foo.kt"), outputPath(filepath.Join("src", "Foo.java"), "out"))
}

func TestStrictModeFailsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Marker.java")
	require.NoError(t, os.WriteFile(path, []byte("@interface Marker {}\n"), 0o644))

	results, err := convertFiles(context.Background(), []string{path}, java.DefaultSettings(), convertOptions{strict: true, jobs: 1})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.NotEmpty(t, results[0].Errors)

	var out bytes.Buffer
	assert.Error(t, printSummary(&out, results, true))
	assert.Contains(t, out.String(), "Marker.java")
	_, statErr := os.Stat(outputPath(path, ""))
	assert.True(t, os.IsNotExist(statErr), "a failed file is not written")
}

func TestAstCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ast", filepath.Join("testdata", "java", "counter.java")})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "File")
	assert.Contains(t, out.String(), "  Class")
	assert.Contains(t, out.String(), "Method")
}
