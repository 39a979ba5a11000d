package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heshanpadmasiri/javaKt/diagnostics"
	"github.com/heshanpadmasiri/javaKt/java"
	"github.com/heshanpadmasiri/javaKt/javaast"
)

func main() {
	diagnostics.Fatal("javakt", rootCmd().Execute())
}

func rootCmd() *cobra.Command {
	var verbosity int
	cmd := &cobra.Command{
		Use:           "javakt",
		Short:         "Convert Java source files to Kotlin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			diagnostics.Configure(verbosity)
		},
	}
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	cmd.AddCommand(convertCmd(), astCmd())
	return cmd
}

type convertOptions struct {
	outputDir string
	strict    bool
	jobs      int
}

func convertCmd() *cobra.Command {
	var opts convertOptions
	cmd := &cobra.Command{
		Use:   "convert [files|dirs|globs...]",
		Short: "Convert Java files to Kotlin",
		Long: `Convert Java files to Kotlin. Each argument is a file, a directory searched
recursively for .java files, or a doublestar glob such as src/**/*.java.

Converted files are written next to their sources with a .kt extension unless
an output directory is given. Config.toml in the working directory is applied.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectJavaFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no java files found in %s", strings.Join(args, " "))
			}
			results, err := convertFiles(cmd.Context(), files, java.LoadConfig(), opts)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), results, opts.strict)
		},
	}
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "directory to write Kotlin files to")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail files that contain unconvertible constructs")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of files converted in parallel")
	return cmd
}

func astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the parsed model of a Java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			file, err := javaast.Parse(source, args[0])
			if err != nil {
				return err
			}
			dumpNode(cmd.OutOrStdout(), file, 0)
			return nil
		},
	}
}

func dumpNode(w io.Writer, n javaast.Node, depth int) {
	kind := reflect.TypeOf(n).Elem().Name()
	fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), kind, n.Pos())
	for _, child := range javaast.Children(n) {
		dumpNode(w, child, depth+1)
	}
}

// collectJavaFiles expands the arguments into a sorted list of Java files
func collectJavaFiles(args []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(path, ".java") {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		case err == nil:
			add(arg)
		default:
			if !doublestar.ValidatePattern(arg) {
				return nil, fmt.Errorf("invalid path or pattern %q", arg)
			}
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%s: no such file", arg)
			}
			for _, match := range matches {
				add(match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// outputPath returns where the Kotlin version of javaPath is written
func outputPath(javaPath, outputDir string) string {
	name := strings.TrimSuffix(filepath.Base(javaPath), ".java") + ".kt"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(javaPath), name)
	}
	return filepath.Join(outputDir, name)
}

type fileResult struct {
	Path   string
	Output string
	Errors []diagnostics.MigrationError
	Err    error
}

// convertFiles converts every file with at most opts.jobs conversions running at a time.
// Results are returned in the order of files.
func convertFiles(ctx context.Context, files []string, settings java.Settings, opts convertOptions) ([]fileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return nil, err
		}
	}
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = convertFile(path, settings, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func convertFile(path string, settings java.Settings, opts convertOptions) fileResult {
	result := fileResult{Path: path}
	source, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}
	diagnostics.Log.Infof("converting %s", path)
	ctx := java.NewMigrationContext(settings, path, opts.strict)
	output, err := java.Migrate(ctx, source)
	result.Errors = ctx.Errors.Errors()
	if err != nil {
		result.Err = err
		return result
	}
	result.Output = outputPath(path, opts.outputDir)
	if err := os.WriteFile(result.Output, []byte(output), 0o644); err != nil {
		result.Err = err
	}
	return result
}

func printSummary(w io.Writer, results []fileResult, strict bool) error {
	failed := 0
	warnings := 0
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", color.RedString("FAIL"), result.Path, result.Err)
		case len(result.Errors) > 0:
			warnings++
			fmt.Fprintf(w, "%s %s -> %s (%d unsupported constructs)\n",
				color.YellowString("WARN"), result.Path, result.Output, len(result.Errors))
		default:
			fmt.Fprintf(w, "%s %s -> %s\n", color.GreenString("OK"), result.Path, result.Output)
		}
		for _, migrationErr := range result.Errors {
			fmt.Fprintf(w, "    %s\n", migrationErr.Error())
		}
	}
	fmt.Fprintf(w, "%d converted, %d with warnings, %d failed\n", len(results)-failed, warnings, failed)
	if failed > 0 {
		if strict {
			return fmt.Errorf("%d files failed in strict mode", failed)
		}
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}
