package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/fang"
	"github.com/kestrelfmt/kestrel/pkg/kestrel"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Config holds the application configuration
type Config struct {
	Debug      bool
	Write      bool
	List       bool
	LineLength int
	DumpAST    bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "kestrel [flags] [path...]",
		Short: "Kestrel Python expression formatter",
		Long: `Kestrel formats Python expression files according to a canonical style.

By default the formatted source is printed to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.`,
		Example: `  # Format a file and print to stdout
  kestrel script.py

  # Format a file in place
  kestrel -w script.py

  # Format all .py files in a directory
  kestrel -w ./src

  # List files that need formatting
  kestrel -l ./src

  # Dump the parse tree instead of formatting
  kestrel --dump-ast script.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)
			return run(cmd.Context(), cfg, args)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "Write result to source file instead of stdout")
	rootCmd.Flags().BoolVarP(&cfg.List, "list", "l", false, "List files that would be formatted")
	rootCmd.Flags().IntVar(&cfg.LineLength, "line-length", 0, "Target line length (overrides kestrel.toml)")
	rootCmd.Flags().BoolVar(&cfg.DumpAST, "dump-ast", false, "Print the parse tree instead of formatting")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func run(ctx context.Context, cfg Config, paths []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	configPath, config, err := kestrel.FindProjectConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load kestrel.toml: %v\n", err)
	} else if configPath != "" {
		slog.Debug("using project config", "path", configPath)
	}

	width := config.Width()
	if cfg.LineLength > 0 {
		width = cfg.LineLength
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("accessing %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := collectSourceFiles(path, config)
			if err != nil {
				return err
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}

	if cfg.DumpAST {
		for _, file := range files {
			if err := dumpAST(file); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
		}
		return nil
	}

	// Formatting to stdout must stay in argument order; everything else can
	// run concurrently.
	if !cfg.Write && !cfg.List {
		for _, file := range files {
			if err := formatOne(file, width); err != nil {
				return fmt.Errorf("formatting %s: %w", file, err)
			}
		}
		return nil
	}

	var mu sync.Mutex
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for _, file := range files {
		eg.Go(func() error {
			changed, err := rewriteOne(file, width, cfg.Write)
			if err != nil {
				return fmt.Errorf("formatting %s: %w", file, err)
			}
			if changed && cfg.List {
				mu.Lock()
				fmt.Println(file)
				mu.Unlock()
			}
			return nil
		})
	}
	return eg.Wait()
}

// collectSourceFiles walks a directory tree gathering .py files, skipping
// hidden directories and configured exclusions.
func collectSourceFiles(root string, config *kestrel.ProjectConfig) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if config.Excluded(path) {
			slog.Debug("skipping excluded file", "path", path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func formatOne(path string, width int) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	formatted, err := kestrel.FormatSource(source, width)
	if err != nil {
		return err
	}
	fmt.Print(formatted)
	return nil
}

// rewriteOne formats a file in place (or just checks it when write is
// false) and reports whether the content differs from the source.
func rewriteOne(path string, width int, write bool) (bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	formatted, err := kestrel.FormatSource(source, width)
	if err != nil {
		return false, err
	}

	changed := string(source) != formatted
	if changed && write {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return false, err
		}
	}
	return changed, nil
}

func dumpAST(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	mod, comments, err := kestrel.ParseModule(path, source)
	if err != nil {
		return err
	}
	pretty.Println(mod)
	if len(comments) > 0 {
		pretty.Println(comments)
	}
	return nil
}
