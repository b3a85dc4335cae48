package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/prql/internal/sql"
	"github.com/leapstack-labs/prql/pkg/rq"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Out   string
	Watch bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}

	cmd := &cobra.Command{
		Use:   "compile [FILE]",
		Short: "Compile a query to SQL",
		Long: `Compile a YAML query document to SQL.

Reads the query from FILE, or from stdin when FILE is omitted or "-".`,
		Example: `  # Compile a query file
  prql compile query.yaml

  # Target a concrete dialect without the signature comment
  prql compile query.yaml -t sql.duckdb --signature=false

  # Recompile on every change
  prql compile query.yaml --watch --out query.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "write SQL to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "watch the input file and recompile on change")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string, opts *CompileOptions) error {
	cfg := GetConfig(cmd.Context())
	compileOpts := sql.Options{
		Target:           cfg.Target,
		Format:           cfg.Format,
		SignatureComment: cfg.Signature,
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}

	if opts.Watch {
		if input == "" || input == "-" {
			return fmt.Errorf("--watch requires an input file")
		}
		return watchAndCompile(cmd, input, opts.Out, compileOpts)
	}
	return compileOnce(cmd, input, opts.Out, compileOpts)
}

func compileOnce(cmd *cobra.Command, input, out string, opts sql.Options) error {
	data, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	q, err := rq.DecodeQuery(data)
	if err != nil {
		return err
	}
	sqlText, err := sql.Compile(q, opts)
	if err != nil {
		return err
	}

	if out != "" {
		return os.WriteFile(out, []byte(sqlText), 0o644)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sqlText)
	return err
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// watchAndCompile recompiles on every write to the input file until the
// command context is cancelled. The containing directory is watched because
// editors typically replace files instead of writing in place.
func watchAndCompile(cmd *cobra.Command, input, out string, opts sql.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	absInput, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absInput)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absInput), err)
	}

	recompile := func() {
		if err := compileOnce(cmd, input, out, opts); err != nil {
			slog.Error("compile failed", "file", input, "err", err)
			return
		}
		slog.Info("compiled", "file", input)
	}
	recompile()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Name == absInput && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					recompile()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return err
			}
		}
	})
	return g.Wait()
}
