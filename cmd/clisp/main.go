// Command clisp is the Lispy interpreter: an interactive REPL by
// default, or a batch evaluator of one or more source files via the
// `run` subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clisp-lang/clisp/interpreter"
	"github.com/clisp-lang/clisp/repl"
	"github.com/clisp-lang/clisp/sexpr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug, noColor bool

	root := &cobra.Command{
		Use:   "clisp",
		Short: "Lispy: a small interactive Lisp-like interpreter",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repl.New(repl.Config{
				HistoryFile: historyFile(),
				NoColor:     noColor,
				Debug:       debug,
			})
			if err != nil {
				return err
			}
			code := r.Run()
			r.Close()
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")

	root.AddCommand(newRunCmd(&debug))
	return root
}

func newRunCmd(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE...",
		Short: "Batch-evaluate one or more Lispy source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := sexpr.NewEnvironment(nil)
			interpreter.LoadPrimitives(env)

			hadError := false
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("clisp run: %w", err)
				}
				if repl.RunBatch(env, string(src), cmd.OutOrStdout()) {
					hadError = true
				}
			}
			if hadError {
				os.Exit(1)
			}
			return nil
		},
	}
}

// historyFile resolves the REPL's persistent history path from
// $CLISP_HISTFILE, falling back to a dotfile in the user's home
// directory.
func historyFile() string {
	if f := os.Getenv("CLISP_HISTFILE"); f != "" {
		return f
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clisp_history")
}
