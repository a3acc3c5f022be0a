// Package repl implements Lispy's interactive read-eval-print loop:
// line editing and history via chzyer/readline, colorized output via
// fatih/color, and diagnostics via sirupsen/logrus.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/clisp-lang/clisp/interpreter"
	"github.com/clisp-lang/clisp/parser"
	"github.com/clisp-lang/clisp/reader"
	"github.com/clisp-lang/clisp/sexpr"
)

const Prompt = "clisp> "

// REPL owns the persistent global environment and the line editor. A
// single REPL instance is meant to run once, for the session's
// lifetime; the environment it holds grows monotonically, as spec'd.
type REPL struct {
	env      *sexpr.Environment
	rl       *readline.Instance
	log      *logrus.Logger
	errColor *color.Color
	noColor  bool
}

// Config controls how a REPL is constructed.
type Config struct {
	// HistoryFile, if non-empty, backs readline's persistent history.
	HistoryFile string
	// NoColor disables fatih/color output regardless of tty detection.
	NoColor bool
	// Debug raises the logger's level to Debug.
	Debug bool
	// Stdin/Stdout override the line editor's I/O, mainly for tests.
	Stdin  io.ReadCloser
	Stdout io.Writer
}

// New builds a REPL with a fresh global environment seeded with every
// built-in primitive.
func New(cfg Config) (*REPL, error) {
	env := sexpr.NewEnvironment(nil)
	interpreter.LoadPrimitives(env)

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	rlCfg := &readline.Config{
		Prompt:          Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	if cfg.Stdin != nil {
		rlCfg.Stdin = cfg.Stdin
	}
	if cfg.Stdout != nil {
		rlCfg.Stdout = cfg.Stdout
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, fmt.Errorf("repl: initializing readline: %w", err)
	}

	errColor := color.New(color.FgRed)
	if cfg.NoColor {
		color.NoColor = true
	}

	return &REPL{env: env, rl: rl, log: log, errColor: errColor, noColor: cfg.NoColor}, nil
}

// Close releases the line editor's resources.
func (r *REPL) Close() error { return r.rl.Close() }

// Run drives the read-eval-print loop until the `exit` built-in fires
// a Termination, EOF is reached, or an interrupt is received on an
// empty line. It returns the process exit code (0 on clean exit).
func (r *REPL) Run() int {
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return 0
				}
				continue
			}
			if err == io.EOF {
				return 0
			}
			r.log.WithError(err).Error("reading input")
			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result, done := r.safeEvalLine(line)
		if done {
			return 0
		}
		r.print(result)
	}
}

// safeEvalLine wraps evalLine with a recover() backstop: a panic deep
// in Eval/Apply is a host bug, not a Lispy program error, and must not
// take the whole session down with it.
func (r *REPL) safeEvalLine(line string) (result sexpr.Value, done bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorf("recovered panic evaluating %q: %v", line, rec)
			result = sexpr.Error{Message: fmt.Sprintf("internal error: %v", rec)}
			done = false
		}
	}()
	return r.evalLine(line)
}

// evalLine parses, reads and evaluates one line against the REPL's
// persistent environment. It returns (result, true) when the line
// produced a Termination, signaling the caller to stop the loop.
func (r *REPL) evalLine(line string) (sexpr.Value, bool) {
	node, err := parser.Parse(line)
	if err != nil {
		r.printParseError(err)
		return nil, false
	}

	v, err := reader.Read(node)
	if err != nil {
		r.printParseError(err)
		return nil, false
	}

	result := interpreter.Eval(r.env, v)
	if _, ok := result.(sexpr.Termination); ok {
		return result, true
	}
	return result, false
}

func (r *REPL) printParseError(err error) {
	if r.noColor {
		fmt.Fprintf(r.rl.Stdout(), "Parse Error: %v\n", err)
		return
	}
	r.errColor.Fprintf(r.rl.Stdout(), "Parse Error: %v\n", err)
}

func (r *REPL) print(v sexpr.Value) {
	if v == nil {
		return
	}
	if errVal, ok := v.(sexpr.Error); ok {
		if r.noColor {
			fmt.Fprintln(r.rl.Stdout(), errVal.String())
		} else {
			r.errColor.Fprintln(r.rl.Stdout(), errVal.String())
		}
		return
	}
	fmt.Fprintln(r.rl.Stdout(), v.String())
}
