package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/shlex"
)

// LineHandler processes one non-command input line.
type LineHandler func(ctx context.Context, line string) error

// CommandFunc runs a slash command with its shell-split arguments.
type CommandFunc func(ctx context.Context, args []string) error

type command struct {
	usage string
	run   CommandFunc
}

// REPL reads lines until EOF, "exit", "/exit" or context cancellation. Lines starting
// with "/" are dispatched to registered commands; everything else goes to the handler.
type REPL struct {
	reader   *bufio.Reader
	out      io.Writer
	intro    string
	handle   LineHandler
	commands map[string]command
}

var errExit = errors.New("exit")

func New(in io.Reader, out io.Writer, handle LineHandler) *REPL {
	r := &REPL{
		reader:   bufio.NewReader(in),
		out:      out,
		handle:   handle,
		commands: make(map[string]command),
	}
	r.Handle("help", "show this help", func(ctx context.Context, args []string) error {
		r.printHelp()
		return nil
	})
	r.Handle("exit", "leave the session", func(ctx context.Context, args []string) error {
		return errExit
	})
	return r
}

func (r *REPL) WithIntro(intro string) *REPL {
	r.intro = intro
	return r
}

// Handle registers /name. Registering an existing name replaces it.
func (r *REPL) Handle(name, usage string, fn CommandFunc) {
	r.commands[name] = command{usage: usage, run: fn}
}

type readResult struct {
	text string
	err  error
}

// Run blocks until EOF, exit or ctx is cancelled. Lines are read on a separate goroutine so
// cancellation does not wait for the next newline; a line that arrives after cancellation
// is dropped.
func (r *REPL) Run(ctx context.Context) error {
	if r.intro != "" {
		fmt.Fprintln(r.out, r.intro)
	}

	lines := make(chan readResult)
	done := make(chan struct{})
	defer close(done)
	go r.readLines(lines, done)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(r.out, "> ")
		var res readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case res = <-lines:
		}
		if ctx.Err() != nil {
			return nil
		}

		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return res.err
		}
		eof := errors.Is(res.err, io.EOF)

		if lineErr := r.dispatch(ctx, strings.TrimSpace(res.text)); lineErr != nil {
			if errors.Is(lineErr, errExit) {
				return nil
			}
			fmt.Fprintf(r.out, "Error: %v\n", lineErr)
		}

		if eof {
			fmt.Fprintln(r.out)
			return nil
		}
	}
}

func (r *REPL) readLines(lines chan<- readResult, done <-chan struct{}) {
	for {
		text, err := r.reader.ReadString('\n')
		select {
		case lines <- readResult{text: text, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (r *REPL) dispatch(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	if strings.EqualFold(line, "exit") {
		return errExit
	}
	if !strings.HasPrefix(line, "/") {
		return r.handle(ctx, line)
	}

	parts, err := shlex.Split(strings.TrimPrefix(line, "/"))
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}
	if len(parts) == 0 {
		return nil
	}

	cmd, ok := r.commands[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command /%s (try /help)", parts[0])
	}
	return cmd.run(ctx, parts[1:])
}

func (r *REPL) printHelp() {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(r.out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(r.out, "  /%-10s %s\n", name, r.commands[name].usage)
	}
}
