package phonebook

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/phonebook/internal/presentation/tui"
	"github.com/aretw0/phonebook/pkg/domain"
)

// Runner is a line-oriented shell over a Controller using provided IO.
// This allows for easy testing and integration with different frontends.
//
// By default every command maps to exactly one event, so the user walks the
// machine by hand (read, add, finish). With AutoCommit set, mutations run a
// full READ → mutation → FINISH cycle.
type Runner struct {
	Input      io.Reader
	Output     io.Writer
	Headless   bool
	AutoCommit bool
	Renderer   ContentRenderer
}

// ContentRenderer is a function that transforms markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

const shellHelp = `commands:
  read                              load entries (idle → ready)
  add <id> <first> <last> [phone]   create an entry (ready → running)
  update <id> <first> <last> [phone]
  delete <id>
  reset                             restore the seed entries
  finish                            persist (running → idle)
  list                              show entries
  state                             show the current state
  help, exit`

// Run reads commands until EOF or exit.
func (r *Runner) Run(ctx context.Context, book *Controller) error {
	if r.Input == nil {
		return errors.New("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return errors.New("output writer must be set (use os.Stdout)")
	}

	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- Phonebook Shell ---")
		fmt.Fprintln(r.Output, "type 'help' for commands")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !r.Headless {
			fmt.Fprintf(r.Output, "[%s]> ", book.State())
		}

		text, err := lineReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		line := strings.TrimSpace(text)
		if line == "exit" || line == "quit" {
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		}
		if line != "" {
			r.execute(ctx, book, line)
		}

		if eof {
			return nil
		}
	}
}

func (r *Runner) execute(ctx context.Context, book *Controller, line string) {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(r.Output, shellHelp)
		return
	case "state":
		fmt.Fprintln(r.Output, book.State())
		return
	case "list":
		r.printEntries(book.Entries())
		return
	}

	ev, err := parseCommand(cmd, args)
	if err != nil {
		fmt.Fprintf(r.Output, "error: %v\n", err)
		return
	}

	from := book.State()
	var accepted bool
	if r.AutoCommit {
		accepted = book.Apply(ctx, ev)
	} else {
		accepted = book.Dispatch(ctx, ev)
	}

	if !accepted {
		fmt.Fprintf(r.Output, "ignored: %s is not allowed in state %s\n", ev.Type, from)
		return
	}
	fmt.Fprintf(r.Output, "%s: %s → %s (%d entries)\n", ev.Type, from, book.State(), len(book.Entries()))
}

func (r *Runner) printEntries(entries []domain.Entry) {
	output := tui.EntriesMarkdown(entries)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimRight(output, "\n"))
}

func parseCommand(cmd string, args []string) (domain.Event, error) {
	switch cmd {
	case "read":
		return domain.Read(), nil
	case "finish":
		return domain.Finish(), nil
	case "reset":
		return domain.Reset(), nil
	case "delete":
		if len(args) != 1 {
			return domain.Event{}, errors.New("usage: delete <id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return domain.Event{}, fmt.Errorf("invalid id %q", args[0])
		}
		return domain.Delete(domain.Entry{ID: id}), nil
	case "add", "update":
		if len(args) < 3 || len(args) > 4 {
			return domain.Event{}, fmt.Errorf("usage: %s <id> <first> <last> [phone]", cmd)
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return domain.Event{}, fmt.Errorf("invalid id %q", args[0])
		}
		e := domain.Entry{ID: id, FirstName: args[1], LastName: args[2]}
		if len(args) == 4 {
			e.PhoneNumber = args[3]
		}
		if cmd == "add" {
			return domain.Create(e), nil
		}
		return domain.Update(e), nil
	}
	return domain.Event{}, fmt.Errorf("unknown command %q", cmd)
}
