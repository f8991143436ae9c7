package vendsim

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/vendsim/pkg/domain"
)

// Runner handles the interactive loop of a machine using provided IO.
// This allows for easy testing and integration with different frontends
// (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms markdown content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling
// the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. The caller must set Input and
// Output (use os.Stdin / os.Stdout for a terminal session).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the input loop until EOF or a quit command. Each line
// is either a meta command (state, history, reset, help, quit) or an
// input symbol forwarded to the machine verbatim.
func (r *Runner) Run(m *Machine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		def := m.Definition()
		fmt.Fprintf(r.Output, "--- %s ---\n", def.Name)
		fmt.Fprintf(r.Output, "symbols: %s\n", joinSymbols(def.Alphabet))
		r.printState(m)
	}

	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}

		line, err := lineReader.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintf(r.Output, "symbols: %s\n", joinSymbols(m.Definition().Alphabet))
			fmt.Fprintln(r.Output, "commands: state, history, reset, help, quit")
		case "state":
			r.printState(m)
		case "history":
			r.printHistory(m)
		case "reset":
			m.Reset()
			r.printState(m)
		default:
			rec := m.Transition(domain.Symbol(input))
			r.printRecord(rec)
			if !r.Headless {
				r.printState(m)
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

func (r *Runner) printState(m *Machine) {
	var b strings.Builder
	fmt.Fprintf(&b, "**state**: %s | **balance**: RM%d", joinStates(m.Current()), m.Balance())
	if m.CanBuyEyeDrop() {
		b.WriteString(" | eye drop ready")
	}
	if m.CanBuyVitamin() {
		b.WriteString(" | vitamin ready")
	}
	r.write(b.String())
}

func (r *Runner) printRecord(rec domain.Record) {
	line := fmt.Sprintf("%s --%s--> %s", joinStates(rec.Before), rec.Symbol, joinStates(rec.After))
	if rec.Dispensed.Dispensed() {
		line += fmt.Sprintf("\n**DISPENSED: %s**", rec.Dispensed)
	}
	r.write(line)
}

func (r *Runner) printHistory(m *Machine) {
	h := m.History()
	if len(h) == 0 {
		r.write("_no transitions yet_")
		return
	}
	var b strings.Builder
	for i, rec := range h {
		fmt.Fprintf(&b, "%d. %s --%s--> %s", i+1, joinStates(rec.Before), rec.Symbol, joinStates(rec.After))
		if rec.Dispensed.Dispensed() {
			fmt.Fprintf(&b, " (dispensed %s)", rec.Dispensed)
		}
		b.WriteString("\n")
	}
	r.write(strings.TrimRight(b.String(), "\n"))
}

// write passes content through the renderer when one is set.
func (r *Runner) write(content string) {
	if r.Renderer != nil {
		if rendered, err := r.Renderer(content); err == nil {
			fmt.Fprint(r.Output, rendered)
			if !strings.HasSuffix(rendered, "\n") {
				fmt.Fprintln(r.Output)
			}
			return
		}
	}
	fmt.Fprintln(r.Output, content)
}

func joinStates(states []domain.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func joinSymbols(symbols []domain.Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
