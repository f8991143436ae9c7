// Package cli holds the logic behind the interactive commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/vendsim"
	"github.com/aretw0/vendsim/internal/logging"
	"github.com/aretw0/vendsim/internal/presentation/tui"
	"github.com/aretw0/vendsim/pkg/domain"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	Kind     string
	Headless bool
	Debug    bool
}

// RunSession starts one interactive machine session on stdin/stdout.
// Without a TTY (piped input) it drops to headless mode and plain
// output automatically.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	kind, err := domain.ParseKind(opts.Kind)
	if err != nil {
		return err
	}

	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	headless := opts.Headless || !isTTY

	machineOpts := []vendsim.Option{}
	if opts.Debug {
		machineOpts = append(machineOpts,
			vendsim.WithLogger(logger),
			vendsim.WithLifecycleHooks(createDebugHooks(logger)),
		)
	}

	m, err := vendsim.New(kind, machineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing machine: %w", err)
	}

	if !headless {
		tui.PrintBanner()
	}

	r := vendsim.NewRunner()
	r.Input = os.Stdin
	r.Output = os.Stdout
	r.Headless = headless
	if !headless && term.IsTerminal(int(os.Stdout.Fd())) {
		r.Renderer = tui.NewRenderer()
	}

	return r.Run(m)
}

func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}

// createDebugHooks logs every transition and dispense on the given
// logger.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e domain.TransitionEvent) {
			logger.Debug("hook transition",
				"before", e.Before,
				"symbol", string(e.Symbol),
				"after", e.After,
			)
		},
		OnDispense: func(e domain.DispenseEvent) {
			logger.Debug("hook dispense", "product", string(e.Product))
		},
	}
}
