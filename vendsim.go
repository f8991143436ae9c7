package vendsim

import (
	"io"
	"log/slog"

	"github.com/aretw0/vendsim/internal/machine"
	"github.com/aretw0/vendsim/pkg/domain"
	"github.com/aretw0/vendsim/pkg/ports"
)

// Version of the library.
const Version = "0.1.0"

// Machine is the high-level entry point for the vendsim library.
// It wraps one automaton instance and adds logging and lifecycle
// hooks on top of the bare engine.
//
// A Machine is single-owner like the engine beneath it; wrap access
// in a session.Manager lock when sharing across goroutines.
type Machine struct {
	engine ports.Machine
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New initializes a machine of the given kind at its initial state.
func New(kind domain.Kind, opts ...Option) (*Machine, error) {
	engine, err := machine.New(kind)
	if err != nil {
		return nil, err
	}

	m := &Machine{engine: engine}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	m.logger = m.logger.With("machine", string(kind))

	return m, nil
}

// Kinds lists the machine kinds this library builds.
func Kinds() []domain.Kind {
	return domain.Kinds()
}

// DefinitionFor returns the static definition of a kind without
// building a machine.
func DefinitionFor(kind domain.Kind) (domain.Definition, error) {
	return machine.DefinitionFor(kind)
}

// Definitions returns all machine definitions in kind order.
func Definitions() []domain.Definition {
	return machine.Definitions()
}

// Kind returns the machine's kind.
func (m *Machine) Kind() domain.Kind {
	return m.engine.Kind()
}

// Definition returns the machine's static definition.
func (m *Machine) Definition() domain.Definition {
	return m.engine.Definition()
}

// Transition consumes one input symbol, logs the step and fires the
// lifecycle hooks. Every symbol is accepted; symbols without effect
// are absorbed and recorded like any other step.
func (m *Machine) Transition(symbol domain.Symbol) domain.Record {
	rec := m.engine.Transition(symbol)

	m.logger.Debug("transition",
		"symbol", string(symbol),
		"before", rec.Before,
		"after", rec.After,
		"balance", m.engine.Balance(),
	)

	if m.hooks.OnTransition != nil {
		m.hooks.OnTransition(domain.TransitionEvent{
			Kind:      m.engine.Kind(),
			Before:    rec.Before,
			Symbol:    rec.Symbol,
			After:     rec.After,
			Dispensed: rec.Dispensed,
		})
	}
	if rec.Dispensed.Dispensed() {
		m.logger.Info("dispense", "product", string(rec.Dispensed), "symbol", string(symbol))
		if m.hooks.OnDispense != nil {
			m.hooks.OnDispense(domain.DispenseEvent{
				Kind:    m.engine.Kind(),
				Symbol:  rec.Symbol,
				Product: rec.Dispensed,
			})
		}
	}
	return rec
}

// Reset returns the machine to its initial state and clears history.
func (m *Machine) Reset() {
	m.engine.Reset()
	m.logger.Debug("reset")
}

// Current returns the current position, sorted. Deterministic kinds
// always return a single state.
func (m *Machine) Current() []domain.State {
	return m.engine.Current()
}

// Balance reports the inserted amount in RM for the current position.
func (m *Machine) Balance() int {
	return m.engine.Balance()
}

// IsAccepting reports whether any held state is accepting.
func (m *Machine) IsAccepting() bool {
	return m.engine.IsAccepting()
}

// CanBuyEyeDrop reports whether the Eye Drop (RM35) is affordable.
func (m *Machine) CanBuyEyeDrop() bool {
	return m.engine.CanBuyEyeDrop()
}

// CanBuyVitamin reports whether the Vitamin (RM50) is affordable.
func (m *Machine) CanBuyVitamin() bool {
	return m.engine.CanBuyVitamin()
}

// History returns a copy of the transition log since the last reset.
func (m *Machine) History() []domain.Record {
	return m.engine.History()
}

// Snapshot captures the machine's position and history for storage.
func (m *Machine) Snapshot() domain.Snapshot {
	return m.engine.Snapshot()
}

// Restore replaces the machine's position and history from a snapshot
// of the same kind.
func (m *Machine) Restore(snap domain.Snapshot) error {
	return m.engine.Restore(snap)
}
