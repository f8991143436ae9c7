package domain

// TransitionEvent describes one executed transition for observers.
type TransitionEvent struct {
	Kind      Kind
	Before    []State
	Symbol    Symbol
	After     []State
	Dispensed Product
}

// DispenseEvent fires when a transition released a product.
type DispenseEvent struct {
	Kind    Kind
	Symbol  Symbol
	Product Product
}

// LifecycleHooks defines callbacks for machine observability.
// Hooks run synchronously on the caller's goroutine; nil fields are
// skipped.
type LifecycleHooks struct {
	OnTransition func(TransitionEvent)
	OnDispense   func(DispenseEvent)
}
