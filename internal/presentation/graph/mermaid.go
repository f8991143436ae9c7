// Package graph renders machine definitions as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/vendsim/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the diagram.
type Overlay struct {
	VisitedStates []domain.State
	CurrentStates []domain.State
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 string from a
// machine definition. Self-loops are omitted; with every symbol
// accepted in every state they would drown the diagram. Epsilon edges
// carry an ε label. Accepting states are styled, and overlay styles
// (visited/current) are applied when provided.
func GenerateMermaid(def domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	// State descriptions carry the balance labels.
	for _, s := range def.States {
		info := def.Info[s]
		sb.WriteString(fmt.Sprintf("    %s: %s (%s)\n", sanitizeMermaidID(s), s, info.Label))
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeMermaidID(def.Initial)))

	for _, from := range def.States {
		// Group symbols per target so parallel edges collapse into one
		// labeled arrow.
		targets := make(map[domain.State][]string)
		var order []domain.State

		appendEdge := func(to domain.State, label string) {
			if to == from {
				return
			}
			if _, seen := targets[to]; !seen {
				order = append(order, to)
			}
			targets[to] = append(targets[to], label)
		}

		if def.Deterministic {
			for _, sym := range def.Alphabet {
				if to, ok := def.Delta[from][sym]; ok {
					appendEdge(to, string(sym))
				}
			}
		} else {
			for _, sym := range def.Alphabet {
				for _, to := range def.Relation[from][sym] {
					appendEdge(to, string(sym))
				}
			}
			for _, to := range def.Relation[from][domain.Epsilon] {
				appendEdge(to, "ε")
			}
		}

		safeFrom := sanitizeMermaidID(from)
		for _, to := range order {
			sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n",
				safeFrom, sanitizeMermaidID(to), strings.Join(targets[to], ", ")))
		}
	}

	sb.WriteString("\n    classDef accepting fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000\n")
	for _, s := range def.Accepting {
		sb.WriteString(fmt.Sprintf("    class %s accepting\n", sanitizeMermaidID(s)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		visitedSet := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(s)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited\n", safeID))
			}
		}

		for _, s := range overlay.CurrentStates {
			sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(s)))
		}
	}

	return sb.String()
}

// OverlayFromSnapshot derives visited and current sets from a
// snapshot's history.
func OverlayFromSnapshot(snap domain.Snapshot) *Overlay {
	o := &Overlay{CurrentStates: snap.Current}
	for _, rec := range snap.History {
		o.VisitedStates = append(o.VisitedStates, rec.Before...)
		o.VisitedStates = append(o.VisitedStates, rec.After...)
	}
	return o
}

func sanitizeMermaidID(id domain.State) string {
	s := strings.ReplaceAll(string(id), ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
