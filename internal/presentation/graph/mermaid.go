package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/phonebook/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	CurrentState domain.State
}

// GenerateMermaid produces a Mermaid flowchart from the transition table.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Other states: [Rectangle]
// - Mutation edges are labelled with the event and the action it runs.
// It also highlights the current state if an overlay is provided.
func GenerateMermaid(transitions []domain.Transition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	seen := make(map[domain.State]bool)
	declare := func(s domain.State) {
		if seen[s] {
			return
		}
		seen[s] = true

		opener, closer := "[", "]"
		if s == domain.InitialState {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(string(s)), opener, s, closer))
	}

	for _, t := range transitions {
		declare(t.From)
		declare(t.To)
	}

	for _, t := range transitions {
		label := fmt.Sprintf("%s / %s", t.Event, t.Action)
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(string(t.From)), label, sanitizeMermaidID(string(t.To))))
	}

	if overlay != nil && overlay.CurrentState != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentState))))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
