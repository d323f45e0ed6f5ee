package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// GraphOverlay contains trace data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
	// Steps are the (from, to) state pairs taken, in order.
	Steps [][2]string
}

// OverlayFromReport highlights the accepting path of r.
// It returns nil when r did not accept.
func OverlayFromReport(r *domain.Report) *GraphOverlay {
	if r == nil || !r.Accepted() || len(r.Path) == 0 {
		return nil
	}
	o := &GraphOverlay{CurrentState: r.Path[len(r.Path)-1].State}
	for i, c := range r.Path {
		o.VisitedStates = append(o.VisitedStates, c.State)
		if i > 0 {
			o.Steps = append(o.Steps, [2]string{r.Path[i-1].State, c.State})
		}
	}
	return o
}

type edge struct {
	from, to string
	labels   []string
}

// GenerateMermaid produces a Mermaid flowchart of the machine's state graph.
// Rules sharing (from, to) are merged into one edge labelled
// "read→write,move" per rule. It applies semantic styling:
// - Start: ((Circle))
// - Accept: (((Double circle)))
// - Reject: {{Hexagon}}
// - Default: [Rectangle]
// It also applies overlay styles (Visited/Current/Steps) if provided.
func GenerateMermaid(def *domain.MachineDefinition, overlay *GraphOverlay) string {
	ids := make(map[string]string)
	var states []string
	addState := func(s string) {
		if _, ok := ids[s]; ok || s == "" {
			return
		}
		ids[s] = fmt.Sprintf("s%d", len(states))
		states = append(states, s)
	}
	addState(def.Start)
	for _, s := range def.States {
		addState(s)
	}
	var edges []*edge
	edgeIndex := make(map[[2]string]int)
	for _, r := range def.Rules {
		addState(r.From)
		addState(r.To)
		key := [2]string{r.From, r.To}
		i, ok := edgeIndex[key]
		if !ok {
			i = len(edges)
			edgeIndex[key] = i
			edges = append(edges, &edge{from: r.From, to: r.To})
		}
		edges[i].labels = append(edges[i].labels, fmt.Sprintf("%s→%s,%s", r.Read, r.Write, r.Move))
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range states {
		opener, closer := "[", "]"
		switch s {
		case def.Accept:
			opener, closer = "(((", ")))"
		case def.Reject:
			opener, closer = "{{", "}}"
		case def.Start:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s], opener, escapeLabel(s), closer)
	}

	for _, e := range edges {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[e.from], escapeLabel(strings.Join(e.labels, "<br/>")), ids[e.to])
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id, ok := ids[s]
			if ok && !visited[id] && s != overlay.CurrentState {
				visited[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		if id, ok := ids[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}

		styled := make(map[int]bool)
		for _, step := range overlay.Steps {
			if i, ok := edgeIndex[step]; ok && !styled[i] {
				styled[i] = true
				fmt.Fprintf(&sb, "    linkStyle %d stroke:#fbc02d,stroke-width:3px;\n", i)
			}
		}
	}

	return sb.String()
}

// escapeLabel keeps user symbols from breaking out of a quoted label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
