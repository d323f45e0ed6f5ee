package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

var verdictTitles = map[domain.Verdict]string{
	domain.VerdictAccepted:      "Accepted",
	domain.VerdictRejected:      "Rejected",
	domain.VerdictDepthExceeded: "Depth limit reached",
}

// Markdown renders a report as a Markdown document, suitable for glamour.
func Markdown(r *domain.Report) string {
	var sb strings.Builder

	title := verdictTitles[r.Verdict]
	if title == "" {
		title = string(r.Verdict)
	}
	fmt.Fprintf(&sb, "## `%s`: %s\n\n", DisplayInput(r.Input), title)
	if r.Machine != "" {
		fmt.Fprintf(&sb, "Machine: **%s**\n\n", r.Machine)
	}

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Tree depth | %d |\n", r.Depth)
	fmt.Fprintf(&sb, "| Transitions taken | %d |\n", r.Transitions)
	fmt.Fprintf(&sb, "| Configurations visited | %d |\n", r.Visited)
	fmt.Fprintf(&sb, "| Degree of nondeterminism | %.2f |\n", r.Nondeterminism)
	fmt.Fprintf(&sb, "| Depth limit | %d |\n", r.MaxDepth)

	if r.Accepted() {
		fmt.Fprintf(&sb, "\n### Path to accept (%d transitions)\n\n```\n", r.AcceptDepth)
		for _, c := range r.Path {
			sb.WriteString(c.String())
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n")
	}

	if len(r.Levels) > 0 {
		sb.WriteString("\n### Levels\n\n| Level | Visited | Expanded | Children |\n|---|---|---|---|\n")
		for _, l := range r.Levels {
			fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n", l.Level, l.Visited, l.NonLeaf, l.Children)
		}
	}

	return sb.String()
}
