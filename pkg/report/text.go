// Package report renders trace reports for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Format names an output format accepted by Write.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, markdown or json)", s)
}

// DisplayInput returns the input as shown in reports: empty input is a blank.
func DisplayInput(input string) string {
	if input == "" {
		return domain.Blank
	}
	return input
}

// WriteHeader writes the machine name line that opens an output file.
func WriteHeader(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "Name of machine: %s\n", name)
	return err
}

// WriteText writes the reference text block for the n-th traced string.
func WriteText(w io.Writer, n int, r *domain.Report) error {
	var sb strings.Builder
	input := DisplayInput(r.Input)

	fmt.Fprintf(&sb, "String %d input: %s\n", n, input)
	fmt.Fprintf(&sb, "Tree configuration depth: %d\n", r.Depth)
	fmt.Fprintf(&sb, "Total transitions taken: %d\n", r.Transitions)
	fmt.Fprintf(&sb, "Degree of nondeterminism: %.2f\n", r.Nondeterminism)

	switch r.Verdict {
	case domain.VerdictAccepted:
		fmt.Fprintf(&sb, "String %s accepted in %d transitions.\n", input, r.AcceptDepth)
		sb.WriteString("Transitions to accept:\n")
		for _, c := range r.Path {
			sb.WriteString(c.String())
			sb.WriteByte('\n')
		}
	case domain.VerdictRejected:
		fmt.Fprintf(&sb, "String %s rejected in %d transitions.\n", input, r.Depth)
	default:
		fmt.Fprintf(&sb, "Execution stopped after %d depth limit.\n", r.MaxDepth)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes the record as indented JSON.
func WriteJSON(w io.Writer, record *domain.TraceRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// Write renders record in the given format.
func Write(w io.Writer, format Format, n int, record *domain.TraceRecord) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, record)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(&record.Report))
		return err
	default:
		return WriteText(w, n, &record.Report)
	}
}
