package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the tracetm banner and the loaded machine name to w.
func PrintBanner(w io.Writer, machine string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct{ text, color string }{
		{"  _                      _             ", "#818cf8"},
		{" | |_ _ __ __ _  ___ ___| |_ _ __ ___  ", "#a78bfa"},
		{" | __| '__/ _` |/ __/ _ \\ __| '_ ` _ \\ ", "#c084fc"},
		{" | |_| | | (_| | (_|  __/ |_| | | | | |", "#e879f9"},
		{"  \\__|_|  \\__,_|\\___\\___|\\__|_| |_| |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
	if machine != "" {
		fmt.Fprintln(w, termenv.String("Machine: "+machine).Faint())
		fmt.Fprintln(w)
	}
}

var verdictColors = map[domain.Verdict]string{
	domain.VerdictAccepted:      "#22c55e",
	domain.VerdictRejected:      "#ef4444",
	domain.VerdictDepthExceeded: "#f59e0b",
}

// Verdict returns the verdict name coloured for the current terminal.
func Verdict(v domain.Verdict) string {
	color, ok := verdictColors[v]
	if !ok {
		return string(v)
	}
	return termenv.String(string(v)).Foreground(termenv.ColorProfile().Color(color)).Bold().String()
}
