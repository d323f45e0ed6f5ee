package domain

import "time"

// Verdict is the terminal outcome of a trace.
type Verdict string

const (
	VerdictAccepted      Verdict = "accepted"
	VerdictRejected      Verdict = "rejected"
	VerdictDepthExceeded Verdict = "depth_exceeded"
)

// LevelStats aggregates expansion counters for one BFS level.
type LevelStats struct {
	Level    int `json:"level"`
	Visited  int `json:"visited"`
	NonLeaf  int `json:"non_leaf"`
	Children int `json:"children"`
}

// Report is the result of exploring one input string.
type Report struct {
	Machine  string  `json:"machine"`
	Input    string  `json:"input"`
	MaxDepth int     `json:"max_depth"`
	Verdict  Verdict `json:"verdict"`

	// Path lists the configurations from the root to the accepting node.
	// It is only set when Verdict is VerdictAccepted.
	Path []Configuration `json:"path,omitempty"`

	// AcceptDepth is the level of the accepting node.
	AcceptDepth int `json:"accept_depth,omitempty"`

	// Depth is the deepest level popped from the frontier.
	Depth int `json:"depth"`

	// Transitions counts the nodes that were expanded.
	Transitions int `json:"transitions"`

	// Visited counts every node popped from the frontier.
	Visited int `json:"visited"`

	Nondeterminism float64      `json:"nondeterminism"`
	Levels         []LevelStats `json:"levels,omitempty"`
}

// Accepted reports whether the trace ended in the accept state.
func (r *Report) Accepted() bool {
	return r.Verdict == VerdictAccepted
}

// TraceRecord is a stored report with its identity.
type TraceRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Report    Report    `json:"report"`

	// Sealed holds the encrypted report when the store encrypts at rest.
	// Report then only carries the machine name and verdict.
	Sealed string `json:"sealed,omitempty"`
}
