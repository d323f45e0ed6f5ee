// Package runtime implements the configuration-exploration engine: the
// interned transition table, tape moves and the breadth-first explorer.
package runtime
