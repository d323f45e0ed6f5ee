package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptedReport() *domain.Report {
	return &domain.Report{
		Machine:     "accept-empty",
		Input:       "",
		MaxDepth:    10,
		Verdict:     domain.VerdictAccepted,
		AcceptDepth: 1,
		Depth:       1,
		Transitions: 1,
		Visited:     2,
		Path: []domain.Configuration{
			{State: "q0", Head: "_"},
			{State: "qa", Left: []string{"_"}, Head: "_"},
		},
		Nondeterminism: 1,
		Levels: []domain.LevelStats{
			{Level: 0, Visited: 1, NonLeaf: 1, Children: 1},
			{Level: 1, Visited: 1},
		},
	}
}

func TestWriteText(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteText(&buf, 1, acceptedReport()))

		want := strings.Join([]string{
			"String 1 input: _",
			"Tree configuration depth: 1",
			"Total transitions taken: 1",
			"Degree of nondeterminism: 1.00",
			"String _ accepted in 1 transitions.",
			"Transitions to accept:",
			",q0,_,",
			"_,qa,_,",
			"",
		}, "\n")
		assert.Equal(t, want, buf.String())
	})

	t.Run("Rejected", func(t *testing.T) {
		var buf bytes.Buffer
		r := &domain.Report{Input: "ab", Verdict: domain.VerdictRejected, Depth: 2, Transitions: 2, Nondeterminism: 1.5}
		require.NoError(t, WriteText(&buf, 3, r))

		assert.Contains(t, buf.String(), "String 3 input: ab\n")
		assert.Contains(t, buf.String(), "Degree of nondeterminism: 1.50\n")
		assert.Contains(t, buf.String(), "String ab rejected in 2 transitions.\n")
	})

	t.Run("Depth Exceeded", func(t *testing.T) {
		var buf bytes.Buffer
		r := &domain.Report{Input: "aa", Verdict: domain.VerdictDepthExceeded, MaxDepth: 5, Depth: 4, Transitions: 5, Nondeterminism: 1}
		require.NoError(t, WriteText(&buf, 1, r))

		assert.Contains(t, buf.String(), "Total transitions taken: 5\n")
		assert.Contains(t, buf.String(), "Execution stopped after 5 depth limit.\n")
	})
}

func TestMarkdown(t *testing.T) {
	md := Markdown(acceptedReport())

	assert.Contains(t, md, "## `_`: Accepted")
	assert.Contains(t, md, "| Degree of nondeterminism | 1.00 |")
	assert.Contains(t, md, "```\n,q0,_,\n_,qa,_,\n```")
	assert.Contains(t, md, "| 0 | 1 | 1 | 1 |")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	record := &domain.TraceRecord{ID: "r1", Report: *acceptedReport()}
	require.NoError(t, Write(&buf, FormatJSON, 1, record))

	var decoded domain.TraceRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "r1", decoded.ID)
	assert.Equal(t, domain.VerdictAccepted, decoded.Report.Verdict)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "ends with a"))
	assert.Equal(t, "Name of machine: ends with a\n", buf.String())
}
