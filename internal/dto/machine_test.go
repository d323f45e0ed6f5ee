package dto

import (
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_MixedTransitions(t *testing.T) {
	raw := map[string]any{
		"name":           "binary",
		"states":         []any{"q0", "qa", "qr", "q0"},
		"input_alphabet": []any{0, 1},
		"tape_alphabet":  []any{0, 1, "_"},
		"start":          "q0",
		"accept":         "qa",
		"reject":         "qr",
		"transitions": []any{
			"q0,0,q0,0,R",
			map[string]any{"from": "q0", "read": 1, "to": "qa", "write": 1, "move": "r"},
			[]any{"q0", "_", "qr", "_", "L"},
			"q0,1,qa",
			map[string]any{"from": "q0", "read": "1", "to": "qa", "write": "1", "move": "S"},
			42,
		},
	}

	doc, err := Decode(raw)
	require.NoError(t, err)

	def, err := doc.Definition()
	require.NoError(t, err)

	assert.Equal(t, "binary", def.Name)
	assert.Equal(t, []string{"q0", "qa", "qr"}, def.States)
	assert.Equal(t, []string{"0", "1"}, def.InputAlphabet)
	require.Len(t, def.Rules, 3)
	assert.Equal(t, domain.TransitionRule{From: "q0", Read: "1", To: "qa", Write: "1", Move: domain.Right}, def.Rules[1])
	assert.Equal(t, domain.Left, def.Rules[2].Move)
	assert.Equal(t, []int{3, 4, 5}, def.SkippedRows)
}

func TestDefinition_RequiresStart(t *testing.T) {
	_, err := MachineDocument{Name: "x"}.Definition()
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
}

func TestDefinition_NameFallsBackToID(t *testing.T) {
	def, err := MachineDocument{ID: "lib-id", Start: "q0"}.Definition()
	require.NoError(t, err)
	assert.Equal(t, "lib-id", def.Name)
}
