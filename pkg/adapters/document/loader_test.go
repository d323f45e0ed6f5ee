package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlMachine = `
name: ends-with-a
states: [q0, q1, qa, qr]
input_alphabet: [a, b]
tape_alphabet: [a, b, _]
start: q0
accept: qa
reject: qr
transitions:
  - "q0,a,q0,a,R"
  - {from: q0, read: a, to: q1, write: a, move: R}
  - q0,b,q0,b,R
  - q1,_,qa,_,R
  - q1,a
`

const jsonMachine = `{
  "name": "accept-empty",
  "states": ["q0", "qa", "qr"],
  "input_alphabet": [],
  "tape_alphabet": ["_"],
  "start": "q0",
  "accept": "qa",
  "reject": "qr",
  "transitions": [{"from": "q0", "read": "_", "to": "qa", "write": "_", "move": "R"}]
}`

func TestParse_YAML(t *testing.T) {
	def, err := Parse([]byte(yamlMachine))
	require.NoError(t, err)

	assert.Equal(t, "ends-with-a", def.Name)
	require.Len(t, def.Rules, 4)
	assert.Equal(t, "q1", def.Rules[1].To)
	assert.Equal(t, []int{4}, def.SkippedRows)
}

func TestParse_JSON(t *testing.T) {
	def, err := Parse([]byte(jsonMachine))
	require.NoError(t, err)

	assert.Equal(t, "accept-empty", def.Name)
	require.Len(t, def.Rules, 1)
	assert.Equal(t, domain.Right, def.Rules[0].Move)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)

	_, err = Parse([]byte(""))
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)

	_, err = Parse([]byte("name: no-start\n"))
	assert.ErrorIs(t, err, domain.ErrMalformedDefinition)
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlMachine), 0644))

	def, err := New(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "qa", def.Accept)

	_, err = New(nil).Load(context.Background(), path+".missing")
	assert.ErrorIs(t, err, domain.ErrUnknownMachine)
}
