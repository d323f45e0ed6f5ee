package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialConfiguration(t *testing.T) {
	t.Run("Input Laid Out From Head", func(t *testing.T) {
		c := InitialConfiguration("q0", "abc")
		assert.Equal(t, "q0", c.State)
		assert.Empty(t, c.Left)
		assert.Equal(t, "a", c.Head)
		assert.Equal(t, []string{"b", "c"}, c.Right)
		assert.Equal(t, ",q0,a,bc", c.String())
	})

	t.Run("Empty Input Is Blank", func(t *testing.T) {
		c := InitialConfiguration("q0", "")
		assert.Equal(t, Blank, c.Head)
		assert.Empty(t, c.Right)
		assert.Equal(t, ",q0,_,", c.String())
	})
}

func TestConfigurationApply(t *testing.T) {
	tests := []struct {
		name string
		from Configuration
		rule TransitionRule
		want string
	}{
		{
			name: "Right Into Content",
			from: Configuration{State: "q0", Left: []string{"x"}, Head: "a", Right: []string{"b", "c"}},
			rule: TransitionRule{From: "q0", Read: "a", To: "q1", Write: "y", Move: Right},
			want: "xy,q1,b,c",
		},
		{
			name: "Right Off The Edge",
			from: Configuration{State: "q0", Left: []string{}, Head: "a", Right: []string{}},
			rule: TransitionRule{To: "q1", Write: "a", Move: Right},
			want: "a,q1,_,",
		},
		{
			name: "Right Off The Edge From Blank",
			from: Configuration{State: "q0", Left: []string{}, Head: Blank, Right: []string{}},
			rule: TransitionRule{To: "q1", Write: Blank, Move: Right},
			want: "_,q1,_,",
		},
		{
			name: "Left Into Content",
			from: Configuration{State: "q0", Left: []string{"x", "z"}, Head: "a", Right: []string{"b"}},
			rule: TransitionRule{To: "q1", Write: "y", Move: Left},
			want: "x,q1,z,yb",
		},
		{
			name: "Left Off The Edge",
			from: Configuration{State: "q0", Left: []string{}, Head: "a", Right: []string{"b"}},
			rule: TransitionRule{To: "q1", Write: "c", Move: Left},
			want: ",q1,_,cb",
		},
		{
			name: "Left Off The Edge From Blank",
			from: Configuration{State: "q0", Left: []string{}, Head: Blank, Right: []string{}},
			rule: TransitionRule{To: "q1", Write: Blank, Move: Left},
			want: ",q1,_,_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.from.String()
			got := tt.from.Apply(tt.rule)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, before, tt.from.String(), "Apply must not mutate its receiver")
		})
	}
}

func TestConfigurationApply_SiblingsAreIndependent(t *testing.T) {
	parent := Configuration{State: "q0", Left: make([]string, 1, 8), Head: "a", Right: make([]string, 1, 8)}
	parent.Left[0] = "l"
	parent.Right[0] = "r"

	a := parent.Apply(TransitionRule{To: "q1", Write: "A", Move: Right})
	b := parent.Apply(TransitionRule{To: "q2", Write: "B", Move: Right})
	c := parent.Apply(TransitionRule{To: "q3", Write: "C", Move: Left})

	assert.Equal(t, "lA,q1,r,", a.String())
	assert.Equal(t, "lB,q2,r,", b.String())
	assert.Equal(t, ",q3,l,Cr", c.String())
	assert.Equal(t, "l,q0,a,r", parent.String())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" r ")
	require.NoError(t, err)
	assert.Equal(t, Right, d)

	d, err = ParseDirection("L")
	require.NoError(t, err)
	assert.Equal(t, Left, d)

	_, err = ParseDirection("S")
	assert.Error(t, err)
}

func TestMachineDefinition_RulesFor(t *testing.T) {
	m := &MachineDefinition{
		States: []string{"q0", "q1"},
		Rules: []TransitionRule{
			{From: "q0", Read: "a", To: "q0", Write: "a", Move: Right},
			{From: "q0", Read: "b", To: "q1", Write: "b", Move: Right},
			{From: "q0", Read: "a", To: "q1", Write: "a", Move: Left},
		},
	}

	rules := m.RulesFor("q0", "a")
	require.Len(t, rules, 2)
	assert.Equal(t, "q0", rules[0].To)
	assert.Equal(t, "q1", rules[1].To)
	assert.Empty(t, m.RulesFor("q1", "a"))
	assert.True(t, m.HasState("q1"))
	assert.False(t, m.HasState("qa"))
}
