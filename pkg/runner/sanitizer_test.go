package runner

import (
	"strings"
	"testing"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	// Default Limit is 4096
	limit := 4096

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Repeat("a", tt.inputSize)
			_, err := SanitizeInput(input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "aabba", "aabba"},
		{"Whitespace Controls", "ab\tc\r", "abc"},
		{"ANSI Code", "\x1b[31mab\x1b[0m", "[31mab[0m"}, // ESC removed
		{"Null Byte", "a\x00b", "ab"},
		{"Bell", "ab\x07", "ab"},
		{"Unicode Symbols", "a€b", "a€b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv("TRACETM_MAX_INPUT_SIZE", "10")

	_, err := SanitizeInput("12345678901")
	assert.Error(t, err, "input > 10 when env var is set")

	_, err = SanitizeInput("12345")
	assert.NoError(t, err)
	assert.Equal(t, 10, MaxInputSize())
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	input := "\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98"
	_, err := SanitizeInput(input)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestParseDepth(t *testing.T) {
	n, err := ParseDepth(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseDepth(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDepth, "input %q", bad)
	}
}
