package preproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSubstitute(t *testing.T) {
	defines := newDefineTable()
	defines.set("PORT", strPtr("PORTB"))
	defines.set("ii", strPtr("shadowed"))
	defines.set("EMPTY", strPtr(""))
	defines.set("FLAG", nil)
	defines.set("LOOP", strPtr("{i}"))

	testCases := []struct {
		name    string
		line    string
		counter int
		want    string
	}{
		{"no placeholders", "\tmovlw 0x10\n", 7, "\tmovlw 0x10\n"},
		{"counter", "r{i} equ {i}\n", 3, "r3 equ 3\n"},
		{"padded", "lbl_{iii}:\n", 7, "lbl_007:\n"},
		{"padding never truncates", "x{ii}\n", 123, "x123\n"},
		{"define value", "\tbsf {PORT}, {i}\n", 2, "\tbsf PORTB, 2\n"},
		{"define names are case-insensitive", "{port}\n", 0, "PORTB\n"},
		{"define wins over padded form", "{ii}\n", 4, "shadowed\n"},
		{"result is not rescanned", "{LOOP}\n", 9, "{i}\n"},
		{"unterminated brace stays literal", "a {i} b {c\n", 1, "a 1 b {c\n"},
		{"negative counter", "{i}\n", -2, "-2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := substitute(tc.line, tc.counter, defines)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubstitute_Malformed(t *testing.T) {
	defines := newDefineTable()
	defines.set("EMPTY", strPtr(""))
	defines.set("FLAG", nil)

	for _, line := range []string{"{}\n", "{x}\n", "{EMPTY}\n", "{FLAG}\n", "{i j}\n"} {
		t.Run(line, func(t *testing.T) {
			_, err := substitute(line, 1, defines)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad substitution placeholder")
		})
	}
}
