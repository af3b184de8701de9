package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneNormalizer_Normalize(t *testing.T) {
	n := DefaultPhoneNormalizer()

	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{name: "trunk zero replaced", input: "0168970072", want: "60168970072", valid: true},
		{name: "international with plus", input: "+60168970072", want: "60168970072", valid: true},
		{name: "formatted with separators", input: "+60 16-897 0072", want: "60168970072", valid: true},
		{name: "missing country code", input: "168970072", want: "60168970072", valid: true},
		{name: "other prefix gets country code", input: "+6591234567", want: "606591234567", valid: true},
		{name: "too short", input: "12345", want: "12345", valid: false},
		{name: "too long", input: "60123456789012345", want: "60123456789012345", valid: false},
		{name: "empty", input: "", want: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := n.Normalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestPhoneNormalizer_Idempotent(t *testing.T) {
	n := DefaultPhoneNormalizer()
	inputs := []string{
		"0168970072", "+60168970072", "168970072", "6031234567",
		"12345", "0000000000", "+1 (415) 555-0100", "60123456789012345", "",
	}

	for _, input := range inputs {
		once, _ := n.Normalize(input)
		twice, _ := n.Normalize(once)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestPhoneNormalizer_LocalAndInternationalAgree(t *testing.T) {
	n := DefaultPhoneNormalizer()

	local, _ := n.Normalize("0168970072")
	international, _ := n.Normalize("+60168970072")

	assert.Equal(t, international, local)
}

func TestPhoneNormalizer_Suggestion(t *testing.T) {
	n := DefaultPhoneNormalizer()

	assert.Contains(t, n.Suggestion("123"), "too short")
	assert.Contains(t, n.Suggestion("1234567890123456"), "too long")
	assert.Empty(t, n.Suggestion("60168970072"))
}

func TestStripControlChars(t *testing.T) {
	assert.Equal(t, "hello\nworld", StripControlChars("hel\x00lo\nwor\x1bld\u0085"))
	assert.Equal(t, "tab\tkept", StripControlChars("tab\tkept"))
}
