package codec_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
)

func TestSplitEscaped(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"abc", []string{"abc"}},
		{`a\|b|c`, []string{"a|b", "c"}},
		{`a\\|b`, []string{`a\`, "b"}},
		{"a||b", []string{"a", "", "b"}},
		{"a|", []string{"a", ""}},
		{"|", []string{"", ""}},
		{`a\`, []string{"a"}},
		{`\x`, []string{"x"}},
		{"grüße|straße", []string{"grüße", "straße"}},
	}
	for _, tt := range tests {
		got := slices.Collect(codec.SplitEscaped(tt.input))
		assert.Equal(t, tt.want, got, "SplitEscaped(%q)", tt.input)
	}
}

func TestSplitterIsSingleUse(t *testing.T) {
	sp := codec.NewSplitter("a|b")

	seg, ok := sp.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", seg)

	seg, ok = sp.Next()
	assert.True(t, ok)
	assert.Equal(t, "b", seg)

	_, ok = sp.Next()
	assert.False(t, ok)
	_, ok = sp.Next()
	assert.False(t, ok)
}

func TestSplitEscapedStopsEarly(t *testing.T) {
	var got []string
	for seg := range codec.SplitEscaped("a|b|c|d") {
		got = append(got, seg)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"test project| 1", `test project\| 1`},
		{`test\description`, `test\\description`},
		{`\|`, `\\\|`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codec.Escape(tt.input), "Escape(%q)", tt.input)
	}
}

func TestEscapeThenSplitIsIdentity(t *testing.T) {
	inputs := []string{
		"plain",
		`ex\ample\\pro|ject`,
		`e\\xam|||ple`,
		`\`,
		`|`,
		`\|\|`,
		`trailing\`,
	}
	for _, s := range inputs {
		got := slices.Collect(codec.SplitEscaped(codec.Escape(s)))
		assert.Equal(t, []string{s}, got, "split(escape(%q))", s)
	}
}
