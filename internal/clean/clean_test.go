package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRemovesDenylistedTags(t *testing.T) {
	c := New([]string{"script", "nav"})

	out, err := c.Clean(`<html><body><nav><a href="/">home</a></nav><p>keep me</p><script>var x = 1;</script></body></html>`)
	require.NoError(t, err)

	assert.Contains(t, out, "<p>keep me</p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "var x")
	assert.NotContains(t, out, "<nav>")
	assert.NotContains(t, out, "home")
}

func TestCleanRemovesComments(t *testing.T) {
	c := New(nil)

	out, err := c.Clean(`<div><!-- hidden note --><p>visible</p></div>`)
	require.NoError(t, err)

	assert.Contains(t, out, "visible")
	assert.NotContains(t, out, "hidden note")
	assert.NotContains(t, out, "<!--")
}

func TestCleanStripsStyleAttributes(t *testing.T) {
	c := New(nil)

	out, err := c.Clean(`<p style="display:none" class="intro">styled</p>`)
	require.NoError(t, err)

	assert.NotContains(t, out, "style=")
	assert.NotContains(t, out, "display:none")
	assert.Contains(t, out, `class="intro"`)
	assert.Contains(t, out, "styled")
}

func TestCleanTagMatchIsCaseInsensitive(t *testing.T) {
	c := New([]string{"SCRIPT"})

	out, err := c.Clean(`<body><script>gone</script><p>kept</p></body>`)
	require.NoError(t, err)

	assert.NotContains(t, out, "gone")
	assert.Contains(t, out, "kept")
}

func TestCleanBestEffortOnMalformedMarkup(t *testing.T) {
	c := New([]string{"script"})

	out, err := c.Clean(`<p>unclosed <b>bold<script>x`)
	require.NoError(t, err)
	assert.Contains(t, out, "unclosed")
	assert.NotContains(t, out, "<script>")
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My:File?.html", "My File"},
		{"hello_world.html", "hello world"},
		{"notes.html", "notes"},
		{"a*b|c.html", "abc"},
		{"What&amp;Why.html", "What&Why"},
		{`back\slash.html`, "backslash"},
		{"  spaced   out  .html", "spaced out"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.in))
		})
	}
}

func TestDeriveTitleIdempotent(t *testing.T) {
	for _, name := range []string{"My File", "hello world", "notes"} {
		assert.Equal(t, name, DeriveTitle(name))
	}
}
