package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/html2md/internal/pipeline"
)

func TestPromptResolverChoices(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  pipeline.Resolution
	}{
		{"overwrite", "1\n", pipeline.Overwrite},
		{"rename", "2\n", pipeline.Rename},
		{"cancel", "3\n", pipeline.Cancel},
		{"retry after invalid input", "7\nx\n2\n", pipeline.Rename},
		{"eof cancels", "", pipeline.Cancel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			resolve := promptResolver(strings.NewReader(tt.input), &out)

			got, err := resolve("output.md")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "already exists")
		})
	}
}

func TestPromptResolverRepeatsMenuOnInvalidInput(t *testing.T) {
	var out strings.Builder
	resolve := promptResolver(strings.NewReader("0\n1\n"), &out)

	got, err := resolve("output.md")
	require.NoError(t, err)
	assert.Equal(t, pipeline.Overwrite, got)
	assert.Contains(t, out.String(), "Invalid choice")
}
