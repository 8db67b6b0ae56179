// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"bytes"
	"text/template"
)

// conversionPromptTmpl wraps one document's cleaned markup in the fixed
// conversion instructions sent to the model.
var conversionPromptTmpl = template.Must(template.New("conversion").Parse(`Convert this HTML content to clean markdown format.

Guidelines:
- Focus on the main content, ignore navigation and UI elements
- Start directly with the main content - skip metadata
- Use hashtags for headings (e.g. "## Description", "## Solution", "## Tests", "## Library", etc.), do NOT use a single hashtag
- Preserve the structure and formatting of the content
- Convert HTML elements to appropriate markdown equivalents
- Do NOT use horizontal rules (---) in your output
- Keep code blocks, tables, and other structured content intact
- Remove any advertisements, navigation, or non-content elements

HTML Content:
{{.Content}}`))

// renderPrompt executes the conversion prompt template with the cleaned markup.
func renderPrompt(content string) (string, error) {
	var buf bytes.Buffer
	if err := conversionPromptTmpl.Execute(&buf, struct{ Content string }{Content: content}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
