// Package assets provides embedded static assets for the application.
//
// Prompt templates are stored as text files under prompts/ and embedded at compile time.

package assets

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompts/suggest-prompt.txt
var suggestPromptTemplate string

// Pre-parsed so a malformed template fails at program startup.
var suggestPromptTmpl = template.Must(template.New("suggest").Parse(suggestPromptTemplate))

// SuggestData holds the catalog fields injected into the suggestion template.
type SuggestData struct {
	Title       string
	Description string
}

// RenderSuggestPrompt renders the instruction that asks the text model to
// turn a prompt's title and description into a text-to-image prompt.
func RenderSuggestPrompt(title, description string) string {
	var buf bytes.Buffer
	_ = suggestPromptTmpl.Execute(&buf, SuggestData{Title: title, Description: description})
	return buf.String()
}
