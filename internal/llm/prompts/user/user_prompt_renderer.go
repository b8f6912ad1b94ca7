package user

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"text/template"
)

//go:embed extraction_prompt_v1.md
var extractionPromptV1 string

//go:embed extraction_prompt_v2.md
var extractionPromptV2 string

//go:embed insights_prompt_v1.md
var insightsPromptV1 string

var (
	extractionTemplates map[string]*template.Template
	insightsTemplate    *template.Template
)

func init() {
	extractionTemplates = map[string]*template.Template{
		"v1": template.Must(template.New("extraction_v1").Parse(extractionPromptV1)),
		"v2": template.Must(template.New("extraction_v2").Parse(extractionPromptV2)),
	}
	insightsTemplate = template.Must(template.New("insights").Parse(insightsPromptV1))
}

// ResponseSeparator joins responses in the insights prompt
const ResponseSeparator = "\n\n---\n\n"

// RenderExtractionPrompt embeds one LLM response verbatim into the mention extraction prompt.
// v1 asks for products first, v2 for brands first; unknown versions fall back to v2.
func RenderExtractionPrompt(version, response string) (string, error) {
	tmpl, ok := extractionTemplates[version]
	if !ok {
		slog.Warn("Unknown extraction prompt version, falling back to v2",
			"version", version,
			"supported_versions", []string{"v1", "v2"})
		tmpl = extractionTemplates["v2"]
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Response string }{response}); err != nil {
		return "", fmt.Errorf("failed to execute extraction prompt template: %w", err)
	}
	return buf.String(), nil
}

// RenderInsightsPrompt formats the market analyst prompt over already joined responses
func RenderInsightsPrompt(joinedResponses string) (string, error) {
	var buf bytes.Buffer
	if err := insightsTemplate.Execute(&buf, struct{ Responses string }{joinedResponses}); err != nil {
		return "", fmt.Errorf("failed to execute insights prompt template: %w", err)
	}
	return buf.String(), nil
}
