package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"prompty/internal/llm/prompts/user"
	"prompty/internal/llm/providers"
)

type section int

const (
	sectionNone section = iota
	sectionBrands
	sectionProducts
)

// ParseExtraction reads an extraction reply into brand and product lists.
// A line containing "brands:" or "products:" switches the active section; "- item" lines
// are added to it, except items that are exactly "none" (any case). Anything else is ignored.
func ParseExtraction(reply string) MentionList {
	mentions := MentionList{Brands: []string{}, Products: []string{}}
	current := sectionNone

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "brands:"):
			current = sectionBrands
		case strings.Contains(lower, "products:"):
			current = sectionProducts
		case strings.HasPrefix(line, "- "):
			item := strings.TrimSpace(line[2:])
			if item == "" || strings.EqualFold(item, "none") {
				continue
			}
			switch current {
			case sectionBrands:
				mentions.Brands = append(mentions.Brands, item)
			case sectionProducts:
				mentions.Products = append(mentions.Products, item)
			}
		}
	}

	return mentions
}

// Extractor asks a designated LLM to list the brands and products in a response
type Extractor struct {
	client        providers.LLMClient
	promptVersion string
}

func NewExtractor(client providers.LLMClient, promptVersion string) *Extractor {
	return &Extractor{client: client, promptVersion: promptVersion}
}

// Extract returns the mentions found in response, or the error of the extraction call
func (e *Extractor) Extract(ctx context.Context, response string) (MentionList, error) {
	prompt, err := user.RenderExtractionPrompt(e.promptVersion, response)
	if err != nil {
		return MentionList{}, err
	}

	reply, err := e.client.Query(ctx, prompt)
	if err != nil {
		return MentionList{}, fmt.Errorf("mention extraction failed: %w", err)
	}

	mentions := ParseExtraction(reply)
	slog.Debug("Extracted mentions", "brands", len(mentions.Brands), "products", len(mentions.Products))

	return mentions, nil
}
