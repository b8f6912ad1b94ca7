package report

import (
	"strings"
	"testing"
	"time"

	"prompty/internal/geo"
)

// Test template helper functions

func TestEscapePipes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Logitech", "Logitech"},
		{"A|B", "A\\|B"},
		{"|", "\\|"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapePipes(tt.input); got != tt.expected {
				t.Errorf("escapePipes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		max      int
		expected int
	}{
		{"max count fills the bar", 5, 5, barWidth},
		{"half", 2, 4, barWidth / 2},
		{"tiny count still visible", 1, 1000, 1},
		{"zero count", 0, 5, 0},
		{"zero max", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bar(tt.count, tt.max)
			if n := strings.Count(got, "█"); n != tt.expected {
				t.Errorf("bar(%d, %d) has %d blocks, want %d", tt.count, tt.max, n, tt.expected)
			}
		})
	}
}

func TestMaxCount(t *testing.T) {
	counts := []geo.MentionCount{{Name: "a", Count: 2}, {Name: "b", Count: 7}, {Name: "c", Count: 7}}
	if got := maxCount(counts); got != 7 {
		t.Errorf("maxCount() = %d, want 7", got)
	}
	if got := maxCount(nil); got != 0 {
		t.Errorf("maxCount(nil) = %d, want 0", got)
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC)
	if got := formatDate(date); got != "2026-03-04 09:05" {
		t.Errorf("formatDate() = %q", got)
	}
}

func TestOneLine(t *testing.T) {
	if got := oneLine("API error 500:\n  upstream\tfailed "); got != "API error 500: upstream failed" {
		t.Errorf("oneLine() = %q", got)
	}
}

// Test report generation

func successOutcome() geo.Outcome {
	records := []geo.RawRecord{
		{Prompt: "best mouse?", Response: "Logitech MX Master"},
		{Prompt: "best keyboard?", Response: "Keychron Q1"},
	}
	failures := []geo.PromptFailure{
		{Prompt: "best webcam?", Provider: "Gemini", Error: "[Gemini error] API error 503:\noverloaded"},
	}
	status := "Analysis complete: 2 of 3 prompts answered for category 'Tech'."

	return geo.Outcome{
		Result: &geo.AnalysisResult{
			Category:      "Tech",
			Provider:      "Gemini",
			BrandCounts:   []geo.MentionCount{{Name: "Logitech", Count: 2}, {Name: "Key|chron", Count: 1}},
			ProductCounts: []geo.MentionCount{},
			Summary:       "- Ergonomics matters most",
			RawRecords:    records,
			Failures:      failures,
			Status:        status,
		},
		RawRecords: records,
		Failures:   failures,
		Status:     status,
	}
}

func TestGenerateReport_Success(t *testing.T) {
	report, err := GenerateReport(&ReportConfig{
		Category:       "ignored",
		Provider:       "ignored",
		Outcome:        successOutcome(),
		GenerationTime: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GenerateReport() unexpected error: %v", err)
	}

	expected := []string{
		"# GEO Report: Tech",
		"**Provider:** Gemini | **Generated:** 2026-01-02 15:04",
		"> Analysis complete: 2 of 3 prompts answered for category 'Tech'.",
		"## Brand Mentions",
		"| Logitech | 2 | " + strings.Repeat("█", barWidth) + " |",
		"| Key\\|chron | 1 | " + strings.Repeat("█", barWidth/2) + " |",
		"_No products extracted._",
		"## Insights\n\n- Ergonomics matters most",
		"## Dropped Prompts",
		"| best webcam? | Gemini | [Gemini error] API error 503: overloaded |",
	}
	for _, want := range expected {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}

	if strings.Contains(report, "## Raw Responses") {
		t.Error("raw responses should only be included on request")
	}
}

func TestGenerateReport_IncludeRaw(t *testing.T) {
	report, err := GenerateReport(&ReportConfig{Outcome: successOutcome(), IncludeRaw: true})
	if err != nil {
		t.Fatalf("GenerateReport() unexpected error: %v", err)
	}

	if !strings.Contains(report, "## Raw Responses\n\n```json\n[\n  {\n    \"prompt\": \"best mouse?\",") {
		t.Errorf("report should contain indented raw JSON\n%s", report)
	}
}

func TestGenerateReport_NoResult(t *testing.T) {
	outcome := geo.Outcome{
		Status: "Category 'Foo' not found. Please try one of: [Tech, Beauty]",
	}

	report, err := GenerateReport(&ReportConfig{Category: "Foo", Provider: "ChatGPT", Outcome: outcome})
	if err != nil {
		t.Fatalf("GenerateReport() unexpected error: %v", err)
	}

	if !strings.HasPrefix(report, "# GEO Report: Foo\n") {
		t.Errorf("report header should use the requested category\n%s", report)
	}
	if !strings.Contains(report, "> Category 'Foo' not found.") {
		t.Errorf("report should carry the status\n%s", report)
	}
	for _, section := range []string{"## Brand Mentions", "## Insights", "## Dropped Prompts"} {
		if strings.Contains(report, section) {
			t.Errorf("report without result should not contain %q", section)
		}
	}
}

func TestRenderTerminal(t *testing.T) {
	rendered, err := RenderTerminal("# Title\n\nSome **bold** text")
	if err != nil {
		t.Fatalf("RenderTerminal() unexpected error: %v", err)
	}
	if !strings.Contains(rendered, "Title") || !strings.Contains(rendered, "bold") {
		t.Errorf("rendered output lost content: %q", rendered)
	}
}
