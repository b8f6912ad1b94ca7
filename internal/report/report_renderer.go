package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"

	"prompty/internal/geo"
)

//go:embed report_template.md
var reportTemplateText string

var reportTemplate *template.Template

// barWidth is the length of the bar drawn for the most mentioned name
const barWidth = 20

func init() {
	reportTemplate = template.Must(
		template.New("report").Funcs(templateFuncs()).Parse(reportTemplateText),
	)
}

// templateFuncs returns all custom template functions
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"bar":         bar,
		"escapePipes": escapePipes,
		"formatDate":  formatDate,
		"maxCount":    maxCount,
		"oneLine":     oneLine,
		"rawJSON":     rawJSON,
	}
}

// Template helper functions

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func maxCount(counts []geo.MentionCount) int {
	max := 0
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	return max
}

// bar draws count relative to max; any non-zero count gets at least one block
func bar(count, max int) string {
	if count <= 0 || max <= 0 {
		return ""
	}
	width := int(math.Round(float64(count) / float64(max) * barWidth))
	if width < 1 {
		width = 1
	}
	return strings.Repeat("█", width)
}

func rawJSON(records []geo.RawRecord) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReportConfig holds everything needed to render one analysis report
type ReportConfig struct {
	Category       string
	Provider       string
	Outcome        geo.Outcome
	GenerationTime time.Time
	IncludeRaw     bool
}

// TemplateData holds all data needed for template rendering
type TemplateData struct {
	Category       string
	Provider       string
	Status         string
	Result         *geo.AnalysisResult
	Failures       []geo.PromptFailure
	RawRecords     []geo.RawRecord
	GenerationTime time.Time
	IncludeRaw     bool
}

// GenerateReport renders an analysis outcome as markdown
func GenerateReport(config *ReportConfig) (string, error) {
	data := &TemplateData{
		Category:       config.Category,
		Provider:       config.Provider,
		Status:         config.Outcome.Status,
		Result:         config.Outcome.Result,
		Failures:       config.Outcome.Failures,
		RawRecords:     config.Outcome.RawRecords,
		GenerationTime: config.GenerationTime,
		IncludeRaw:     config.IncludeRaw,
	}
	if data.Result != nil {
		data.Category = data.Result.Category
		data.Provider = data.Result.Provider
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}

	return strings.TrimSpace(buf.String()) + "\n", nil
}

// RenderTerminal formats markdown for display in a terminal
func RenderTerminal(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}
