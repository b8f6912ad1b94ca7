package geo

// RawRecord pairs a prompt with the response it received
type RawRecord struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// PromptFailure records a prompt dropped because every provider call for it failed
type PromptFailure struct {
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
	Error    string `json:"error"`
}

// MentionList holds the brand and product names extracted from one response, in order
type MentionList struct {
	Brands   []string `json:"brands"`
	Products []string `json:"products"`
}

// MentionCount is the number of times one exact name was extracted across a run
type MentionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnalysisResult is the outcome of a run that extracted at least one mention
type AnalysisResult struct {
	Category      string          `json:"category"`
	Provider      string          `json:"provider"`
	BrandCounts   []MentionCount  `json:"brand_counts"`
	ProductCounts []MentionCount  `json:"product_counts"`
	Summary       string          `json:"summary"`
	RawRecords    []RawRecord     `json:"raw_records"`
	Failures      []PromptFailure `json:"failures"`
	Status        string          `json:"status"`
}

// Outcome is what RunAnalysis always returns. Result is nil when the category is unknown
// or no mentions were extracted; RawRecords and Failures are carried either way.
type Outcome struct {
	Result     *AnalysisResult `json:"result"`
	RawRecords []RawRecord     `json:"raw_records"`
	Failures   []PromptFailure `json:"failures"`
	Status     string          `json:"status"`
}
