package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// valid log formats, log levels, prompt versions and GitHub API flavours
var (
	validLogFormats     = []string{"text", "json"}
	validLogLevels      = []string{"debug", "info", "warn", "error"}
	validPromptVersions = []string{"v1", "v2"}
	validGitHubAPIs     = []string{"rest", "graphql"}
)

// Provider identifies one of the supported LLM backends
type Provider string

const (
	ProviderChatGPT Provider = "chatgpt"
	ProviderGemini  Provider = "gemini"
	ProviderMistral Provider = "mistral"
	ProviderClaude  Provider = "claude"
	ProviderLlama   Provider = "llama"
)

// Providers lists every supported provider in display order
var Providers = []Provider{ProviderChatGPT, ProviderGemini, ProviderMistral, ProviderClaude, ProviderLlama}

// ParseProvider maps a user supplied name onto a known provider (case-insensitive)
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Providers, p) {
		return "", fmt.Errorf("unsupported model provider: %s", name)
	}
	return p, nil
}

// DisplayName returns the human readable provider name used in logs and errors
func (p Provider) DisplayName() string {
	switch p {
	case ProviderChatGPT:
		return "ChatGPT"
	case ProviderGemini:
		return "Gemini"
	case ProviderMistral:
		return "Mistral"
	case ProviderClaude:
		return "Claude"
	case ProviderLlama:
		return "Llama"
	default:
		return string(p)
	}
}

// ModelSettings holds the endpoint, model and credential of one provider
type ModelSettings struct {
	API     string
	ModelID string
	UserKey string
}

// defaultModels are used when PROMPTY_<PROVIDER>_MODEL_API / _MODEL_ID are unset
var defaultModels = map[Provider]ModelSettings{
	ProviderChatGPT: {API: "https://api.openai.com/v1", ModelID: "gpt-3.5-turbo"},
	ProviderGemini:  {API: "https://generativelanguage.googleapis.com", ModelID: "gemini-2.5-flash"},
	ProviderMistral: {API: "https://router.huggingface.co", ModelID: "mistralai/Mistral-7B-Instruct-v0.2"},
	ProviderClaude:  {API: "https://api.anthropic.com", ModelID: "claude-3-5-haiku-latest"},
	ProviderLlama:   {API: "http://localhost:8000", ModelID: "meta-llama/Llama-3.1-8B-Instruct"},
}

// vendorKeyEnv lists the vendor's own key variable, read when the prefixed one is unset
var vendorKeyEnv = map[Provider]string{
	ProviderChatGPT: "OPENAI_API_KEY",
	ProviderGemini:  "GEMINI_API_KEY",
	ProviderMistral: "HUGGINGFACE_API_TOKEN",
	ProviderClaude:  "ANTHROPIC_API_KEY",
}

type Config struct {
	CORSOrigins             []string
	DefaultProvider         Provider
	ExtractionPromptVersion string
	ExtractionProvider      Provider
	FallbackProvider        Provider // empty disables the per-prompt fallback
	GitHubAPI               string
	GitHubBaseURL           string // empty targets github.com
	GitHubToken             string
	GitLabBaseURL           string
	GitLabSkipSSLVerify     bool
	GitLabToken             string
	LogFormat               string
	LogLevel                string
	ModelMaxResponseTokens  int
	ModelSkipSSLVerify      bool
	ModelTimeoutSeconds     int
	Models                  map[Provider]ModelSettings
	ServerAddr              string
	SummaryProvider         Provider
	TemplateSources         []string
}

// Load creates a new Config instance from environment variables and validates it
func Load() (*Config, error) {

	// Parse provider selection
	defaultProvider, err := parseProviderEnvOrDefault("PROMPTY_PROVIDER", ProviderGemini)
	if err != nil {
		return nil, err
	}
	extractionProvider, err := parseProviderEnvOrDefault("PROMPTY_EXTRACTION_PROVIDER", ProviderGemini)
	if err != nil {
		return nil, err
	}
	summaryProvider, err := parseProviderEnvOrDefault("PROMPTY_SUMMARY_PROVIDER", ProviderGemini)
	if err != nil {
		return nil, err
	}
	fallbackProvider, err := parseProviderEnvOrDefault("PROMPTY_FALLBACK_PROVIDER", "")
	if err != nil {
		return nil, err
	}

	// Parse per-provider model configuration
	models := make(map[Provider]ModelSettings, len(Providers))
	for _, p := range Providers {
		models[p] = loadModelSettings(p)
	}

	modelSkipSSL, err := parseBoolEnvOrDefault("PROMPTY_MODEL_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}
	modelMaxResponseTokens, err := parseIntEnvOrDefault("PROMPTY_MODEL_MAX_RESPONSE_TOKENS", 2000, 1, 1000000000)
	if err != nil {
		return nil, err
	}
	modelTimeoutSeconds, err := parseIntEnvOrDefault("PROMPTY_MODEL_TIMEOUT_SECONDS", 60, 1, 1000000000)
	if err != nil {
		return nil, err
	}

	// Parse template source configuration
	gitLabSkipSSL, err := parseBoolEnvOrDefault("PROMPTY_GITLAB_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		CORSOrigins:             parseListEnv("PROMPTY_CORS_ORIGINS"),
		DefaultProvider:         defaultProvider,
		ExtractionPromptVersion: getEnvOrDefault("PROMPTY_EXTRACTION_PROMPT_VERSION", "v2"),
		ExtractionProvider:      extractionProvider,
		FallbackProvider:        fallbackProvider,
		GitHubAPI:               strings.ToLower(getEnvOrDefault("PROMPTY_GITHUB_API", "rest")),
		GitHubBaseURL:           os.Getenv("PROMPTY_GITHUB_BASE_URL"),
		GitHubToken:             os.Getenv("PROMPTY_GITHUB_TOKEN"),
		GitLabBaseURL:           os.Getenv("PROMPTY_GITLAB_BASE_URL"),
		GitLabSkipSSLVerify:     gitLabSkipSSL,
		GitLabToken:             os.Getenv("PROMPTY_GITLAB_TOKEN"),
		LogFormat:               os.Getenv("PROMPTY_LOG_FORMAT"),
		LogLevel:                os.Getenv("PROMPTY_LOG_LEVEL"),
		ModelMaxResponseTokens:  modelMaxResponseTokens,
		ModelSkipSSLVerify:      modelSkipSSL,
		ModelTimeoutSeconds:     modelTimeoutSeconds,
		Models:                  models,
		ServerAddr:              getEnvOrDefault("PROMPTY_SERVER_ADDR", ":8080"),
		SummaryProvider:         summaryProvider,
		TemplateSources:         parseListEnv("PROMPTY_TEMPLATE_SOURCES"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Model returns the settings of a provider, falling back to its built-in defaults
func (c *Config) Model(p Provider) ModelSettings {
	if m, ok := c.Models[p]; ok {
		return m
	}
	return defaultModels[p]
}

// RequireModel checks that a provider has everything needed to send requests.
// Llama is usually self-hosted and may run without a key.
func (c *Config) RequireModel(p Provider) error {
	m := c.Model(p)
	prefix := envPrefix(p)
	if m.API == "" {
		return fmt.Errorf("%s_MODEL_API environment variable is required", prefix)
	}
	if m.ModelID == "" {
		return fmt.Errorf("%s_MODEL_ID environment variable is required", prefix)
	}
	if m.UserKey == "" && p != ProviderLlama {
		return fmt.Errorf("%s_USER_KEY environment variable is required", prefix)
	}
	return nil
}

// loadModelSettings reads PROMPTY_<PROVIDER>_* variables for one provider
func loadModelSettings(p Provider) ModelSettings {
	prefix := envPrefix(p)
	defaults := defaultModels[p]

	userKey := os.Getenv(prefix + "_USER_KEY")
	if userKey == "" && vendorKeyEnv[p] != "" {
		userKey = os.Getenv(vendorKeyEnv[p])
	}

	return ModelSettings{
		API:     strings.TrimSuffix(getEnvOrDefault(prefix+"_MODEL_API", defaults.API), "/"),
		ModelID: getEnvOrDefault(prefix+"_MODEL_ID", defaults.ModelID),
		UserKey: userKey,
	}
}

func envPrefix(p Provider) string {
	return "PROMPTY_" + strings.ToUpper(string(p))
}

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// parseListEnv splits a comma-separated variable, dropping empty entries
func parseListEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseProviderEnvOrDefault parses a provider name or returns a default value if not set
func parseProviderEnvOrDefault(key string, defaultVal Provider) (Provider, error) {
	str, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(str) == "" {
		return defaultVal, nil
	}

	p, err := ParseProvider(str)
	if err != nil {
		return "", fmt.Errorf("%s must be one of: %v; got: %s", key, Providers, str)
	}
	return p, nil
}

// parseIntEnvOrDefault parses an integer environment variable with range validation or returns a default value if not set
func parseIntEnvOrDefault(key string, defaultVal, min, max int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer, got: %s", key, str)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, val)
	}

	return val, nil
}

// parseBoolEnvOrDefault parses a boolean environment variable or returns a default value if not set
func parseBoolEnvOrDefault(key string, defaultVal bool) (bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}

	val, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean, got: %s", key, str)
	}

	return val, nil
}

// validateConfig performs all validation on the loaded configuration
func validateConfig(cfg *Config) error {

	// Validate logging configuration
	if cfg.LogFormat != "" {
		if !slices.Contains(validLogFormats, strings.ToLower(cfg.LogFormat)) {
			return fmt.Errorf("PROMPTY_LOG_FORMAT must be one of: %v; got: %s", validLogFormats, cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
			return fmt.Errorf("PROMPTY_LOG_LEVEL must be one of: %v; got: %s", validLogLevels, cfg.LogLevel)
		}
	}

	// Validate prompt configuration
	if !slices.Contains(validPromptVersions, cfg.ExtractionPromptVersion) {
		return fmt.Errorf("PROMPTY_EXTRACTION_PROMPT_VERSION must be one of: %v; got: %s", validPromptVersions, cfg.ExtractionPromptVersion)
	}

	// Validate template source configuration
	if !slices.Contains(validGitHubAPIs, cfg.GitHubAPI) {
		return fmt.Errorf("PROMPTY_GITHUB_API must be one of: %v; got: %s", validGitHubAPIs, cfg.GitHubAPI)
	}
	if cfg.GitLabToken != "" && cfg.GitLabBaseURL == "" {
		return fmt.Errorf("PROMPTY_GITLAB_BASE_URL environment variable is required when PROMPTY_GITLAB_TOKEN is provided")
	}
	for _, source := range cfg.TemplateSources {
		if strings.HasPrefix(source, "github:") && cfg.GitHubAPI == "graphql" && cfg.GitHubToken == "" {
			return fmt.Errorf("PROMPTY_GITHUB_TOKEN environment variable is required for GitHub GraphQL template sources")
		}
		if strings.HasPrefix(source, "gitlab:") && cfg.GitLabBaseURL == "" {
			return fmt.Errorf("PROMPTY_GITLAB_BASE_URL environment variable is required for GitLab template sources")
		}
	}

	return nil
}
