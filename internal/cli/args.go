package cli

import (
	"flag"
	"fmt"
	"strings"
)

const (
	ModeAnalyze    = "analyze"
	ModeChat       = "chat"
	ModeServe      = "serve"
	ModeCategories = "categories"
)

// Args holds the parsed command-line arguments
type Args struct {
	Mode       string
	Category   string
	Provider   string
	IncludeRaw bool
	Render     bool
	ShowHelp   bool
}

// Parse parses command-line arguments
func Parse() (*Args, error) {
	args := &Args{}

	flag.StringVar(&args.Mode, "mode", "", "Operation mode: 'analyze', 'chat', 'serve' or 'categories'")
	flag.StringVar(&args.Mode, "m", "", "Operation mode (shorthand)")

	flag.StringVar(&args.Category, "category", "", "Prompt category to analyze (analyze mode)")
	flag.StringVar(&args.Category, "c", "", "Prompt category (shorthand)")

	flag.StringVar(&args.Provider, "provider", "", "Model provider: chatgpt, gemini, mistral, claude or llama")
	flag.StringVar(&args.Provider, "p", "", "Model provider (shorthand)")

	flag.BoolVar(&args.IncludeRaw, "raw", false, "Include raw responses in the report (analyze mode)")
	flag.BoolVar(&args.Render, "render", false, "Render the report for the terminal (analyze mode)")

	flag.BoolVar(&args.ShowHelp, "help", false, "Show help message")
	flag.BoolVar(&args.ShowHelp, "h", false, "Show help message (shorthand)")

	flag.Parse()

	// No need to validate if user just wants help
	if args.ShowHelp {
		return args, nil
	}

	args.Mode = args.determineMode()

	if err := args.validate(); err != nil {
		return nil, err
	}

	return args, nil
}

// determineMode infers the mode when it is not set explicitly
func (a *Args) determineMode() string {
	if a.Mode != "" {
		return strings.ToLower(strings.TrimSpace(a.Mode))
	}
	if a.Category != "" {
		return ModeAnalyze
	}
	return ModeChat
}

func (a *Args) validate() error {
	switch a.Mode {
	case ModeAnalyze:
		if strings.TrimSpace(a.Category) == "" {
			return fmt.Errorf("analyze mode requires --category\n\nTry:\n  prompty --mode analyze --category Tech\n\nOr run 'prompty --categories' to list categories")
		}
	case ModeChat, ModeServe, ModeCategories:
	default:
		return fmt.Errorf("invalid mode '%s': must be one of 'analyze', 'chat', 'serve' or 'categories'", a.Mode)
	}

	if (a.IncludeRaw || a.Render) && a.Mode != ModeAnalyze {
		return fmt.Errorf("--raw and --render are only available in analyze mode")
	}

	return nil
}

// ShowUsage displays usage information
func ShowUsage() {
	fmt.Println(`Prompty - brand and product visibility across LLM answers

USAGE:
  Chat mode (default):
    prompty [--provider <name>]

  Analysis mode:
    prompty --category <name> [--provider <name>] [--raw] [--render]

  API server:
    prompty --mode serve

FLAGS:
  -m, --mode <mode>            Operation mode: 'analyze', 'chat', 'serve' or 'categories'
  -c, --category <name>        Prompt category to analyze (exact, case-sensitive)
  -p, --provider <name>        chatgpt, gemini, mistral, claude or llama
      --raw                    Include raw prompt/response pairs in the report
      --render                 Render the markdown report for the terminal
  -h, --help                   Show this help message

EXAMPLES:
  # Analyze the Tech category with ChatGPT and save the report
  prompty -c Tech -p chatgpt > tech.md

  # Analyze and render in the terminal
  prompty -c Beauty --render

  # List available categories
  prompty -m categories

CONFIGURATION:
  All configuration is set via environment variables (a .env file is loaded if present).
  See .env.example for all available options.`)
}
