package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"prompty/internal/config"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22D3EE")).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A78BFA")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)
)

// REPL drives a Session from a terminal
type REPL struct {
	session  *Session
	out      io.Writer
	renderer *glamour.TermRenderer
}

// NewREPL creates a REPL writing to out; replies are rendered as markdown when
// stdout is a terminal
func NewREPL(session *Session, out io.Writer) *REPL {
	r := &REPL{session: session, out: out}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			r.renderer = renderer
		}
	}

	return r
}

// Run reads lines until /quit, Ctrl+C, Ctrl+D or ctx is canceled
func (r *REPL) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	r.printWelcome()

	for ctx.Err() == nil {
		input, err := line.Prompt(promptStyle.Render("prompty> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if !r.handleInput(ctx, input) {
			return nil
		}
	}

	return nil
}

// handleInput processes one line and reports whether the loop should continue
func (r *REPL) handleInput(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}

	if strings.HasPrefix(input, "/") {
		return r.handleCommand(input)
	}

	reply := r.session.Send(ctx, input)
	fmt.Fprintf(r.out, "%s\n%s\n", infoStyle.Render(r.session.Provider().DisplayName()+":"), r.render(reply.Content))
	return true
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	command, args := strings.ToLower(parts[0]), parts[1:]

	switch command {
	case "/quit", "/q", "/exit":
		return false

	case "/help", "/h":
		r.printHelp()

	case "/clear":
		r.session.Clear()
		fmt.Fprintln(r.out, commandStyle.Render("[Conversation cleared]"))

	case "/history":
		r.printHistory()

	case "/model", "/m":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%s %s (available: %v)\n",
				infoStyle.Render("[Model]"),
				commandStyle.Render(string(r.session.Provider())),
				config.Providers)
			return true
		}

		provider, err := config.ParseProvider(args[0])
		if err == nil {
			err = r.session.SelectModel(provider)
		}
		if err != nil {
			fmt.Fprintf(r.out, "%s %v\n", errorStyle.Render("[Error]"), err)
			return true
		}
		fmt.Fprintf(r.out, "%s Switched to %s, history cleared\n",
			commandStyle.Render("[OK]"),
			provider.DisplayName())

	default:
		fmt.Fprintf(r.out, "%s unknown command: %s (type /help for commands)\n", errorStyle.Render("[Error]"), command)
	}

	return true
}

func (r *REPL) render(content string) string {
	if r.renderer == nil {
		return content
	}
	rendered, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, welcomeStyle.Render("Prompty chat"))
	fmt.Fprintln(r.out, infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Fprintf(r.out, "%s %s\n", infoStyle.Render("Model:"), commandStyle.Render(r.session.Provider().DisplayName()))
	fmt.Fprintln(r.out, infoStyle.Render("History is cleared whenever you switch models. Type /help for commands."))
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, commandStyle.Render("/model [provider]")+"  show or switch the model (clears history)")
	fmt.Fprintln(r.out, commandStyle.Render("/history")+"          show the conversation")
	fmt.Fprintln(r.out, commandStyle.Render("/clear")+"            clear the conversation")
	fmt.Fprintln(r.out, commandStyle.Render("/quit")+"             leave the chat")
}

func (r *REPL) printHistory() {
	history := r.session.History()
	if len(history) == 0 {
		fmt.Fprintln(r.out, infoStyle.Render("[No messages yet]"))
		return
	}
	for _, msg := range history {
		role := "You"
		if msg.Role == RoleAssistant {
			role = r.session.Provider().DisplayName()
		}
		fmt.Fprintf(r.out, "%s %s\n", promptStyle.Render(role+":"), msg.Content)
	}
}
