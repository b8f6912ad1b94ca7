package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"prompty/internal"
	"prompty/internal/chat"
	"prompty/internal/cli"
	"prompty/internal/config"
	"prompty/internal/logger"
	"prompty/internal/metrics"
	"prompty/internal/report"
)

func main() {
	args, err := cli.Parse()
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	if args.ShowHelp {
		cli.ShowUsage()
		os.Exit(0)
	}

	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := internal.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	switch args.Mode {
	case cli.ModeAnalyze:
		err = runAnalyze(ctx, app, args)
	case cli.ModeChat:
		err = runChat(ctx, app, args)
	case cli.ModeServe:
		err = runServer(ctx, app)
	case cli.ModeCategories:
		for _, category := range app.Categories() {
			fmt.Printf("%s (%d prompts)\n", category.Name, len(category.Prompts))
		}
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func runAnalyze(ctx context.Context, app *internal.Prompty, args *cli.Args) error {
	outcome, reportText, err := app.Analyze(ctx, args.Category, args.Provider, args.IncludeRaw)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if reportText == "" {
		return errors.New(outcome.Status)
	}

	if args.Render {
		rendered, err := report.RenderTerminal(reportText)
		if err != nil {
			slog.Warn("Failed to render report, printing markdown", "error", err)
		} else {
			reportText = rendered
		}
	}

	// Print to stdout (user can redirect to file if needed)
	fmt.Print(reportText)
	return nil
}

func runServer(ctx context.Context, app *internal.Prompty) error {
	srv, err := app.Server()
	if err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	return srv.Run(ctx)
}

func runChat(ctx context.Context, app *internal.Prompty, args *cli.Args) error {
	session, err := app.NewChatSession(args.Provider)
	if err != nil {
		return fmt.Errorf("failed to start chat session: %w", err)
	}

	metrics.ChatSessionsActive.Inc()
	defer metrics.ChatSessionsActive.Dec()

	return chat.NewREPL(session, os.Stdout).Run(ctx)
}
