// Package main is the entry point for the quill editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/quill/internal/ai"
	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to configuration file")
		width       = flag.Int("width", 0, "wrap width (overrides config)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: quill [flags] <document>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("quill %s (%s)\n", version, commit)
		return 0
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	path := flag.Arg(0)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: quill needs an interactive terminal")
		return 1
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *width > 0 {
		cfg.Editor.Width = *width
	}

	log, err := app.OpenLogFile(app.ParseLogLevel(cfg.Logging.Level), cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	transformer, err := buildTransformer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	meter, err := ai.OpenFileMeter(cfg.CreditsPath(), cfg.AI.Allowance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer screen.Fini()

	application, err := app.New(cfg, path, screen, transformer, meter, log)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
		os.Exit(1)
	}()

	if err := application.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildTransformer constructs the configured AI provider. Provider
// "none", or a missing API key, disables transforms.
func buildTransformer(cfg config.Config) (ai.Transformer, error) {
	switch cfg.AI.Provider {
	case "anthropic":
		if cfg.AI.AnthropicKey == "" {
			return nil, nil
		}
		return ai.NewAnthropicProvider(cfg.AI.AnthropicKey, cfg.AI.Model), nil
	case "openai":
		if cfg.AI.OpenAIKey == "" {
			return nil, nil
		}
		return ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.Model), nil
	case "gemini":
		if cfg.AI.GeminiKey == "" {
			return nil, nil
		}
		return ai.NewGeminiProvider(context.Background(), cfg.AI.GeminiKey, cfg.AI.Model)
	default:
		return nil, nil
	}
}
