// Package main is the docquery CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"docquery/internal/config"
	"docquery/internal/dispatch"
	"docquery/internal/extract"
	"docquery/internal/ingest"
	"docquery/internal/prompt"
	"docquery/internal/server"
	"docquery/internal/session"
	"docquery/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/docquery/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "docquery server" from the project dir uses the
// project's config (including debug). A missing default config is not an
// error: built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "extract":
		runExtract()
	case "version", "--version", "-v":
		fmt.Printf("docquery version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (uploads, dispatches, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("backend_url", cfg.Backend.URL),
		zap.Bool("debug", debugMode),
	)

	// One-time construction of the pipeline components; nothing is
	// re-initialized per request.
	srv := server.NewServer(
		session.NewStore(),
		newIngestor(cfg),
		prompt.NewBuilder(cfg.Prompt.SnippetLength),
		newDispatcher(cfg, logger),
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printAskUsage prints ask subcommand usage.
func printAskUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: docquery ask -file <path> [flags] <question>\n\n")
	fmt.Fprintf(fs.Output(), "Question is all remaining arguments joined by spaces. Multi-word questions work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  docquery ask -file report.pdf what is the total revenue
  docquery ask -file notes.txt "what does the file say?"
  docquery ask -file deck.pptx -office -backend http://localhost:9000/ask summarize this
`)
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// askArgsReorder moves any flags (and their values) that appear after the
// question to the front of the slice so that flag.Parse() sees them. Go's
// flag package stops at the first non-flag argument.
func askArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runAsk() {
	askArgs := askArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	filePath := fs.String("file", "", "file to ask about (required)")
	backendURL := fs.String("backend", "", "backend endpoint URL (overrides config)")
	snippetLen := fs.Int("snippet", 0, "characters of file content included in the prompt (overrides config)")
	office := fs.Bool("office", false, "extract text from office document formats")
	fs.Usage = func() { printAskUsage(fs) }
	_ = fs.Parse(askArgs)

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Please upload a file first")
		printAskUsage(fs)
		os.Exit(1)
	}
	question := buildQuestion(fs.Args())
	if question == "" {
		fmt.Fprintln(os.Stderr, "Please enter a question")
		printAskUsage(fs)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}
	if *snippetLen > 0 {
		cfg.Prompt.SnippetLength = *snippetLen
	}
	if *office {
		cfg.Ingest.OfficeExtraction = true
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		os.Exit(1)
	}
	name := filepath.Base(*filePath)
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))

	file, err := newIngestor(cfg).Ingest(name, mediaType, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingestion failed: %v\n", err)
		os.Exit(1)
	}

	promptText := prompt.NewBuilder(cfg.Prompt.SnippetLength).Build(file, question)
	answer, err := newDispatcher(cfg, logger).Ask(context.Background(), promptText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(answer)
}

func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	office := fs.Bool("office", true, "extract text from office document formats")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: docquery extract [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read file: %v\n", err)
		os.Exit(1)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text string
	switch {
	case ext == ".pdf":
		text, err = extract.PDF(data)
	case *office && isOfficeExt(ext):
		text, err = extract.Office(data, ext)
	default:
		text = extract.Plain(data)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(text)
}

// isOfficeExt reports whether ext is a supported office document extension.
func isOfficeExt(ext string) bool {
	switch ext {
	case ".docx", ".xlsx", ".pptx", ".odt", ".ods", ".odp", ".rtf":
		return true
	}
	return false
}

func newIngestor(cfg *config.Config) *ingest.Ingestor {
	var opts []ingest.Option
	if cfg.Ingest.OfficeExtraction {
		opts = append(opts, ingest.WithOfficeExtraction())
	}
	return ingest.NewIngestor(opts...)
}

func newDispatcher(cfg *config.Config, logger *zap.Logger) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		logger,
	)
}

func printUsage() {
	fmt.Println(`docquery - Ask questions about a single uploaded document

Usage:
  docquery server [flags]               Start the HTTP server and UI
  docquery ask -file <path> <question>  One-shot: ingest a file and ask
  docquery extract [flags] <file>       Print extracted text for a file
  docquery version                      Show version
  docquery help                         Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/docquery/config.yaml)
  --debug            Enable debug logging (uploads, dispatches, etc.)

Ask Flags:
  --config string    Config file path
  --file string      File to ask about (required)
  --backend string   Backend endpoint URL (overrides config)
  --snippet int      Characters of file content included in the prompt
  --office           Extract text from office document formats

Extract Flags:
  --office           Extract text from office document formats (default: true)

Examples:
  docquery server
  docquery ask -file report.pdf what is the total revenue
  docquery ask -file notes.txt -snippet 500 "summarize the notes"
  docquery extract report.pdf`)
}
