package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/danielliedt/smart-receipt-manager/internal/categorize"
	"github.com/danielliedt/smart-receipt-manager/internal/extraction"
	"github.com/danielliedt/smart-receipt-manager/internal/parsing"
	"github.com/danielliedt/smart-receipt-manager/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("smart-receipts")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		dbPath         = fs.StringLong("db", "smart-receipts.db", "Database file path")
		csvPath        = fs.StringLong("csv", "./archive", "CSV archive directory")
		documentsPath  = fs.StringLong("documents", "./documents", "Archived source document directory")
		quarantinePath = fs.StringLong("quarantine", "./quarantine", "Quarantine directory for rejected scans")
		inputPath      = fs.StringLong("input", "", "Process all PDFs in this directory and exit instead of serving")
		classifierType = fs.StringLong("classifier", "rules", "Generative classifier tier: 'rules' (none), 'gemini' or 'ollama'")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL      = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel    = fs.StringLong("ollama-model", "llama3.1:latest", "Ollama model name")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SMART_RECEIPTS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Build the classifier chain: rules first, then remembered corrections,
	// then optionally a generative tier.
	tiers := []categorize.Classifier{
		categorize.NewRuleClassifier(nil),
		categorize.NewMemory(db),
	}
	switch *classifierType {
	case "rules":
		// Keyword rules and remembered corrections only.
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini classifier...", "model", *geminiModel)
		gemini, err := categorize.NewGemini(apiKey, *geminiModel, nil)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
		tiers = append(tiers, gemini)
	case "ollama":
		slog.Info("Initializing Ollama classifier...", "url", *ollamaURL, "model", *ollamaModel)
		ollama, err := categorize.NewOllama(*ollamaURL, *ollamaModel, nil)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
		tiers = append(tiers, ollama)
	default:
		slog.Error("Invalid classifier type", "type", *classifierType, "valid", "rules, gemini or ollama")
		os.Exit(1)
	}
	classifier := categorize.NewChain(tiers...)
	defer classifier.Close()

	// Initialize CSV archive
	slog.Info("Initializing CSV archive...", "path", *csvPath)
	archive, err := receipt.NewCSVArchive(*csvPath)
	if err != nil {
		slog.Error("Failed to initialize CSV archive", "error", err)
		os.Exit(1)
	}

	// Initialize document storage and quarantine
	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(*documentsPath)
	if err != nil {
		slog.Error("Failed to initialize document storage", "error", err)
		os.Exit(1)
	}
	quarantine, err := receipt.NewLocalStorage(*quarantinePath)
	if err != nil {
		slog.Error("Failed to initialize quarantine", "error", err)
		os.Exit(1)
	}

	extractor := extraction.NewFitz()
	defer extractor.Close()

	service := receipt.NewService(db, extractor, parsing.NewParser(nil), classifier, archive, store, quarantine)

	// Batch mode: drain the input directory and exit.
	if *inputPath != "" {
		processed, rejected, err := service.ProcessBatch(*inputPath)
		if err != nil {
			slog.Error("Batch processing failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Batch complete", "processed", processed, "rejected", rejected)
		return
	}

	// Initialize server
	basicAuth := receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := receipt.NewServer(service, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
