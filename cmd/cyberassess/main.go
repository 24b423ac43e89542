package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cyberassess/internal/common"
	"cyberassess/internal/engine"
	"cyberassess/internal/ingest"
	"cyberassess/internal/models"
	"cyberassess/internal/store"

	"github.com/ternarybob/arbor"
)

const appName = "cyberassess"

func main() {
	// Parse command line flags
	var (
		configPath     = flag.String("config", "", "Path to configuration file")
		inputPath      = flag.String("input", "", "Input file: .json grid, .html table, or pasted text")
		answerColumn   = flag.Int("answer-column", -1, "Answer column index when auto-detection fails (0-based)")
		sessionID      = flag.String("session", "default", "Session identifier the result is stored under")
		mode           = flag.String("mode", "dev", "Environment mode: 'dev', 'development', 'prod', or 'production'")
		quiet          = flag.Bool("quiet", false, "Suppress banner output")
		version        = flag.Bool("version", false, "Show version information")
		help           = flag.Bool("help", false, "Show help message")
		validateConfig = flag.Bool("validate", false, "Validate configuration file and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s (build: %s)\n", appName, common.GetVersion(), common.GetBuild())
		os.Exit(0)
	}

	if *help {
		showHelp()
		os.Exit(0)
	}

	environment := parseMode(*mode)

	// Load configuration with priority: defaults -> TOML -> environment
	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Engine.Environment = environment

	if *validateConfig {
		fmt.Println("Configuration is valid")
		os.Exit(0)
	}

	if err := common.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := common.GetLogger()

	logger.Info().
		Str("version", common.GetVersion()).
		Str("build", common.GetBuild()).
		Str("environment", environment).
		Msg("Starting cyberassess")

	if !*quiet {
		common.PrintBanner(appName, environment, "Assessment", common.GetLogFilePath())
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "No input file given; see -help")
		os.Exit(1)
	}

	result, err := runAssessment(cfg, logger, *inputPath, *answerColumn)
	if err != nil {
		if errors.Is(err, engine.ErrNoQuestions) {
			common.PrintError("No questions found in input. Ensure question numbers follow a format like A1.1 or A2.5.")
			os.Exit(1)
		}
		logger.Error().Err(err).Msg("Assessment failed")
		os.Exit(1)
	}

	if err := persistResult(cfg, logger, *sessionID, result); err != nil {
		logger.Error().Err(err).Msg("Failed to store assessment result")
		os.Exit(1)
	}

	printResult(result)
}

func runAssessment(cfg *common.Config, logger arbor.ILogger, inputPath string, answerColumn int) (*models.AssessmentResult, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	eng := engine.New(&cfg.Engine, logger)

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".json":
		var grid models.Grid
		if err := json.Unmarshal(data, &grid); err != nil {
			return nil, fmt.Errorf("failed to decode grid JSON: %w", err)
		}
		logger.Info().Int("rows", len(grid)).Msg("Assessing decoded spreadsheet grid")
		return eng.AssessGrid(grid, answerColumn)
	case ".html", ".htm":
		logger.Info().Msg("Assessing pasted HTML table")
		return eng.AssessHTMLTable(string(data))
	default:
		text := string(data)
		if ingest.LooksLikeTable(text) {
			logger.Info().Msg("Pasted text looks like an HTML table")
			return eng.AssessHTMLTable(text)
		}
		logger.Info().Msg("Assessing pasted text")
		return eng.AssessText(text)
	}
}

func persistResult(cfg *common.Config, logger arbor.ILogger, sessionID string, result *models.AssessmentResult) error {
	st, err := store.New(&cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(sessionID, result, time.Now()); err != nil {
		return err
	}

	logger.Info().Str("session", sessionID).Msg("Assessment result stored")
	return nil
}

func printResult(result *models.AssessmentResult) {
	common.PrintSuccess(fmt.Sprintf("Overall score: %.1f%%", result.OverallScore))
	if len(result.FlaggedIssues) > 0 {
		common.PrintWarning(fmt.Sprintf("%d flagged issue(s)", len(result.FlaggedIssues)))
	}
	fmt.Println(result.Summary)
	fmt.Println()

	out, err := json.MarshalIndent(result, "", "  ")
	if err == nil {
		fmt.Println(string(out))
	}
}

func parseMode(mode string) string {
	mode = strings.ToLower(mode)
	switch mode {
	case "prod", "production":
		return "production"
	case "dev", "development":
		return "development"
	default:
		return "development"
	}
}

func showHelp() {
	fmt.Printf("%s v%s - Certification Self-Assessment Engine\n\n", appName, common.GetVersion())
	fmt.Println("Usage:")
	fmt.Printf("  %s -input <file> [flags]\n\n", os.Args[0])
	fmt.Println("Flags:")
	fmt.Println("  -input string         Input file: .json (decoded grid), .html (pasted table), anything else is pasted text")
	fmt.Println("  -answer-column int    Answer column index when auto-detection fails (0-based, default -1 = auto)")
	fmt.Println("  -session string       Session identifier the result is stored under (default \"default\")")
	fmt.Println("  -config string        Configuration file path")
	fmt.Println("  -mode string          Environment mode: 'dev', 'development', 'prod', or 'production' (default \"dev\")")
	fmt.Println("  -quiet                Suppress banner output")
	fmt.Println("  -version              Show version information")
	fmt.Println("  -help                 Show help message")
	fmt.Println("  -validate             Validate configuration file and exit")
	fmt.Println("\nExamples:")
	fmt.Printf("  %s -input answers.json                  # Assess a decoded spreadsheet grid\n", os.Args[0])
	fmt.Printf("  %s -input pasted.txt -session acme      # Assess pasted questionnaire text\n", os.Args[0])
	fmt.Printf("  %s -input answers.json -answer-column 5 # Pick the answer column manually\n", os.Args[0])
	fmt.Println("\nNote: spreadsheet files must be decoded to a JSON grid first; the engine does not read .xlsx binaries.")
}
