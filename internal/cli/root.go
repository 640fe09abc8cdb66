// Package cli implements the command surface: a root command that fetches a
// single URL, and a batch subcommand for URL lists.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/web-read/webread/internal/config"
	"github.com/web-read/webread/internal/pipeline"
	urlutil "github.com/web-read/webread/internal/utils/url"
	"github.com/web-read/webread/pkg/models"
)

var outputPath string

// rootCmd is both the base command and the fetch surface: content goes to
// stdout, diagnostics to stderr, so output pipes cleanly.
var rootCmd = &cobra.Command{
	Use:   "webread <url> [timeout-seconds]",
	Short: "Fetch readable text from a URL through a tiered fallback pipeline",
	Long: `webread extracts the readable text of a web page, tolerating sites that
block simple HTTP clients or require JavaScript rendering.

It tries three tiers in order of cost and stops at the first one that yields
useful content:

  static   plain HTTP fetch and static HTML parse
  reader   remote reader service that renders the page remotely
  browser  local headless Chrome render

Content is written to stdout; a diagnostic line naming the winning tier goes
to stderr. Exit status is 0 on success and 1 when no tier produced usable
content.`,
	Example: `  # Fetch with the default 20s per-tier budget
  webread https://example.com/article

  # Give each tier 45 seconds
  webread https://example.com/article 45

  # Markdown output into a file
  webread -f markdown -o article.md https://example.com/article`,
	Args:    cobra.RangeArgs(1, 2),
	Version: "0.1.0",
	RunE:    runFetch,
}

// Execute runs the CLI under the given context and exits non-zero on any
// failure. Cancelling the context aborts whichever tier is in flight.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(initLogging)

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write content to a file instead of stdout")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initLogging configures zerolog from the global flags. Diagnostics stay on
// stderr at error level unless verbosity is requested, so the default run
// prints nothing but content and the one-line tier notice.
func initLogging() {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		cfg = &config.Config{LogLevel: config.DefaultLogLevel}
	}

	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	if err := urlutil.Validate(rawURL); err != nil {
		return err
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	// A positional timeout (seconds) wins over the flag, matching the
	// documented invocation surface.
	if len(args) == 2 {
		seconds, err := strconv.Atoi(args[1])
		if err != nil || seconds <= 0 {
			return fmt.Errorf("invalid timeout %q: want a positive number of seconds", args[1])
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	// Arguments are valid; failures from here on are runtime, not usage.
	cmd.SilenceUsage = true

	p := pipeline.New(cfg)
	outcome := p.Fetch(cmd.Context(), models.FetchRequest{
		URL:     rawURL,
		Timeout: cfg.Timeout,
		Format:  models.Format(cfg.Format),
	})

	if !outcome.Succeeded() {
		return fmt.Errorf("all tiers failed, no usable content extracted from %s", rawURL)
	}

	fmt.Fprintf(os.Stderr, "[webread] fetched via %s tier\n", outcome.Tier)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(outcome.Content+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "[webread] saved to %s\n", outputPath)
		return nil
	}

	fmt.Println(outcome.Content)
	return nil
}
