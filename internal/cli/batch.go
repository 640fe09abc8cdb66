package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/web-read/webread/internal/config"
	"github.com/web-read/webread/internal/pipeline"
	urlutil "github.com/web-read/webread/internal/utils/url"
	"github.com/web-read/webread/pkg/models"
)

var batchDir string

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fetch every URL listed in a file, one per line",
	Long: `Reads URLs from a file (one per line, blank lines and #-comments ignored)
and runs each through the fetch pipeline sequentially, sharing a per-host
rate limiter across the run. Each result is written to its own file in the
output directory, named after the URL.`,
	Example: `  webread batch urls.txt
  webread batch urls.txt --dir ./articles -f markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchDir, "dir", "webread-out", "Directory for per-URL result files")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	urls, err := readURLList(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", args[0])
	}

	cmd.SilenceUsage = true

	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ext := ".txt"
	if cfg.Format == "markdown" {
		ext = ".md"
	}

	// One pipeline for the whole run so every URL shares the per-host
	// rate limiter.
	p := pipeline.New(cfg)

	bar := progressbar.NewOptions(len(urls),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("fetching"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	fetched := 0
	for _, rawURL := range urls {
		outcome := p.Fetch(cmd.Context(), models.FetchRequest{
			URL:     rawURL,
			Timeout: cfg.Timeout,
			Format:  models.Format(cfg.Format),
		})
		if outcome.Succeeded() {
			path := filepath.Join(batchDir, urlutil.Slug(rawURL)+ext)
			if err := os.WriteFile(path, []byte(outcome.Content+"\n"), 0o644); err != nil {
				log.Error().Err(err).Str("url", rawURL).Msg("Failed to write result file")
			} else {
				fetched++
			}
		} else {
			log.Warn().Str("url", rawURL).Msg("No usable content")
		}
		_ = bar.Add(1)
	}

	fmt.Fprintf(os.Stderr, "[webread] fetched %d/%d URLs into %s\n", fetched, len(urls), batchDir)
	if fetched == 0 {
		return fmt.Errorf("no URL produced usable content")
	}
	return nil
}

// readURLList loads and validates the URL file, skipping blanks and comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open URL list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := urlutil.Validate(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL list: %w", err)
	}
	return urls, nil
}
