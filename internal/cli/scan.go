package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/steamrisk/internal/llm"
	"github.com/ppiankov/steamrisk/internal/model"
	"github.com/ppiankov/steamrisk/internal/pipeline"
)

var (
	userHandle    string
	steamID       string
	apiKey        string
	requestDelay  time.Duration
	onlyFlagged   bool
	noCache       bool
	cacheFile     string
	detectors     string
	extraKeywords []string
	csvPath       string
	httpTimeout   time.Duration
	userAgent     string
	httpProxy     string
	httpsProxy    string
	respectRobots bool
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a public library and score every title",
	Long: `Scan resolves the profile, lists the owned games, fetches store
metadata for each title (cache-first), runs the enabled detectors, and
renders the scored table sorted by descending risk.

Example:
  steamrisk scan --user gaben
  steamrisk scan --steamid 76561197960287930 --only-flagged --csv report.csv
  steamrisk scan --user gaben --detect origin,anticheat --delay 2s`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Identity flags (mutually exclusive)
	scanCmd.Flags().StringVar(&userHandle, "user", "", "vanity profile handle")
	scanCmd.Flags().StringVar(&steamID, "steamid", "", "64-bit numeric profile id")
	scanCmd.Flags().StringVar(&apiKey, "api-key", "", "Steam Web API key (or STEAM_API_KEY)")

	// Scan flags
	scanCmd.Flags().DurationVar(&requestDelay, "delay", 1500*time.Millisecond, "delay between live store fetches")
	scanCmd.Flags().BoolVar(&onlyFlagged, "only-flagged", false, "only keep rows with at least one signal or a non-zero score")
	scanCmd.Flags().StringVar(&detectors, "detect", "origin,drm,anticheat", "comma-separated detectors to run")
	scanCmd.Flags().StringSliceVar(&extraKeywords, "extra-keywords", nil, "additional origin keywords")

	// Cache flags
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the appdetails cache")
	scanCmd.Flags().StringVar(&cacheFile, "cache-file", "appdetails-cache.json", "cache file path")

	// Output flags
	scanCmd.Flags().StringVar(&csvPath, "csv", "", "also write the report as CSV to this path")

	// HTTP flags
	scanCmd.Flags().DurationVar(&httpTimeout, "timeout", 30*time.Second, "per-attempt HTTP timeout")
	scanCmd.Flags().StringVar(&userAgent, "ua", "steamrisk/0.2 (+https://github.com/ppiankov/steamrisk)", "HTTP User-Agent")
	scanCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scanCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	scanCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "check robots.txt before fetching")

	// LLM flags
	scanCmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM advisory summary (never affects scores)")
	scanCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if verbose {
		fmt.Fprintf(os.Stderr, "Identity: %s%s\n", userHandle, steamID)
		fmt.Fprintf(os.Stderr, "Cache: %v (%s)\n", cfg.Cache.Enabled, cfg.Cache.Path)
		fmt.Fprintf(os.Stderr, "Detectors: origin=%v drm=%v anticheat=%v\n",
			cfg.Scan.DetectOrigin, cfg.Scan.DetectDRM, cfg.Scan.DetectAntiCheat)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, runErr := p.Run(ctx, pipeline.Identity{Handle: userHandle, SteamID: steamID})

	// Partial results are flushed to every sink even on a fatal error
	if report != nil && len(report.Rows) > 0 || runErr == nil {
		renderOutputs(p, report, cfg)
	}

	if err := p.SaveCache(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if runErr != nil {
		return fmt.Errorf("scan failed: %w", runErr)
	}
	return nil
}

func renderOutputs(p *pipeline.Pipeline, report *model.Report, cfg *model.Config) {
	renderer := pipeline.NewRenderer()
	renderer.RenderTable(report, os.Stdout)

	if csvPath != "" {
		if err := renderer.RenderCSV(report, csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "Wrote CSV: %s\n", csvPath)
		}
	}

	renderer.RenderSummary(report)

	if cfg.LLM.Provider != "" {
		summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary unavailable: %v\n", err)
			return
		}
		summary, err := summarizer.GenerateSummary(context.Background(), report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
			return
		}
		if summary != "" {
			fmt.Println()
			fmt.Println("Advisory summary:")
			fmt.Println(summary)
		}
	}
}

// buildConfig merges flags, environment, and defaults into the runtime
// configuration, and rejects invalid detector names before any network
// access.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.HTTP.Timeout = httpTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.APIKey = apiKey
	if cfg.HTTP.APIKey == "" {
		cfg.HTTP.APIKey = os.Getenv("STEAM_API_KEY")
	}
	if cfg.HTTP.APIKey == "" {
		return nil, fmt.Errorf("a Steam Web API key is required (--api-key or STEAM_API_KEY)")
	}

	cfg.Cache.Enabled = !noCache
	cfg.Cache.Path = cacheFile

	cfg.Scan.RequestDelay = requestDelay
	cfg.Scan.OnlyFlagged = onlyFlagged
	cfg.Scan.ExtraOriginKeywords = extraKeywords
	cfg.Politeness.RespectRobots = respectRobots

	cfg.Scan.DetectOrigin = false
	cfg.Scan.DetectDRM = false
	cfg.Scan.DetectAntiCheat = false
	for _, d := range strings.Split(detectors, ",") {
		switch strings.TrimSpace(strings.ToLower(d)) {
		case "origin":
			cfg.Scan.DetectOrigin = true
		case "drm":
			cfg.Scan.DetectDRM = true
		case "anticheat", "anti-cheat":
			cfg.Scan.DetectAntiCheat = true
		case "":
		default:
			return nil, fmt.Errorf("unknown detector %q (supported: origin, drm, anticheat)", d)
		}
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	cfg.Output.Verbose = verbose
	cfg.Output.CSVPath = csvPath

	return cfg, nil
}
