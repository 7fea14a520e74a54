package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tanq16/bingwall/internal/downloaders/bing"
	bingwallhttp "github.com/tanq16/bingwall/internal/downloaders/http"
	"github.com/tanq16/bingwall/internal/output"
	"github.com/tanq16/bingwall/internal/scheduler"
	"github.com/tanq16/bingwall/internal/storage"
	"github.com/tanq16/bingwall/internal/utils"
)

var (
	outDir        string
	days          int
	workers       int
	timeout       time.Duration
	kaTimeout     time.Duration
	userAgent     string
	proxyURL      string
	proxyUsername string
	proxyPassword string
	headers       []string
	s3Mirror      string
	s3Profile     string
	configFile    string
	baseURL       string
	debug         bool
)

var BingwallVersion = "dev"

var rootCmd = &cobra.Command{
	Use:           "bingwall --out DIR [--days N]",
	Short:         "Download the Bing image of the day archive into a directory",
	Version:       BingwallVersion,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd.Flags())
		if err != nil {
			return err
		}
		utils.InitLogger(cfg.Debug)
		return run(cmd.Context(), cfg)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		output.PrintError(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory the images are written to (must exist)")
	rootCmd.Flags().IntVarP(&days, "days", "d", 1, "Number of days of images to fetch")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel downloads (0 uses the CPU count)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Request timeout, 0 waits indefinitely (eg. 30s, 2m)")
	rootCmd.Flags().DurationVarP(&kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for idle connections")
	rootCmd.Flags().StringVarP(&userAgent, "user-agent", "a", utils.ToolUserAgent, "User agent ('randomize' picks a browser agent)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (e.g., proxy.example.com:8080)")
	rootCmd.Flags().StringVar(&proxyUsername, "proxy-username", "", "Proxy username (if not provided in proxy URL)")
	rootCmd.Flags().StringVar(&proxyPassword, "proxy-password", "", "Proxy password (if not provided in proxy URL)")
	rootCmd.Flags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom headers (like 'Accept-Language: en-US'); can be specified multiple times")
	rootCmd.Flags().StringVar(&s3Mirror, "s3-mirror", "", "Also upload images to s3://bucket/prefix; images missing from the mirror are fetched again")
	rootCmd.Flags().StringVar(&s3Profile, "s3-profile", utils.DefaultS3Profile, "AWS shared config profile for --s3-mirror")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML file with default option values")
	rootCmd.Flags().StringVar(&baseURL, "base-url", utils.DefaultBaseURL, "Image archive host")
	if err := rootCmd.Flags().MarkHidden("base-url"); err != nil {
		panic(err)
	}

	// flags without shorthand
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// buildConfig merges the optional config file under the flags; a flag set on
// the command line always wins.
func buildConfig(flags *pflag.FlagSet) (utils.Config, error) {
	httpCfg := utils.HTTPClientConfig{
		Timeout:       timeout,
		KATimeout:     kaTimeout,
		ProxyURL:      proxyURL,
		ProxyUsername: proxyUsername,
		ProxyPassword: proxyPassword,
		UserAgent:     userAgent,
		Headers:       utils.ParseHeaderArgs(headers),
	}
	cfg := utils.Config{
		OutputDir: outDir,
		Days:      days,
		Workers:   workers,
		BaseURL:   baseURL,
		S3Mirror:  s3Mirror,
		S3Profile: s3Profile,
		Debug:     debug,
	}

	if configFile != "" {
		fc, err := utils.ReadConfigFile(configFile)
		if err != nil {
			return cfg, err
		}
		applyFileConfig(flags, fc, &cfg, &httpCfg)
	}

	if cfg.OutputDir == "" {
		return cfg, errors.New("required flag \"out\" not set")
	}
	if cfg.Days < 1 {
		return cfg, fmt.Errorf("days must be at least 1, got %d", cfg.Days)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	absOut, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return cfg, fmt.Errorf("%w: error resolving output directory: %v", utils.ErrFilesystem, err)
	}
	cfg.OutputDir = absOut

	if httpCfg.UserAgent == "randomize" {
		httpCfg.UserAgent = utils.GetRandomUserAgent()
	}
	utils.SplitProxyAuth(&httpCfg)
	cfg.HTTPClientConfig = httpCfg
	return cfg, nil
}

func applyFileConfig(flags *pflag.FlagSet, fc *utils.FileConfig, cfg *utils.Config, httpCfg *utils.HTTPClientConfig) {
	unset := func(name string) bool { return !flags.Changed(name) }
	if fc.Out != "" && unset("out") {
		cfg.OutputDir = fc.Out
	}
	if fc.Days != 0 && unset("days") {
		cfg.Days = fc.Days
	}
	if fc.Workers != 0 && unset("workers") {
		cfg.Workers = fc.Workers
	}
	if fc.S3Mirror != "" && unset("s3-mirror") {
		cfg.S3Mirror = fc.S3Mirror
	}
	if fc.S3Profile != "" && unset("s3-profile") {
		cfg.S3Profile = fc.S3Profile
	}
	if fc.Debug && unset("debug") {
		cfg.Debug = true
	}
	// durations were validated when the file was read
	if d, _ := fc.TimeoutDuration(); d != 0 && unset("timeout") {
		httpCfg.Timeout = d
	}
	if d, _ := fc.KeepAliveDuration(); d != 0 && unset("keep-alive-timeout") {
		httpCfg.KATimeout = d
	}
	if fc.UserAgent != "" && unset("user-agent") {
		httpCfg.UserAgent = fc.UserAgent
	}
	if fc.Proxy != "" && unset("proxy") {
		httpCfg.ProxyURL = fc.Proxy
	}
	if fc.ProxyUsername != "" && unset("proxy-username") {
		httpCfg.ProxyUsername = fc.ProxyUsername
	}
	if fc.ProxyPassword != "" && unset("proxy-password") {
		httpCfg.ProxyPassword = fc.ProxyPassword
	}
	for k, v := range fc.Headers {
		k = http.CanonicalHeaderKey(k)
		if _, ok := httpCfg.Headers[k]; !ok {
			httpCfg.Headers[k] = v
		}
	}
}

func run(ctx context.Context, cfg utils.Config) error {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	client := utils.NewHTTPClient(cfg.HTTPClientConfig)
	fetcher := bing.NewFetcher(client, cfg.BaseURL)

	log.Debug().Str("op", "cmd/root").Str("out", cfg.OutputDir).Int("days", cfg.Days).Msg("Starting run")
	descriptors, err := fetcher.FetchDescriptors(ctx, cfg.Days)
	if err != nil {
		return err
	}
	missing, err := scheduler.FilterMissing(ctx, descriptors, store)
	if err != nil {
		return err
	}
	if skipped := len(descriptors) - len(missing); skipped > 0 {
		output.PrintDetail(fmt.Sprintf("%d of %d images already present", skipped, len(descriptors)))
	}

	downloader := scheduler.NewDownloader(func(ctx context.Context, url string) ([]byte, error) {
		return bingwallhttp.Fetch(ctx, client, url)
	}, store, cfg.Workers)
	log.Debug().Str("op", "cmd/root").Int("workers", downloader.Workers()).Int("queued", len(missing)).Msg("Downloading")
	summary, err := downloader.DownloadAll(ctx, missing)
	if err != nil {
		return err
	}
	if summary.Downloaded > 0 {
		output.PrintSuccess(fmt.Sprintf("Downloaded %d images (%s) to %s", summary.Downloaded, output.FormatBytes(uint64(summary.Bytes)), cfg.OutputDir))
	} else {
		output.PrintInfo("Nothing new to download")
	}
	fmt.Println(output.CompletionLine(time.Now()))
	return nil
}

func buildStore(ctx context.Context, cfg utils.Config) (storage.Store, error) {
	local := storage.NewLocal(cfg.OutputDir)
	if cfg.S3Mirror == "" {
		return local, nil
	}
	bucket, prefix, err := storage.ParseS3URI(cfg.S3Mirror)
	if err != nil {
		return nil, err
	}
	mirror, err := storage.NewS3FromProfile(ctx, cfg.S3Profile, bucket, prefix)
	if err != nil {
		return nil, err
	}
	return storage.Tee(local, mirror), nil
}
