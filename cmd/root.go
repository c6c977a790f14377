package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"

	"github.com/kvistgaard/pubsubctl/config"
	"github.com/kvistgaard/pubsubctl/pubsub"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *pubsub.Client

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pubsubctl",
	Short: "Manage Google Cloud Pub/Sub topics and subscriptions over the REST API",
	Long: `pubsubctl is a CLI tool for Google Cloud Pub/Sub built on the JSON REST API.
It lists topics and subscriptions, creates, inspects and deletes topics,
and publishes messages. Point it at a local emulator by setting the
PUBSUB_EMULATOR_HOST environment variable.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build metadata injected from main.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the Pub/Sub client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// The emulator host is read from the environment exactly once, here,
	// and injected into the client.
	emulatorHost := os.Getenv(pubsub.EmulatorHostEnv)
	if emulatorHost != "" {
		logger.Debug().Str("host", emulatorHost).Msg("Using Pub/Sub emulator")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	httpClient, err := newHTTPClient(ctx, emulatorHost)
	if err != nil {
		return fmt.Errorf("failed to set up credentials: %w", err)
	}

	client = pubsub.NewClient(logger,
		pubsub.WithBaseURL(cfg.API.BaseURL),
		pubsub.WithEmulatorHost(emulatorHost),
		pubsub.WithAPIVersion(cfg.API.Version),
		pubsub.WithHTTPClient(httpClient),
		pubsub.WithUserAgent("pubsubctl/"+appVersion),
	)

	return nil
}

// newHTTPClient builds the HTTP client that carries credentials. An
// emulator never sees real tokens, so emulator mode and auth.disabled
// both fall back to a plain client.
func newHTTPClient(ctx context.Context, emulatorHost string) (*http.Client, error) {
	if emulatorHost != "" || cfg.Auth.Disabled {
		return &http.Client{Timeout: 30 * time.Second}, nil
	}

	scopes := []string{pubsub.ScopePubSub, pubsub.ScopeCloudPlatform}

	if cfg.Auth.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.Auth.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		return oauth2.NewClient(ctx, creds.TokenSource), nil
	}

	httpClient, err := google.DefaultClient(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to load application default credentials: %w", err)
	}
	return httpClient, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; only colorize a real terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Pub/Sub",
	Long:  `Test the connection to the Pub/Sub API and display basic project statistics.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to Pub/Sub at %s...\n", client.BaseURL())

	ctx := context.Background()
	var topicCount, subCount int

	// Probe both listings concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		topics, _, err := client.ListTopics(gctx, cfg.Project, pubsub.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list topics: %w", err)
		}
		topicCount = len(topics)
		return nil
	})
	g.Go(func() error {
		subs, _, err := client.ListSubscriptions(gctx, cfg.Project, pubsub.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list subscriptions: %w", err)
		}
		subCount = len(subs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nProject %s (first page):\n", cfg.Project)
	fmt.Printf("- Topics: %d\n", topicCount)
	fmt.Printf("- Subscriptions: %d\n", subCount)

	return nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or client needed for version
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pubsubctl %s (built %s)\n", appVersion, appBuildTime)
	},
}
