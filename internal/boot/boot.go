// Package boot assembles the gallery's services at process start.
//
// Every binary needs some subset of: configuration, the catalog, the Gemini
// client, the video job runner, and the optional S3 archive. AWS config is
// loaded only when an SSM key parameter or an archive bucket is configured.
package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/archive"
	"github.com/fpang/prompt-gallery/internal/auth"
	"github.com/fpang/prompt-gallery/internal/catalog"
	"github.com/fpang/prompt-gallery/internal/config"
	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/fpang/prompt-gallery/internal/jobs"
	"github.com/fpang/prompt-gallery/internal/logging"
)

// App holds the assembled services. Gemini and Runner are nil when no API key
// could be resolved; Archive is nil when no bucket is configured.
type App struct {
	Config  *config.Config
	Catalog *catalog.Store
	Gemini  *gemini.Client
	Runner  *jobs.Runner
	Archive *archive.Archive
}

// AIAvailable reports whether generation requests can be served.
func (a *App) AIAvailable() bool {
	return a.Gemini.Available()
}

// awsLoader is swapped in tests.
var awsLoader = func(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

// New builds the App for the named binary and emits its startup log.
// A missing API key is not fatal: generation is disabled instead.
func New(ctx context.Context, name string, cfg *config.Config) (*App, error) {
	initStart := time.Now()
	startup := logging.NewStartupLogger(name)

	store, err := catalog.NewSeeded()
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Catalog: store}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		c, err := awsLoader(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		log.Debug().Str("region", c.Region).Msg("AWS config loaded")
		awsCfg = &c
		return c, nil
	}

	key := cfg.GeminiAPIKey
	if key == "" {
		key, _ = auth.GetAPIKey()
	}
	if key == "" && cfg.SSMAPIKeyParam != "" {
		c, awsErr := loadAWS()
		if awsErr != nil {
			return nil, awsErr
		}
		key, err = auth.LoadKeyFromSSM(ctx, ssm.NewFromConfig(c), cfg.SSMAPIKeyParam)
		if err != nil {
			return nil, err
		}
		startup.Resource("ssm_api_key", cfg.SSMAPIKeyParam)
	}

	if key != "" {
		client, err := gemini.NewClient(ctx, key, cfg.GeminiOptions()...)
		if err != nil {
			return nil, err
		}
		app.Gemini = client
		narrator := &jobs.Narrator{Messages: jobs.ProgressMessages, Interval: cfg.ProgressInterval}
		app.Runner = jobs.NewRunner(client, narrator,
			jobs.WithInterval(cfg.PollInterval),
			jobs.WithTimeout(cfg.PollTimeout),
			jobs.WithMaxAttempts(cfg.PollMaxAttempts),
		)
	} else {
		log.Warn().Msg("Gemini API key not configured, AI features disabled")
	}

	if cfg.ArchiveBucket != "" {
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		app.Archive = archive.NewFromS3(s3.NewFromConfig(c), cfg.ArchiveBucket, cfg.ArchiveURLTTL)
		startup.Resource("archive_bucket", cfg.ArchiveBucket)
	}

	stats := store.Stats()
	startup.
		Feature("ai", app.AIAvailable()).
		Feature("archive", app.Archive.Enabled()).
		Config("port", cfg.Port).
		Config("poll_interval", cfg.PollInterval.String()).
		Config("poll_timeout", cfg.PollTimeout.String()).
		Config("seed_prompts", fmt.Sprint(stats.Prompts)).
		InitDuration(time.Since(initStart)).
		Log()
	return app, nil
}
