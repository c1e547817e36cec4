// Command cloudmux is the entrypoint for the CloudMux cloud transcoder CLI.
// It parses config from .env, environment, and flags, and either runs the
// system check (--check) or the upload/submit/monitor/download pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"github.com/backmassage/cloudmux/internal/check"
	"github.com/backmassage/cloudmux/internal/config"
	"github.com/backmassage/cloudmux/internal/display"
	"github.com/backmassage/cloudmux/internal/logging"
	"github.com/backmassage/cloudmux/internal/mediaconvert"
	"github.com/backmassage/cloudmux/internal/pipeline"
	"github.com/backmassage/cloudmux/internal/probe"
	"github.com/backmassage/cloudmux/internal/storage"
)

// version is set at build time via -ldflags (e.g. Makefile).
var version = "1.0.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "cloudmux: loading .env: %v\n", err)
		return 1
	}

	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cloudmux: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cloudmux: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "cloudmux: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cloudmux: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(log.ColorsEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := loadAWSConfig(ctx, &cfg)
	if err != nil {
		log.Error("AWS configuration: %v", err)
		return 1
	}

	if cfg.CheckOnly {
		check.RunCheck(ctx, &cfg, awsCfg, log)
		return 0
	}

	log.Info("=== CloudMux v%s ===", version)
	log.Info("In:  %s", cfg.InputPath)
	log.Info("Out: %s", cfg.Destination())
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	log.Info("")

	if err := check.CheckDeps(ctx, awsCfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	deps := pipeline.Deps{
		Probe: probe.Probe,
		Store: storage.NewS3(awsCfg, cfg.Bucket),
		Jobs:  mediaconvert.New(awsCfg, cfg.Endpoint),
	}

	stats, err := pipeline.Run(ctx, &cfg, log, deps)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("")
	log.Success("Done in %ds", int(stats.Elapsed.Seconds()))
	return 0
}

// loadAWSConfig resolves the SDK config, letting an explicit region override
// whatever the default chain finds.
func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
