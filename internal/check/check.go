// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffprobe and AWS credentials.
package check

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/backmassage/cloudmux/internal/config"
)

// Sentinel errors returned by CheckDeps when a required dependency is missing.
var (
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrNoCredentials   = errors.New("no AWS credentials resolvable from the environment")
)

const credentialTimeout = 10 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffprobe,
// AWS credentials, and the transcode settings the pipeline needs. This is
// informational only and does not stop on failure.
func RunCheck(ctx context.Context, cfg *config.Config, awsCfg aws.Config, log Logger) {
	log.Info("=== System Check ===")

	checkFfprobe(log)
	checkCredentials(ctx, awsCfg, log)
	checkSettings(cfg, log)
}

// checkFfprobe verifies ffprobe is on PATH and logs its version string.
func checkFfprobe(log Logger) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Error("ffprobe not found")
		return
	}
	out, err := exec.Command("ffprobe", "-version").Output()
	if err != nil {
		log.Warn("ffprobe found but -version failed: %v", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffprobe: %s", firstLine)
}

// checkCredentials resolves the default credential chain and reports the
// provider that answered.
func checkCredentials(ctx context.Context, awsCfg aws.Config, log Logger) {
	creds, err := retrieveCredentials(ctx, awsCfg)
	if err != nil {
		log.Error("AWS credentials: %v", err)
		return
	}
	log.Success("AWS credentials: resolved via %s", creds.Source)
	if awsCfg.Region != "" {
		log.Info("AWS region: %s", awsCfg.Region)
	} else {
		log.Warn("AWS region not set")
	}
}

// checkSettings reports whether the settings the pipeline requires are
// present, without failing on gaps the way Validate does.
func checkSettings(cfg *config.Config, log Logger) {
	report := func(name, value string) {
		if value == "" {
			log.Warn("%s not set", name)
			return
		}
		log.Success("%s: %s", name, value)
	}
	report("bucket", cfg.Bucket)
	report("role ARN", cfg.RoleArn)
	report("watermark", cfg.WatermarkURI)
	log.Info("destination: %s", cfg.Destination())
}

// CheckDeps is the pre-pipeline validation: ffprobe must be on PATH and the
// AWS credential chain must yield usable credentials. Returns a sentinel
// error on failure.
func CheckDeps(ctx context.Context, awsCfg aws.Config) error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if _, err := retrieveCredentials(ctx, awsCfg); err != nil {
		return ErrNoCredentials
	}
	return nil
}

func retrieveCredentials(ctx context.Context, awsCfg aws.Config) (aws.Credentials, error) {
	if awsCfg.Credentials == nil {
		return aws.Credentials{}, errors.New("no credential provider configured")
	}
	ctx, cancel := context.WithTimeout(ctx, credentialTimeout)
	defer cancel()
	return awsCfg.Credentials.Retrieve(ctx)
}
