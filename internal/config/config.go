// Package config holds runtime configuration: defaults, environment loading,
// CLI flag parsing, and validation. Settings come from three layers with
// increasing precedence: built-in defaults, CLOUDMUX_* environment variables
// (optionally seeded from a .env file), and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// layered with [LoadEnv], and then mutated by [ParseFlags] before being
// passed (by pointer) to packages that need it. Fields are grouped by
// concern with inline documentation of defaults and fixed values.
type Config struct {
	// Source (set from the positional arg).
	InputPath string

	// AWS account plumbing.
	Region   string // Default: resolved by the SDK credential chain.
	RoleArn  string // IAM role MediaConvert assumes. Required for submission.
	Queue    string // Optional queue ARN; empty uses the account default queue.
	Endpoint string // Optional account-specific MediaConvert endpoint.

	// Storage layout.
	Bucket            string // S3 bucket for uploads and (by default) outputs. Required.
	InputPrefix       string // Key prefix for uploaded sources. Default: "inputs".
	DestinationPrefix string // s3:// prefix for outputs. Default: s3://<bucket>/outputs.
	WatermarkURI      string // s3:// URI of the overlay PNG. Required for submission.

	// Planning.
	MaxLongEdge     int   // Default: 1920. Longest output edge.
	MaxBitrateBps   int64 // Default: 8_000_000. Output bitrate ceiling.
	OverlayOpacity  int   // Default: 70. Watermark opacity percent.
	OverlayCornerMs int64 // Default: 5000. Per-corner hold in looping mode.

	// Monitoring.
	PollInterval    time.Duration // Default: 5s.
	MaxPollFailures int           // Default: 10 consecutive transient poll errors.

	// Behavior flags.
	DryRun   bool // Plan and log the submission without calling the service.
	Download bool // Default: true. Fetch the finished artifact locally.
	OutDir   string // Local directory for the downloaded artifact. Default: ".".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadEnv] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		InputPrefix:     "inputs",
		MaxLongEdge:     1920,
		MaxBitrateBps:   8_000_000,
		OverlayOpacity:  70,
		OverlayCornerMs: 5000,
		PollInterval:    5 * time.Second,
		MaxPollFailures: 10,
		Download:        true,
		OutDir:          ".",
		ColorMode:       ColorAuto,
	}
}

// LoadEnv applies CLOUDMUX_* environment variables over cfg. The caller is
// expected to have loaded any .env file first (godotenv in main). Unset
// variables leave the existing value untouched; malformed numeric values
// are reported rather than silently ignored.
func LoadEnv(cfg *Config) error {
	setString(&cfg.Region, "CLOUDMUX_REGION")
	setString(&cfg.RoleArn, "CLOUDMUX_ROLE_ARN")
	setString(&cfg.Queue, "CLOUDMUX_QUEUE")
	setString(&cfg.Endpoint, "CLOUDMUX_ENDPOINT")
	setString(&cfg.Bucket, "CLOUDMUX_BUCKET")
	setString(&cfg.InputPrefix, "CLOUDMUX_INPUT_PREFIX")
	setString(&cfg.DestinationPrefix, "CLOUDMUX_DESTINATION")
	setString(&cfg.WatermarkURI, "CLOUDMUX_WATERMARK")

	if err := setInt64(&cfg.MaxBitrateBps, "CLOUDMUX_MAX_BITRATE"); err != nil {
		return err
	}
	if err := setInt(&cfg.MaxLongEdge, "CLOUDMUX_MAX_LONG_EDGE"); err != nil {
		return err
	}
	if err := setInt(&cfg.OverlayOpacity, "CLOUDMUX_OVERLAY_OPACITY"); err != nil {
		return err
	}
	if v := os.Getenv("CLOUDMUX_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CLOUDMUX_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s must be a whole number (got %q)", key, v)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fmt.Errorf("%s must be a whole number (got %q)", key, v)
	}
	*dst = n
	return nil
}

// NormalizePrefix strips trailing slashes from a key or URI prefix so paths
// can be joined with a single "/" later.
func NormalizePrefix(p string) string {
	return strings.TrimRight(p, "/")
}

// Destination returns the resolved s3:// output prefix, without a trailing
// slash: DestinationPrefix when set, otherwise s3://<bucket>/outputs.
func (c *Config) Destination() string {
	if c.DestinationPrefix != "" {
		return NormalizePrefix(c.DestinationPrefix)
	}
	return "s3://" + c.Bucket + "/outputs"
}

// Validate checks enum fields and value ranges, and (when not in CheckOnly
// mode) requires everything a submission needs: input path, bucket, role,
// and watermark image.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MaxLongEdge < 2 {
		return fmt.Errorf("max long edge must be at least 2 (got %d)", c.MaxLongEdge)
	}
	if c.MaxBitrateBps <= 0 {
		return fmt.Errorf("max bitrate must be positive (got %d)", c.MaxBitrateBps)
	}
	if c.OverlayOpacity < 0 || c.OverlayOpacity > 100 {
		return fmt.Errorf("overlay opacity must be 0-100 (got %d)", c.OverlayOpacity)
	}
	if c.OverlayCornerMs <= 0 {
		return fmt.Errorf("overlay corner hold must be positive (got %d ms)", c.OverlayCornerMs)
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}

	c.InputPrefix = NormalizePrefix(c.InputPrefix)
	c.DestinationPrefix = NormalizePrefix(c.DestinationPrefix)

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" {
		return errors.New("need exactly one input file")
	}
	if c.Bucket == "" {
		return errors.New("S3 bucket not set (--bucket or CLOUDMUX_BUCKET)")
	}
	if c.RoleArn == "" {
		return errors.New("MediaConvert role not set (--role or CLOUDMUX_ROLE_ARN)")
	}
	if c.WatermarkURI == "" {
		return errors.New("watermark image not set (--watermark or CLOUDMUX_WATERMARK)")
	}
	if !strings.HasPrefix(c.WatermarkURI, "s3://") {
		return fmt.Errorf("watermark must be an s3:// URI (got %q)", c.WatermarkURI)
	}
	return nil
}
