package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into AWS, storage, planning, monitoring, behavior, and
// display. Negated flags (e.g. --no-download) are applied after Parse so
// Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (os.Args[1:] in main) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional arg).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("cloudmux", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Negated/exit flags: captured here and applied after Parse so that
	// defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineAWSFlags(fs, cfg)
	defineStorageFlags(fs, cfg)
	definePlanningFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "cloudmux v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noDownload  bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineAWSFlags registers --region, --role, --queue, --endpoint.
func defineAWSFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Region, "region", cfg.Region, "AWS region")
	fs.StringVar(&cfg.RoleArn, "role", cfg.RoleArn, "IAM role ARN MediaConvert assumes")
	fs.StringVar(&cfg.Queue, "queue", cfg.Queue, "MediaConvert queue ARN (default queue if empty)")
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Account-specific MediaConvert endpoint")
}

// defineStorageFlags registers --bucket, --input-prefix, --destination, --watermark.
func defineStorageFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "S3 bucket for uploads and outputs")
	fs.StringVar(&cfg.InputPrefix, "input-prefix", cfg.InputPrefix, "S3 key prefix for uploaded sources")
	fs.StringVar(&cfg.DestinationPrefix, "destination", cfg.DestinationPrefix, "s3:// prefix for outputs")
	fs.StringVar(&cfg.WatermarkURI, "watermark", cfg.WatermarkURI, "s3:// URI of the watermark image")
}

// definePlanningFlags registers --max-long-edge, --max-bitrate, --opacity.
func definePlanningFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.MaxLongEdge, "max-long-edge", cfg.MaxLongEdge, "Longest output edge in pixels")
	fs.Int64Var(&cfg.MaxBitrateBps, "max-bitrate", cfg.MaxBitrateBps, "Output bitrate ceiling in bits/sec")
	fs.IntVar(&cfg.OverlayOpacity, "opacity", cfg.OverlayOpacity, "Watermark opacity percent (0-100)")
}

// defineBehaviorFlags registers dry-run, download, poll interval, out dir.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Plan only; do not upload or submit")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.noDownload, "no-download", false, "Leave the finished artifact in S3")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Local directory for the downloaded artifact")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Job status poll interval")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run environment diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noDownload {
		cfg.Download = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputPath from the single positional arg when not
// in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input file")
	}
	cfg.InputPath = args[0]
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Cloudmux v" + version + " - MediaConvert transcode planner and supervisor"},
		{"", ""},
		{"  cloudmux [OPTIONS] <input_file>", ""},
		{"", ""},
		{"AWS", ""},
		{"  --region <name>", "AWS region"},
		{"  --role <arn>", "IAM role ARN MediaConvert assumes"},
		{"  --queue <arn>", "MediaConvert queue (default: account default)"},
		{"  --endpoint <url>", "Account-specific MediaConvert endpoint"},
		{"", ""},
		{"Storage", ""},
		{"  --bucket <name>", "S3 bucket for uploads and outputs"},
		{"  --input-prefix <key>", "Key prefix for uploaded sources (default: inputs)"},
		{"  --destination <s3-uri>", "Output prefix (default: s3://<bucket>/outputs)"},
		{"  --watermark <s3-uri>", "Watermark image for the overlay plan"},
		{"", ""},
		{"Planning", ""},
		{"  --max-long-edge <px>", "Longest output edge (default: 1920)"},
		{"  --max-bitrate <bps>", "Bitrate ceiling (default: 8000000)"},
		{"  --opacity <0-100>", "Watermark opacity (default: 70)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Plan only; do not upload or submit"},
		{"  --no-download", "Leave the finished artifact in S3"},
		{"  --out <dir>", "Where to put the downloaded artifact (default: .)"},
		{"  --poll-interval <dur>", "Status poll interval (default: 5s)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Environment diagnostics (ffprobe, AWS credentials)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Environment", ""},
		{"  CLOUDMUX_REGION, CLOUDMUX_ROLE_ARN, CLOUDMUX_QUEUE, CLOUDMUX_ENDPOINT,", ""},
		{"  CLOUDMUX_BUCKET, CLOUDMUX_INPUT_PREFIX, CLOUDMUX_DESTINATION,", ""},
		{"  CLOUDMUX_WATERMARK, CLOUDMUX_MAX_BITRATE, CLOUDMUX_MAX_LONG_EDGE,", ""},
		{"  CLOUDMUX_OVERLAY_OPACITY, CLOUDMUX_POLL_INTERVAL", ""},
		{"  A .env file in the working directory is loaded first.", ""},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
