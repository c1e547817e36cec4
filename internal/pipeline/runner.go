package pipeline

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	awsmc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"

	"github.com/backmassage/cloudmux/internal/config"
	"github.com/backmassage/cloudmux/internal/display"
	"github.com/backmassage/cloudmux/internal/logging"
	"github.com/backmassage/cloudmux/internal/mediaconvert"
	"github.com/backmassage/cloudmux/internal/monitor"
	"github.com/backmassage/cloudmux/internal/naming"
	"github.com/backmassage/cloudmux/internal/planner"
	"github.com/backmassage/cloudmux/internal/probe"
	"github.com/backmassage/cloudmux/internal/storage"
)

const minFileSize = 1000

// BlobStore moves files between the local disk and the service's bucket.
type BlobStore interface {
	Upload(ctx context.Context, localPath, key string) (uri string, size int64, err error)
	Download(ctx context.Context, uri, localPath string) (int64, error)
}

// JobService submits transcode jobs and answers the monitor's polls.
type JobService interface {
	Submit(ctx context.Context, in *awsmc.CreateJobInput) (string, error)
	monitor.Service
}

// Deps are the pipeline's injectable external edges.
type Deps struct {
	Probe func(ctx context.Context, path string) (*probe.SourceProbe, error)
	Store BlobStore
	Jobs  JobService
	Clock monitor.Clock // nil means the wall clock
}

// Run processes one source file end to end and returns what it moved.
// A nil error means the job completed; the download step may still have
// been skipped (see stats.Downloaded).
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps) (*RunStats, error) {
	stats := &RunStats{}
	clock := deps.Clock
	if clock == nil {
		clock = monitor.RealClock()
	}
	start := clock.Now()
	defer func() { stats.Elapsed = clock.Now().Sub(start) }()

	// --- Validate ---
	fi, err := os.Stat(cfg.InputPath)
	if err != nil {
		return stats, fmt.Errorf("input file: %w", err)
	}
	if fi.Size() < minFileSize {
		return stats, fmt.Errorf("input file too small (possibly corrupt): %s", cfg.InputPath)
	}
	stats.InputBytes = fi.Size()

	// --- Probe ---
	pr, err := deps.Probe(ctx, cfg.InputPath)
	if err != nil {
		log.Warn("Probe failed (%v), using defaults", err)
		pr = probe.Defaults()
	}
	if pr.Width < 2 || pr.Height < 2 {
		return stats, fmt.Errorf("source dimensions too small to plan: %dx%d", pr.Width, pr.Height)
	}
	logSourceStats(log, cfg, fi.Size(), pr)

	// --- Upload ---
	submittedAt := clock.Now()
	key := naming.InputKey(cfg.InputPrefix, cfg.InputPath, naming.NameModifier(submittedAt))
	inputURI := "s3://" + cfg.Bucket + "/" + key
	if cfg.DryRun {
		log.Info("[DRY] Would upload %s -> %s", filepath.Base(cfg.InputPath), inputURI)
	} else {
		uri, n, err := deps.Store.Upload(ctx, cfg.InputPath, key)
		if err != nil {
			return stats, fmt.Errorf("upload: %w", err)
		}
		inputURI = uri
		stats.UploadedBytes = n
		log.Success("Uploaded %s (%s)", inputURI, display.FormatBytes(n))
	}

	// --- Plan ---
	plan := planner.BuildJobPlan(inputURI, pr, cfg, submittedAt)
	logPlan(log, plan)

	if cfg.DryRun {
		log.Success("[DRY] Would submit job to %s", plan.DestinationPrefix)
		return stats, nil
	}

	// --- Submit ---
	jobID, err := deps.Jobs.Submit(ctx, mediaconvert.BuildCreateJob(plan, cfg))
	if err != nil {
		return stats, err
	}
	stats.JobID = jobID
	stats.Submitted = true
	log.Success("Submitted job %s", jobID)

	// --- Monitor ---
	res, err := watchJob(ctx, cfg, log, deps.Jobs, clock, jobID)
	if err != nil {
		return stats, err
	}

	if !res.Resolved {
		log.Warn("Job complete, but the output location could not be determined; skipping download")
		return stats, nil
	}
	stats.OutputURI = res.OutputURI
	log.Success("Output ready: %s", res.OutputURI)

	// --- Download ---
	if !cfg.Download {
		return stats, nil
	}
	localPath := localOutputPath(cfg.OutDir, res.OutputURI)
	n, err := deps.Store.Download(ctx, res.OutputURI, localPath)
	if err != nil {
		return stats, fmt.Errorf("download: %w", err)
	}
	stats.DownloadedBytes = n
	stats.Downloaded = true
	log.Success("Downloaded %s (%s)", localPath, display.FormatBytes(n))
	logSizeDelta(log, stats)

	return stats, nil
}

// watchJob runs the monitor with its hooks wired to the logger.
func watchJob(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	svc monitor.Service,
	clock monitor.Clock,
	jobID string,
) (*monitor.Result, error) {
	mon := &monitor.Monitor{
		Service:         svc,
		Interval:        cfg.PollInterval,
		MaxPollFailures: cfg.MaxPollFailures,
		Clock:           clock,
		OnTransition: func(from, to monitor.Status, st *monitor.JobState) {
			log.Info("Job %s: %s -> %s", jobID, from, to)
		},
		OnProgress: func(st *monitor.JobState, elapsed time.Duration) {
			if st.Percent >= 0 {
				log.Info("Job %s: %s %d%% (%ds elapsed)", jobID, st.Phase, st.Percent, int(elapsed.Seconds()))
			} else {
				log.Info("Job %s: %s (%ds elapsed)", jobID, st.Phase, int(elapsed.Seconds()))
			}
		},
		OnPollError: func(err error, attempt int) {
			log.Warn("Poll attempt %d failed: %v", attempt, err)
		},
	}
	return mon.Run(ctx, jobID)
}

// localOutputPath places the artifact in outDir under its S3 object name.
func localOutputPath(outDir, uri string) string {
	name := ""
	if _, key, err := storage.ParseURI(uri); err == nil {
		name = path.Base(key)
	}
	if name == "" || name == "." || name == "/" {
		name = "output.mp4"
	}
	return filepath.Join(outDir, name)
}

// --- Logging helpers ---

func logSourceStats(log *logging.Logger, cfg *config.Config, size int64, pr *probe.SourceProbe) {
	suffix := ""
	if pr.FromDefaults {
		suffix = " [assumed]"
	}
	log.Info("Source: %s | %s | %s | %s%s",
		display.FormatGeometry(pr.Width, pr.Height),
		display.FormatBitrate(pr.BitrateBps),
		display.FormatDurationMs(pr.DurationMs),
		display.FormatBytes(size),
		suffix)
	log.Debug(cfg.Verbose, "  color space: %s, rotation: %d", pr.ColorSpace, pr.RotationDegrees)
}

func logPlan(log *logging.Logger, plan *planner.JobPlan) {
	log.Info("Plan: %s @ %s",
		display.FormatGeometry(plan.Geometry.Width, plan.Geometry.Height),
		display.FormatBitrate(plan.BitrateBps))
	if len(plan.Overlays) > 0 && !plan.Overlays[0].Timed {
		log.Info("Overlay: static (%d placements)", len(plan.Overlays))
	} else {
		log.Info("Overlay: %d timed placements", len(plan.Overlays))
	}
}

func logSizeDelta(log *logging.Logger, stats *RunStats) {
	delta := stats.SizeDelta()
	if delta <= 0 {
		log.Info("Size change: %s", display.FormatBytesWithSign(delta))
	} else {
		log.Warn("Size change: %s (output is larger)", display.FormatBytesWithSign(delta))
	}
}
