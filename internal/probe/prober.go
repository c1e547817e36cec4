// Package probe measures a source file with a single ffprobe JSON call and
// reduces the output to the handful of properties the planners need. Probe
// failure is recoverable: callers substitute Defaults() and carry on.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when the file parses but contains no usable
// video stream. Callers treat it like any other probe failure.
var ErrNoVideoStream = errors.New("no video stream found")

// Probe runs ffprobe against path and returns the parsed, rotation-normalized
// result.
func Probe(ctx context.Context, path string) (*SourceProbe, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a SourceProbe.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*SourceProbe, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecType    string            `json:"codec_type"`
	PixFmt       string            `json:"pix_fmt"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	BitRate      string            `json:"bit_rate"`
	Duration     string            `json:"duration"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
	SideDataList []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	SideDataType string  `json:"side_data_type"`
	Rotation     float64 `json:"rotation"`
}

// --- Conversion from wire types to the domain type ---

func buildResult(raw *ffprobeOutput) (*SourceProbe, error) {
	var v *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" || s.Disposition["attached_pic"] == 1 {
			continue
		}
		v = s
		break
	}
	if v == nil || v.Width <= 0 || v.Height <= 0 {
		return nil, ErrNoVideoStream
	}

	p := &SourceProbe{
		Width:           v.Width,
		Height:          v.Height,
		BitrateBps:      videoBitrate(v, &raw.Format),
		DurationMs:      durationMs(v, &raw.Format),
		RotationDegrees: rotation(v),
		ColorSpace:      v.PixFmt,
	}
	if p.ColorSpace == "" {
		p.ColorSpace = DefaultColorSpace
	}

	// A quarter-turn rotation swaps the stored dimensions; downstream
	// planning always works on the upright frame.
	if p.Rotated() {
		p.Width, p.Height = p.Height, p.Width
	}
	return p, nil
}

// videoBitrate prefers the stream-level bitrate and falls back to the
// container-level value when the stream doesn't report one (common for MKV).
func videoBitrate(v *ffprobeStream, f *ffprobeFormat) int64 {
	if n := parseInt64(v.BitRate); n > 0 {
		return n
	}
	return parseInt64(f.BitRate)
}

// durationMs converts ffprobe's fractional-seconds duration to integer
// milliseconds, preferring the stream value over the container value.
func durationMs(v *ffprobeStream, f *ffprobeFormat) int64 {
	sec := parseFloat(v.Duration)
	if sec <= 0 {
		sec = parseFloat(f.Duration)
	}
	if sec <= 0 {
		return 0
	}
	return int64(math.Round(sec * 1000))
}

// rotation reads the display rotation from the stream's side data, falling
// back to the legacy tags.rotate field, normalized into (-360, 360).
func rotation(v *ffprobeStream) int {
	for _, sd := range v.SideDataList {
		if strings.EqualFold(sd.SideDataType, "Display Matrix") {
			return int(sd.Rotation) % 360
		}
	}
	if r, ok := v.Tags["rotate"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(r))
		if err == nil {
			return n % 360
		}
	}
	return 0
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
