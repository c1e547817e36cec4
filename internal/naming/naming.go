// Package naming builds the remote object names a job uses: the uploaded
// input key, the time-derived output name modifier, and, after the job
// completes, the output artifact URI reconstructed from the settings the
// remote service echoes back.
package naming

import (
	"path"
	"strings"
	"time"
)

// NameModifier derives the unique output name suffix from the submission
// time. Repeated submissions of the same source therefore never collide in
// the destination prefix.
func NameModifier(submittedAt time.Time) string {
	return "-" + submittedAt.UTC().Format("20060102-150405")
}

// SourceBase returns the base name of a local path or s3:// URI without its
// extension: "s3://b/inputs/clip-x.mov" -> "clip-x".
func SourceBase(ref string) string {
	base := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// InputKey builds the S3 key a source is uploaded under. The modifier keeps
// concurrent submissions of identically-named files apart on the input side
// too.
func InputKey(prefix, localPath, modifier string) string {
	base := path.Base(strings.ReplaceAll(localPath, "\\", "/"))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	key := stem + modifier + ext
	if prefix == "" {
		return key
	}
	return strings.TrimRight(prefix, "/") + "/" + key
}

// ContainerExtension maps the remote service's echoed container type to a
// file extension. Unrecognized containers fall back to ".mp4".
func ContainerExtension(container string) string {
	switch strings.ToUpper(container) {
	case "MOV":
		return ".mov"
	case "MP4", "":
		return ".mp4"
	default:
		return ".mp4"
	}
}

// EchoedOutput holds the fields echoed back by the remote service that are
// needed to locate the finished artifact. Any of them may be absent.
type EchoedOutput struct {
	Destination  string // e.g. "s3://bucket/outputs/"
	InputFile    string // the job's input reference
	NameModifier string
	Container    string // e.g. "MP4", "MOV"
}

// ArtifactURI reconstructs the output location:
//
//	<destination, trailing slash stripped>/<source base><modifier><extension>
//
// When the echoed settings are too incomplete for a full reconstruction it
// returns the best-effort destination prefix and false, never an error,
// since a naming gap must not mask a successful job.
func ArtifactURI(e EchoedOutput) (string, bool) {
	dest := strings.TrimRight(e.Destination, "/")
	if dest == "" {
		return "", false
	}
	base := SourceBase(e.InputFile)
	if base == "" {
		return dest, false
	}
	return dest + "/" + base + e.NameModifier + ContainerExtension(e.Container), true
}
