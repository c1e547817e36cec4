package mediaconvert

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/cloudmux/internal/config"
	"github.com/backmassage/cloudmux/internal/planner"
)

func testPlan() *planner.JobPlan {
	return &planner.JobPlan{
		InputURI:   "s3://media-bucket/inputs/clip-20260829-150405.mov",
		Geometry:   planner.OutputGeometry{Width: 1918, Height: 1078, ScaleFactor: 0.9984},
		BitrateBps: 7_500_000,
		Overlays: []planner.OverlayPlacement{
			{Layer: 0, StartMs: 0, DurationMs: 5000, X: 32, Y: 32, SizePx: 108, OpacityPercent: 70, Timed: true},
			{Layer: 1, StartMs: 5000, DurationMs: 5000, X: 1778, Y: 938, SizePx: 108, OpacityPercent: 70, Timed: true},
			{Layer: 2, StartMs: 10000, DurationMs: 2000, X: 32, Y: 32, SizePx: 108, OpacityPercent: 70, Timed: true},
		},
		WatermarkURI:      "s3://media-bucket/branding/mark.png",
		NameModifier:      "-20260829-150405",
		DestinationPrefix: "s3://media-bucket/outputs",
	}
}

func testBuilderConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RoleArn = "arn:aws:iam::123456789012:role/mediaconvert"
	cfg.Queue = "arn:aws:mediaconvert:us-east-1:123456789012:queues/Default"
	return &cfg
}

func TestBuildCreateJob_Shape(t *testing.T) {
	in := BuildCreateJob(testPlan(), testBuilderConfig())

	require.NotNil(t, in.Role)
	assert.Equal(t, "arn:aws:iam::123456789012:role/mediaconvert", *in.Role)
	require.NotNil(t, in.Queue)
	assert.Equal(t, "arn:aws:mediaconvert:us-east-1:123456789012:queues/Default", *in.Queue)
	require.NotNil(t, in.ClientRequestToken)
	assert.NotEmpty(t, *in.ClientRequestToken)

	require.Len(t, in.Settings.Inputs, 1)
	input := in.Settings.Inputs[0]
	assert.Equal(t, "s3://media-bucket/inputs/clip-20260829-150405.mov", *input.FileInput)
	assert.Equal(t, types.InputRotateAuto, input.VideoSelector.Rotate)
	assert.Equal(t, types.ColorSpaceRec709, input.VideoSelector.ColorSpace)
	assert.Equal(t, types.ColorSpaceUsageForce, input.VideoSelector.ColorSpaceUsage)

	require.Len(t, in.Settings.OutputGroups, 1)
	og := in.Settings.OutputGroups[0]
	assert.Equal(t, types.OutputGroupTypeFileGroupSettings, og.OutputGroupSettings.Type)
	assert.Equal(t, "s3://media-bucket/outputs/", *og.OutputGroupSettings.FileGroupSettings.Destination)

	require.Len(t, og.Outputs, 1)
	out := og.Outputs[0]
	assert.Equal(t, "-20260829-150405", *out.NameModifier)
	assert.Equal(t, types.ContainerTypeMp4, out.ContainerSettings.Container)
	assert.Equal(t, int32(1918), *out.VideoDescription.Width)
	assert.Equal(t, int32(1078), *out.VideoDescription.Height)

	codec := out.VideoDescription.CodecSettings
	assert.Equal(t, types.VideoCodecH264, codec.Codec)
	assert.Equal(t, int32(7_500_000), *codec.H264Settings.Bitrate)
	assert.Equal(t, types.H264RateControlModeCbr, codec.H264Settings.RateControlMode)

	require.Len(t, out.AudioDescriptions, 1)
	aac := out.AudioDescriptions[0].CodecSettings
	assert.Equal(t, types.AudioCodecAac, aac.Codec)
}

func TestBuildCreateJob_TimedOverlays(t *testing.T) {
	in := BuildCreateJob(testPlan(), testBuilderConfig())

	images := in.Settings.OutputGroups[0].Outputs[0].VideoDescription.VideoPreprocessors.ImageInserter.InsertableImages
	require.Len(t, images, 3)

	first := images[0]
	assert.Equal(t, "s3://media-bucket/branding/mark.png", *first.ImageInserterInput)
	assert.Equal(t, int32(0), *first.Layer)
	assert.Equal(t, int32(32), *first.ImageX)
	assert.Equal(t, int32(108), *first.Width)
	assert.Equal(t, int32(108), *first.Height)
	assert.Equal(t, int32(70), *first.Opacity)
	require.NotNil(t, first.StartTime)
	assert.Equal(t, "00:00:00:00", *first.StartTime)
	assert.Equal(t, int32(5000), *first.Duration)

	last := images[2]
	assert.Equal(t, "00:00:10:00", *last.StartTime)
	assert.Equal(t, int32(2000), *last.Duration)
}

func TestBuildCreateJob_StaticOverlaysOmitTiming(t *testing.T) {
	plan := testPlan()
	plan.Overlays = []planner.OverlayPlacement{
		{Layer: 0, X: 32, Y: 32, SizePx: 108, OpacityPercent: 70, Timed: false},
		{Layer: 1, X: 1778, Y: 938, SizePx: 108, OpacityPercent: 70, Timed: false},
	}

	in := BuildCreateJob(plan, testBuilderConfig())
	images := in.Settings.OutputGroups[0].Outputs[0].VideoDescription.VideoPreprocessors.ImageInserter.InsertableImages
	require.Len(t, images, 2)
	for _, img := range images {
		assert.Nil(t, img.StartTime)
		assert.Nil(t, img.Duration)
	}
}

func TestBuildCreateJob_QueueOptional(t *testing.T) {
	cfg := testBuilderConfig()
	cfg.Queue = ""
	in := BuildCreateJob(testPlan(), cfg)
	assert.Nil(t, in.Queue)
}

func TestBuildCreateJob_TokensUnique(t *testing.T) {
	cfg := testBuilderConfig()
	a := BuildCreateJob(testPlan(), cfg)
	b := BuildCreateJob(testPlan(), cfg)
	assert.NotEqual(t, *a.ClientRequestToken, *b.ClientRequestToken)
}
