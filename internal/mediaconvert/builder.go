package mediaconvert

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	awsmc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
	"github.com/google/uuid"

	"github.com/backmassage/cloudmux/internal/config"
	"github.com/backmassage/cloudmux/internal/planner"
)

// Audio output settings. Sources vary wildly; a fixed stereo AAC track keeps
// outputs uniform without probing audio streams.
const (
	audioBitrateBps   = 128_000
	audioSampleRateHz = 48_000
)

// BuildCreateJob maps a computed plan onto the service's job request. The
// input is rotation-normalized by the service (Rotate AUTO) and forced into
// Rec. 709 so overlay colors render the same regardless of the source's
// transfer characteristics.
func BuildCreateJob(plan *planner.JobPlan, cfg *config.Config) *awsmc.CreateJobInput {
	in := &awsmc.CreateJobInput{
		Role:               aws.String(cfg.RoleArn),
		ClientRequestToken: aws.String(uuid.NewString()),
		Settings: &types.JobSettings{
			TimecodeConfig: &types.TimecodeConfig{
				Source: types.TimecodeSourceZerobased,
			},
			Inputs: []types.Input{
				{
					FileInput:      aws.String(plan.InputURI),
					TimecodeSource: types.InputTimecodeSourceZerobased,
					VideoSelector: &types.VideoSelector{
						Rotate:          types.InputRotateAuto,
						ColorSpace:      types.ColorSpaceRec709,
						ColorSpaceUsage: types.ColorSpaceUsageForce,
					},
					AudioSelectors: map[string]types.AudioSelector{
						"Audio Selector 1": {
							DefaultSelection: types.AudioDefaultSelectionDefault,
						},
					},
				},
			},
			OutputGroups: []types.OutputGroup{
				{
					Name: aws.String("File Group"),
					OutputGroupSettings: &types.OutputGroupSettings{
						Type: types.OutputGroupTypeFileGroupSettings,
						FileGroupSettings: &types.FileGroupSettings{
							Destination: aws.String(plan.DestinationPrefix + "/"),
						},
					},
					Outputs: []types.Output{buildOutput(plan)},
				},
			},
		},
	}
	if cfg.Queue != "" {
		in.Queue = aws.String(cfg.Queue)
	}
	return in
}

func buildOutput(plan *planner.JobPlan) types.Output {
	return types.Output{
		NameModifier: aws.String(plan.NameModifier),
		ContainerSettings: &types.ContainerSettings{
			Container:   types.ContainerTypeMp4,
			Mp4Settings: &types.Mp4Settings{},
		},
		VideoDescription: &types.VideoDescription{
			Width:  aws.Int32(int32(plan.Geometry.Width)),
			Height: aws.Int32(int32(plan.Geometry.Height)),
			CodecSettings: &types.VideoCodecSettings{
				Codec: types.VideoCodecH264,
				H264Settings: &types.H264Settings{
					Bitrate:         aws.Int32(int32(plan.BitrateBps)),
					RateControlMode: types.H264RateControlModeCbr,
				},
			},
			VideoPreprocessors: &types.VideoPreprocessor{
				ImageInserter: &types.ImageInserter{
					InsertableImages: buildInsertableImages(plan),
				},
			},
		},
		AudioDescriptions: []types.AudioDescription{
			{
				CodecSettings: &types.AudioCodecSettings{
					Codec: types.AudioCodecAac,
					AacSettings: &types.AacSettings{
						Bitrate:    aws.Int32(audioBitrateBps),
						CodingMode: types.AacCodingModeCodingMode20,
						SampleRate: aws.Int32(audioSampleRateHz),
					},
				},
			},
		},
	}
}

// buildInsertableImages translates overlay placements one to one. Untimed
// placements omit StartTime and Duration entirely so the image persists for
// the whole output.
func buildInsertableImages(plan *planner.JobPlan) []types.InsertableImage {
	images := make([]types.InsertableImage, 0, len(plan.Overlays))
	for _, ov := range plan.Overlays {
		img := types.InsertableImage{
			ImageInserterInput: aws.String(plan.WatermarkURI),
			Layer:              aws.Int32(int32(ov.Layer)),
			ImageX:             aws.Int32(int32(ov.X)),
			ImageY:             aws.Int32(int32(ov.Y)),
			Width:              aws.Int32(int32(ov.SizePx)),
			Height:             aws.Int32(int32(ov.SizePx)),
			Opacity:            aws.Int32(int32(ov.OpacityPercent)),
		}
		if ov.Timed {
			img.StartTime = aws.String(Timecode(ov.StartMs))
			img.Duration = aws.Int32(int32(ov.DurationMs))
		}
		images = append(images, img)
	}
	return images
}
