package mediaconvert

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"

	"github.com/backmassage/cloudmux/internal/monitor"
	"github.com/backmassage/cloudmux/internal/naming"
)

// API is the slice of the service client the package uses. The concrete SDK
// client satisfies it; tests substitute a fake.
type API interface {
	CreateJob(ctx context.Context, in *awsmc.CreateJobInput, optFns ...func(*awsmc.Options)) (*awsmc.CreateJobOutput, error)
	GetJob(ctx context.Context, in *awsmc.GetJobInput, optFns ...func(*awsmc.Options)) (*awsmc.GetJobOutput, error)
}

// Client submits jobs and answers polls. It satisfies monitor.Service.
type Client struct {
	api API
}

// New builds a Client over the real SDK. endpoint overrides the service's
// default account endpoint when non-empty.
func New(awsCfg aws.Config, endpoint string) *Client {
	api := awsmc.NewFromConfig(awsCfg, func(o *awsmc.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &Client{api: api}
}

// NewWithAPI is the test constructor.
func NewWithAPI(api API) *Client { return &Client{api: api} }

// Submit sends the job request and returns the assigned job ID.
func (c *Client) Submit(ctx context.Context, in *awsmc.CreateJobInput) (string, error) {
	out, err := c.api.CreateJob(ctx, in)
	if err != nil {
		return "", &SubmitError{Err: err}
	}
	if out.Job == nil || out.Job.Id == nil {
		return "", &SubmitError{Err: fmt.Errorf("response carried no job id")}
	}
	return *out.Job.Id, nil
}

// Poll fetches the job's current state. Errors are returned as-is so the
// monitor's transient-failure accounting sees them directly.
func (c *Client) Poll(ctx context.Context, jobID string) (*monitor.JobState, error) {
	out, err := c.api.GetJob(ctx, &awsmc.GetJobInput{Id: aws.String(jobID)})
	if err != nil {
		return nil, err
	}
	if out.Job == nil {
		return nil, fmt.Errorf("job %s: empty poll response", jobID)
	}
	return jobState(out.Job), nil
}

func jobState(job *types.Job) *monitor.JobState {
	st := &monitor.JobState{
		Status:  mapStatus(job.Status),
		Phase:   string(job.CurrentPhase),
		Percent: -1,
		Echo:    extractEcho(job.Settings),
	}
	if job.JobPercentComplete != nil {
		st.Percent = *job.JobPercentComplete
	}
	if job.ErrorCode != nil {
		st.ErrorCode = *job.ErrorCode
	}
	if job.ErrorMessage != nil {
		st.ErrorMessage = *job.ErrorMessage
	}
	return st
}

func mapStatus(s types.JobStatus) monitor.Status {
	switch s {
	case types.JobStatusSubmitted:
		return monitor.StatusSubmitted
	case types.JobStatusProgressing:
		return monitor.StatusProgressing
	case types.JobStatusComplete:
		return monitor.StatusComplete
	case types.JobStatusError:
		return monitor.StatusError
	case types.JobStatusCanceled:
		return monitor.StatusCanceled
	default:
		return monitor.StatusUnknown
	}
}

// extractEcho pulls the output-location fields the service echoes back in the
// job's own settings. Every hop is nil-checked: a partial echo yields a
// partial result, and naming.ArtifactURI decides later whether it suffices.
func extractEcho(settings *types.JobSettings) naming.EchoedOutput {
	var echo naming.EchoedOutput
	if settings == nil {
		return echo
	}
	if len(settings.Inputs) > 0 && settings.Inputs[0].FileInput != nil {
		echo.InputFile = *settings.Inputs[0].FileInput
	}
	if len(settings.OutputGroups) == 0 {
		return echo
	}
	og := settings.OutputGroups[0]
	if og.OutputGroupSettings != nil && og.OutputGroupSettings.FileGroupSettings != nil &&
		og.OutputGroupSettings.FileGroupSettings.Destination != nil {
		echo.Destination = *og.OutputGroupSettings.FileGroupSettings.Destination
	}
	if len(og.Outputs) > 0 {
		out := og.Outputs[0]
		if out.NameModifier != nil {
			echo.NameModifier = *out.NameModifier
		}
		if out.ContainerSettings != nil {
			echo.Container = string(out.ContainerSettings.Container)
		}
	}
	return echo
}
