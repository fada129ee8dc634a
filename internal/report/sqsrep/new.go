package sqsrep

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// New creates an SQS reporter that streams run progress to the given queue.
func New(ctx context.Context, runUuid string, region string, queueUrl string) (*sqsReporter, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &sqsReporter{
		sqsClient: sqs.NewFromConfig(cfg),
		queueUrl:  queueUrl,
		runUuid:   runUuid,
	}, nil
}
