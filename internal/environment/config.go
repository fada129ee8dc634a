package environment

import (
	"os"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	NatsURL     string
	SqsQueueURL string
	AwsRegion   string
}

// ReadEnvConfig reads reporter endpoints from the environment, with an
// optional .env file. Empty values mean the corresponding reporter stays
// disabled.
func ReadEnvConfig() *EnvConfig {
	_ = godotenv.Load()

	result := &EnvConfig{
		NatsURL:     os.Getenv("STRESSER_NATS_URL"),
		SqsQueueURL: os.Getenv("STRESSER_SQS_URL"),
		AwsRegion:   os.Getenv("AWS_REGION"),
	}

	if result.AwsRegion == "" {
		result.AwsRegion = "eu-central-1"
	}

	return result
}
