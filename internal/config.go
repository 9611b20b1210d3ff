package internal

import (
	"time"
)

type Config struct {
	Host           string `env:"HOST,required=true"`
	Port           int    `env:"PORT,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`

	AuthTokenSecret   string        `env:"AUTH_TOKEN_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	JobPollInterval time.Duration `env:"JOB_POLL_INTERVAL,required=true"`
	JobBatchSize    int           `env:"JOB_BATCH_SIZE,required=true"`
	EventBufferSize int           `env:"EVENT_BUFFER_SIZE,required=true"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,required=true"`

	DebugPort int `env:"DEBUG_PORT"`

	// SendPulse is optional: without credentials the service falls back
	// to the noop mailer and draws complete silently.
	SendPulseBaseURL      string `env:"SENDPULSE_BASE_URL"`
	SendPulseClientID     string `env:"SENDPULSE_CLIENT_ID"`
	SendPulseClientSecret string `env:"SENDPULSE_CLIENT_SECRET"`
	SendPulseTemplateID   int    `env:"SENDPULSE_TEMPLATE_ID"`
	SendPulseFromName     string `env:"SENDPULSE_FROM_NAME"`
	SendPulseFromEmail    string `env:"SENDPULSE_FROM_EMAIL"`
}
