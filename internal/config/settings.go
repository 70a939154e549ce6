package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	MonPort     int    `env:"MON_PORT" envDefault:"8888" validate:"min=1,max=65535,nefield=Port"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"keyword-bot" validate:"required"`

	// ChannelAccessToken authorizes reply API calls. Empty skips every reply with a warning.
	ChannelAccessToken string `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	// ChannelSecret keys webhook signatures. Empty accepts unsigned deliveries.
	ChannelSecret  string        `env:"LINE_CHANNEL_SECRET"`
	LineAPIBaseURL string        `env:"LINE_API_BASE_URL" envDefault:"https://api.line.me" validate:"required,url"`
	ReplyTimeout   time.Duration `env:"REPLY_TIMEOUT" envDefault:"30s" validate:"gt=0"`

	DataPath string `env:"DATA_PATH" envDefault:"users.json" validate:"required"`

	MaxBodyBytes int `env:"MAX_BODY_BYTES" envDefault:"1048576" validate:"gt=0"`
	// DedupTTL is how long handled webhook event ids are remembered. Zero disables.
	DedupTTL          time.Duration `env:"DEDUP_TTL" envDefault:"10m" validate:"gte=0"`
	SerializeWebhooks bool          `env:"SERIALIZE_WEBHOOKS"`
}

var validate = validator.New()

// Validate checks field constraints and resolves DataPath to an absolute path.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	abs, err := filepath.Abs(s.DataPath)
	if err != nil {
		return fmt.Errorf("failed to resolve data path %q: %w", s.DataPath, err)
	}
	s.DataPath = abs
	return nil
}
