package webmaster

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of the environment variables read by ConfigFromEnv.
const EnvPrefix = "YWM"

// EnvConfig holds the client settings that can be supplied through YWM_ variables.
type EnvConfig struct {
	Token        string        `envconfig:"TOKEN"`
	AuthScheme   string        `envconfig:"AUTH_SCHEME"    default:"OAuth"`
	BaseURL      string        `envconfig:"API"            default:"https://api.webmaster.yandex.net/v4"`
	UserID       int64         `envconfig:"USER_ID"`
	HTTPTimeout  time.Duration `envconfig:"TIMEOUT"        default:"30s"`
	RetryMax     int           `envconfig:"RETRY_MAX"      default:"0"`
	RetryWaitMin time.Duration `envconfig:"RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax time.Duration `envconfig:"RETRY_WAIT_MAX" default:"30s"`
	Debug        bool          `envconfig:"DEBUG"          default:"false"`
	UserAgent    string        `envconfig:"USER_AGENT"`
}

// Config converts the environment settings into a client Config.
func (e *EnvConfig) Config() *Config {
	return &Config{
		Token:        e.Token,
		AuthScheme:   e.AuthScheme,
		BaseURL:      e.BaseURL,
		UserID:       e.UserID,
		HTTPTimeout:  e.HTTPTimeout,
		RetryMax:     e.RetryMax,
		RetryWaitMin: e.RetryWaitMin,
		RetryWaitMax: e.RetryWaitMax,
		Debug:        e.Debug,
		UserAgent:    e.UserAgent,
	}
}

// ConfigFromEnv loads a Config from YWM_ environment variables.
// A missing YWM_TOKEN yields ErrAuthentication.
func ConfigFromEnv() (*Config, error) {
	var env EnvConfig

	err := envconfig.Process(EnvPrefix, &env)
	if err != nil {
		return nil, fmt.Errorf("loading %s_ environment: %w", EnvPrefix, err)
	}

	if env.Token == "" {
		return nil, fmt.Errorf("%s_TOKEN is not set: %w", EnvPrefix, ErrAuthentication)
	}

	return env.Config(), nil
}
