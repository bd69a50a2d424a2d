package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"aws-slack-notifier/internal/domain/payload"
)

// Route is where notifications of one category are posted.
type Route struct {
	WebhookURL string
	Channel    string
	FooterIcon string
}

// Config contains runtime configuration values. It is loaded once at startup
// and never mutated afterwards.
type Config struct {
	Deploy         Route
	Alerts         Route
	Region         string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

const (
	defaultFile      = "config.json"
	defaultRegion    = "us-east-1"
	defaultTimeout   = 10 * time.Second
	defaultLogLevel  = "info"
	defaultLogFormat = "json"

	// PathEnv overrides the config file location.
	PathEnv = "NOTIFIER_CONFIG"
)

// LoadError means the configuration could not be read. Startup must stop.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the JSON config file at path (or the default location) and
// overlays environment variables with the same key names.
func Load(path string) (*Config, error) {
	path = resolvePath(path)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.AutomaticEnv()

	v.SetDefault("AWS_REGION", defaultRegion)
	v.SetDefault("REQUEST_TIMEOUT", defaultTimeout)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("LOG_FORMAT", defaultLogFormat)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Path: path, Err: err}
	}

	cfg := &Config{
		Deploy: Route{
			WebhookURL: v.GetString("DEPLOY_SLACK_WEBHOOK_URL"),
			Channel:    v.GetString("DEPLOY_SLACK_CHANNEL"),
			FooterIcon: v.GetString("CLOUDFORMATION_FOOTER_ICON"),
		},
		Alerts: Route{
			WebhookURL: v.GetString("ALERTS_SLACK_WEBHOOK_URL"),
			Channel:    v.GetString("ALERTS_SLACK_CHANNEL"),
			FooterIcon: v.GetString("CLOUDWATCH_FOOTER_ICON"),
		},
		Region:         v.GetString("AWS_REGION"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}

	if cfg.Deploy.WebhookURL == "" && cfg.Alerts.WebhookURL == "" {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("DEPLOY_SLACK_WEBHOOK_URL or ALERTS_SLACK_WEBHOOK_URL is required")}
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	return cfg, nil
}

// Route returns the destination for payloads of kind k. The second result
// is false when no webhook is configured for that category.
func (c *Config) Route(k payload.Kind) (Route, bool) {
	var r Route
	switch k {
	case payload.KindStack:
		r = c.Deploy
	case payload.KindAlarm:
		r = c.Alerts
	}
	return r, r.WebhookURL != ""
}

func resolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(PathEnv); env != "" {
		return env
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), defaultFile)
	}
	return defaultFile
}
