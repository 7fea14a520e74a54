package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the command line flags. Empty values leave the flag
// default in place.
type FileConfig struct {
	Out              string            `yaml:"out"`
	Days             int               `yaml:"days"`
	Workers          int               `yaml:"workers"`
	Timeout          string            `yaml:"timeout"`
	KeepAliveTimeout string            `yaml:"keep_alive_timeout"`
	UserAgent        string            `yaml:"user_agent"`
	Proxy            string            `yaml:"proxy"`
	ProxyUsername    string            `yaml:"proxy_username"`
	ProxyPassword    string            `yaml:"proxy_password"`
	Headers          map[string]string `yaml:"headers"`
	S3Mirror         string            `yaml:"s3_mirror"`
	S3Profile        string            `yaml:"s3_profile"`
	Debug            bool              `yaml:"debug"`
}

func ReadConfigFile(filePath string) (*FileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}
	if fc.Days < 0 {
		return nil, fmt.Errorf("days must be positive, got %d", fc.Days)
	}
	if fc.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", fc.Workers)
	}
	if _, err := fc.TimeoutDuration(); err != nil {
		return nil, err
	}
	if _, err := fc.KeepAliveDuration(); err != nil {
		return nil, err
	}
	log.Debug().Str("op", "utils/config").Str("path", filePath).Msg("Config file loaded")
	return &fc, nil
}

func (fc *FileConfig) TimeoutDuration() (time.Duration, error) {
	return parseOptionalDuration("timeout", fc.Timeout)
}

func (fc *FileConfig) KeepAliveDuration() (time.Duration, error) {
	return parseOptionalDuration("keep_alive_timeout", fc.KeepAliveTimeout)
}

func parseOptionalDuration(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %v", key, err)
	}
	return d, nil
}
