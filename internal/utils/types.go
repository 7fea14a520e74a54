package utils

import "time"

// Descriptor pairs one feed image with the file name it is stored under.
type Descriptor struct {
	SourceURL string
	FileName  string
}

type Config struct {
	OutputDir        string
	Days             int
	Workers          int
	BaseURL          string
	S3Mirror         string
	S3Profile        string
	Debug            bool
	HTTPClientConfig HTTPClientConfig
}

type HTTPClientConfig struct {
	Timeout       time.Duration
	KATimeout     time.Duration
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
	UserAgent     string
	Headers       map[string]string
}
