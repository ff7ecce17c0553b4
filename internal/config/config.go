package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration
type Config struct {
	LogLevel string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	// Gemini API
	GeminiAPIKey      string `validate:"required"`
	GeminiAPIEndpoint string `validate:"omitempty,url"` // if set, overrides default Gemini API base URL
	GeminiModelImage  string `validate:"required"`     // image generation, e.g. gemini-2.5-flash-image

	// Output
	ImagesDir           string        `validate:"required"`
	ImageRequestTimeout time.Duration `validate:"gte=0"` // 0 disables the per-call timeout

	// S3 mirror; disabled when S3Bucket is empty
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
	S3Prefix    string

	// Kafka artwork events; disabled when KafkaBrokers is empty
	KafkaBrokers      []string
	KafkaTopicArtwork string `validate:"required_with=KafkaBrokers"`

	// values present in the environment that could not be parsed
	loadErrs []error
}

// Load loads configuration from environment variables
func Load() *Config {
	var loadErrs []error
	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiAPIEndpoint: getEnv("GEMINI_API_ENDPOINT", ""),
		GeminiModelImage:  getEnv("GEMINI_MODEL_IMAGE", "gemini-2.5-flash-image"),

		ImagesDir:           getEnv("IMAGES_DIR", "images"),
		ImageRequestTimeout: getEnvDuration("IMAGE_REQUEST_TIMEOUT", 0, &loadErrs),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
		S3Prefix:    getEnv("S3_PREFIX", "blog/images"),

		KafkaBrokers:      getEnvList("KAFKA_BROKERS"),
		KafkaTopicArtwork: getEnv("KAFKA_TOPIC_ARTWORK", "blogart.artwork.v1"),
	}
	cfg.loadErrs = loadErrs
	return cfg
}

// Validate checks the configuration once at startup, before any client is built.
func (c *Config) Validate() error {
	if err := errors.Join(c.loadErrs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// S3Enabled reports whether generated artwork should be mirrored to S3.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// KafkaEnabled reports whether artwork events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// getEnvDuration returns defaultValue when key is unset. An unparseable value also
// yields defaultValue and is recorded in errs.
func getEnvDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return duration
}
