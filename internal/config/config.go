package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// CredentialSource names how object-storage credentials are obtained.
type CredentialSource string

const (
	CredentialSourceFile    CredentialSource = "file-path"
	CredentialSourceJSON    CredentialSource = "inline-json"
	CredentialSourceB64     CredentialSource = "base64-json"
	CredentialSourceDefault CredentialSource = "default"
)

// Config holds the configuration for the moodgarden service.
// Environment variables are parsed from the MOODGARDEN_ prefix,
// e.g. MOODGARDEN_HTTP_PORT, MOODGARDEN_POSTGRES_DSN.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Object storage (S3-compatible) configuration
	S3Bucket         string `envconfig:"S3_BUCKET" default:"moodgarden-images"`
	S3Region         string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint       string `envconfig:"S3_ENDPOINT" default:""`
	S3ForcePathStyle bool   `envconfig:"S3_FORCE_PATH_STYLE" default:"false"`

	// Credential material, resolved in fixed precedence:
	// file path > inline JSON > base64 JSON > default provider chain.
	S3CredentialsFile string `envconfig:"S3_CREDENTIALS_FILE" default:""`
	S3CredentialsJSON string `envconfig:"S3_CREDENTIALS_JSON" default:""`
	S3CredentialsB64  string `envconfig:"S3_CREDENTIALS_B64" default:""`

	// Image generation (Vertex Imagen style predict endpoint)
	ImagenEndpoint    string `envconfig:"IMAGEN_ENDPOINT" default:"https://us-central1-aiplatform.googleapis.com"`
	ImagenProject     string `envconfig:"IMAGEN_PROJECT" default:""`
	ImagenLocation    string `envconfig:"IMAGEN_LOCATION" default:"us-central1"`
	ImagenModel       string `envconfig:"IMAGEN_MODEL" default:"imagen-3.0-generate-001"`
	ImagenAccessToken string `envconfig:"IMAGEN_ACCESS_TOKEN" default:""`

	// Validity window for signed image read URLs.
	SignedURLTTLHours int `envconfig:"SIGNED_URL_TTL_HOURS" default:"8760"`

	// Health monitoring
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("MOODGARDEN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("MOODGARDEN_POSTGRES_DSN is required")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.SignedURLTTLHours <= 0 {
		return fmt.Errorf("SIGNED_URL_TTL_HOURS must be positive")
	}
	return nil
}

// CredentialSource reports which credential source the precedence order selects.
func (c *Config) CredentialSource() CredentialSource {
	switch {
	case c.S3CredentialsFile != "":
		return CredentialSourceFile
	case c.S3CredentialsJSON != "":
		return CredentialSourceJSON
	case c.S3CredentialsB64 != "":
		return CredentialSourceB64
	default:
		return CredentialSourceDefault
	}
}

// SignedURLTTL returns the signed URL validity window as a duration.
func (c *Config) SignedURLTTL() time.Duration {
	return time.Duration(c.SignedURLTTLHours) * time.Hour
}

// GetHTTPAddr returns the HTTP server listen address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
