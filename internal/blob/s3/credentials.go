package s3

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/moodgarden/moodgarden/internal/config"
)

// keyDocument is the JSON shape accepted by the file, inline and base64
// credential sources.
type keyDocument struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
}

// resolveAWSConfig builds the SDK config according to the configured
// credential source. The default source falls through to the SDK's standard
// provider chain (env vars, shared config, instance metadata).
func resolveAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	switch cfg.CredentialSource() {
	case config.CredentialSourceFile:
		raw, err := os.ReadFile(cfg.S3CredentialsFile)
		if err != nil {
			return aws.Config{}, fmt.Errorf("read credentials file: %w", err)
		}
		return staticConfig(ctx, cfg.S3Region, raw)

	case config.CredentialSourceJSON:
		return staticConfig(ctx, cfg.S3Region, []byte(cfg.S3CredentialsJSON))

	case config.CredentialSourceB64:
		raw, err := base64.StdEncoding.DecodeString(cfg.S3CredentialsB64)
		if err != nil {
			return aws.Config{}, fmt.Errorf("decode base64 credentials: %w", err)
		}
		return staticConfig(ctx, cfg.S3Region, raw)

	default:
		return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	}
}

func staticConfig(ctx context.Context, region string, rawKey []byte) (aws.Config, error) {
	var doc keyDocument
	if err := json.Unmarshal(rawKey, &doc); err != nil {
		return aws.Config{}, fmt.Errorf("parse credentials JSON: %w", err)
	}
	if doc.AccessKeyID == "" || doc.SecretAccessKey == "" {
		return aws.Config{}, fmt.Errorf("credentials JSON missing access_key_id or secret_access_key")
	}
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			doc.AccessKeyID, doc.SecretAccessKey, doc.SessionToken,
		)))
}
