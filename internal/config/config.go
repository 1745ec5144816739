package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envAWSRegion             = "AWS_REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envS3BucketName          = "AWS_S3_BUCKET_NAME"
	envDynamoTableName       = "AWS_DYNAMODB_TABLE_NAME"
	envCognitoDomain         = "COGNITO_DOMAIN"
	envCognitoClientID       = "COGNITO_CLIENT_ID"
	envCognitoClientSecret   = "COGNITO_CLIENT_SECRET"
	envCognitoRedirectURI    = "COGNITO_REDIRECT_URI"
	envCognitoJWKSURL        = "COGNITO_JWKS_URL"
	envDownloadURLTTL        = "DOWNLOAD_URL_TTL"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDownloadURLTTL     = 60 * time.Second

	errPortRequiredFmt          = "PORT must be set"
	errRegionRequiredFmt        = "AWS_REGION must be set"
	errBucketRequiredFmt        = "AWS_S3_BUCKET_NAME must be set"
	errTableRequiredFmt         = "AWS_DYNAMODB_TABLE_NAME must be set"
	errCognitoDomainRequiredFmt = "COGNITO_DOMAIN must be set"
	errCognitoClientRequiredFmt = "COGNITO_CLIENT_ID must be set"
	errCognitoJWKSRequiredFmt   = "COGNITO_JWKS_URL must be set"
	errDownloadTTLPositiveFmt   = "DOWNLOAD_URL_TTL must be positive"
	errInvalidConfigurationFmt  = "invalid configuration: %w"
)

type Config struct {
	Server  ServerConfig
	AWS     AWSConfig
	Cognito CognitoConfig
	App     AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	DynamoTable     string
}

type CognitoConfig struct {
	Domain       string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	JWKSURL      string
}

type AppConfig struct {
	DownloadURLTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		AWS: AWSConfig{
			Region:          os.Getenv(envAWSRegion),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
			S3Bucket:        os.Getenv(envS3BucketName),
			DynamoTable:     os.Getenv(envDynamoTableName),
		},
		Cognito: CognitoConfig{
			Domain:       strings.TrimRight(os.Getenv(envCognitoDomain), "/"),
			ClientID:     os.Getenv(envCognitoClientID),
			ClientSecret: os.Getenv(envCognitoClientSecret),
			RedirectURI:  os.Getenv(envCognitoRedirectURI),
			JWKSURL:      os.Getenv(envCognitoJWKSURL),
		},
		App: AppConfig{
			DownloadURLTTL: getDurationEnv(envDownloadURLTTL, defaultDownloadURLTTL),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.AWS.Region == "" {
		return fmt.Errorf(errRegionRequiredFmt)
	}

	if c.AWS.S3Bucket == "" {
		return fmt.Errorf(errBucketRequiredFmt)
	}

	if c.AWS.DynamoTable == "" {
		return fmt.Errorf(errTableRequiredFmt)
	}

	if c.Cognito.Domain == "" {
		return fmt.Errorf(errCognitoDomainRequiredFmt)
	}

	if c.Cognito.ClientID == "" {
		return fmt.Errorf(errCognitoClientRequiredFmt)
	}

	if c.Cognito.JWKSURL == "" {
		return fmt.Errorf(errCognitoJWKSRequiredFmt)
	}

	if c.App.DownloadURLTTL <= 0 {
		return fmt.Errorf(errDownloadTTLPositiveFmt)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
