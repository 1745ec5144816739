package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envAWSRegion, "us-east-1")
	t.Setenv(envS3BucketName, "filevault-bucket")
	t.Setenv(envDynamoTableName, "filevault-files")
	t.Setenv(envCognitoDomain, "https://idp.example.com")
	t.Setenv(envCognitoClientID, "client-123")
	t.Setenv(envCognitoJWKSURL, "https://idp.example.com/.well-known/jwks.json")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultServerPort, cfg.Server.Port)
	assert.Equal(t, defaultServerReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, defaultServerWriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, defaultServerShutdown, cfg.Server.ShutdownTimeout)
	assert.Equal(t, defaultDownloadURLTTL, cfg.App.DownloadURLTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(envPort, "9090")
	t.Setenv(envServerReadTimeout, "45s")
	t.Setenv(envDownloadURLTTL, "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.App.DownloadURLTTL, "bare integers are seconds")
}

func TestLoad_TrimsDomainTrailingSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(envCognitoDomain, "https://idp.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.com", cfg.Cognito.Domain)
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"region", envAWSRegion},
		{"bucket", envS3BucketName},
		{"table", envDynamoTableName},
		{"cognito domain", envCognitoDomain},
		{"cognito client id", envCognitoClientID},
		{"jwks url", envCognitoJWKSURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetDurationEnv_InvalidValueFallsBack(t *testing.T) {
	t.Setenv(envServerReadTimeout, "not-a-duration")
	assert.Equal(t, defaultServerReadTimeout, getDurationEnv(envServerReadTimeout, defaultServerReadTimeout))
}
