package app

import (
	"fmt"

	"filevault/internal/auth"
	"filevault/internal/config"
	"filevault/internal/http"
	"filevault/internal/identity"
	"filevault/internal/infra/dynamo"
	"filevault/internal/infra/s3"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s3Client, err := s3.NewClient(&cfg.AWS, cfg.App.DownloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	dynamoClient, err := dynamo.NewClient(&cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	identityClient := identity.NewClient(cfg.Cognito)

	keySet := auth.NewKeySet(cfg.Cognito.JWKSURL)
	verifier := auth.NewVerifier(keySet)
	authMiddleware := auth.NewMiddleware(verifier)

	server := http.NewServer(&http.ServerDependencies{
		Config:         cfg,
		FileStore:      dynamoClient,
		ObjectStorage:  s3Client,
		Identity:       identityClient,
		AuthMiddleware: authMiddleware,
	})

	return &Service{
		config: cfg,
		keySet: keySet,
		server: server,
	}, nil
}
