package handler

import (
	"context"
	"io"

	"filevault/internal/domain/file"
	"filevault/internal/identity"
)

// Consumer-side interfaces defined by handlers.
// Each interface contains only the methods needed by the specific handler.

// FileStore is the metadata table as the file handler sees it.
type FileStore interface {
	PutRecord(ctx context.Context, record *file.Record) error
	QueryByUser(ctx context.Context, userID string) ([]*file.Record, error)
	GetRecord(ctx context.Context, userID, fileID string) (*file.Record, error)
	UpdateRename(ctx context.Context, input file.RenameInput) error
	DeleteRecord(ctx context.Context, input file.DeleteInput) error
}

// ObjectStorage is the blob store as the file handler sees it.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PresignDownloadURL(ctx context.Context, key string) (string, error)
	CopyObject(ctx context.Context, sourceKey, destKey string) error
	DeleteObject(ctx context.Context, key string) error
}

// IdentityExchanger is the identity provider as the auth handler sees it.
type IdentityExchanger interface {
	LoginURL() string
	ExchangeCode(ctx context.Context, code string) (*identity.Tokens, error)
	FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error)
}
