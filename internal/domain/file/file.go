package file

// Visibility of a stored file. Only "private" is reachable today;
// "shared" is reserved for the sharing feature scaffolded by SharedWith.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityShared  Visibility = "shared"
)

// Record is one metadata row per uploaded file, partitioned by user and
// sorted by file ID in DynamoDB.
type Record struct {
	FileID     string     `json:"fileId" dynamodbav:"fileId"`
	UserID     string     `json:"userId" dynamodbav:"userId"`
	FileName   string     `json:"fileName" dynamodbav:"fileName"`
	FileSize   int64      `json:"fileSize" dynamodbav:"fileSize"`
	FileType   string     `json:"fileType" dynamodbav:"fileType"`
	UploadDate string     `json:"uploadDate" dynamodbav:"uploadDate"`
	S3Path     string     `json:"s3Path" dynamodbav:"s3Path"`
	Visibility Visibility `json:"visibility" dynamodbav:"visibility"`
	SharedWith []string   `json:"sharedWith" dynamodbav:"sharedWith"`
	Version    int64      `json:"version" dynamodbav:"version"`
}

// RenameInput names the fields a rename is allowed to touch. The
// expected version makes the metadata write conditional: a stale
// version means another mutation won the race.
type RenameInput struct {
	UserID          string
	FileID          string
	NewFileName     string
	NewS3Path       string
	ExpectedVersion int64
}

// DeleteInput identifies a record for conditional deletion.
type DeleteInput struct {
	UserID          string
	FileID          string
	ExpectedVersion int64
}
