package handler

const (
	paramFileID = "fileId"
	queryCode   = "code"

	multipartFieldFiles = "files"

	jsonKeyError       = "error"
	jsonKeyMessage     = "message"
	jsonKeySuccess     = "success"
	jsonKeyFiles       = "files"
	jsonKeyDownloadURL = "downloadUrl"
)

const (
	msgAuthCodeMissing     = "Authorization code is missing"
	msgAuthFailed          = "Authentication failed"
	msgLoginSuccessful     = "Login successful"
	msgNoFilesUploaded     = "No files uploaded"
	msgUploadFailed        = "File upload failed"
	msgFilesUploaded       = "Files uploaded successfully"
	msgListFilesFailed     = "Failed to retrieve files."
	msgFileNotFound        = "File not found"
	msgDownloadURLFailed   = "Failed to generate download URL"
	msgDeleteFailed        = "Error deleting file"
	msgFileDeleted         = "File deleted successfully"
	msgRenameFieldsMissing = "fileId and newFileName are required"
	msgRenameFailed        = "Failed to rename file"
	msgVersionConflict     = "File was modified concurrently, retry with fresh state"
	msgInvalidFileKey      = "Invalid file key"
	msgFileRenamed         = "File renamed successfully"
)
