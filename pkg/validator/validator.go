package validator

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	maxFileNameLen   = 255
	maxFileSizeBytes = int64(10 * 1024 * 1024)
	maxFilesPerBatch = 10

	asciiControlStart = 32
	asciiDelete       = 127

	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errFileSizeNegativeFmt     = "file size cannot be negative"
	errFileSizeMaxFmt          = "file size exceeds maximum of %dMB"
	errFileTypeNotAllowedFmt   = "file type %q is not allowed: only images, PDFs, and text files are accepted"
	errBatchEmptyFmt           = "no files provided"
	errBatchTooLargeFmt        = "a maximum of %d files is allowed per upload"
)

// allowedUploadTypes mirrors the extension and MIME restrictions on uploads.
var allowedUploadTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MaxFileSizeBytes is the per-file upload cap (10MB).
func MaxFileSizeBytes() int64 { return maxFileSizeBytes }

// MaxFilesPerBatch is the per-request upload cap.
func MaxFilesPerBatch() int { return maxFilesPerBatch }

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}

	return nil
}

func FileSize(size int64) error {
	if size < 0 {
		return fmt.Errorf(errFileSizeNegativeFmt)
	}

	if size > maxFileSizeBytes {
		return fmt.Errorf(errFileSizeMaxFmt, maxFileSizeBytes/(1024*1024))
	}

	return nil
}

// FileType checks both the file extension and the declared MIME type
// against the allowed upload set.
func FileType(fileName, mimeType string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	expectedMIME, ok := allowedUploadTypes[ext]
	if !ok {
		return fmt.Errorf(errFileTypeNotAllowedFmt, ext)
	}

	if mimeType != "" && !strings.EqualFold(mimeType, expectedMIME) {
		// Browsers occasionally send image/jpg for .jpg uploads.
		if !(ext == ".jpg" && strings.EqualFold(mimeType, "image/jpg")) {
			return fmt.Errorf(errFileTypeNotAllowedFmt, mimeType)
		}
	}

	return nil
}

func BatchSize(count int) error {
	if count == 0 {
		return fmt.Errorf(errBatchEmptyFmt)
	}

	if count > maxFilesPerBatch {
		return fmt.Errorf(errBatchTooLargeFmt, maxFilesPerBatch)
	}

	return nil
}
