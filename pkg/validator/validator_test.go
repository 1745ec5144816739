package validator

import (
	"strings"
	"testing"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "report.pdf", false},
		{"name with spaces", "my holiday photo.jpg", false},
		{"empty", "", true},
		{"path separator", "a/b.txt", true},
		{"backslash", "a\\b.txt", true},
		{"traversal", "..secret.txt", true},
		{"control character", "bad\x00name.txt", true},
		{"max length", strings.Repeat("a", 251) + ".txt", false},
		{"over max length", strings.Repeat("a", 252) + ".txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("FileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"zero", 0, false},
		{"one byte", 1, false},
		{"exactly at limit", 10 * 1024 * 1024, false},
		{"one byte over limit", 10*1024*1024 + 1, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FileSize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("FileSize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestFileType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		wantErr  bool
	}{
		{"jpeg", "photo.jpeg", "image/jpeg", false},
		{"jpg", "photo.jpg", "image/jpeg", false},
		{"jpg browser variant", "photo.jpg", "image/jpg", false},
		{"png", "chart.png", "image/png", false},
		{"pdf", "doc.pdf", "application/pdf", false},
		{"txt", "notes.txt", "text/plain", false},
		{"docx", "cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"uppercase extension", "PHOTO.PNG", "image/png", false},
		{"no declared mime", "doc.pdf", "", false},
		{"disallowed extension", "script.sh", "text/plain", true},
		{"executable", "virus.exe", "application/octet-stream", true},
		{"extension mime mismatch", "doc.pdf", "image/png", true},
		{"no extension", "README", "text/plain", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FileType(tt.fileName, tt.mimeType)
			if (err != nil) != tt.wantErr {
				t.Errorf("FileType(%q, %q) error = %v, wantErr %v", tt.fileName, tt.mimeType, err, tt.wantErr)
			}
		})
	}
}

func TestBatchSize(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"single file", 1, false},
		{"at limit", 10, false},
		{"over limit", 11, true},
		{"empty batch", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BatchSize(tt.count)
			if (err != nil) != tt.wantErr {
				t.Errorf("BatchSize(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
			}
		})
	}
}
