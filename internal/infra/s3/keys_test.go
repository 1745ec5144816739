package s3

import (
	"fmt"
	"testing"
	"time"
)

func TestBuildObjectKey(t *testing.T) {
	now := time.UnixMilli(1741007136513)

	got := BuildObjectKey("c478a458-0091-7022", "front page.png", now)
	want := fmt.Sprintf("users/c478a458-0091-7022/%d-front page.png", now.UnixMilli())

	if got != want {
		t.Errorf("BuildObjectKey() = %q, want %q", got, want)
	}
}

func TestRenameObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		oldKey  string
		newName string
		want    string
		wantErr bool
	}{
		{
			name:    "same folder new name",
			oldKey:  "users/u1/1741007136513-photo.png",
			newName: "vacation",
			want:    "users/u1/vacation.png",
		},
		{
			name:    "nested folder preserved",
			oldKey:  "users/u1/archive/old.pdf",
			newName: "contract",
			want:    "users/u1/archive/contract.pdf",
		},
		{
			name:    "no extension",
			oldKey:  "users/u1/README",
			newName: "readme",
			wantErr: true,
		},
		{
			name:    "no folder segment",
			oldKey:  "loose-file.txt",
			newName: "renamed",
			wantErr: true,
		},
		{
			name:    "dot only in folder name",
			oldKey:  "users/u.1/noext",
			newName: "renamed",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			oldKey:  "users/u1/file.",
			newName: "renamed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenameObjectKey(tt.oldKey, tt.newName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RenameObjectKey(%q, %q) error = %v, wantErr %v", tt.oldKey, tt.newName, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("RenameObjectKey(%q, %q) = %q, want %q", tt.oldKey, tt.newName, got, tt.want)
			}
		})
	}
}
