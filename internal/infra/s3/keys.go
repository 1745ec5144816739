package s3

import (
	"fmt"
	"strings"
	"time"
)

const (
	userKeyPrefix = "users"

	errKeyNoExtensionFmt = "object key %q has no file extension"
	errKeyNoFolderFmt    = "object key %q has no folder segment"
)

// BuildObjectKey namespaces an uploaded file under its owner:
// users/<userId>/<unix-millis>-<original-name>. The timestamp prefix
// keeps repeated uploads of the same name from colliding.
func BuildObjectKey(userID, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d-%s", userKeyPrefix, userID, now.UnixMilli(), fileName)
}

// RenameObjectKey computes the destination key for a rename: same
// folder, new name, same extension. The old key must carry both a
// folder segment and an extension or the stored record is corrupt.
func RenameObjectKey(oldKey, newFileName string) (string, error) {
	slash := strings.LastIndexByte(oldKey, '/')
	if slash < 0 {
		return "", fmt.Errorf(errKeyNoFolderFmt, oldKey)
	}
	folder := oldKey[:slash+1]

	dot := strings.LastIndexByte(oldKey, '.')
	if dot <= slash || dot == len(oldKey)-1 {
		return "", fmt.Errorf(errKeyNoExtensionFmt, oldKey)
	}
	extension := oldKey[dot+1:]

	return folder + newFileName + "." + extension, nil
}
