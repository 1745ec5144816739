package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"filevault/internal/auth"
	"filevault/internal/domain/file"
	"filevault/internal/infra/s3"
	apperrors "filevault/pkg/errors"
	"filevault/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FileHandler orchestrates the per-request file workflows: every
// operation is a short fixed sequence of calls against the object store
// and the metadata table, scoped to the authenticated user.
type FileHandler struct {
	store   FileStore
	storage ObjectStorage
	now     func() time.Time
}

func NewFileHandler(store FileStore, storage ObjectStorage) *FileHandler {
	return &FileHandler{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

type uploadedFile struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
	S3Path   string `json:"s3Path"`
}

type uploadResponse struct {
	Message       string         `json:"message"`
	UploadedFiles []uploadedFile `json:"uploadedFiles"`
}

// Upload stores each file's bytes first and writes its metadata record
// second. A blob failure leaves no record; a metadata failure leaves an
// orphaned blob, which is logged and reported as a failed upload.
func (h *FileHandler) Upload(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgNoFilesUploaded)
	}

	files := form.File[multipartFieldFiles]
	if err := validator.BatchSize(len(files)); err != nil {
		if len(files) == 0 {
			return respondError(c, http.StatusBadRequest, msgNoFilesUploaded)
		}
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	// Reject the whole batch before any bytes are stored.
	for _, header := range files {
		name := filepath.Base(header.Filename)
		if err := validator.FileName(name); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		if err := validator.FileSize(header.Size); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		if err := validator.FileType(name, header.Header.Get(echo.HeaderContentType)); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	ctx := c.Request().Context()
	uploaded := make([]uploadedFile, 0, len(files))

	for _, header := range files {
		name := filepath.Base(header.Filename)
		contentType := header.Header.Get(echo.HeaderContentType)

		src, err := header.Open()
		if err != nil {
			c.Logger().Errorf("failed to open multipart file %q: %v", name, err)
			return respondError(c, http.StatusInternalServerError, msgUploadFailed)
		}

		objectKey := s3.BuildObjectKey(userID, name, h.now())

		err = h.storage.Upload(ctx, objectKey, src, contentType)
		src.Close()
		if err != nil {
			c.Logger().Errorf("failed to upload %q to object store: %v", name, err)
			return respondError(c, http.StatusInternalServerError, msgUploadFailed)
		}

		record := &file.Record{
			FileID:     uuid.NewString(),
			UserID:     userID,
			FileName:   name,
			FileSize:   header.Size,
			FileType:   contentType,
			UploadDate: h.now().UTC().Format(time.RFC3339),
			S3Path:     objectKey,
			Visibility: file.VisibilityPrivate,
			SharedWith: []string{},
			Version:    1,
		}

		if err := h.store.PutRecord(ctx, record); err != nil {
			// The blob is already durable; without its record it is
			// orphaned and invisible to listings.
			c.Logger().Errorf("metadata write failed after blob write, orphaned key %q: %v", objectKey, err)
			return respondError(c, http.StatusInternalServerError, msgUploadFailed)
		}

		uploaded = append(uploaded, uploadedFile{
			FileID:   record.FileID,
			FileName: record.FileName,
			S3Path:   record.S3Path,
		})
	}

	return c.JSON(http.StatusOK, uploadResponse{
		Message:       msgFilesUploaded,
		UploadedFiles: uploaded,
	})
}

// List returns every record owned by the caller, verbatim.
func (h *FileHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	records, err := h.store.QueryByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("failed to query files for user %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			jsonKeySuccess: false,
			jsonKeyMessage: msgListFilesFailed,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		jsonKeySuccess: true,
		jsonKeyFiles:   records,
	})
}

// Download mints a short-lived signed URL for one owned file. The blob
// itself is not checked; a dangling record yields a URL that 404s at
// fetch time.
func (h *FileHandler) Download(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	fileID := c.Param(paramFileID)

	record, err := h.store.GetRecord(c.Request().Context(), userID, fileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgFileNotFound)
		}
		c.Logger().Errorf("failed to fetch record %s/%s: %v", userID, fileID, err)
		return respondError(c, http.StatusInternalServerError, msgDownloadURLFailed)
	}

	downloadURL, err := h.storage.PresignDownloadURL(c.Request().Context(), record.S3Path)
	if err != nil {
		c.Logger().Errorf("failed to presign %q: %v", record.S3Path, err)
		return respondError(c, http.StatusInternalServerError, msgDownloadURLFailed)
	}

	return c.JSON(http.StatusOK, map[string]string{jsonKeyDownloadURL: downloadURL})
}

type renameRequest struct {
	FileID      string `json:"fileId"`
	NewFileName string `json:"newFileName"`
}

type renameResponse struct {
	Message     string `json:"message"`
	NewFileName string `json:"newFileName"`
}

// Rename copies the blob to its new key, repoints the record, then
// deletes the old blob. The metadata update happens before the old-key
// delete so every failure leaves the record referencing a blob that
// exists: a copy failure changes nothing, a metadata failure removes
// the fresh copy again, and a failed old-key delete leaves only an
// orphaned blob behind.
func (h *FileHandler) Rename(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req renameRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.FileID == "" || req.NewFileName == "" {
		return respondError(c, http.StatusBadRequest, msgRenameFieldsMissing)
	}

	if err := validator.FileName(req.NewFileName); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	record, err := h.store.GetRecord(ctx, userID, req.FileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgFileNotFound)
		}
		c.Logger().Errorf("failed to fetch record %s/%s: %v", userID, req.FileID, err)
		return respondError(c, http.StatusInternalServerError, msgRenameFailed)
	}

	newKey, err := s3.RenameObjectKey(record.S3Path, req.NewFileName)
	if err != nil {
		c.Logger().Errorf("stored key unusable for rename: %v", err)
		return respondError(c, http.StatusInternalServerError, msgInvalidFileKey)
	}

	if err := h.storage.CopyObject(ctx, record.S3Path, newKey); err != nil {
		c.Logger().Errorf("failed to copy %q to %q: %v", record.S3Path, newKey, err)
		return respondError(c, http.StatusInternalServerError, msgRenameFailed)
	}

	updateErr := h.store.UpdateRename(ctx, file.RenameInput{
		UserID:          userID,
		FileID:          req.FileID,
		NewFileName:     req.NewFileName,
		NewS3Path:       newKey,
		ExpectedVersion: record.Version,
	})
	if updateErr != nil {
		// The record still points at the old key; remove the copy so
		// the rename leaves no trace.
		if cleanupErr := h.storage.DeleteObject(ctx, newKey); cleanupErr != nil {
			c.Logger().Errorf("failed to clean up copied key %q: %v", newKey, cleanupErr)
		}
		if errors.Is(updateErr, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgVersionConflict)
		}
		c.Logger().Errorf("failed to update record %s/%s: %v", userID, req.FileID, updateErr)
		return respondError(c, http.StatusInternalServerError, msgRenameFailed)
	}

	if err := h.storage.DeleteObject(ctx, record.S3Path); err != nil {
		// Record already points at the new key; the old blob is merely
		// orphaned.
		c.Logger().Errorf("failed to delete old key %q after rename: %v", record.S3Path, err)
	}

	return c.JSON(http.StatusOK, renameResponse{
		Message:     msgFileRenamed,
		NewFileName: req.NewFileName,
	})
}

// Delete removes the blob first and the record second. If the blob
// delete fails the record stays and the operation reports failure;
// nothing is ever half-deleted and reported as success.
func (h *FileHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	fileID := c.Param(paramFileID)
	ctx := c.Request().Context()

	record, err := h.store.GetRecord(ctx, userID, fileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgFileNotFound)
		}
		c.Logger().Errorf("failed to fetch record %s/%s: %v", userID, fileID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteFailed)
	}

	if err := h.storage.DeleteObject(ctx, record.S3Path); err != nil {
		c.Logger().Errorf("failed to delete blob %q: %v", record.S3Path, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteFailed)
	}

	err = h.store.DeleteRecord(ctx, file.DeleteInput{
		UserID:          userID,
		FileID:          fileID,
		ExpectedVersion: record.Version,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgVersionConflict)
		}
		c.Logger().Errorf("failed to delete record %s/%s: %v", userID, fileID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteFailed)
	}

	return respondMessage(c, http.StatusOK, msgFileDeleted)
}
