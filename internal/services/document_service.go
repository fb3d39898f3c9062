package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/models"
	pgrepo "github.com/careerlens/careerlens/internal/repositories/postgres"
	"github.com/careerlens/careerlens/internal/storage"
	"github.com/careerlens/careerlens/internal/utils"
)

// allowedDocumentTypes is the upload allow-list: pdf, doc, docx, png, jpeg.
var allowedDocumentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/png":  {},
	"image/jpeg": {},
}

type DocumentService interface {
	Upload(ctx context.Context, userID, profileID, fileName string, fileSize int64, mimeType string, r io.Reader) (*models.UploadedDocument, error)
}

type documentService struct {
	repo     pgrepo.DocumentRepository
	uploader storage.Uploader
	maxBytes int64
}

func NewDocumentService(repo pgrepo.DocumentRepository, uploader storage.Uploader, maxBytes int64) DocumentService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &documentService{repo: repo, uploader: uploader, maxBytes: maxBytes}
}

// Upload writes the blob first and the metadata row only on blob success, so
// a row never exists without its object. The object key is derived as
// {user_id}/{profile_id}/{file_name}: re-uploading the same name for the same
// profile overwrites the previous blob, which keeps whole-upload retries
// idempotent at the cost of silently replacing a same-named file.
func (s *documentService) Upload(ctx context.Context, userID, profileID, fileName string, fileSize int64, mimeType string, r io.Reader) (*models.UploadedDocument, error) {
	const op = "DocumentService.Upload"

	if userID == "" || profileID == "" || fileName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id, profile_id, and file_name are required", nil)
	}
	if fileSize <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}
	if fileSize > s.maxBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("file exceeds the %d byte limit", s.maxBytes), nil)
	}
	if _, ok := allowedDocumentTypes[mimeType]; !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("file type %q is not allowed", mimeType), nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	objectName := fmt.Sprintf("%s/%s/%s", userID, profileID, fileName)

	storedPath, err := s.uploader.Upload(ctx, objectName, mimeType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store document", err)
	}

	row := &models.UploadedDocument{
		ID:                uuid.NewString(),
		StrengthProfileID: profileID,
		UserID:            userID,
		FileName:          fileName,
		StoragePath:       storedPath,
		FileSize:          fileSize,
		FileType:          mimeType,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		// The blob stayed behind; the caller may retry the whole upload and
		// overwrite the same derived path.
		return nil, utils.E(utils.CodeInternal, op, "failed to persist document metadata", err)
	}

	return row, nil
}
