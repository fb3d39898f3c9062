package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens/internal/utils"
)

func TestDocumentServiceUploadValidation(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		mime     string
	}{
		{name: "empty file", fileName: "cv.pdf", size: 0, mime: "application/pdf"},
		{name: "oversized file", fileName: "cv.pdf", size: (10 << 20) + 1, mime: "application/pdf"},
		{name: "disallowed type", fileName: "cv.exe", size: 100, mime: "application/x-msdownload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeDocumentRepo()
			up := newFakeUploader()
			svc := NewDocumentService(repo, up, 10<<20)

			_, err := svc.Upload(context.Background(), "user-1", "profile-1", tt.fileName, tt.size, tt.mime, bytes.NewReader([]byte("data")))
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
			assert.Empty(t, up.objects, "nothing may reach the blob store")
			docs, _ := repo.ListByProfile(context.Background(), "profile-1")
			assert.Empty(t, docs)
		})
	}
}

func TestDocumentServiceUploadDerivesPath(t *testing.T) {
	repo := newFakeDocumentRepo()
	up := newFakeUploader()
	svc := NewDocumentService(repo, up, 10<<20)

	doc, err := svc.Upload(context.Background(), "user-1", "profile-1", "resume.pdf", 1234, "application/pdf", bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	assert.Equal(t, "user-1/profile-1/resume.pdf", doc.StoragePath)
	assert.Contains(t, up.objects, "user-1/profile-1/resume.pdf")

	docs, err := repo.ListByProfile(context.Background(), "profile-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(1234), docs[0].FileSize)
	assert.Equal(t, "application/pdf", docs[0].FileType)
}

func TestDocumentServiceBlobFailureLeavesNoMetadata(t *testing.T) {
	repo := newFakeDocumentRepo()
	up := newFakeUploader()
	up.failOn = "resume.pdf"
	svc := NewDocumentService(repo, up, 10<<20)

	_, err := svc.Upload(context.Background(), "user-1", "profile-1", "resume.pdf", 100, "application/pdf", bytes.NewReader([]byte("%PDF")))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))

	docs, _ := repo.ListByProfile(context.Background(), "profile-1")
	assert.Empty(t, docs, "metadata must not exist without its blob")
}

func TestDocumentServiceMetadataFailureAfterBlobWrite(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.upsertErr = errBlobStore
	up := newFakeUploader()
	svc := NewDocumentService(repo, up, 10<<20)

	_, err := svc.Upload(context.Background(), "user-1", "profile-1", "resume.pdf", 100, "application/pdf", bytes.NewReader([]byte("%PDF")))
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
	// The blob stays; retrying the whole upload overwrites the same path.
	assert.Contains(t, up.objects, "user-1/profile-1/resume.pdf")
}

func TestDocumentServiceSameNameOverwrites(t *testing.T) {
	repo := newFakeDocumentRepo()
	up := newFakeUploader()
	svc := NewDocumentService(repo, up, 10<<20)

	_, err := svc.Upload(context.Background(), "user-1", "profile-1", "resume.pdf", 100, "application/pdf", bytes.NewReader([]byte("v1")))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "user-1", "profile-1", "resume.pdf", 200, "application/pdf", bytes.NewReader([]byte("v2")))
	require.NoError(t, err)

	docs, _ := repo.ListByProfile(context.Background(), "profile-1")
	require.Len(t, docs, 1, "same derived path replaces, never duplicates")
	assert.Equal(t, int64(200), docs[0].FileSize)
}
