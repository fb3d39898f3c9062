package postgres

import (
	"context"

	"github.com/careerlens/careerlens/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository interface {
	// Upsert keys on (strength_profile_id, storage_path): re-uploading the
	// same file name for the same profile replaces the metadata row, matching
	// the deterministic-overwrite policy of the blob store.
	Upsert(ctx context.Context, d *models.UploadedDocument) error
	ListByProfile(ctx context.Context, profileID string) ([]models.UploadedDocument, error)
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Upsert(ctx context.Context, d *models.UploadedDocument) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "strength_profile_id"}, {Name: "storage_path"}},
			DoUpdates: clause.AssignmentColumns([]string{"file_name", "file_size", "file_type", "created_at"}),
		}).
		Create(d).Error
}

func (r *documentRepo) ListByProfile(ctx context.Context, profileID string) ([]models.UploadedDocument, error) {
	var rows []models.UploadedDocument
	err := r.db.WithContext(ctx).
		Where("strength_profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
