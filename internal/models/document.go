package models

import "time"

// UploadedDocument is metadata for one stored blob. The row is written only
// after the blob write succeeded, so metadata never points at a missing object.
type UploadedDocument struct {
	ID                string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StrengthProfileID string    `gorm:"column:strength_profile_id;type:uuid;index;uniqueIndex:ux_document_path,priority:1" json:"strength_profile_id"`
	UserID            string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	FileName          string    `gorm:"column:file_name;type:text" json:"file_name"`
	StoragePath       string    `gorm:"column:storage_path;type:text;uniqueIndex:ux_document_path,priority:2" json:"storage_path"`
	FileSize          int64     `gorm:"column:file_size" json:"file_size"`
	FileType          string    `gorm:"column:file_type;type:text" json:"file_type"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`

	// Short-lived signed URL, attached at read time, never stored.
	DownloadURL string `gorm:"-" json:"download_url,omitempty"`
}

func (UploadedDocument) TableName() string { return "uploaded_documents" }
