package models

import "time"

type SubmissionState string

const (
	SubmissionStateIntake            SubmissionState = "intake"
	SubmissionStateProfileSaved      SubmissionState = "profile_saved"
	SubmissionStateDocumentsSaved    SubmissionState = "documents_saved"
	SubmissionStateAnalysisRequested SubmissionState = "analysis_requested"
	SubmissionStateAnalysisSaved     SubmissionState = "analysis_saved"
	SubmissionStateIntakeFailed      SubmissionState = "intake_failed"
)

// Submission is the durable trace of one pipeline run, so a client that lost
// its local state can query where its submission stopped.
type Submission struct {
	ID                string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID            string          `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	StrengthProfileID *string         `gorm:"column:strength_profile_id;type:uuid" json:"strength_profile_id,omitempty"`
	State             SubmissionState `gorm:"column:state;type:text" json:"state"`
	Failure           string          `gorm:"column:failure;type:text" json:"failure,omitempty"`
	CreatedAt         time.Time       `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Submission) TableName() string { return "submissions" }
