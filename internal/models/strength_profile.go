package models

import "time"

type WorkStyle string

const (
	WorkStyleAutonomous    WorkStyle = "autonomous"
	WorkStyleStructured    WorkStyle = "structured"
	WorkStyleCollaborative WorkStyle = "collaborative"
	WorkStyleFastPaced     WorkStyle = "fast-paced"
)

func (w WorkStyle) Valid() bool {
	switch w {
	case WorkStyleAutonomous, WorkStyleStructured, WorkStyleCollaborative, WorkStyleFastPaced:
		return true
	}
	return false
}

// SkillKind selects which of the two parallel skill tables a row belongs to.
type SkillKind string

const (
	SkillKindTechnical SkillKind = "technical"
	SkillKindSoft      SkillKind = "soft"
)

// StrengthProfile is one submission event. Rows are never mutated after
// creation; a resubmission creates a new profile and "latest" wins.
type StrengthProfile struct {
	ID        string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	WorkStyle *WorkStyle `gorm:"column:work_style;type:text" json:"work_style,omitempty"`
	Completed bool       `gorm:"column:completed" json:"completed"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`

	// Loaded explicitly by the repository, ordered by order_index.
	TechnicalSkills []SkillEntry       `gorm:"-" json:"technical_skills"`
	SoftSkills      []SkillEntry       `gorm:"-" json:"soft_skills"`
	CareerInterests []CareerInterest   `gorm:"-" json:"career_interests"`
	Documents       []UploadedDocument `gorm:"-" json:"documents,omitempty"`
}

func (StrengthProfile) TableName() string { return "strength_profiles" }

// SkillEntry is the shared row shape of the technical_skills and soft_skills
// tables; the repository picks the table from the SkillKind.
type SkillEntry struct {
	ID                string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StrengthProfileID string `gorm:"column:strength_profile_id;type:uuid;index" json:"strength_profile_id"`
	SkillName         string `gorm:"column:skill_name;type:text" json:"skill_name"`
	OrderIndex        int    `gorm:"column:order_index" json:"order_index"` // 1-based user-entry order
}

type CareerInterest struct {
	ID                string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StrengthProfileID string `gorm:"column:strength_profile_id;type:uuid;index" json:"strength_profile_id"`
	InterestName      string `gorm:"column:interest_name;type:text" json:"interest_name"`
	OrderIndex        int    `gorm:"column:order_index" json:"order_index"`
}

func (CareerInterest) TableName() string { return "career_interests" }
