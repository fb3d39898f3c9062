package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// AIAnalysis is one generated career analysis. Rows are append-only; a user
// accumulates one row per completed analysis and readers take the latest.
type AIAnalysis struct {
	ID                string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID            string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	StrengthProfileID string         `gorm:"column:strength_profile_id;type:uuid;index" json:"strength_profile_id"`
	AnalysisData      datatypes.JSON `gorm:"column:analysis_data;type:jsonb" json:"analysis_data"`
	CreatedAt         time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (AIAnalysis) TableName() string { return "ai_analyses" }

// AnalysisData is the output contract of the language model:
// {
//   "personalityPattern": string,
//   "topAdvantage": string,
//   "naturalTendencies": string,
//   "skillsRadar": { "technical": 0-100, ... six dimensions },
//   "recommendedRoles": [ exactly 3 of
//     { "title", "matchScore" 0-100, "skills" [string], "department", "reasoning" } ]
// }
// Score fields are pointers so that a missing field is distinguishable from a
// legitimate zero.
type AnalysisData struct {
	PersonalityPattern string            `json:"personalityPattern"`
	TopAdvantage       string            `json:"topAdvantage"`
	NaturalTendencies  string            `json:"naturalTendencies"`
	SkillsRadar        *SkillsRadar      `json:"skillsRadar"`
	RecommendedRoles   []RecommendedRole `json:"recommendedRoles"`
}

type SkillsRadar struct {
	Technical      *int `json:"technical"`
	Communication  *int `json:"communication"`
	Leadership     *int `json:"leadership"`
	Creativity     *int `json:"creativity"`
	ProblemSolving *int `json:"problemSolving"`
	Adaptability   *int `json:"adaptability"`
}

type RecommendedRole struct {
	Title      string   `json:"title"`
	MatchScore *int     `json:"matchScore"`
	Skills     []string `json:"skills"`
	Department string   `json:"department"`
	Reasoning  string   `json:"reasoning"`
}

const recommendedRoleCount = 3

// Validate rejects any payload that does not match the contract above.
func (d *AnalysisData) Validate() error {
	if d.PersonalityPattern == "" {
		return fmt.Errorf("personalityPattern is required")
	}
	if d.TopAdvantage == "" {
		return fmt.Errorf("topAdvantage is required")
	}
	if d.NaturalTendencies == "" {
		return fmt.Errorf("naturalTendencies is required")
	}
	if d.SkillsRadar == nil {
		return fmt.Errorf("skillsRadar is required")
	}
	if err := d.SkillsRadar.validate(); err != nil {
		return err
	}
	if len(d.RecommendedRoles) != recommendedRoleCount {
		return fmt.Errorf("recommendedRoles must have exactly %d entries, got %d", recommendedRoleCount, len(d.RecommendedRoles))
	}
	for i := range d.RecommendedRoles {
		if err := d.RecommendedRoles[i].validate(); err != nil {
			return fmt.Errorf("recommendedRoles[%d]: %w", i, err)
		}
	}
	return nil
}

func (r *SkillsRadar) validate() error {
	dims := map[string]*int{
		"technical":      r.Technical,
		"communication":  r.Communication,
		"leadership":     r.Leadership,
		"creativity":     r.Creativity,
		"problemSolving": r.ProblemSolving,
		"adaptability":   r.Adaptability,
	}
	for name, v := range dims {
		if err := scoreInRange(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *RecommendedRole) validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if err := scoreInRange("matchScore", r.MatchScore); err != nil {
		return err
	}
	if len(r.Skills) == 0 {
		return fmt.Errorf("skills must not be empty")
	}
	for _, s := range r.Skills {
		if s == "" {
			return fmt.Errorf("skills must not contain empty strings")
		}
	}
	if r.Department == "" {
		return fmt.Errorf("department is required")
	}
	if r.Reasoning == "" {
		return fmt.Errorf("reasoning is required")
	}
	return nil
}

func scoreInRange(name string, v *int) error {
	if v == nil {
		return fmt.Errorf("%s is required", name)
	}
	if *v < 0 || *v > 100 {
		return fmt.Errorf("%s must be in [0,100], got %d", name, *v)
	}
	return nil
}
