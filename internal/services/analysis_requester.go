package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/providers/llm"
	pgrepo "github.com/careerlens/careerlens/internal/repositories/postgres"
	"github.com/careerlens/careerlens/internal/utils"
)

const analysisSystemPrompt = "You are a career development expert specializing in personality assessment and career matching."

const analysisPromptTemplate = `You are a career development expert. Analyze the following user profile and provide a comprehensive career analysis.

User Profile:
- Technical Skills: %s
- Soft Skills: %s
- Career Interests: %s
- Work Style Preference: %s

Provide a detailed analysis in the following JSON format:
{
  "personalityPattern": "A 2-3 sentence analysis using the Big Five personality framework",
  "topAdvantage": "A 2-3 sentence description of their unique strengths",
  "naturalTendencies": "A 2-3 sentence description of their work preferences and environment",
  "skillsRadar": {
    "technical": 0-100,
    "communication": 0-100,
    "leadership": 0-100,
    "creativity": 0-100,
    "problemSolving": 0-100,
    "adaptability": 0-100
  },
  "recommendedRoles": [
    {
      "title": "Role title",
      "matchScore": 0-100,
      "skills": ["skill1", "skill2", "skill3", "skill4"],
      "department": "Department name",
      "reasoning": "Why this role is a good fit"
    }
  ]
}

Provide exactly 3 recommended roles. Be specific and insightful.
Your response must be a single JSON object. Do not include explanations, markdown, or text before or after the JSON.`

type AnalysisRequester interface {
	// Request builds the prompt from the stored profile, calls the language
	// model, and returns the validated payload. It never persists anything.
	Request(ctx context.Context, profileID string) (*models.AnalysisData, error)
}

type analysisRequester struct {
	profiles pgrepo.StrengthProfileRepository
	provider llm.Provider
	timeout  time.Duration
}

func NewAnalysisRequester(profiles pgrepo.StrengthProfileRepository, provider llm.Provider, timeout time.Duration) AnalysisRequester {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &analysisRequester{profiles: profiles, provider: provider, timeout: timeout}
}

func (s *analysisRequester) Request(ctx context.Context, profileID string) (*models.AnalysisData, error) {
	const op = "AnalysisRequester.Request"

	if profileID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "profile_id is required", nil)
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "strength profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load strength profile", err)
	}

	prompt := buildAnalysisPrompt(p)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.GenerateJSON(callCtx, analysisSystemPrompt, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, utils.E(utils.CodeUpstreamFormat, op, "model returned an empty completion", err)
		}
		return nil, utils.E(utils.CodeUnavailable, op, "language model call failed", err)
	}

	var data models.AnalysisData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, utils.E(utils.CodeUpstreamFormat, op, "model response is not valid JSON", err)
	}
	if err := data.Validate(); err != nil {
		return nil, utils.E(utils.CodeUpstreamFormat, op, "model response violates the analysis contract", err)
	}

	return &data, nil
}

// buildAnalysisPrompt is deterministic for a given profile: comma-joined
// entries in stored order, with "None" for empty lists and "Not specified"
// for an unset work style.
func buildAnalysisPrompt(p *models.StrengthProfile) string {
	technical := make([]string, 0, len(p.TechnicalSkills))
	for _, e := range p.TechnicalSkills {
		technical = append(technical, e.SkillName)
	}
	soft := make([]string, 0, len(p.SoftSkills))
	for _, e := range p.SoftSkills {
		soft = append(soft, e.SkillName)
	}
	interests := make([]string, 0, len(p.CareerInterests))
	for _, e := range p.CareerInterests {
		interests = append(interests, e.InterestName)
	}

	workStyle := "Not specified"
	if p.WorkStyle != nil {
		workStyle = string(*p.WorkStyle)
	}

	return fmt.Sprintf(analysisPromptTemplate,
		joinOrNone(technical),
		joinOrNone(soft),
		joinOrNone(interests),
		workStyle,
	)
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
