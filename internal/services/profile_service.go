package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerlens/careerlens/internal/models"
	pgrepo "github.com/careerlens/careerlens/internal/repositories/postgres"
	"github.com/careerlens/careerlens/internal/utils"
)

const maxEntryNameLen = 64

type ProfileService interface {
	// Create writes the profile and every skill/interest row atomically.
	Create(ctx context.Context, userID, workStyle string, technical, soft, interests []string) (*models.StrengthProfile, error)
	AddSkills(ctx context.Context, profileID string, kind models.SkillKind, names []string) error
	AddInterests(ctx context.Context, profileID string, names []string) error
	// GetByID is owner-scoped: a profile belonging to another user reads as
	// not found.
	GetByID(ctx context.Context, userID, profileID string) (*models.StrengthProfile, error)
	GetLatest(ctx context.Context, userID string) (*models.StrengthProfile, error)
}

type profileService struct {
	profiles  pgrepo.StrengthProfileRepository
	documents pgrepo.DocumentRepository
	skillCap  int
}

func NewProfileService(profiles pgrepo.StrengthProfileRepository, documents pgrepo.DocumentRepository, skillCap int) ProfileService {
	if skillCap <= 0 {
		skillCap = 5
	}
	return &profileService{profiles: profiles, documents: documents, skillCap: skillCap}
}

func (s *profileService) Create(ctx context.Context, userID, workStyle string, technical, soft, interests []string) (*models.StrengthProfile, error) {
	const op = "ProfileService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	var style *models.WorkStyle
	if workStyle != "" {
		ws := models.WorkStyle(workStyle)
		if !ws.Valid() {
			return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("invalid work_style %q", workStyle), nil)
		}
		style = &ws
	}

	technical, err := cleanEntryNames("technical skill", technical, nil, s.skillCap)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}
	soft, err = cleanEntryNames("soft skill", soft, nil, s.skillCap)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}
	interests, err = cleanEntryNames("career interest", interests, nil, s.skillCap)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	p := &models.StrengthProfile{
		ID:        uuid.NewString(),
		UserID:    userID,
		WorkStyle: style,
		Completed: true,
		CreatedAt: time.Now().UTC(),
	}
	p.TechnicalSkills = skillRows(p.ID, technical, 0)
	p.SoftSkills = skillRows(p.ID, soft, 0)
	p.CareerInterests = interestRows(p.ID, interests, 0)

	if err := s.profiles.CreateWithEntries(ctx, p, p.TechnicalSkills, p.SoftSkills, p.CareerInterests); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create strength profile", err)
	}
	return p, nil
}

func (s *profileService) AddSkills(ctx context.Context, profileID string, kind models.SkillKind, names []string) error {
	const op = "ProfileService.AddSkills"

	if profileID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile_id is required", nil)
	}

	existing, err := s.profiles.ListSkills(ctx, profileID, kind)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to load existing skills", err)
	}
	stored := make([]string, 0, len(existing))
	for _, e := range existing {
		stored = append(stored, e.SkillName)
	}

	names, err = cleanEntryNames(string(kind)+" skill", names, stored, s.skillCap)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	if err := s.profiles.AddSkills(ctx, kind, skillRows(profileID, names, len(existing))); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to add skills", err)
	}
	return nil
}

func (s *profileService) AddInterests(ctx context.Context, profileID string, names []string) error {
	const op = "ProfileService.AddInterests"

	if profileID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile_id is required", nil)
	}

	existing, err := s.profiles.ListInterests(ctx, profileID)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to load existing interests", err)
	}
	stored := make([]string, 0, len(existing))
	for _, e := range existing {
		stored = append(stored, e.InterestName)
	}

	names, err = cleanEntryNames("career interest", names, stored, s.skillCap)
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	if err := s.profiles.AddInterests(ctx, interestRows(profileID, names, len(existing))); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to add interests", err)
	}
	return nil
}

func (s *profileService) GetByID(ctx context.Context, userID, profileID string) (*models.StrengthProfile, error) {
	const op = "ProfileService.GetByID"

	if userID == "" || profileID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and profile_id are required", nil)
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "strength profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	if p.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "strength profile not found", nil)
	}
	return p, nil
}

func (s *profileService) GetLatest(ctx context.Context, userID string) (*models.StrengthProfile, error) {
	const op = "ProfileService.GetLatest"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no strength profile found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get latest profile", err)
	}

	if s.documents != nil {
		docs, err := s.documents.ListByProfile(ctx, p.ID)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to list documents", err)
		}
		p.Documents = docs
	}
	return p, nil
}

// cleanEntryNames trims the incoming names and enforces the intake policy:
// the per-kind cap over stored+new, non-empty names, the length ceiling, and
// case-insensitive uniqueness across both the call and the stored set.
func cleanEntryNames(label string, names, stored []string, limit int) ([]string, error) {
	if len(stored)+len(names) > limit {
		return nil, fmt.Errorf("at most %d %s entries are allowed per profile", limit, label)
	}

	seen := make(map[string]struct{}, len(stored)+len(names))
	for _, s := range stored {
		seen[strings.ToLower(s)] = struct{}{}
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("%s name must not be empty", label)
		}
		if len(n) > maxEntryNameLen {
			return nil, fmt.Errorf("%s name exceeds %d characters", label, maxEntryNameLen)
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate %s name %q", label, n)
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

func skillRows(profileID string, names []string, offset int) []models.SkillEntry {
	rows := make([]models.SkillEntry, 0, len(names))
	for i, n := range names {
		rows = append(rows, models.SkillEntry{
			ID:                uuid.NewString(),
			StrengthProfileID: profileID,
			SkillName:         n,
			OrderIndex:        offset + i + 1,
		})
	}
	return rows
}

func interestRows(profileID string, names []string, offset int) []models.CareerInterest {
	rows := make([]models.CareerInterest, 0, len(names))
	for i, n := range names {
		rows = append(rows, models.CareerInterest{
			ID:                uuid.NewString(),
			StrengthProfileID: profileID,
			InterestName:      n,
			OrderIndex:        offset + i + 1,
		})
	}
	return rows
}
