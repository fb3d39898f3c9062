package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/careerlens/careerlens/internal/cache"
	"github.com/careerlens/careerlens/internal/models"
	pgrepo "github.com/careerlens/careerlens/internal/repositories/postgres"
	"github.com/careerlens/careerlens/internal/utils"
)

type AnalysisStore interface {
	// Save always inserts; a retried analysis appends a newer row and readers
	// resolve by created_at.
	Save(ctx context.Context, userID, profileID string, data *models.AnalysisData) (*models.AIAnalysis, error)
	// GetLatest returns the newest row for the user. A user with no analysis
	// yet gets a NOT_FOUND coded error, which the HTTP layer maps to 404.
	GetLatest(ctx context.Context, userID string) (*models.AIAnalysis, error)
}

type analysisStore struct {
	analyses pgrepo.AnalysisRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewAnalysisStore(analyses pgrepo.AnalysisRepository, c cache.Cache, cacheTTL time.Duration) AnalysisStore {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &analysisStore{analyses: analyses, cache: c, cacheTTL: cacheTTL}
}

func latestAnalysisKey(userID string) string { return "analysis:latest:" + userID }

func (s *analysisStore) Save(ctx context.Context, userID, profileID string, data *models.AnalysisData) (*models.AIAnalysis, error) {
	const op = "AnalysisStore.Save"

	if userID == "" || profileID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and profile_id are required", nil)
	}
	if data == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "analysis data is required", nil)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode analysis data", err)
	}

	row := &models.AIAnalysis{
		ID:                uuid.NewString(),
		UserID:            userID,
		StrengthProfileID: profileID,
		AnalysisData:      datatypes.JSON(payload),
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.analyses.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist analysis", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, latestAnalysisKey(userID), row, s.cacheTTL)
	}
	return row, nil
}

func (s *analysisStore) GetLatest(ctx context.Context, userID string) (*models.AIAnalysis, error) {
	const op = "AnalysisStore.GetLatest"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached models.AIAnalysis
		if hit, err := s.cache.GetJSON(ctx, latestAnalysisKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.analyses.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no analysis found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get latest analysis", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, latestAnalysisKey(userID), row, s.cacheTTL)
	}
	return row, nil
}
