package postgres

import (
	"context"
	"errors"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/utils"
	"gorm.io/gorm"
)

type AnalysisRepository interface {
	// Insert only; analyses are never updated, newer rows supersede older ones.
	Insert(ctx context.Context, a *models.AIAnalysis) error
	LatestByUser(ctx context.Context, userID string) (*models.AIAnalysis, error)
}

type analysisRepo struct {
	db *gorm.DB
}

func NewAnalysisRepo(db *gorm.DB) AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Insert(ctx context.Context, a *models.AIAnalysis) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *analysisRepo) LatestByUser(ctx context.Context, userID string) (*models.AIAnalysis, error) {
	var row models.AIAnalysis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
