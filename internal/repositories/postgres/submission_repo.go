package postgres

import (
	"context"
	"errors"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/utils"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Insert(ctx context.Context, s *models.Submission) error
	Update(ctx context.Context, s *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
}

type submissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Insert(ctx context.Context, s *models.Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *submissionRepo) Update(ctx context.Context, s *models.Submission) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	var row models.Submission
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
