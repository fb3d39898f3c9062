package postgres

import (
	"context"
	"errors"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/utils"
	"gorm.io/gorm"
)

type StrengthProfileRepository interface {
	// CreateWithEntries writes the profile row and all entry rows in one
	// transaction; either everything is visible or nothing is.
	CreateWithEntries(ctx context.Context, p *models.StrengthProfile, technical, soft []models.SkillEntry, interests []models.CareerInterest) error
	GetByID(ctx context.Context, id string) (*models.StrengthProfile, error)
	LatestByUser(ctx context.Context, userID string) (*models.StrengthProfile, error)
	ListSkills(ctx context.Context, profileID string, kind models.SkillKind) ([]models.SkillEntry, error)
	ListInterests(ctx context.Context, profileID string) ([]models.CareerInterest, error)
	AddSkills(ctx context.Context, kind models.SkillKind, rows []models.SkillEntry) error
	AddInterests(ctx context.Context, rows []models.CareerInterest) error
}

type strengthProfileRepo struct {
	db *gorm.DB
}

func NewStrengthProfileRepo(db *gorm.DB) StrengthProfileRepository {
	return &strengthProfileRepo{db: db}
}

func skillTable(kind models.SkillKind) string {
	if kind == models.SkillKindSoft {
		return "soft_skills"
	}
	return "technical_skills"
}

func (r *strengthProfileRepo) CreateWithEntries(ctx context.Context, p *models.StrengthProfile, technical, soft []models.SkillEntry, interests []models.CareerInterest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if len(technical) > 0 {
			if err := tx.Table(skillTable(models.SkillKindTechnical)).Create(&technical).Error; err != nil {
				return err
			}
		}
		if len(soft) > 0 {
			if err := tx.Table(skillTable(models.SkillKindSoft)).Create(&soft).Error; err != nil {
				return err
			}
		}
		if len(interests) > 0 {
			if err := tx.Create(&interests).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *strengthProfileRepo) GetByID(ctx context.Context, id string) (*models.StrengthProfile, error) {
	var p models.StrengthProfile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.loadEntries(ctx, &p)
}

func (r *strengthProfileRepo) LatestByUser(ctx context.Context, userID string) (*models.StrengthProfile, error) {
	var p models.StrengthProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.loadEntries(ctx, &p)
}

func (r *strengthProfileRepo) loadEntries(ctx context.Context, p *models.StrengthProfile) (*models.StrengthProfile, error) {
	var err error
	if p.TechnicalSkills, err = r.ListSkills(ctx, p.ID, models.SkillKindTechnical); err != nil {
		return nil, err
	}
	if p.SoftSkills, err = r.ListSkills(ctx, p.ID, models.SkillKindSoft); err != nil {
		return nil, err
	}
	if p.CareerInterests, err = r.ListInterests(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *strengthProfileRepo) ListSkills(ctx context.Context, profileID string, kind models.SkillKind) ([]models.SkillEntry, error) {
	var rows []models.SkillEntry
	err := r.db.WithContext(ctx).
		Table(skillTable(kind)).
		Where("strength_profile_id = ?", profileID).
		Order("order_index ASC").
		Find(&rows).Error
	return rows, err
}

func (r *strengthProfileRepo) ListInterests(ctx context.Context, profileID string) ([]models.CareerInterest, error) {
	var rows []models.CareerInterest
	err := r.db.WithContext(ctx).
		Where("strength_profile_id = ?", profileID).
		Order("order_index ASC").
		Find(&rows).Error
	return rows, err
}

func (r *strengthProfileRepo) AddSkills(ctx context.Context, kind models.SkillKind, rows []models.SkillEntry) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Table(skillTable(kind)).Create(&rows).Error
}

func (r *strengthProfileRepo) AddInterests(ctx context.Context, rows []models.CareerInterest) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
