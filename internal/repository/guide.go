package repository

import (
	"context"
	"errors"

	"guidepost/internal/models"

	"gorm.io/gorm"
)

// ErrGuideNotFound is returned when a guide id does not resolve to a live record.
var ErrGuideNotFound = errors.New("guide not found")

// GuideRepository owns guide records and their pending/approved/rejected
// state machine. It is the only component with write access to guide status.
type GuideRepository interface {
	Create(ctx context.Context, guide *models.Guide) error
	GetByID(ctx context.Context, id uint) (*models.Guide, error)
	ListByStatus(ctx context.Context, status string) ([]models.Guide, error)
	Approve(ctx context.Context, id uint) (*models.Guide, error)
	Reject(ctx context.Context, id uint) error
}

type guideRepository struct {
	db *gorm.DB
}

// NewGuideRepository creates a new guide repository.
func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) Create(ctx context.Context, guide *models.Guide) error {
	guide.Status = models.GuideStatusPending
	return r.db.WithContext(ctx).Create(guide).Error
}

func (r *guideRepository) GetByID(ctx context.Context, id uint) (*models.Guide, error) {
	var guide models.Guide
	err := r.db.WithContext(ctx).Preload("Character").First(&guide, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) ListByStatus(ctx context.Context, status string) ([]models.Guide, error) {
	var guides []models.Guide
	err := r.db.WithContext(ctx).
		Preload("Character").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&guides).Error
	if err != nil {
		return nil, err
	}
	return guides, nil
}

// Approve transitions a guide to approved. Approving an already-approved
// guide is a no-op that still succeeds.
func (r *guideRepository) Approve(ctx context.Context, id uint) (*models.Guide, error) {
	var guide models.Guide
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Character").First(&guide, id).Error; err != nil {
			return err
		}
		if guide.Status == models.GuideStatusApproved {
			return nil
		}
		if err := tx.Model(&guide).Update("status", models.GuideStatusApproved).Error; err != nil {
			return err
		}
		guide.Status = models.GuideStatusApproved
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGuideNotFound
	}
	if err != nil {
		return nil, err
	}
	return &guide, nil
}

// Reject marks the guide rejected and soft-deletes it in one transaction.
// The row stays archived in the table, but every read path surfaces it as
// not found from this point on.
func (r *guideRepository) Reject(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.First(&guide, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&guide).Update("status", models.GuideStatusRejected).Error; err != nil {
			return err
		}
		return tx.Delete(&guide).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrGuideNotFound
	}
	return err
}
