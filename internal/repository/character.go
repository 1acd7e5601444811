// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"guidepost/internal/cache"
	"guidepost/internal/models"

	"gorm.io/gorm"
)

// CharacterRepository defines read-only access to the character directory.
type CharacterRepository interface {
	GetByName(ctx context.Context, name string) (*models.Character, error)
	GetByID(ctx context.Context, id uint) (*models.Character, error)
	List(ctx context.Context) ([]models.Character, error)
}

type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository creates a new character repository.
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

// GetByName resolves a character by exact display name, cache-aside.
func (r *characterRepository) GetByName(ctx context.Context, name string) (*models.Character, error) {
	var character models.Character
	err := cache.Aside(ctx, cache.CharacterKey(name), &character, cache.CharacterTTL, func() error {
		return r.db.WithContext(ctx).Where("name = ?", name).First(&character).Error
	})
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	if err := r.db.WithContext(ctx).First(&character, id).Error; err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) List(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	err := cache.Aside(ctx, cache.CharacterListKey(), &characters, cache.CharacterListTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&characters).Error
	})
	if err != nil {
		return nil, err
	}
	return characters, nil
}
