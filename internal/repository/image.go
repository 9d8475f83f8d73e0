package repository

import (
	"context"
	"errors"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// ImageRepository stores decoded recipe images served under /media/recipes/.
type ImageRepository interface {
	Create(ctx context.Context, image *models.RecipeImage) error
	GetByKey(ctx context.Context, key string) (*models.RecipeImage, error)
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository returns a new ImageRepository implementation.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.RecipeImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *imageRepository) GetByKey(ctx context.Context, key string) (*models.RecipeImage, error) {
	var image models.RecipeImage
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", key)
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}
