package repository

import (
	"context"
	"fmt"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// RelationStore is the shared contract for the three user relations:
// favorites, shopping carts and subscriptions. The target is a recipe ID for
// the first two and an author ID for subscriptions.
type RelationStore interface {
	Add(ctx context.Context, userID, targetID uint) error
	Remove(ctx context.Context, userID, targetID uint) error
	Exists(ctx context.Context, userID, targetID uint) (bool, error)
	ExistingTargets(ctx context.Context, userID uint, targetIDs []uint) (map[uint]bool, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

// relationRepository implements RelationStore for any join model with a
// user_id column and one target column. The unique index on the pair is the
// final arbiter for concurrent adds.
type relationRepository[T any] struct {
	db           *gorm.DB
	resource     string
	targetColumn string
	newRow       func(userID, targetID uint) T
}

// NewFavoriteRepository returns the relation store backing favorites.
func NewFavoriteRepository(db *gorm.DB) RelationStore {
	return &relationRepository[models.Favorite]{
		db:           db,
		resource:     "Favorite",
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uint) models.Favorite {
			return models.Favorite{UserID: userID, RecipeID: targetID}
		},
	}
}

// NewShoppingCartRepository returns the relation store backing shopping carts.
func NewShoppingCartRepository(db *gorm.DB) RelationStore {
	return &relationRepository[models.ShoppingCart]{
		db:           db,
		resource:     "Shopping cart entry",
		targetColumn: "recipe_id",
		newRow: func(userID, targetID uint) models.ShoppingCart {
			return models.ShoppingCart{UserID: userID, RecipeID: targetID}
		},
	}
}

// NewSubscriptionRepository returns the relation store backing subscriptions.
func NewSubscriptionRepository(db *gorm.DB) RelationStore {
	return &relationRepository[models.Subscription]{
		db:           db,
		resource:     "Subscription",
		targetColumn: "author_id",
		newRow: func(userID, targetID uint) models.Subscription {
			return models.Subscription{UserID: userID, AuthorID: targetID}
		},
	}
}

func (r *relationRepository[T]) Add(ctx context.Context, userID, targetID uint) error {
	row := r.newRow(userID, targetID)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError(fmt.Sprintf("%s already exists", r.resource))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationRepository[T]) Remove(ctx context.Context, userID, targetID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND "+r.targetColumn+" = ?", userID, targetID).
		Delete(new(T))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.AppError{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("%s does not exist", r.resource),
		}
	}
	return nil
}

func (r *relationRepository[T]) Exists(ctx context.Context, userID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("user_id = ? AND "+r.targetColumn+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ExistingTargets reports which of the given targets the user is related to,
// in one query. An empty user or target set short-circuits to an empty map.
func (r *relationRepository[T]) ExistingTargets(ctx context.Context, userID uint, targetIDs []uint) (map[uint]bool, error) {
	found := make(map[uint]bool, len(targetIDs))
	if userID == 0 || len(targetIDs) == 0 {
		return found, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("user_id = ? AND "+r.targetColumn+" IN ?", userID, targetIDs).
		Pluck(r.targetColumn, &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}

func (r *relationRepository[T]) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
