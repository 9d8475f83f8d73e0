package service

import (
	"context"

	"foodgram/internal/middleware"
	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// RelationService provides the favorite, shopping cart and subscription
// relations. All three share add/remove semantics: adding twice conflicts,
// removing an absent row is a client error.
type RelationService struct {
	favorites     repository.RelationStore
	carts         repository.RelationStore
	subscriptions repository.RelationStore
	userRepo      repository.UserRepository
	recipeRepo    repository.RecipeRepository
}

// NewRelationService returns a new RelationService.
func NewRelationService(
	favorites repository.RelationStore,
	carts repository.RelationStore,
	subscriptions repository.RelationStore,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *RelationService {
	return &RelationService{
		favorites:     favorites,
		carts:         carts,
		subscriptions: subscriptions,
		userRepo:      userRepo,
		recipeRepo:    recipeRepo,
	}
}

// AddFavorite favorites the recipe for the user and returns the recipe.
func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	return s.addRecipeRelation(ctx, s.favorites, "favorite", userID, recipeID)
}

// RemoveFavorite unfavorites the recipe for the user.
func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.favorites.Remove(ctx, userID, recipeID); err != nil {
		return err
	}
	middleware.RelationWrites.WithLabelValues("favorite", "remove").Inc()
	return nil
}

// AddToCart puts the recipe in the user's shopping cart and returns the recipe.
func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	return s.addRecipeRelation(ctx, s.carts, "cart", userID, recipeID)
}

// RemoveFromCart takes the recipe out of the user's shopping cart.
func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if err := s.carts.Remove(ctx, userID, recipeID); err != nil {
		return err
	}
	middleware.RelationWrites.WithLabelValues("cart", "remove").Inc()
	return nil
}

func (s *RelationService) addRecipeRelation(ctx context.Context, store repository.RelationStore, kind string, userID, recipeID uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := store.Add(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	middleware.RelationWrites.WithLabelValues(kind, "add").Inc()
	return recipe, nil
}

// Subscribe makes the user follow the author. Following yourself is rejected.
func (s *RelationService) Subscribe(ctx context.Context, userID, authorID uint) (*models.User, error) {
	if userID == authorID {
		return nil, models.NewValidationError("Cannot subscribe to yourself")
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.Add(ctx, userID, authorID); err != nil {
		return nil, err
	}
	middleware.RelationWrites.WithLabelValues("subscription", "add").Inc()
	return author, nil
}

// Unsubscribe makes the user stop following the author.
func (s *RelationService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if err := s.subscriptions.Remove(ctx, userID, authorID); err != nil {
		return err
	}
	middleware.RelationWrites.WithLabelValues("subscription", "remove").Inc()
	return nil
}

// IsSubscribed reports whether the viewer follows the author. Anonymous
// viewers are never subscribed.
func (s *RelationService) IsSubscribed(ctx context.Context, viewerID, authorID uint) (bool, error) {
	if viewerID == 0 {
		return false, nil
	}
	return s.subscriptions.Exists(ctx, viewerID, authorID)
}

// RecipeFlags holds the per-viewer booleans for a set of recipes.
type RecipeFlags struct {
	Favorited map[uint]bool
	InCart    map[uint]bool
}

// FlagsFor resolves is_favorited and is_in_shopping_cart for the given
// recipes in two queries. Anonymous viewers get all-false flags.
func (s *RelationService) FlagsFor(ctx context.Context, viewerID uint, recipeIDs []uint) (RecipeFlags, error) {
	favorited, err := s.favorites.ExistingTargets(ctx, viewerID, recipeIDs)
	if err != nil {
		return RecipeFlags{}, err
	}
	inCart, err := s.carts.ExistingTargets(ctx, viewerID, recipeIDs)
	if err != nil {
		return RecipeFlags{}, err
	}
	return RecipeFlags{Favorited: favorited, InCart: inCart}, nil
}

// SubscribedAuthors resolves is_subscribed for a set of users in one query.
func (s *RelationService) SubscribedAuthors(ctx context.Context, viewerID uint, authorIDs []uint) (map[uint]bool, error) {
	return s.subscriptions.ExistingTargets(ctx, viewerID, authorIDs)
}
