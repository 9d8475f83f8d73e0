package service

import (
	"context"
	"testing"

	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relationStoreStub struct {
	addFn             func(context.Context, uint, uint) error
	removeFn          func(context.Context, uint, uint) error
	existsFn          func(context.Context, uint, uint) (bool, error)
	existingTargetsFn func(context.Context, uint, []uint) (map[uint]bool, error)
	countForUserFn    func(context.Context, uint) (int64, error)
}

func (s *relationStoreStub) Add(ctx context.Context, userID, targetID uint) error {
	return s.addFn(ctx, userID, targetID)
}
func (s *relationStoreStub) Remove(ctx context.Context, userID, targetID uint) error {
	return s.removeFn(ctx, userID, targetID)
}
func (s *relationStoreStub) Exists(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.existsFn(ctx, userID, targetID)
}
func (s *relationStoreStub) ExistingTargets(ctx context.Context, userID uint, targetIDs []uint) (map[uint]bool, error) {
	return s.existingTargetsFn(ctx, userID, targetIDs)
}
func (s *relationStoreStub) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.countForUserFn(ctx, userID)
}

func newRelationServiceOverDB(t *testing.T) (*RelationService, *models.User, *models.User, *models.Recipe) {
	t.Helper()

	db := setupServiceDB(t)
	user := &models.User{Username: "eater", Email: "eater@e.com", Password: "pw"}
	author := &models.User{Username: "chef", Email: "chef@e.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(author).Error)
	recipe := &models.Recipe{AuthorID: author.ID, Name: "Soup", Text: "Boil", CookingTime: 20}
	require.NoError(t, db.Create(recipe).Error)

	svc := NewRelationService(
		repository.NewFavoriteRepository(db),
		repository.NewShoppingCartRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		repository.NewRecipeRepository(db),
	)
	return svc, user, author, recipe
}

func TestRelationService_Favorites(t *testing.T) {
	svc, user, _, recipe := newRelationServiceOverDB(t)
	ctx := context.Background()

	got, err := svc.AddFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)

	_, err = svc.AddFavorite(ctx, user.ID, recipe.ID)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "CONFLICT"))

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, recipe.ID))

	err = svc.RemoveFavorite(ctx, user.ID, recipe.ID)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))

	t.Run("missing recipe", func(t *testing.T) {
		_, err := svc.AddFavorite(ctx, user.ID, 9999)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

func TestRelationService_Cart(t *testing.T) {
	svc, user, _, recipe := newRelationServiceOverDB(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, user.ID, recipe.ID)
	require.NoError(t, err)

	// Favorite and cart ledgers are independent.
	_, err = svc.AddFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, user.ID, recipe.ID)
	assert.True(t, models.IsCode(err, "CONFLICT"))
}

func TestRelationService_Subscriptions(t *testing.T) {
	svc, user, author, _ := newRelationServiceOverDB(t)
	ctx := context.Background()

	t.Run("self subscription rejected", func(t *testing.T) {
		_, err := svc.Subscribe(ctx, user.ID, user.ID)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("subscribe and duplicate", func(t *testing.T) {
		got, err := svc.Subscribe(ctx, user.ID, author.ID)
		require.NoError(t, err)
		assert.Equal(t, author.ID, got.ID)

		_, err = svc.Subscribe(ctx, user.ID, author.ID)
		assert.True(t, models.IsCode(err, "CONFLICT"))
	})

	t.Run("is subscribed", func(t *testing.T) {
		subscribed, err := svc.IsSubscribed(ctx, user.ID, author.ID)
		require.NoError(t, err)
		assert.True(t, subscribed)

		// Anonymous viewers are never subscribed.
		subscribed, err = svc.IsSubscribed(ctx, 0, author.ID)
		require.NoError(t, err)
		assert.False(t, subscribed)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		require.NoError(t, svc.Unsubscribe(ctx, user.ID, author.ID))

		err := svc.Unsubscribe(ctx, user.ID, author.ID)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := svc.Subscribe(ctx, user.ID, 9999)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

func TestRelationService_FlagsFor(t *testing.T) {
	svc, user, _, recipe := newRelationServiceOverDB(t)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)

	flags, err := svc.FlagsFor(ctx, user.ID, []uint{recipe.ID})
	require.NoError(t, err)
	assert.True(t, flags.Favorited[recipe.ID])
	assert.False(t, flags.InCart[recipe.ID])

	// Anonymous viewer gets all-false flags.
	flags, err = svc.FlagsFor(ctx, 0, []uint{recipe.ID})
	require.NoError(t, err)
	assert.False(t, flags.Favorited[recipe.ID])
	assert.False(t, flags.InCart[recipe.ID])
}

func TestRelationService_StubbedErrorsPropagate(t *testing.T) {
	boom := models.NewInternalError(assert.AnError)
	stub := &relationStoreStub{
		existingTargetsFn: func(context.Context, uint, []uint) (map[uint]bool, error) {
			return nil, boom
		},
	}
	svc := NewRelationService(stub, stub, stub, nil, nil)

	_, err := svc.FlagsFor(context.Background(), 1, []uint{1})
	assert.ErrorIs(t, err, boom)
}
