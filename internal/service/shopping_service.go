package service

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/repository"
)

// ShoppingListService computes and renders a user's aggregated shopping list.
type ShoppingListService struct {
	shoppingRepo repository.ShoppingListRepository
}

// NewShoppingListService returns a new ShoppingListService.
func NewShoppingListService(shoppingRepo repository.ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{shoppingRepo: shoppingRepo}
}

// Compute aggregates amounts across every recipe in the user's cart, merging
// lines only when both name and measurement unit match.
func (s *ShoppingListService) Compute(ctx context.Context, userID uint) ([]repository.ShoppingListItem, error) {
	return s.shoppingRepo.Aggregate(ctx, userID)
}

// Render formats the aggregated list as the downloadable plain-text report.
// An empty cart renders to an empty report.
func (s *ShoppingListService) Render(items []repository.ShoppingListItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d - %s  %d  %s\n", i+1, item.Name, item.Total, item.MeasurementUnit)
	}
	return b.String()
}
