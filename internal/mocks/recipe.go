package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// MockScrapeService is a mock implementation of the scrape service
type MockScrapeService struct {
	mock.Mock
}

// ScrapeRecipe mocks the ScrapeRecipe method
func (m *MockScrapeService) ScrapeRecipe(ctx context.Context, rawURL string) (types.RecipeResponse, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.RecipeResponse), args.Error(1)
}
