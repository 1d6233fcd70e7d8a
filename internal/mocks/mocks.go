package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-scraper/internal/ingredient"
	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// MockPageFetcher is a mock implementation of the page fetcher
type MockPageFetcher struct {
	mock.Mock
}

// Fetch mocks the Fetch method
func (m *MockPageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// MockRecipeExtractor is a mock implementation of the recipe extractor
type MockRecipeExtractor struct {
	mock.Mock
}

// Extract mocks the Extract method
func (m *MockRecipeExtractor) Extract(ctx context.Context, html, sourceURL string) (types.RawRecipe, error) {
	args := m.Called(ctx, html, sourceURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.RawRecipe), args.Error(1)
}

// MockIngredientParser is a mock implementation of the ingredient parser
type MockIngredientParser struct {
	mock.Mock
}

// Parse mocks the Parse method
func (m *MockIngredientParser) Parse(line string) (*ingredient.Result, error) {
	args := m.Called(line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingredient.Result), args.Error(1)
}
