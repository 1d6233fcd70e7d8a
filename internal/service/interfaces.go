package service

import (
	"context"

	"github.com/pageza/alchemorsel-scraper/internal/ingredient"
	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// PageFetcher defines the interface for retrieving a recipe page
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RecipeExtractor defines the interface for turning page HTML into a recipe
type RecipeExtractor interface {
	Extract(ctx context.Context, html, sourceURL string) (types.RawRecipe, error)
}

// IngredientParser defines the interface for parsing a single ingredient line
type IngredientParser interface {
	Parse(line string) (*ingredient.Result, error)
}

// IScrapeService defines the interface for the scrape pipeline
type IScrapeService interface {
	ScrapeRecipe(ctx context.Context, rawURL string) (types.RecipeResponse, error)
}
