package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-scraper/internal/extractor"
	"github.com/pageza/alchemorsel-scraper/internal/ingredient"
	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// Options configures the scrape pipeline built by NewDefaultScrapeService.
type Options struct {
	FetchTimeout      time.Duration
	UserAgent         string
	ParseIngredients  bool
	IngredientWorkers int
}

// ScrapeService runs validate, fetch, extract and the optional ingredient stage.
type ScrapeService struct {
	fetcher     PageFetcher
	extractor   RecipeExtractor
	ingredients *IngredientService
	logger      *zap.Logger
}

// NewScrapeService creates a new ScrapeService. A nil ingredients service
// disables the ingredient stage.
func NewScrapeService(fetcher PageFetcher, extractor RecipeExtractor, ingredients *IngredientService, logger *zap.Logger) *ScrapeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScrapeService{
		fetcher:     fetcher,
		extractor:   extractor,
		ingredients: ingredients,
		logger:      logger,
	}
}

// NewDefaultScrapeService wires the HTTP fetcher, the schema.org extractor
// and the rule-based ingredient parser.
func NewDefaultScrapeService(opts Options, logger *zap.Logger) *ScrapeService {
	var ingredients *IngredientService
	if opts.ParseIngredients {
		ingredients = NewIngredientService(ingredient.New(), opts.IngredientWorkers, logger)
	}
	return NewScrapeService(
		NewHTTPFetcher(opts.FetchTimeout, opts.UserAgent),
		extractor.New(),
		ingredients,
		logger,
	)
}

// ScrapeRecipe fetches rawURL and returns the extracted recipe, with parsed
// ingredients attached when the ingredient stage is enabled.
func (s *ScrapeService) ScrapeRecipe(ctx context.Context, rawURL string) (types.RecipeResponse, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	raw, err := s.extractor.Extract(ctx, html, rawURL)
	if err != nil {
		return nil, err
	}

	var parsed []types.ParsedIngredient
	if s.ingredients != nil {
		parsed = s.ingredients.ParseIngredients(ctx, raw.Ingredients())
	}

	s.logger.Debug("recipe scraped",
		zap.String("url", rawURL),
		zap.Int("ingredients", len(parsed)),
	)
	return types.NewRecipeResponse(raw, parsed), nil
}
