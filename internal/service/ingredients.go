package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/alchemorsel-scraper/internal/ingredient"
	"github.com/pageza/alchemorsel-scraper/internal/metrics"
	"github.com/pageza/alchemorsel-scraper/internal/types"
)

// IngredientService parses ingredient lines with per-line failure isolation.
type IngredientService struct {
	parser  IngredientParser
	workers int
	logger  *zap.Logger
}

// NewIngredientService creates a new IngredientService. workers below one is
// treated as one.
func NewIngredientService(parser IngredientParser, workers int, logger *zap.Logger) *IngredientService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngredientService{
		parser:  parser,
		workers: workers,
		logger:  logger,
	}
}

// ParseIngredients parses every line independently. The result has the same
// length and order as lines; a line that errors or panics becomes a record
// holding only its original text.
func (s *IngredientService) ParseIngredients(ctx context.Context, lines []string) []types.ParsedIngredient {
	out := make([]types.ParsedIngredient, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			out[i] = types.NewDegradedIngredient(line)
			continue
		}
		g.Go(func() error {
			out[i] = s.parseOne(line)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (s *IngredientService) parseOne(line string) (parsed types.ParsedIngredient) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("ingredient parser panicked",
				zap.String("line", line),
				zap.String("panic", fmt.Sprint(r)),
			)
			metrics.IngredientParseFailures.Inc()
			parsed = types.NewDegradedIngredient(line)
		}
	}()

	res, err := s.parser.Parse(line)
	if err != nil || res == nil {
		s.logger.Debug("ingredient line not parsed", zap.String("line", line), zap.Error(err))
		metrics.IngredientParseFailures.Inc()
		return types.NewDegradedIngredient(line)
	}
	for _, a := range res.Amounts {
		if a.Quantity != nil && a.Quantity.IsRange() {
			s.logger.Debug("ingredient range reduced to lower bound",
				zap.String("line", line),
				zap.Float64("quantity", a.Quantity.Value),
				zap.Float64("max", a.Quantity.Max),
			)
		}
	}
	return toParsedIngredient(line, res)
}

func toParsedIngredient(line string, res *ingredient.Result) types.ParsedIngredient {
	p := types.ParsedIngredient{
		Name:        optional(res.Name),
		Size:        optional(res.Size),
		Preparation: optional(res.Preparation),
		Comment:     optional(res.Comment),
		Purpose:     optional(res.Purpose),
		Original:    line,
		Amount:      make([]types.Amount, 0, len(res.Amounts)),
	}
	for _, a := range res.Amounts {
		var amount types.Amount
		if a.Quantity != nil {
			q := a.Quantity.Value
			amount.Quantity = &q
		}
		amount.Unit = optional(a.Unit.String())
		p.Amount = append(p.Amount, amount)
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
