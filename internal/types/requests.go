package types

// ScrapeRecipeRequest represents the request body for scraping a recipe
type ScrapeRecipeRequest struct {
	URL string `json:"url"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}
