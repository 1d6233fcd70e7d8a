package service

import (
	"errors"
	"net/url"
)

var (
	// ErrURLRequired is returned when the request carries no url.
	ErrURLRequired = errors.New("url is required")
	// ErrInvalidURL is returned when the url has no scheme or no host.
	ErrInvalidURL = errors.New("invalid url format")
)

// ValidateURL checks that rawURL is present and has both a scheme and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return ErrURLRequired
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
