package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// ParseEnvironment maps an ENV value onto an Environment. Unknown and empty
// values fall back to Development.
func ParseEnvironment(s string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case Production:
		return Production
	case Test:
		return Test
	case CI:
		return CI
	default:
		return Development
	}
}

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// IsDevelopment returns true for the development environment
func (e Environment) IsDevelopment() bool {
	return e == Development
}

// IsProduction returns true for the production environment
func (e Environment) IsProduction() bool {
	return e == Production
}

// IsTest returns true for test and CI runs
func (e Environment) IsTest() bool {
	return e == Test || e == CI
}
