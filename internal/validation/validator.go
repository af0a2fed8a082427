package validation

import (
	"net/url"
	"strings"

	"wikiquiz/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateWikipediaURL checks the input URL is a well-formed http(s) URL whose
// host is a wikipedia.org subdomain. This is the anti-SSRF gate: anything else
// is rejected before a single network call is made.
func (v *Validator) ValidateWikipediaURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return domain.NewInvalidInputError("wikipediaUrl is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return domain.NewInvalidInputError("wikipediaUrl is not a valid URL")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.NewInvalidInputError("wikipediaUrl must use http or https")
	}

	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, ".wikipedia.org") {
		return domain.NewInvalidInputError("wikipediaUrl must point to a wikipedia.org article")
	}

	return nil
}
