package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrEssayTooShort is returned when the trimmed essay is under MinEssayChars.
	ErrEssayTooShort = errors.New("essay too short")
	// ErrProviderAuth is returned when the provider rejects the credential or configuration.
	ErrProviderAuth = errors.New("provider authentication failed")
	// ErrProviderRateLimited is returned when the provider reports quota or rate exhaustion.
	ErrProviderRateLimited = errors.New("provider rate limit reached")
)

// classifyProviderError wraps a provider failure with ErrProviderAuth or
// ErrProviderRateLimited when it can be recognised. Auth wins over rate limit.
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden,
			apiErr.Status == "UNAUTHENTICATED", apiErr.Status == "PERMISSION_DENIED":
			return fmt.Errorf("%w: %w", ErrProviderAuth, err)
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "API_KEY") {
		return fmt.Errorf("%w: %w", ErrProviderAuth, err)
	}

	if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
		return fmt.Errorf("%w: %w", ErrProviderRateLimited, err)
	}
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "quota") || strings.Contains(lower, "limit") {
		return fmt.Errorf("%w: %w", ErrProviderRateLimited, err)
	}

	return err
}
