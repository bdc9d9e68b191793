package domain

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "niamverse/internal/platform/errors"
)

// ValidateEmbedURL accepts absolute http(s) URLs only.
func ValidateEmbedURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.ErrURLRequired
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: embed url must be an absolute http(s) url", apperrors.ErrInvalidInput)
	}
	return u.String(), nil
}
