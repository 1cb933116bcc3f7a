package auth

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_verifier.go -package=mocks versefinder/internal/auth Verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnauthenticated is returned when a token is missing, expired, or invalid.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity describes the caller of an authenticated request.
type Identity struct {
	UserID   string `json:"userId"`
	Approved bool   `json:"approved"`
	Admin    bool   `json:"admin"`
}

// Verifier validates bearer tokens and resolves them to identities.
type Verifier interface {
	// Verify resolves a bearer token to an identity.
	// Returns ErrUnauthenticated for invalid tokens.
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HTTPVerifier verifies tokens against an external auth service.
type HTTPVerifier struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPVerifier creates a new HTTPVerifier.
func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		BaseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Verify resolves a bearer token to an identity.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	url := fmt.Sprintf("%s/api/auth/verify", v.BaseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}

	return &identity, nil
}
