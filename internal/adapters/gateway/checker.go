package gateway

// Package gateway provides an entitlement checker backed by an external
// payment gateway's purchase-verification API. The gateway's response shape
// is treated as opaque JSON; a configurable JMESPath expression selects the
// access flag.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

const defaultAccessExpr = "hasAccess"

// Checker implements ports.EntitlementChecker against an HTTP gateway.
type Checker struct {
	baseURL    string
	apiKey     string
	accessExpr string
	httpClient *http.Client
}

// Config holds configuration for the gateway checker.
type Config struct {
	// BaseURL is the verification endpoint, e.g. "https://pay.example.com/purchases/access".
	BaseURL string
	// APIKey is sent as a bearer credential when non-empty.
	APIKey string
	// AccessExpr is a JMESPath expression selecting the boolean access flag
	// from the response body. Defaults to "hasAccess".
	AccessExpr string
	HTTPClient *http.Client
}

// NewChecker constructs a gateway checker, validating the access expression.
func NewChecker(cfg Config) (*Checker, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway base URL is required")
	}
	expr := strings.TrimSpace(cfg.AccessExpr)
	if expr == "" {
		expr = defaultAccessExpr
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("compile access expression: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Checker{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		accessExpr: expr,
		httpClient: httpClient,
	}, nil
}

// HasAccess queries the gateway for one user/module pair.
func (c *Checker) HasAccess(ctx context.Context, userID, moduleID string) (bool, error) {
	if userID == "" || moduleID == "" {
		return false, errors.New("user ID and module ID are required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return false, fmt.Errorf("parse gateway url: %w", err)
	}
	q := u.Query()
	q.Set("userId", userID)
	q.Set("moduleId", moduleID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("gateway request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var payload any
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); decodeErr != nil {
		return false, fmt.Errorf("decode gateway response: %w", decodeErr)
	}

	result, err := jmespath.Search(c.accessExpr, payload)
	if err != nil {
		return false, fmt.Errorf("evaluate access expression: %w", err)
	}

	flag, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("access expression %q did not select a boolean", c.accessExpr)
	}
	return flag, nil
}
