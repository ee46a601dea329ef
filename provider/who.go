package provider

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
)

const (
	// DefaultWHOBaseURL is the WHO ICD API host.
	DefaultWHOBaseURL = "https://id.who.int"

	// DefaultWHOTimeout bounds every WHO API request.
	DefaultWHOTimeout = 30 * time.Second

	// tokenExpiryBuffer refreshes the OAuth token this long before it
	// actually expires.
	tokenExpiryBuffer = 5 * time.Minute
)

// DefaultReleases maps the canonical system URIs to their WHO API
// search paths.
func DefaultReleases() map[string]string {
	return map[string]string{
		cm.SystemICD11TM2:         "/icd/release/11/2023-01/tm2",
		cm.SystemICD11Biomedicine: "/icd/release/11/2023-01/mms",
	}
}

// WHOClient queries the WHO ICD-11 API for candidate entries. It
// authenticates via the OAuth2 client-credentials flow and caches the
// token until shortly before expiry. Without credentials the client
// sends unauthenticated requests, which is enough for test servers.
//
// Every transport or status failure is reported as a
// ProviderUnavailableError; the resolver downgrades it to an empty
// candidate list.
type WHOClient struct {
	http         *resty.Client
	clientID     string
	clientSecret string
	releases     map[string]string
	logger       *zap.Logger

	mu           sync.Mutex
	token        string
	tokenExpires time.Time
}

// WHOOption configures the WHOClient.
type WHOOption func(*WHOClient)

// WithWHOBaseURL sets a custom API host (used by tests).
func WithWHOBaseURL(url string) WHOOption {
	return func(c *WHOClient) {
		c.http.SetBaseURL(url)
	}
}

// WithWHOTimeout sets the per-request timeout.
func WithWHOTimeout(timeout time.Duration) WHOOption {
	return func(c *WHOClient) {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
	}
}

// WithWHOReleases overrides the system-URI-to-release-path mapping.
func WithWHOReleases(releases map[string]string) WHOOption {
	return func(c *WHOClient) {
		if len(releases) > 0 {
			c.releases = releases
		}
	}
}

// WithWHOLogger sets the structured logger.
func WithWHOLogger(logger *zap.Logger) WHOOption {
	return func(c *WHOClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewWHOClient creates a WHO ICD-11 API client.
func NewWHOClient(clientID, clientSecret string, opts ...WHOOption) *WHOClient {
	c := &WHOClient{
		http: resty.New().
			SetBaseURL(DefaultWHOBaseURL).
			SetTimeout(DefaultWHOTimeout).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetHeader("Accept", "application/json").
			SetHeader("API-Version", "v2"),
		clientID:     clientID,
		clientSecret: clientSecret,
		releases:     DefaultReleases(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type whoTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type whoLangValue struct {
	Value string `json:"@value"`
}

type whoEntity struct {
	ID         string       `json:"@id"`
	Code       string       `json:"code"`
	Title      whoLangValue `json:"title"`
	Definition whoLangValue `json:"definition"`
}

type whoSearchResponse struct {
	Entities []whoEntity `json:"entities"`
}

// accessToken returns a cached token, fetching a fresh one when absent
// or about to expire.
func (c *WHOClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpires) {
		return c.token, nil
	}

	var tok whoTokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"scope":         "icdapi",
		}).
		SetResult(&tok).
		Post("/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode())
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}

	expiresIn := time.Duration(tok.ExpiresIn) * time.Second
	if expiresIn <= tokenExpiryBuffer {
		expiresIn = time.Hour
	}
	c.token = tok.AccessToken
	c.tokenExpires = time.Now().Add(expiresIn - tokenExpiryBuffer)

	c.logger.Debug("obtained WHO ICD-11 access token",
		zap.Time("expires", c.tokenExpires))
	return c.token, nil
}

// Lookup implements service.CandidateProvider against the WHO API.
func (c *WHOClient) Lookup(ctx context.Context, system, query string, limit int) ([]service.CandidateEntry, error) {
	path, ok := c.releases[system]
	if !ok {
		return nil, &cm.ProviderUnavailableError{System: system, Err: fmt.Errorf("no release configured")}
	}
	if limit <= 0 {
		return nil, nil
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           query,
			"flatResults": "true",
			"limit":       strconv.Itoa(limit),
		})

	if c.clientID != "" {
		token, err := c.accessToken(ctx)
		if err != nil {
			c.logger.Warn("WHO ICD-11 authentication failed", zap.Error(err))
			return nil, &cm.ProviderUnavailableError{System: system, Err: err}
		}
		req.SetAuthToken(token)
	}

	var result whoSearchResponse
	resp, err := req.SetResult(&result).Get(path)
	if err != nil {
		c.logger.Warn("WHO ICD-11 search failed",
			zap.String("system", system),
			zap.Error(err))
		return nil, &cm.ProviderUnavailableError{System: system, Err: err}
	}
	if resp.IsError() {
		c.logger.Warn("WHO ICD-11 search returned error status",
			zap.String("system", system),
			zap.Int("status", resp.StatusCode()))
		return nil, &cm.ProviderUnavailableError{
			System: system,
			Err:    fmt.Errorf("status %d", resp.StatusCode()),
		}
	}

	entries := make([]service.CandidateEntry, 0, len(result.Entities))
	for _, e := range result.Entities {
		if e.Code == "" {
			continue
		}
		entries = append(entries, service.CandidateEntry{
			System:     system,
			Code:       e.Code,
			Display:    e.Title.Value,
			Definition: e.Definition.Value,
		})
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// Verify interface compliance.
var _ service.CandidateProvider = (*WHOClient)(nil)
