package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace_client/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TokenSource yields the current session token. A session.Store satisfies
// it. A nil TokenSource means the client never authenticates (the auth
// endpoints are unauthenticated by definition).
type TokenSource interface {
	Get() (string, error)
}

// APIClient is a JSON HTTP client bound to one base URL. One instance is
// created per service domain (auth, profile, catalog); the profile and
// catalog instances carry a TokenSource, the auth instance does not.
type APIClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     *logrus.Logger
}

// NewAPIClient builds a client for baseURL. tokens may be nil.
func NewAPIClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *logrus.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    logger,
	}
}

// Get issues a GET for path with the given query and decodes the response
// into out. A nil query sends no query string at all.
func (c *APIClient) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with body marshalled as JSON.
func (c *APIClient) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with body marshalled as JSON. out may be nil for
// endpoints that return no body.
func (c *APIClient) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.log.Errorf("APIClient: Failed to marshal %s %s body: %v", method, path, err)
			return domain.NewNetworkError("failed to prepare request", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		c.log.Errorf("APIClient: Failed to create %s %s request: %v", method, path, err)
		return domain.NewNetworkError("failed to create request", err)
	}
	c.decorate(req)

	c.log.Debugf("APIClient: %s %s", method, fullURL)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("APIClient: %s %s transport failure: %v", method, path, err)
		return domain.NewNetworkError("failed to reach server", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Errorf("APIClient: Failed to decode %s %s response: %v", method, path, err)
		return domain.NewServerError("failed to decode server response", err)
	}
	return nil
}

// decorate is the explicit pre-dispatch step: JSON content negotiation, a
// request id for log correlation, and the bearer token when the store has
// one. Token lookup failures degrade to an unauthenticated request.
func (c *APIClient) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Get()
	if err != nil {
		c.log.Debugf("APIClient: No session token available: %v", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// serverMessage is the error payload shape servers respond with. Both the
// "error" and "message" spellings are in the wild.
type serverMessage struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *APIClient) errorFromResponse(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var payload serverMessage
	_ = json.Unmarshal(raw, &payload)
	message := payload.Error
	if message == "" {
		message = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = "authentication required"
		}
		c.log.Warnf("APIClient: %s %s rejected with status %d", method, path, resp.StatusCode)
		return domain.NewAuthError(message, nil)
	case http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		c.log.Warnf("APIClient: %s %s returned not found", method, path)
		return domain.NewNotFoundError(message, nil)
	default:
		if message == "" {
			message = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		c.log.Errorf("APIClient: %s %s failed with status %d: %s", method, path, resp.StatusCode, message)
		return domain.NewServerError(message, nil)
	}
}
