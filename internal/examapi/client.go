package examapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
)

const csrfCookieName = "csrftoken"

// Auth carries the per-request upstream credentials. The bearer token takes
// precedence; the CSRF header is attached to mutating requests whenever a
// token has been fetched.
type Auth struct {
	Bearer string
}

// Client is a typed wrapper around the exam API. One instance is shared by
// all requests; user identity travels in Auth, never in the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger

	mu          sync.Mutex
	csrfToken   string
	csrfFetched bool
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("examapi"),
	}
}

// BaseURL returns the resolved upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ensureCSRF lazily fetches the CSRF token the exam API hands out as a
// cookie. Fetched at most once per client; ResetCSRF re-arms it.
func (c *Client) ensureCSRF(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.csrfFetched {
		return c.csrfToken
	}
	c.csrfFetched = true

	log := logger.FromContext(ctx).WithPrefix("examapi")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/csrf/", nil)
	if err != nil {
		log.Warn("failed to build csrf request: %v", err)
		return ""
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("csrf token fetch failed: %v", err)
		return ""
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	for _, ck := range resp.Cookies() {
		if ck.Name == csrfCookieName {
			c.csrfToken = ck.Value
			log.Debug("csrf token cached")
			return c.csrfToken
		}
	}
	log.Warn("csrf endpoint returned no %s cookie", csrfCookieName)
	return ""
}

// ResetCSRF discards the cached CSRF token so the next mutating request
// fetches a fresh one. Used after logout and by tests.
func (c *Client) ResetCSRF() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.csrfToken = ""
	c.csrfFetched = false
}

func (c *Client) newRequest(ctx context.Context, method, path string, auth Auth, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+auth.Bearer)
	}
	if method != http.MethodGet && method != http.MethodHead {
		if token := c.ensureCSRF(ctx); token != "" {
			req.Header.Set("X-CSRFToken", token)
		}
	}
	return req, nil
}

// send executes the request and decodes a 2xx JSON body into out. Non-2xx
// responses become an AppError carrying the server's detail/message field or
// the HTTP status text. One attempt, no retry.
func (c *Client) send(req *http.Request, out any) error {
	log := logger.FromContext(req.Context()).WithPrefix("examapi")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("%s %s failed: %v", req.Method, req.URL.Path, err)
		return errors.NewUpstreamError(0, "exam API unreachable", err)
	}
	defer resp.Body.Close()

	log.Debug("%s %s -> %d in %v", req.Method, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewUpstreamError(resp.StatusCode, extractErrorMessage(resp), nil)
	}

	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode %s %s response: %v", req.Method, req.URL.Path, err)
		return errors.NewUpstreamError(0, "malformed exam API response", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, auth Auth, body, out any) error {
	req, err := c.newRequest(ctx, method, path, auth, body)
	if err != nil {
		return errors.NewInternalError(err)
	}
	return c.send(req, out)
}

// extractErrorMessage pulls the best available message out of an error
// response body: detail first, then message, then the HTTP status text.
func extractErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("exam API returned %s", resp.Status)
}
