package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"

	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
)

// Client binds the remote detector API. The session cookie rides in the
// jar, so login carries over to analyze/history calls. Analyze has no
// client-side timeout: it waits for the transport to settle or fail.
type Client struct {
	baseURL string
	http    *http.Client
}

// Account is the user payload returned by login/register.
type Account struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// Health probes the backend. Failures are reported, never fatal.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", analysis.ErrServiceUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: backend not responding (status %d)", resp.StatusCode)
	}
	return nil
}

// Login submits credentials; the session cookie lands in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	return c.postCredentials(ctx, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, "Invalid credentials")
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Account, error) {
	return c.postCredentials(ctx, "/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "Registration failed")
}

func (c *Client) postCredentials(ctx context.Context, path string, body map[string]string, fallback string) (*Account, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, analysis.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp.Body, fallback)
	}

	var out struct {
		User Account `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return &out.User, nil
}

// Analyze implements analysis.Remote: multipart upload of the single field
// "file", parsed straight into the normalized result shape.
func (c *Client) Analyze(ctx context.Context, f analysis.File) (*analysis.Result, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", analysis.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp.Body, analysis.GenericFailure)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return analysis.DecodeResult(body)
}

// History fetches the server-side trace for the logged-in user.
func (c *Client) History(ctx context.Context) ([]*analysis.HistoryRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/history", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history: %w", analysis.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp.Body, analysis.GenericFailure)
	}

	var out struct {
		History []*analysis.HistoryRecord `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// remoteError surfaces the backend's {error} message verbatim, or the
// generic fallback when the body carries none.
func remoteError(body io.Reader, fallback string) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := fallback
	if err := json.NewDecoder(body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		msg = payload.Error
	}
	return &analysis.RemoteError{Message: msg}
}
