package dirsdk

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
)

// Client is a typed client for the directory service. The zero value is not
// usable; construct one with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is the bearer token attached to admin-only requests. It is set
	// automatically by AdminLogin and may be assigned directly.
	Token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil. Non-2xx responses become *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Register redeems an invite code and creates an alumni account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AccountResponse, error) {
	var out AccountResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/alumni", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AlumniLogin authenticates an alumni account.
func (c *Client) AlumniLogin(ctx context.Context, username, password string) (*AccountResponse, error) {
	var out AccountResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/login/alumni", LoginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAccounts returns all alumni profiles, or a single-element list when
// username is non-empty.
func (c *Client) ListAccounts(ctx context.Context, username string) ([]AccountResponse, error) {
	path := "/api/v1/alumni"
	if username != "" {
		path += "?username=" + url.QueryEscape(username)
	}
	var out []AccountResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAccount(ctx context.Context, id string) (*AccountResponse, error) {
	var out AccountResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/alumni/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id string, req UpdateAccountRequest) (*AccountResponse, error) {
	var out AccountResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/alumni/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes an alumni account. Admin token required.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/alumni/"+url.PathEscape(id), nil, nil)
}

// AdminLogin authenticates an administrator and stores the session token on
// the client for subsequent admin-only calls.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResponse, error) {
	var out AdminLoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/login/admin", LoginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*AdminResponse, error) {
	var out AdminResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/admins", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAdmin(ctx context.Context, id string) (*AdminResponse, error) {
	var out AdminResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/admins/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAdminByUsername(ctx context.Context, username string) (*AdminResponse, error) {
	var out AdminResponse
	path := "/api/v1/admins?username=" + url.QueryEscape(username)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MintInvite creates a single-use invite code. Admin token required.
func (c *Client) MintInvite(ctx context.Context, adminID string) (*InviteResponse, error) {
	var out InviteResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/invites", MintInviteRequest{AdminID: adminID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvites returns every invite ever minted. Admin token required.
func (c *Client) ListInvites(ctx context.Context) ([]InviteResponse, error) {
	var out []InviteResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/invites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelInvite revokes an active invite. Admin token required.
func (c *Client) CancelInvite(ctx context.Context, code string) (*MessageResponse, error) {
	var out MessageResponse
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/invites", CancelInviteRequest{Code: code}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendInviteEmails dispatches a batch of invite emails. The report body is
// returned for every outcome the server aggregates, including partial (207)
// and total (500) failure; the HTTP status is returned alongside so callers
// can branch without re-deriving it from the counts.
func (c *Client) SendInviteEmails(ctx context.Context, req EmailSendRequest) (*EmailSendResponse, int, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/v1/email/send"), bytes.NewReader(buf))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var out EmailSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, resp.StatusCode, parseAPIError(resp)
	}
	if out.Details == nil && resp.StatusCode != http.StatusOK {
		// Validation failures answer with a plain error body.
		code := out.Error
		if code == "" {
			code = ErrorCodeInvalidRequest
		}
		return nil, resp.StatusCode, &APIError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    out.Message,
		}
	}
	return &out, resp.StatusCode, nil
}

// ListCourses returns the registered course names.
func (c *Client) ListCourses(ctx context.Context) ([]CourseResponse, error) {
	var out []CourseResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCourse(ctx context.Context, name string) (*CourseResponse, error) {
	var out CourseResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/courses", CreateCourseRequest{Name: name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks the liveness endpoint.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz checks the readiness endpoint, which verifies database health.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
