package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// AuthResponse is the body of a successful register or login.
type AuthResponse struct {
	Message      string       `json:"message"`
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

type tokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type errorBody struct {
	Error string `json:"error"`
}

// HTTPClient talks to the backend JSON API.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout disables the per-request deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs an access token obtained elsewhere (flag or env).
func (c *HTTPClient) SetToken(token string) {
	c.accessToken = token
}

// Token returns the current access token.
func (c *HTTPClient) Token() string {
	return c.accessToken
}

func (c *HTTPClient) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs a JSON request. On 401 it refreshes the token pair once and
// retries.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusUnauthorized || c.refreshToken == "" {
		return decodeResponse(resp, out)
	}
	resp.Body.Close()

	if err := c.refresh(ctx); err != nil {
		return err
	}

	resp, err = c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	rt := c.refreshToken
	c.refreshToken = ""

	resp, err := c.send(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": rt})
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := decodeResponse(resp, &pair); err != nil {
		return err
	}

	c.accessToken = pair.Token
	c.refreshToken = pair.RefreshToken
	return nil
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, in any) (*AuthResponse, error) {
	var res AuthResponse
	if err := c.do(ctx, http.MethodPost, path, in, &res); err != nil {
		return nil, err
	}
	c.accessToken = res.Token
	c.refreshToken = res.RefreshToken
	return &res, nil
}

// Register creates an account and keeps the issued tokens.
func (c *HTTPClient) Register(ctx context.Context, data models.UserRegistrationData) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", data)
}

// Login authenticates and keeps the issued tokens.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", models.UserLoginData{Email: email, Password: password})
}

// Ping checks the backend health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Chat sends one message to the companion and returns its reply.
func (c *HTTPClient) Chat(ctx context.Context, message string) (*models.Message, error) {
	var reply models.Message
	if err := c.do(ctx, http.MethodPost, "/api/companions/chat", map[string]string{"message": message}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// History returns up to limit messages, newest first. A non-positive limit
// leaves the server default in place.
func (c *HTTPClient) History(ctx context.Context, limit int) ([]*models.Message, error) {
	path := "/api/companions/history"
	if limit > 0 {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(limit))
		path += "?" + q.Encode()
	}

	var list []*models.Message
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Events lists the caller's events.
func (c *HTTPClient) Events(ctx context.Context) ([]*models.Event, error) {
	var res struct {
		Events []*models.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &res); err != nil {
		return nil, err
	}
	return res.Events, nil
}

// Notes lists the caller's notes.
func (c *HTTPClient) Notes(ctx context.Context) ([]*models.Note, error) {
	var res struct {
		Notes []*models.Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &res); err != nil {
		return nil, err
	}
	return res.Notes, nil
}

// CreateAttachment registers a pending attachment and returns it together
// with the presigned upload URL.
func (c *HTTPClient) CreateAttachment(ctx context.Context, noteID, fileName string) (*models.Attachment, string, error) {
	var res struct {
		Attachment *models.Attachment `json:"attachment"`
		UploadURL  string             `json:"uploadUrl"`
	}
	path := "/api/notes/" + url.PathEscape(noteID) + "/attachments"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"fileName": fileName}, &res); err != nil {
		return nil, "", err
	}
	if res.Attachment == nil || res.UploadURL == "" {
		return nil, "", errors.New("incomplete attachment response")
	}
	return res.Attachment, res.UploadURL, nil
}

// CompleteAttachment marks an uploaded attachment as completed.
func (c *HTTPClient) CompleteAttachment(ctx context.Context, noteID, attachmentID string) (*models.Attachment, error) {
	var res struct {
		Attachment *models.Attachment `json:"attachment"`
	}
	path := "/api/notes/" + url.PathEscape(noteID) + "/attachments/" + url.PathEscape(attachmentID) + "/complete"
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Attachment, nil
}
