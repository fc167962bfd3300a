// Package gameforge provides the HTTP client adapter for the remote GameForge
// platform API. It implements the collaborator interfaces in internal/core and
// the tracking.StatusLookup port.
package gameforge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gameforge/ui-api/internal/errors"

	"github.com/gameforge/ui-api/internal/domain/model"
)

const maxErrorBodyBytes = 4 * 1024 // keep upstream error payloads bounded

// Config captures what the client needs to talk to the platform API.
// The API token is injected per client rather than held in shared global
// state, so independently constructed clients never share credentials.
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
	Client   *http.Client
	Logger   *slog.Logger
}

// Client is a thin typed wrapper over the platform REST API.
// All methods are safe for concurrent use.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a platform API client. BaseURL is required.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("platform api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse platform api base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		token:   strings.TrimSpace(cfg.APIToken),
		http:    hc,
		logger:  logger,
	}, nil
}

// JobStatus fetches the current snapshot of a generation job.
// It implements tracking.StatusLookup.
func (c *Client) JobStatus(ctx context.Context, id string) (*model.GenerationJob, error) {
	if id == "" {
		return nil, apperrors.Validation("job id is required")
	}
	var job model.GenerationJob
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// RequestGeneration submits a new generation job to the platform.
func (c *Client) RequestGeneration(ctx context.Context, req *model.GenerationRequest) (*model.GenerationJob, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid generation request")
	}
	var job model.GenerationJob
	if err := c.do(ctx, http.MethodPost, "/api/v1/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelGeneration asks the platform to cancel a running job. The platform
// confirms cancellation asynchronously via a later status snapshot.
func (c *Client) CancelGeneration(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("job id is required")
	}
	return c.do(ctx, http.MethodPost, "/api/v1/jobs/"+url.PathEscape(id)+"/cancel", nil, nil)
}

// ListAssets browses the marketplace catalog.
func (c *Client) ListAssets(ctx context.Context, query model.AssetQuery) (*model.AssetPage, error) {
	query.Normalize()

	q := url.Values{}
	q.Set("offset", strconv.Itoa(query.Offset))
	q.Set("limit", strconv.Itoa(query.Limit))
	if query.Search != "" {
		q.Set("q", query.Search)
	}
	if query.AssetType != "" {
		q.Set("type", query.AssetType)
	}

	var page model.AssetPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/marketplace/assets?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAsset fetches one marketplace listing.
func (c *Client) GetAsset(ctx context.Context, id string) (*model.Asset, error) {
	if id == "" {
		return nil, apperrors.Validation("asset id is required")
	}
	var asset model.Asset
	if err := c.do(ctx, http.MethodGet, "/api/v1/marketplace/assets/"+url.PathEscape(id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetProfile fetches a user profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(userID)+"/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates mutable profile fields.
func (c *Client) UpdateProfile(
	ctx context.Context,
	userID string,
	req *model.UpdateProfileRequest,
) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid profile update")
	}
	var profile model.Profile
	if err := c.do(ctx, http.MethodPatch, "/api/v1/users/"+url.PathEscape(userID)+"/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// do performs one request against the platform API and decodes the response
// into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse request path: %w", err)
	}
	target := c.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "%s %s", method, path)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "close response body failed", "error", closeErr)
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(method, path, resp)
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "decode %s %s response", method, path)
	}
	return nil
}

// statusError maps an upstream HTTP error status to the application error taxonomy.
func (c *Client) statusError(method, path string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	msg := upstreamMessage(snippet)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFoundf("%s %s: %s", method, path, msg)
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(msg)
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return apperrors.Validationf("%s %s: %s", method, path, msg)
	default:
		return apperrors.Unavailable(fmt.Sprintf("%s %s: upstream status %d: %s", method, path, resp.StatusCode, msg))
	}
}

// upstreamMessage extracts the error message from a platform error payload,
// falling back to the raw body.
func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "no error detail"
	}
	return trimmed
}
