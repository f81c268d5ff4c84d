// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orcid fetches a researcher's works from the public ORCID API and
// projects them into publication records.
package orcid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/pubsync/internal/httputil"
	"github.com/pdiddy/pubsync/internal/jsontree"
	"github.com/pdiddy/pubsync/pkg/types"
)

const (
	// DefaultBaseURL is the public ORCID API v3.0 root.
	DefaultBaseURL = "https://pub.orcid.org/v3.0"

	// DefaultTimeout bounds the works request.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "pubsync/0.1"
)

// Error kinds returned by FetchWorks. Wrapped errors carry the detail.
var (
	ErrInvalidID = errors.New("invalid ORCID identifier")
	ErrRequest   = errors.New("ORCID request failed")
	ErrStatus    = errors.New("ORCID returned an error status")
	ErrDecode    = errors.New("ORCID response is not valid JSON")
)

// Client reads works from the ORCID public API.
type Client struct {
	// HTTP is the client used for requests. Its Timeout applies to the call.
	HTTP *http.Client

	// BaseURL is the API root. Tests point it at an httptest server.
	BaseURL string

	// UserAgent is the User-Agent header value.
	UserAgent string
}

// NewClient builds a Client from cfg, filling defaults for unset fields.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   DefaultBaseURL,
		UserAgent: ua,
	}
}

// WorksURL returns the works endpoint for orcidID.
func (c *Client) WorksURL(orcidID string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(orcidID) + "/works"
}

// FetchWorks retrieves the works of orcidID and returns at most MaxWorks
// publication records in API order. On failure the returned slice is empty,
// never nil, and the error wraps one of ErrInvalidID, ErrRequest, ErrStatus,
// or ErrDecode. Incomplete records are not errors.
func (c *Client) FetchWorks(ctx context.Context, orcidID string) ([]types.Publication, error) {
	orcidID = strings.TrimSpace(orcidID)
	if orcidID == "" {
		return []types.Publication{}, fmt.Errorf("%w: empty identifier", ErrInvalidID)
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	body, err := httputil.GetJSON(ctx, client, c.WorksURL(orcidID), c.UserAgent)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return []types.Publication{}, fmt.Errorf("%w: %w", ErrStatus, err)
		}
		return []types.Publication{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	root, err := jsontree.Parse(body)
	if err != nil {
		return []types.Publication{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return Extract(root), nil
}
