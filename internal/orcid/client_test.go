// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orcid

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubsync/internal/httputil"
	"github.com/pdiddy/pubsync/pkg/types"
)

const testID = "0000-0002-7733-2498"

func newTestClient(ts *httptest.Server) *Client {
	c := NewClient(types.HTTPConfig{UserAgent: "pubsync-test"})
	c.HTTP = ts.Client()
	c.BaseURL = ts.URL
	return c
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.HTTPConfig{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, DefaultUserAgent, c.UserAgent)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)

	c = NewClient(types.HTTPConfig{Timeout: 3 * time.Second, UserAgent: "custom"})
	assert.Equal(t, 3*time.Second, c.HTTP.Timeout)
	assert.Equal(t, "custom", c.UserAgent)
}

func TestWorksURL(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "https://pub.orcid.org/v3.0/"+testID+"/works", c.WorksURL(testID))

	c.BaseURL = "http://localhost:9999/v3.0/"
	assert.Equal(t, "http://localhost:9999/v3.0/"+testID+"/works", c.WorksURL(testID))
}

func TestFetchWorks_Success(t *testing.T) {
	fixture, err := os.ReadFile(filepath.Join("testdata", "works.json"))
	require.NoError(t, err)

	var gotPath, gotAccept, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	}))
	defer ts.Close()

	pubs, err := newTestClient(ts).FetchWorks(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, "/"+testID+"/works", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "pubsync-test", gotUA)
	require.Len(t, pubs, 3)
	assert.Equal(t, "Analytical Chemistry", pubs[0].Journal)
}

func TestFetchWorks_IdentifierIsParameter(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/0000-0001-0000-0001/works":
			w.Write([]byte(`{"group": [{"work-summary": [{"title": {"title": {"value": "One"}}}]}]}`))
		case "/0000-0001-0000-0002/works":
			w.Write([]byte(`{"group": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)

	pubs, err := c.FetchWorks(context.Background(), "0000-0001-0000-0001")
	require.NoError(t, err)
	require.Len(t, pubs, 1)
	assert.Equal(t, "One", pubs[0].Title)

	pubs, err = c.FetchWorks(context.Background(), " 0000-0001-0000-0002 ")
	require.NoError(t, err)
	assert.NotNil(t, pubs)
	assert.Empty(t, pubs)
}

func TestFetchWorks_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			kind: ErrStatus,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"response-code": 404}`))
			},
			kind: ErrStatus,
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"group": [`))
			},
			kind: ErrDecode,
		},
		{
			name: "HTML body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte(`<html><body>maintenance</body></html>`))
			},
			kind: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			pubs, err := newTestClient(ts).FetchWorks(context.Background(), testID)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.NotNil(t, pubs)
			assert.Empty(t, pubs)
		})
	}
}

func TestFetchWorks_StatusErrorDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).FetchWorks(context.Background(), testID)
	var se *httputil.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestFetchWorks_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	c := newTestClient(ts)
	c.HTTP.Timeout = 50 * time.Millisecond

	pubs, err := c.FetchWorks(context.Background(), testID)
	assert.ErrorIs(t, err, ErrRequest)
	assert.NotNil(t, pubs)
	assert.Empty(t, pubs)
}

func TestFetchWorks_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(ts)
	ts.Close()

	pubs, err := c.FetchWorks(context.Background(), testID)
	assert.ErrorIs(t, err, ErrRequest)
	assert.Empty(t, pubs)
}

func TestFetchWorks_EmptyID(t *testing.T) {
	c := &Client{}
	pubs, err := c.FetchWorks(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.NotNil(t, pubs)
	assert.Empty(t, pubs)
}
