package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/models"
)

func captureOrigin(t *testing.T, rootToken string, headers map[string]string) models.Origin {
	t.Helper()
	var got models.Origin
	h := Identity(rootToken)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = OriginFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestIdentity(t *testing.T) {
	t.Run("Account", func(t *testing.T) {
		got := captureOrigin(t, "s3cret", map[string]string{AccountHeader: " alice "})
		assert.Equal(t, models.Origin{Account: "alice"}, got)
	})

	t.Run("Root Token", func(t *testing.T) {
		got := captureOrigin(t, "s3cret", map[string]string{RootHeader: "s3cret"})
		assert.True(t, got.Root)
		assert.Empty(t, got.Account)
	})

	t.Run("Wrong Token", func(t *testing.T) {
		got := captureOrigin(t, "s3cret", map[string]string{RootHeader: "guess"})
		assert.False(t, got.Root)
	})

	t.Run("Root Disabled", func(t *testing.T) {
		got := captureOrigin(t, "", map[string]string{RootHeader: ""})
		assert.False(t, got.Root)
	})

	t.Run("Anonymous Context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, models.Origin{}, OriginFromContext(req.Context()))
	})
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Identity("")(NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})))

	req := httptest.NewRequest(http.MethodPost, "/campaigns/1/cancel", nil)
	req.Header.Set(AccountHeader, "bob")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line struct {
		Level   string `json:"level"`
		Msg     string `json:"msg"`
		Request struct {
			Path    string `json:"path"`
			Account string `json:"account"`
		} `json:"request"`
		Response struct {
			Status int `json:"status"`
		} `json:"response"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line.Level)
	assert.Equal(t, "request rejected", line.Msg)
	assert.Equal(t, "/campaigns/1/cancel", line.Request.Path)
	assert.Equal(t, "bob", line.Request.Account)
	assert.Equal(t, http.StatusConflict, line.Response.Status)
}
