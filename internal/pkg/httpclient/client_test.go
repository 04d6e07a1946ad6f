package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func TestDoJSON_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"loc":"1,2"}`))
	}))
	defer srv.Close()

	var out struct {
		Loc string `json:"loc"`
	}
	err := New("test", time.Second).DoJSON(newRequest(t, srv.URL), &out)
	require.NoError(t, err)
	assert.Equal(t, "1,2", out.Loc)
}

func TestDoJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":2009}}`))
	}))
	defer srv.Close()

	var out map[string]any
	err := New("test", time.Second).DoJSON(newRequest(t, srv.URL), &out)

	var se *StatusError
	require.True(t, errors.As(err, &se), "expected *StatusError, got %v", err)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.JSONEq(t, `{"error":{"code":2009}}`, string(se.Body))
}

func TestDoJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := New("test", time.Second).DoJSON(newRequest(t, srv.URL), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test decode")
}

func TestDoJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	var out map[string]any
	err := New("test", 20*time.Millisecond).DoJSON(newRequest(t, srv.URL), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test request")
}
