//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tinywin-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/tinywin-backend/internal/app"
)

// ---------------------------------------------------------------------------
// testServer runs the real application, configured from env, against the
// shared PostgreSQL container.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := testhelper.SetupTestDSN(t)
	port := freePort(t)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", strconv.Itoa(port))
	t.Setenv("RATE_LIMIT_WRITES_PER_MINUTE", "0")
	t.Setenv("LOG_LEVEL", "warn")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	srv := &testServer{
		URL:    fmt.Sprintf("http://127.0.0.1:%d", port),
		Client: &http.Client{Timeout: 10 * time.Second},
	}

	deadline := time.Now().Add(30 * time.Second)
	for !srv.ready() {
		select {
		case err := <-done:
			cancel()
			t.Fatalf("app exited during startup: %v", err)
		case <-time.After(100 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("server never became ready")
		}
	}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("app.Run: %v", err)
			}
		case <-time.After(15 * time.Second):
			t.Error("app did not shut down")
		}
	})

	return srv
}

func (s *testServer) ready() bool {
	resp, err := s.Client.Get(s.URL + "/ready")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// do sends body (marshalled to JSON unless it is already a string) and
// returns the status code and raw response body.
func (s *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, r)
	require.NoError(t, err)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

type winResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt string  `json:"completedAt"`
}

func decodeWin(t *testing.T, raw []byte) winResponse {
	t.Helper()
	var w winResponse
	require.NoError(t, json.Unmarshal(raw, &w), "body: %s", raw)
	return w
}

func decodeError(t *testing.T, raw []byte) string {
	t.Helper()
	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &e), "body: %s", raw)
	return e.Error
}
