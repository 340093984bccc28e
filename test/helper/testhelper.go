// Package helper provides test utilities shared by the package tests
package helper

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestServer is a wrapper around httptest.Server that records the last request
type TestServer struct {
	*httptest.Server
	URL string
}

// NewTestServer creates a new test server with the given handler
func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return &TestServer{
		Server: ts,
		URL:    ts.URL,
	}
}

// WriteConfigFile writes content to name inside a temporary directory and returns its path
func WriteConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// ClearConfigEnv blanks every configuration environment variable for the test
func ClearConfigEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"AZURE_OPENAI_API_KEY",
		"AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_DEPLOYMENT",
		"API_VERSION",
		"CLIENT_ID",
		"CLIENT_SECRET",
		"TENANT_ID",
		"POWERBI_WORKSPACE",
		"SEMANTIC_MODEL",
		"RLS_RULES",
		"SEMANTIC_MODEL_METADATA",
		"DAX_COPILOT_CONFIG_FILE",
	} {
		t.Setenv(name, "")
	}
}
