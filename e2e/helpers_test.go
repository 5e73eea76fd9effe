package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagarc03/dataapi"
	datahttp "github.com/sagarc03/dataapi/http"
)

// startServer serves the full router over a real listener.
func startServer(t *testing.T, opener dataapi.StoreOpener, key string) string {
	t.Helper()

	service, err := dataapi.NewDocumentService(opener, key)
	require.NoError(t, err)

	handler := datahttp.NewHandler(&datahttp.HandlerConfig{}, service)
	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)

	return srv.URL
}

type response struct {
	Status int
	Body   string
}

func get(t *testing.T, url string) response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.True(t, json.Valid(body), "response is not json: %s", body)

	return response{Status: resp.StatusCode, Body: string(body)}
}

func writeObject(t *testing.T, root, key, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
