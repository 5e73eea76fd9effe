package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/dataapi"
	"github.com/sagarc03/dataapi/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewLogHandler_ProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHandler(&buf, &config.Config{Env: "prod", Log: config.LogConfig{Level: "info"}})

	slog.New(h).Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])
	assert.Contains(t, line, "ts")
}

func TestNewLogHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHandler(&buf, &config.Config{Env: "prod", Log: config.LogConfig{Level: "error"}})

	slog.New(h).Info("dropped")

	assert.Empty(t, buf.String())
}

func TestConfigContext(t *testing.T) {
	_, err := config.FromContext(context.Background())
	assert.Error(t, err)

	cfg := &config.Config{Env: "dev"}
	got, err := config.FromContext(config.WithContext(context.Background(), cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestWriteDocument(t *testing.T) {
	doc := dataapi.Document(`{"name":"sample","value":42}`)

	var jsonOut bytes.Buffer
	require.NoError(t, writeDocument(&jsonOut, doc, "json"))
	assert.Equal(t, "{\n  \"name\": \"sample\",\n  \"value\": 42\n}\n", jsonOut.String())

	var yamlOut bytes.Buffer
	require.NoError(t, writeDocument(&yamlOut, doc, "yaml"))
	assert.Equal(t, "name: sample\nvalue: 42\n", yamlOut.String())
}

func TestDescribeFetchError(t *testing.T) {
	notFound := describeFetchError("k.json", dataapi.NewStoreError(dataapi.KindNotFound, "get object", "k.json", nil))
	assert.Contains(t, notFound.Error(), "not found")
	assert.ErrorIs(t, notFound, dataapi.ErrNotFound)

	decode := describeFetchError("k.json", dataapi.ErrDecode)
	assert.Contains(t, decode.Error(), "not valid json")

	other := describeFetchError("k.json", errors.New("AccessDenied"))
	assert.Contains(t, other.Error(), "read object")
}

func TestNewDocumentService_Filesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "input"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input", "sample2.json"), []byte(`{"ok": true}`), 0o644))

	cfg := &config.Config{Store: config.StoreConfig{
		Backend: "filesystem",
		Path:    dir,
		Key:     dataapi.DefaultObjectKey,
	}}

	service, cleanup, err := newDocumentService(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	doc, err := service.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(doc))
}

func TestNewDocumentService_Errors(t *testing.T) {
	_, _, err := newDocumentService(context.Background(), &config.Config{Store: config.StoreConfig{Backend: "gcs"}})
	assert.Error(t, err)

	_, _, err = newDocumentService(context.Background(), &config.Config{Store: config.StoreConfig{
		Backend: "filesystem",
		Path:    filepath.Join(t.TempDir(), "missing"),
		Key:     dataapi.DefaultObjectKey,
	}})
	assert.Error(t, err)
}

func TestFetchCommand_Filesystem(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AWS_REGION", "us-east-1")

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "input"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input", "sample2.json"), []byte(`{"name": "sample", "value": 42}`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"fetch", "--backend", "filesystem", "--storage-path", dir, "--log-level", "error"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.JSONEq(t, `{"name": "sample", "value": 42}`, out.String())
}
