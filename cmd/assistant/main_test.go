package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenTranscript_Disabled(t *testing.T) {
	var stderr bytes.Buffer
	require.Nil(t, openTranscript("", &stderr))
	require.Empty(t, stderr.String())
}

func TestOpenTranscript_UnwritablePathIsReported(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "dir", "transcript.db")
	require.Nil(t, openTranscript(path, &stderr))
	require.Contains(t, stderr.String(), "Warning: transcript disabled:")
}

func TestOpenTranscript_Opens(t *testing.T) {
	var stderr bytes.Buffer
	store := openTranscript(filepath.Join(t.TempDir(), "transcript.db"), &stderr)
	require.NotNil(t, store)
	require.NoError(t, store.Close())
	require.Empty(t, stderr.String())
}
