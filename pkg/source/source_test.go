package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"repo2file/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://github.com/username/repo", true},
		{"http://github.com/username/repo", false},
		{"https://gitlab.com/username/repo", false},
		{"/local/path/to/repo", false},
		{"github.com/username/repo", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.input))
		})
	}
}

func TestAcquire_LocalPathIsUntouched(t *testing.T) {
	a := New(zaptest.NewLogger(t))
	a.Clone = func(context.Context, string, string) error {
		t.Fatal("local input must not be cloned")
		return nil
	}

	c, err := a.Acquire(context.Background(), "some/dir")
	require.NoError(t, err)
	assert.Equal(t, "some/dir", c.Dir)
	assert.False(t, c.Remote)
	assert.NoError(t, c.Close())
}

func TestAcquire_RemoteClonesIntoTempDir(t *testing.T) {
	var gotURL string
	a := New(zaptest.NewLogger(t))
	a.Clone = func(_ context.Context, dir, url string) error {
		gotURL = url
		return os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644)
	}

	c, err := a.Acquire(context.Background(), "https://github.com/acme/widget")
	require.NoError(t, err)
	assert.True(t, c.Remote)
	assert.Equal(t, "https://github.com/acme/widget", gotURL)
	assert.FileExists(t, filepath.Join(c.Dir, "main.go"))

	require.NoError(t, c.Close())
	assert.NoDirExists(t, c.Dir)
}

func TestAcquire_CloneFailure(t *testing.T) {
	var tempDir string
	cause := errors.New("repository not found")
	a := New(zaptest.NewLogger(t))
	a.Clone = func(_ context.Context, dir, _ string) error {
		tempDir = dir
		return cause
	}

	_, err := a.Acquire(context.Background(), "https://github.com/acme/missing")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.Acquisition))
	assert.True(t, errors.Is(err, cause))
	assert.NoDirExists(t, tempDir)
}
