package apperror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_Values(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected uint
	}{
		{"InvalidArguments", InvalidArguments, 100},
		{"InvalidPattern", InvalidPattern, 101},
		{"InvalidDefaults", InvalidDefaults, 102},
		{"InvalidConfigFile", InvalidConfigFile, 103},
		{"CloneFailed", CloneFailed, 200},
		{"TempDirFailed", TempDirFailed, 201},
		{"CreateOutputFailed", CreateOutputFailed, 300},
		{"ReadFileFailed", ReadFileFailed, 301},
		{"WriteOutputFailed", WriteOutputFailed, 302},
		{"EntryUnreadable", EntryUnreadable, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, uint(tt.code))
		})
	}
}

func TestCode_Kind(t *testing.T) {
	assert.Equal(t, Configuration, InvalidPattern.Kind())
	assert.Equal(t, Acquisition, CloneFailed.Kind())
	assert.Equal(t, IO, ReadFileFailed.Kind())
	assert.Equal(t, TraversalEntry, EntryUnreadable.Kind())
	assert.Equal(t, Unknown, Code(7).Kind())
	assert.Equal(t, "io", IO.String())
}

func TestError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(InvalidArguments, "bad flags")
		assert.Equal(t, "[100] bad flags", err.Error())
	})

	t.Run("with cause and path", func(t *testing.T) {
		err := Wrap(os.ErrNotExist, ReadFileFailed, "failed to read file").WithPath("src/main.rs")
		assert.Equal(t, "[301] failed to read file (src/main.rs): file does not exist", err.Error())
	})
}

func TestWrap_Unwrap(t *testing.T) {
	err := Wrap(os.ErrPermission, CreateOutputFailed, "failed to create output file")

	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Equal(t, IO, err.Kind())
	assert.False(t, err.Timestamp.IsZero())
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	inner := New(InvalidPattern, "invalid glob")
	outer := fmt.Errorf("compile policy: %w", inner)

	code, ok := CodeOf(outer)
	require.True(t, ok)
	assert.Equal(t, InvalidPattern, code)
	assert.True(t, IsKind(outer, Configuration))
	assert.False(t, IsKind(outer, IO))

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(errors.New("plain"), Configuration))
}

func TestWithPath_DoesNotMutateOriginal(t *testing.T) {
	base := New(ReadFileFailed, "failed to read file")
	withPath := base.WithPath("a.txt")

	assert.Empty(t, base.Path)
	assert.Equal(t, "a.txt", withPath.Path)
}
