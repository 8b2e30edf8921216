package emit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"repo2file/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRecord_String(t *testing.T) {
	r := Record{Path: "src/main.rs", Content: "fn main() {}"}

	assert.Equal(t, "\n\n// File: src/main.rs\n\nfn main() {}\n", r.String())
}

func TestWriter_EmitAndClose(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")

	w, err := Create(out, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, out, w.Path())

	require.NoError(t, w.Emit("a.go", "package a"))
	require.NoError(t, w.Emit("b.go", ""))
	assert.Equal(t, 2, w.Records())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\n\n// File: a.go\n\npackage a\n\n\n// File: b.go\n\n\n", string(data))

	err = w.Emit("c.go", "x")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.IO))
}

func TestWriter_EmptyOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	w, err := Create(out, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCreate_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Create(filepath.Join(blocker, "out.txt"), zaptest.NewLogger(t))
	require.Error(t, err)

	code, ok := apperror.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CreateOutputFailed, code)
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.go")
	bad := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(good, []byte("héllo"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0o644))

	content, err := ReadText(good)
	require.NoError(t, err)
	assert.Equal(t, "héllo", content)

	_, err = ReadText(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUTF8))

	_, err = ReadText(filepath.Join(dir, "missing.go"))
	require.Error(t, err)
	code, _ := apperror.CodeOf(err)
	assert.Equal(t, apperror.ReadFileFailed, code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriter_EmitFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.rs")
	require.NoError(t, os.WriteFile(src, []byte("fn main(){}"), 0o644))
	out := filepath.Join(dir, "out.md")

	w, err := Create(out, nil)
	require.NoError(t, err)
	require.NoError(t, w.EmitFile(src))

	err = w.EmitFile(filepath.Join(dir, "missing"))
	require.Error(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\n\n// File: "+src+"\n\nfn main(){}\n", string(data))
}
