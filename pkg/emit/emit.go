// Package emit writes the combined output file.
package emit

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"repo2file/pkg/apperror"

	"go.uber.org/zap"
)

// ErrInvalidUTF8 is the cause reported for files that are not valid text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Record is one included file as it appears in the output.
type Record struct {
	Path    string
	Content string
}

// String formats the record with its path header.
func (r Record) String() string {
	return fmt.Sprintf("\n\n// File: %s\n\n%s\n", r.Path, r.Content)
}

// Writer owns the output file for the duration of a run.
type Writer struct {
	path    string
	file    *os.File
	buf     *bufio.Writer
	logger  *zap.Logger
	records int
	closed  bool
}

// Create creates (or truncates) the output file, making parent directories
// as needed.
func Create(path string, logger *zap.Logger) (*Writer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error("Failed to create output directory", zap.String("path", dir), zap.Error(err))
			return nil, apperror.Wrap(err, apperror.CreateOutputFailed, "failed to create output directory").WithPath(dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CreateOutputFailed, "failed to create output file").WithPath(path)
	}

	logger.Debug("Created output file", zap.String("file", path))
	return &Writer{
		path:   path,
		file:   f,
		buf:    bufio.NewWriter(f),
		logger: logger,
	}, nil
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// Records returns the number of records emitted so far.
func (w *Writer) Records() int {
	return w.records
}

// Emit appends one record.
func (w *Writer) Emit(path, content string) error {
	if w.closed {
		return apperror.New(apperror.WriteOutputFailed, "output already closed").WithPath(w.path)
	}
	if _, err := w.buf.WriteString(Record{Path: path, Content: content}.String()); err != nil {
		w.logger.Error("Failed to write record",
			zap.String("file", w.path),
			zap.String("contentPath", path),
			zap.Error(err))
		return apperror.Wrap(err, apperror.WriteOutputFailed, "failed to write record").WithPath(path)
	}
	w.records++
	return nil
}

// EmitFile reads path as text and appends it.
func (w *Writer) EmitFile(path string) error {
	content, err := ReadText(path)
	if err != nil {
		w.logger.Error("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return err
	}
	return w.Emit(path, content)
}

// Close flushes buffered records and closes the file. Calling it again is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		w.logger.Error("Failed to flush output file", zap.String("file", w.path), zap.Error(flushErr))
		return apperror.Wrap(flushErr, apperror.WriteOutputFailed, "failed to flush output").WithPath(w.path)
	}
	if closeErr != nil {
		w.logger.Error("Failed to close output file", zap.String("file", w.path), zap.Error(closeErr))
		return apperror.Wrap(closeErr, apperror.WriteOutputFailed, "failed to close output").WithPath(w.path)
	}
	return nil
}

// ReadText reads a whole file and requires valid UTF-8 content.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ReadFileFailed, "failed to read file").WithPath(path)
	}
	if !utf8.Valid(data) {
		return "", apperror.Wrap(ErrInvalidUTF8, apperror.ReadFileFailed, "failed to read file").WithPath(path)
	}
	return string(data), nil
}
