package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"repo2file/pkg/emit"
	"repo2file/pkg/walker"

	"go.uber.org/zap"
)

// emitFiles reads every accepted file and appends it to the output. The first
// read failure stops the run; with an error log configured it is recorded
// there as well.
func emitFiles(writer *emit.Writer, w *walker.Walker, files []string, errorLog string, logger *zap.Logger) error {
	for _, path := range files {
		content, err := emit.ReadText(w.Resolve(path))
		if err != nil {
			logger.Error("Failed to read file", zap.String("filePath", path), zap.Error(err))
			if errorLog != "" {
				if logErr := appendErrorLog(errorLog, path, err); logErr != nil {
					logger.Warn("Failed to write error log", zap.String("file", errorLog), zap.Error(logErr))
				}
			}
			return err
		}

		if err := writer.Emit(path, content); err != nil {
			return err
		}
		logger.Debug("Emitted file", zap.String("filePath", path), zap.Int("contentSizeBytes", len(content)))
	}
	return nil
}

// errorLogPath derives the error log location from the output path:
// out/result.txt logs to out/result.error.log.
func errorLogPath(args *Arguments) string {
	if !args.ErrorLog {
		return ""
	}
	return strings.TrimSuffix(args.Output, filepath.Ext(args.Output)) + ".error.log"
}

func appendErrorLog(path, filePath string, cause error) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "Error reading file %s: %v\n", filePath, cause); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error("Failed to create directory", zap.String("path", dir), zap.Error(err))
			return err
		}
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
