// Package logging builds the zap logger for a run.
package logging

import (
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Setup builds the logger for one run. Debug selects the development config
// (console encoding, debug level); otherwise the production config is used.
// Every entry carries the app name, version and a fresh run id.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
		"runID":      uuid.NewString(),
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewExample(), err
	}
	return logger, nil
}

// Sync flushes the logger when stderr can be synced. Terminals and pipes
// reject fsync with EINVAL, which is not worth reporting.
func Sync(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", err)
		}
	}
}

func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
