package cmd

import (
	"fmt"

	"repo2file/pkg/combine"
	"repo2file/pkg/config"
	"repo2file/pkg/logging"
	"repo2file/pkg/version"
	"repo2file/pkg/walker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupLogger is replaced in tests.
var setupLogger = logging.Setup

func runCombine(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(cmd.Flags(), args)
	if err != nil {
		return err
	}

	logger, err := setupLogger(settings.Debug, "repo2file", version.Get().Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logging.Sync(logger)

	summary, err := combine.Run(cmd.Context(), toArguments(settings), logger)
	if err != nil {
		logger.Error("repo2file execution failed", zap.Error(err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files to %s\n", len(summary.Files), summary.Output)
	return nil
}

func toArguments(s *config.Settings) *combine.Arguments {
	return &combine.Arguments{
		Input:        s.Input,
		Output:       s.Output,
		Tree:         s.Tree,
		Request:      s.Mode.Request(),
		DefaultsFile: s.DefaultsFile,
		ErrorLog:     s.ErrorLog,
		Walk: walker.Options{
			Hidden:        s.Hidden,
			NoIgnoreFiles: s.NoIgnore,
		},
	}
}
