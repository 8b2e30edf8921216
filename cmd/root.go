package cmd

import (
	"context"

	"repo2file/pkg/config"
	"repo2file/pkg/version"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const rootLongDescription = `repo2file concatenates the text files of a local directory or a
GitHub repository into a single file, each preceded by a "// File: <path>" header.

Files are filtered by a built-in exclusion list (lock files, JSON, YAML,
node_modules, .git, ...), which --ignore-files and --ignore-dirs extend.
--include-files switches to include-mode: only the listed files are kept and
every exclusion rule is ignored. It cannot be combined with the ignore flags.

Every flag can also be set through a REPO2FILE_* environment variable
(REPO2FILE_IGNORE_DIRS=vendor,dist) or a --config file.`

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo2file <input>",
		Short: "Turn a code repository into a single text file",
		Long:  rootLongDescription,
		Example: `  repo2file . --ignore-dirs vendor,dist
  repo2file https://github.com/user/repo --output repo.txt
  repo2file ./service --include-files "*.go,go.mod"`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runCombine,
	}

	config.RegisterFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(config.FlagIncludeFiles, config.FlagIgnoreFiles)
	cmd.MarkFlagsMutuallyExclusive(config.FlagIncludeFiles, config.FlagIgnoreDirs)

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command with styled help and error output.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		NewRootCmd(),
		fang.WithVersion(version.Get().Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}
