// Package config resolves run settings from flags, REPO2FILE_* environment
// variables and an optional config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"repo2file/pkg/apperror"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// REPO2FILE_IGNORE_DIRS=vendor,dist.
const EnvPrefix = "REPO2FILE"

const (
	FlagIgnoreFiles  = "ignore-files"
	FlagIgnoreDirs   = "ignore-dirs"
	FlagIncludeFiles = "include-files"
	FlagOutput       = "output"
	FlagErrorLog     = "error-log"
	FlagTree         = "tree"
	FlagDefaults     = "defaults"
	FlagHidden       = "hidden"
	FlagNoIgnore     = "no-ignore"
	FlagConfig       = "config"
	FlagDebug        = "debug"
)

const keyInput = "input"

// Settings is everything one run needs.
type Settings struct {
	Input        string
	Output       string
	Mode         FilterMode
	ErrorLog     bool
	Tree         string
	DefaultsFile string
	Hidden       bool
	NoIgnore     bool
	Debug        bool
}

// RegisterFlags defines the run flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringSlice(FlagIgnoreFiles, nil, "Files to ignore, separated by commas")
	fs.StringSlice(FlagIgnoreDirs, nil, "Directories to ignore, separated by commas")
	fs.StringSlice(FlagIncludeFiles, nil, "Files to include, separated by commas (exclusive with --ignore-files and --ignore-dirs)")
	fs.StringP(FlagOutput, "o", "", "Output file (default: <cwd>/<cwd name>.txt)")
	fs.BoolP(FlagErrorLog, "e", false, "Append read failures to <output>.error.log")
	fs.String(FlagTree, "", "Also write a tree of the included files to this path")
	fs.String(FlagDefaults, "", "YAML file replacing the built-in exclusion list")
	fs.Bool(FlagHidden, false, "Include hidden files and directories")
	fs.Bool(FlagNoIgnore, false, "Do not honor .gitignore and .ignore files")
	fs.String(FlagConfig, "", "Config file (yaml, toml or json)")
	fs.Bool(FlagDebug, false, "Enable debug logging")
}

// Load resolves settings. Flags win over environment variables, which win
// over the config file.
func Load(fs *pflag.FlagSet, args []string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, apperror.Wrap(err, apperror.InvalidArguments, "failed to bind flags")
	}

	if file := v.GetString(FlagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperror.Wrap(err, apperror.InvalidConfigFile, "failed to read config file").WithPath(file)
		}
	}

	mode, err := NewFilterMode(
		SplitList(v.GetStringSlice(FlagIgnoreFiles)),
		SplitList(v.GetStringSlice(FlagIgnoreDirs)),
		SplitList(v.GetStringSlice(FlagIncludeFiles)),
	)
	if err != nil {
		return nil, err
	}

	input := v.GetString(keyInput)
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return nil, apperror.New(apperror.InvalidArguments, "an input directory or repository URL is required")
	}

	output := v.GetString(FlagOutput)
	if output == "" {
		output, err = DefaultOutput()
		if err != nil {
			return nil, err
		}
	}

	return &Settings{
		Input:        input,
		Output:       output,
		Mode:         mode,
		ErrorLog:     v.GetBool(FlagErrorLog),
		Tree:         v.GetString(FlagTree),
		DefaultsFile: v.GetString(FlagDefaults),
		Hidden:       v.GetBool(FlagHidden),
		NoIgnore:     v.GetBool(FlagNoIgnore),
		Debug:        v.GetBool(FlagDebug),
	}, nil
}

// DefaultOutput names the output after the current working directory:
// running in /src/widget writes /src/widget/widget.txt.
func DefaultOutput() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", apperror.Wrap(err, apperror.InvalidArguments, "failed to get current directory")
	}
	name := filepath.Base(cwd)
	if name == string(filepath.Separator) || name == "." {
		name = "repo2file"
	}
	return filepath.Join(cwd, fmt.Sprintf("%s.txt", name)), nil
}

// SplitList flattens comma-separated entries and drops blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
