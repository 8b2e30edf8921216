package config

import (
	"repo2file/pkg/apperror"
	"repo2file/pkg/policy"
)

// FilterMode is the parsed form of the three filter flags. Only IgnoreMode
// and IncludeMode implement it, so a parsed mode can never combine an include
// list with ignore lists.
type FilterMode interface {
	Request() policy.Request
	isFilterMode()
}

// IgnoreMode applies the default exclusions plus the user's ignore lists.
type IgnoreMode struct {
	Files []string
	Dirs  []string
}

// IncludeMode selects only the listed files and bypasses every exclusion.
type IncludeMode struct {
	Files []string
}

func (m IgnoreMode) Request() policy.Request {
	return policy.Request{IgnoreFiles: m.Files, IgnoreDirs: m.Dirs}
}

func (m IncludeMode) Request() policy.Request {
	return policy.Request{IncludeFiles: m.Files}
}

func (IgnoreMode) isFilterMode()  {}
func (IncludeMode) isFilterMode() {}

// NewFilterMode builds the mode for the given lists. Empty lists count as
// absent.
func NewFilterMode(ignoreFiles, ignoreDirs, includeFiles []string) (FilterMode, error) {
	if len(includeFiles) == 0 {
		return IgnoreMode{Files: ignoreFiles, Dirs: ignoreDirs}, nil
	}
	if len(ignoreFiles) > 0 || len(ignoreDirs) > 0 {
		return nil, apperror.New(apperror.InvalidArguments,
			"--include-files cannot be used together with --ignore-files or --ignore-dirs")
	}
	return IncludeMode{Files: includeFiles}, nil
}
