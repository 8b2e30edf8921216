package policy

import (
	"fmt"
	"os"
	"slices"

	"repo2file/pkg/apperror"

	"gopkg.in/yaml.v3"
)

// DefaultExclusionSet is the built-in exclusion list applied to every run
// outside include-mode.
type DefaultExclusionSet struct {
	IgnoreFilePatterns []string `yaml:"ignore_files"` // Globs matched against the full path.
	IgnoreDirNames     []string `yaml:"ignore_dirs"`  // Exact directory component names.
}

var defaultIgnoreDirs = []string{
	"node_modules",
	".git",
	".idea",
	".vscode",
}

var defaultIgnoreFiles = []string{
	"*LICENCE.md",
	"*CHANGELOG.md",
	"*.DS_Store",
	"*.all-contributorsrc",
	"*.yaml",
	"*.yml",
	"*.json",
	"*.csv",
	"*.svg",
	"*.conf",
	"*.ini",
	"*.env",
	"*.log",
	"*.tmp",
	"*.pyc",
	"*.class",
	"*.o",
	"*.obj",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
	"*.ncb",
	"*.sdf",
	"*.suo",
	"*.pdb",
	"*.idb",
	"*.lock",
	"*.toml",
	".prettierrc.*",
	"*.txt",
	"Pipfile",
	"*.cfg",
	".gitignore",
	".gitattributes",
	".dockerignore",
	".env",
	".flaskenv",
	".editorconfig",
	"Makefile",
	"CMakeLists.txt",
}

// Defaults returns the built-in exclusion set. Each call returns fresh slices,
// so callers cannot alter the set seen by other runs.
func Defaults() DefaultExclusionSet {
	return DefaultExclusionSet{
		IgnoreFilePatterns: slices.Clone(defaultIgnoreFiles),
		IgnoreDirNames:     slices.Clone(defaultIgnoreDirs),
	}
}

// LoadDefaults reads a YAML exclusion set that replaces the built-in one.
//
//	ignore_files:
//	  - "*.lock"
//	ignore_dirs:
//	  - vendor
func LoadDefaults(path string) (DefaultExclusionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultExclusionSet{}, apperror.Wrap(err, apperror.InvalidDefaults, "failed to read defaults file").WithPath(path)
	}

	var set DefaultExclusionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return DefaultExclusionSet{}, apperror.Wrap(err, apperror.InvalidDefaults, "failed to parse defaults file").WithPath(path)
	}

	if err := set.Validate(); err != nil {
		return DefaultExclusionSet{}, apperror.Wrap(err, apperror.InvalidDefaults, "invalid defaults file").WithPath(path)
	}
	return set, nil
}

// Validate rejects empty patterns.
func (d DefaultExclusionSet) Validate() error {
	for i, p := range d.IgnoreFilePatterns {
		if p == "" {
			return fmt.Errorf("ignore_files[%d] is empty", i)
		}
	}
	for i, name := range d.IgnoreDirNames {
		if name == "" {
			return fmt.Errorf("ignore_dirs[%d] is empty", i)
		}
	}
	return nil
}
