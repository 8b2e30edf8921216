package combine

import (
	"repo2file/pkg/policy"
	"repo2file/pkg/walker"
)

// Arguments holds the configuration options for one combine run.
type Arguments struct {
	Input        string         // Local directory or remote repository URL.
	Output       string         // Destination path for the combined output file.
	Tree         string         // Optional destination for a tree of the included files.
	Request      policy.Request // User filter lists.
	DefaultsFile string         // Optional YAML file replacing the built-in exclusion set.
	ErrorLog     bool           // Append read failures to the error log next to Output.
	Walk         walker.Options // Hidden-file and ignore-file handling.
}

// Summary describes a completed run.
type Summary struct {
	Root   string   // Directory that was walked.
	Output string   // Combined output file.
	Files  []string // Included paths, in output order.
}
