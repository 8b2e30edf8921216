package policy

import "repo2file/pkg/apperror"

// Request holds the user-supplied filter lists. An empty list behaves exactly
// like a list that was never supplied.
type Request struct {
	IgnoreFiles  []string
	IgnoreDirs   []string
	IncludeFiles []string
}

// IncludeMode reports whether the request selects files exclusively by IncludeFiles.
func (r Request) IncludeMode() bool {
	return len(r.IncludeFiles) > 0
}

// Validate rejects an include list combined with either ignore list.
func (r Request) Validate() error {
	if r.IncludeMode() && (len(r.IgnoreFiles) > 0 || len(r.IgnoreDirs) > 0) {
		return apperror.New(apperror.InvalidArguments,
			"include files cannot be combined with ignore files or ignore dirs")
	}
	return nil
}
