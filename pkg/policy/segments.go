package policy

import (
	"path/filepath"
	"strings"
)

func isSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// splitSegments breaks a path into its named components, dropping empty and
// "." segments.
func splitSegments(path string) []string {
	fields := strings.FieldsFunc(path, isSeparator)
	segs := fields[:0]
	for _, f := range fields {
		if f != "." {
			segs = append(segs, f)
		}
	}
	return segs
}

func isRooted(path string) bool {
	return path != "" && (isSeparator(rune(path[0])) || filepath.IsAbs(path))
}

// suffix is a path pattern compared component by component against the end of
// a candidate path, so "b/c.txt" matches "a/b/c.txt" but not "a/bb/c.txt".
type suffix struct {
	segs   []string
	rooted bool
}

func newSuffix(entry string) suffix {
	return suffix{segs: splitSegments(entry), rooted: isRooted(entry)}
}

func (s suffix) matches(segs []string, rooted bool) bool {
	n := len(s.segs)
	if n == 0 || n > len(segs) {
		return false
	}
	if s.rooted && (!rooted || n != len(segs)) {
		return false
	}
	tail := segs[len(segs)-n:]
	for i := range s.segs {
		if s.segs[i] != tail[i] {
			return false
		}
	}
	return true
}
