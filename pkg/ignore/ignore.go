// Package ignore matches paths against gitignore-style pattern files such as
// .gitignore and .ignore, scoped to the directory each file lives in.
package ignore

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// Result is the outcome of matching a path.
type Result int

const (
	NoMatch     Result = iota // no pattern matched
	Ignored                   // deciding pattern excludes the path
	Whitelisted               // deciding pattern is a negation
)

// Rule is one parsed pattern line and where it came from.
type Rule struct {
	Pattern gitignore.Pattern
	Line    string
	LineNo  int
	Source  string // File the pattern came from; empty for inline lines.
}

// String formats the rule as source:line: pattern.
func (r *Rule) String() string {
	if r == nil {
		return ""
	}
	src := r.Source
	if src == "" {
		src = "<inline>"
	}
	return src + ":" + strconv.Itoa(r.LineNo) + ": " + r.Line
}

// Matcher holds the ignore rules of every loaded directory. Directories are
// keyed by their slash-separated path relative to the walk root, "." for the
// root itself.
type Matcher struct {
	dirs   map[string][]*Rule
	logger *zap.Logger
}

// New initializes an empty Matcher.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{dirs: make(map[string][]*Rule), logger: logger}
}

// Len returns the number of rules loaded for relDir.
func (m *Matcher) Len(relDir string) int {
	return len(m.dirs[relDir])
}

// AddLines parses pattern lines for relDir and appends them after the rules
// already loaded there.
func (m *Matcher) AddLines(relDir, source string, lines ...string) {
	domain := domainOf(relDir)
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		m.dirs[relDir] = append(m.dirs[relDir], &Rule{
			Pattern: gitignore.ParsePattern(line, domain),
			Line:    line,
			LineNo:  i + 1,
			Source:  source,
		})
	}
}

// LoadFile reads an ignore file that lives in relDir. A missing file is not
// an error.
func (m *Matcher) LoadFile(relDir, filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		m.logger.Warn("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	before := m.Len(relDir)
	m.AddLines(relDir, filePath, lines...)
	m.logger.Debug("Compiled ignore file",
		zap.String("filePath", filePath),
		zap.Int("patternCount", m.Len(relDir)-before))
	return nil
}

// Match applies the rules of every directory above relPath. Rules of deeper
// directories take precedence, and within one directory the last matching
// rule decides. The deciding rule is returned, nil on NoMatch.
func (m *Matcher) Match(relPath string, isDir bool) (Result, *Rule) {
	segs := strings.Split(filepath.ToSlash(strings.TrimSuffix(relPath, "/")), "/")

	chain := []string{"."}
	for i := 1; i < len(segs); i++ {
		chain = append(chain, strings.Join(segs[:i], "/"))
	}

	for d := len(chain) - 1; d >= 0; d-- {
		rules := m.dirs[chain[d]]
		for i := len(rules) - 1; i >= 0; i-- {
			switch rules[i].Pattern.Match(segs, isDir) {
			case gitignore.Exclude:
				return Ignored, rules[i]
			case gitignore.Include:
				return Whitelisted, rules[i]
			}
		}
	}
	return NoMatch, nil
}

func domainOf(relDir string) []string {
	if relDir == "" || relDir == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(relDir), "/")
}
