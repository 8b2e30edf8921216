// Package walker enumerates the regular files of a directory tree.
package walker

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"repo2file/pkg/apperror"
	"repo2file/pkg/ignore"

	"go.uber.org/zap"
)

// IgnoreFileNames are read from every walked directory, in this order, so
// .ignore rules override .gitignore rules of the same directory. The
// .gitignore file only applies when the root lies inside a git repository.
var IgnoreFileNames = []string{GitIgnoreFile, IgnoreFile}

const (
	GitIgnoreFile = ".gitignore"
	IgnoreFile    = ".ignore"
)

// Options tunes a walk.
type Options struct {
	Hidden        bool // Yield entries whose name starts with '.'.
	NoIgnoreFiles bool // Do not honor .gitignore/.ignore files.
	Relative      bool // Yield paths relative to the root instead of root-prefixed.
}

// Walker yields candidate file paths below a root directory.
type Walker struct {
	root   string
	opts   Options
	logger *zap.Logger
}

// New creates a Walker for root.
func New(root string, opts Options, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{root: root, opts: opts, logger: logger}
}

// Root returns the directory being walked.
func (w *Walker) Root() string {
	return w.root
}

// Resolve maps a yielded path back to a file-system path.
func (w *Walker) Resolve(p string) string {
	if w.opts.Relative {
		return filepath.Join(w.root, p)
	}
	return p
}

// Paths returns a lazy, lexically ordered sequence of regular files. Each call
// starts a fresh walk. Directories, symlinks and special files are never
// yielded, and entries that cannot be read are logged and left out.
func (w *Walker) Paths() iter.Seq[string] {
	return func(yield func(string) bool) {
		matcher := ignore.New(w.logger)
		names := w.ignoreFileNames()

		_ = filepath.WalkDir(w.root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				w.logger.Warn("Error accessing path during traversal",
					zap.String("path", p),
					zap.Error(apperror.Wrap(err, apperror.EntryUnreadable, "entry skipped")))
				if d != nil && d.IsDir() && p != w.root {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(w.root, p)
			if err != nil {
				w.logger.Warn("Unable to determine relative path", zap.String("path", p), zap.Error(err))
				return nil
			}
			relSlash := filepath.ToSlash(rel)

			if relSlash == "." {
				if d.IsDir() {
					w.loadIgnoreFiles(matcher, names, p, ".")
					return nil
				}
			} else {
				if !w.opts.Hidden && strings.HasPrefix(d.Name(), ".") {
					return skip(d)
				}
				if !w.opts.NoIgnoreFiles {
					if r, rule := matcher.Match(relSlash, d.IsDir()); r == ignore.Ignored {
						w.logger.Debug("Skipping path matched by ignore file",
							zap.String("path", p),
							zap.Stringer("rule", rule))
						return skip(d)
					}
				}
				if d.IsDir() {
					w.loadIgnoreFiles(matcher, names, p, relSlash)
					return nil
				}
			}

			if !d.Type().IsRegular() {
				return nil
			}

			out := p
			if w.opts.Relative {
				out = rel
			}
			if !yield(out) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Collect runs a full walk and returns every yielded path.
func (w *Walker) Collect() []string {
	var files []string
	for p := range w.Paths() {
		files = append(files, p)
	}
	w.logger.Debug("Completed traversal", zap.String("root", w.root), zap.Int("files", len(files)))
	return files
}

func skip(d fs.DirEntry) error {
	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

func (w *Walker) loadIgnoreFiles(m *ignore.Matcher, names []string, dir, relDir string) {
	if w.opts.NoIgnoreFiles {
		return
	}
	for _, name := range names {
		if err := m.LoadFile(relDir, filepath.Join(dir, name)); err != nil {
			w.logger.Warn("Ignore file skipped", zap.String("dir", dir), zap.String("file", name), zap.Error(err))
		}
	}
}

// ignoreFileNames drops .gitignore when the root is not inside a git
// repository, the way git itself would never read it.
func (w *Walker) ignoreFileNames() []string {
	if w.opts.NoIgnoreFiles {
		return nil
	}
	if insideGitRepo(w.root) {
		return IgnoreFileNames
	}
	w.logger.Debug("Not a git repository, ignoring .gitignore files", zap.String("root", w.root))
	return []string{IgnoreFile}
}

// insideGitRepo reports whether dir or one of its parents holds a .git entry.
func insideGitRepo(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for {
		if _, err := os.Lstat(filepath.Join(abs, ".git")); err == nil {
			return true
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return false
		}
		abs = parent
	}
}
