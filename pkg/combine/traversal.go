package combine

import (
	"path/filepath"

	"repo2file/pkg/policy"
	"repo2file/pkg/walker"

	"go.uber.org/zap"
)

// CollectFiles walks the tree and returns every path the policy accepts, in
// traversal order. Files whose absolute path is in skip are never returned,
// which keeps the tool from reading its own output.
func CollectFiles(w *walker.Walker, pol *policy.Policy, skip map[string]struct{}, logger *zap.Logger) []string {
	var files []string
	logger.Debug("Starting file collection", zap.String("root", w.Root()), zap.Bool("includeMode", pol.IncludeMode()))

	for path := range w.Paths() {
		if _, ok := skip[absPath(w.Resolve(path))]; ok {
			logger.Debug("Skipping tool output file", zap.String("path", path))
			continue
		}

		verdict := pol.Evaluate(path)
		if !verdict.Include {
			logger.Debug("File excluded by policy",
				zap.String("path", path),
				zap.Stringer("tier", verdict.Tier),
				zap.String("rule", verdict.Rule))
			continue
		}
		files = append(files, path)
	}

	logger.Debug("Completed file collection", zap.Int("files", len(files)))
	return files
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func outputPaths(args *Arguments) map[string]struct{} {
	skip := make(map[string]struct{})
	for _, p := range []string{args.Output, args.Tree, errorLogPath(args)} {
		if p != "" {
			skip[absPath(p)] = struct{}{}
		}
	}
	return skip
}

// relativeTo strips the walk root from each yielded path.
func relativeTo(w *walker.Walker, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(w.Root(), w.Resolve(f))
		if err != nil {
			rel = f
		}
		out = append(out, rel)
	}
	return out
}
